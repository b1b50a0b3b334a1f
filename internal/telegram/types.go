// Package telegram описывает границу с чат-платформой: типы входящих событий,
// клавиатуры и интерфейс исходящих операций. Конкретный клиент чат-API —
// внешняя зависимость процесса, ядро с ним не связано.
package telegram

// CancelCallbackData — payload выделенной кнопки отмены. Диспетчер превращает
// такие нажатия в CancelSignal вместо обычного события.
const CancelCallbackData = "cmd_cancel"

// Update — входящее событие от чат-платформы. Ровно одно из полей не nil.
type Update struct {
	UserID    int64     `json:"user_id"`
	ChatID    int64     `json:"chat_id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	Username  string    `json:"username,omitempty"`
	Language  string    `json:"language,omitempty"`
	Message   *Message  `json:"message,omitempty"`
	Callback  *Callback `json:"callback,omitempty"`
}

// Message — входящее сообщение: текст, геолокация, контакт или фото.
type Message struct {
	ID       int64       `json:"id"`
	Text     string      `json:"text,omitempty"`
	Location *Location   `json:"location,omitempty"`
	Contact  *Contact    `json:"contact,omitempty"`
	Photos   []PhotoSize `json:"photos,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Contact struct {
	Phone     string `json:"phone"`
	FirstName string `json:"first_name,omitempty"`
}

// PhotoSize — один из вариантов загруженного фото. Платформа присылает несколько
// размеров, ядро выбирает самый широкий.
type PhotoSize struct {
	FileID string `json:"file_id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Callback — нажатие инлайн-кнопки. MessageText нужен админскому живому режиму,
// чтобы восстановить номер заказа из текста сообщения с кнопками.
type Callback struct {
	ID          string `json:"id"`
	Data        string `json:"data"`
	MessageID   int64  `json:"message_id"`
	MessageText string `json:"message_text,omitempty"`
}

// ReplyKeyboard — обычная клавиатура, замещающая поле ввода.
type ReplyKeyboard struct {
	Rows    [][]ReplyButton
	OneTime bool
	Resize  bool
	// Remove убирает клавиатуру у пользователя; Rows при этом игнорируются.
	Remove bool
}

type ReplyButton struct {
	Text            string
	RequestLocation bool
	RequestContact  bool
}

// RemoveKeyboard возвращает клавиатуру, убирающую предыдущую.
func RemoveKeyboard() *ReplyKeyboard {
	return &ReplyKeyboard{Remove: true}
}

// InlineKeyboard — клавиатура, прикрепленная к конкретному сообщению.
type InlineKeyboard struct {
	Rows [][]InlineButton
}

type InlineButton struct {
	Text string
	Data string
}
