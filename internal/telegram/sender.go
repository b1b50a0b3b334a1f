package telegram

import "context"

//go:generate mockgen -source=sender.go -destination=mocks/mocks.go -package=mocks

// SendOptions задает клавиатуру отправляемого сообщения. Заполняется не больше
// одного поля.
type SendOptions struct {
	ReplyKeyboard  *ReplyKeyboard
	InlineKeyboard *InlineKeyboard
}

// Sender — исходящие операции чат-платформы. Все вызовы синхронные,
// fire-and-forget с точки зрения сессии: результат дальше не ожидается,
// ошибки только всплывают наружу.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, opts *SendOptions) (int64, error)
	SendPhoto(ctx context.Context, chatID int64, image []byte, caption string, opts *SendOptions) (int64, error)
	EditText(ctx context.Context, chatID, messageID int64, text string, keyboard *InlineKeyboard) error
	EditReplyMarkup(ctx context.Context, chatID, messageID int64, keyboard *InlineKeyboard) error
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	AnswerCallback(ctx context.Context, callbackID string) error
	// DownloadFile скачивает файл платформы по его идентификатору
	// (фото товара при редактировании каталога).
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}
