// Package telegramtest содержит записывающую фейковую реализацию Sender для тестов.
package telegramtest

import (
	"context"
	"sync"

	"github.com/avolkhin/shopbot/internal/telegram"
)

// SentMessage — одно отправленное (и возможно отредактированное) сообщение.
type SentMessage struct {
	ChatID  int64
	ID      int64
	Text    string
	IsPhoto bool
	Opts    *telegram.SendOptions
	Edited  *telegram.InlineKeyboard
	Deleted bool
}

// Sender записывает все исходящие вызовы. Безопасен для конкурентного использования:
// акторы шлют из своих горутин, тест читает из своей.
type Sender struct {
	mu        sync.Mutex
	nextID    int64
	messages  []*SentMessage
	answered  []string
	downloads map[string][]byte

	// FailSends включает возврат ошибки из SendText, для проверки best-effort уведомлений.
	FailSends bool
}

func NewSender() *Sender {
	return &Sender{downloads: make(map[string][]byte)}
}

var errSendFailed = &sendError{}

type sendError struct{}

func (*sendError) Error() string { return "send failed" }

func (s *Sender) SendText(_ context.Context, chatID int64, text string, opts *telegram.SendOptions) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSends {
		return 0, errSendFailed
	}
	s.nextID++
	s.messages = append(s.messages, &SentMessage{ChatID: chatID, ID: s.nextID, Text: text, Opts: opts})
	return s.nextID, nil
}

func (s *Sender) SendPhoto(_ context.Context, chatID int64, _ []byte, caption string, opts *telegram.SendOptions) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.messages = append(s.messages, &SentMessage{ChatID: chatID, ID: s.nextID, Text: caption, IsPhoto: true, Opts: opts})
	return s.nextID, nil
}

func (s *Sender) EditText(_ context.Context, chatID, messageID int64, text string, keyboard *telegram.InlineKeyboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ChatID == chatID && m.ID == messageID {
			m.Text = text
			m.Edited = keyboard
		}
	}
	return nil
}

func (s *Sender) EditReplyMarkup(_ context.Context, chatID, messageID int64, keyboard *telegram.InlineKeyboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ChatID == chatID && m.ID == messageID {
			m.Edited = keyboard
		}
	}
	return nil
}

func (s *Sender) DeleteMessage(_ context.Context, chatID, messageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ChatID == chatID && m.ID == messageID {
			m.Deleted = true
		}
	}
	return nil
}

func (s *Sender) AnswerCallback(_ context.Context, callbackID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answered = append(s.answered, callbackID)
	return nil
}

func (s *Sender) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data, ok := s.downloads[fileID]; ok {
		return data, nil
	}
	return []byte(fileID), nil
}

// SetFile подготавливает содержимое файла для DownloadFile.
func (s *Sender) SetFile(fileID string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloads[fileID] = data
}

// Messages возвращает копию списка отправленных сообщений.
func (s *Sender) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentMessage, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, *m)
	}
	return out
}

// TextsTo возвращает тексты всех сообщений, отправленных в чат chatID, в порядке отправки.
func (s *Sender) TextsTo(chatID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, m := range s.messages {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

// Answered возвращает идентификаторы подтвержденных callback-запросов.
func (s *Sender) Answered() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.answered...)
}
