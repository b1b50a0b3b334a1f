// Package client реализует telegram.Sender поверх HTTP-шлюза чат-платформы.
// Шлюз инкапсулирует нативный чат-API и токены, ядру достаточно его адреса.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/avolkhin/shopbot/internal/telegram"
)

const (
	RouteSendText        = "/send_text"
	RouteSendPhoto       = "/send_photo"
	RouteEditText        = "/edit_text"
	RouteEditReplyMarkup = "/edit_reply_markup"
	RouteDeleteMessage   = "/delete_message"
	RouteAnswerCallback  = "/answer_callback"
	RouteDownloadFile    = "/download_file/%s"
)

// HTTPSender является реализацией интерфейса telegram.Sender для HTTP запросов к шлюзу.
type HTTPSender struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *HTTPSender {
	return &HTTPSender{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// StatusCodeErr возвращается при ответе шлюза со статусом отличным от http.StatusOK.
type StatusCodeErr struct {
	Code int
}

func (e *StatusCodeErr) Error() string {
	return fmt.Sprintf("gateway responded with status %d", e.Code)
}

type messageResponse struct {
	MessageID int64 `json:"message_id"`
}

type sendTextRequest struct {
	ChatID int64                 `json:"chat_id"`
	Text   string                `json:"text"`
	Opts   *telegram.SendOptions `json:"opts,omitempty"`
}

func (s *HTTPSender) SendText(ctx context.Context, chatID int64, text string, opts *telegram.SendOptions) (int64, error) {
	var resp messageResponse
	err := s.post(ctx, RouteSendText, sendTextRequest{ChatID: chatID, Text: text, Opts: opts}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.MessageID, nil
}

type sendPhotoRequest struct {
	ChatID  int64                 `json:"chat_id"`
	Image   []byte                `json:"image"`
	Caption string                `json:"caption"`
	Opts    *telegram.SendOptions `json:"opts,omitempty"`
}

func (s *HTTPSender) SendPhoto(
	ctx context.Context,
	chatID int64,
	image []byte,
	caption string,
	opts *telegram.SendOptions,
) (int64, error) {
	var resp messageResponse
	err := s.post(ctx, RouteSendPhoto, sendPhotoRequest{ChatID: chatID, Image: image, Caption: caption, Opts: opts}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.MessageID, nil
}

type editTextRequest struct {
	ChatID    int64                    `json:"chat_id"`
	MessageID int64                    `json:"message_id"`
	Text      string                   `json:"text"`
	Keyboard  *telegram.InlineKeyboard `json:"keyboard,omitempty"`
}

func (s *HTTPSender) EditText(ctx context.Context, chatID, messageID int64, text string, keyboard *telegram.InlineKeyboard) error {
	return s.post(ctx, RouteEditText, editTextRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		Keyboard:  keyboard,
	}, nil)
}

type editReplyMarkupRequest struct {
	ChatID    int64                    `json:"chat_id"`
	MessageID int64                    `json:"message_id"`
	Keyboard  *telegram.InlineKeyboard `json:"keyboard,omitempty"`
}

func (s *HTTPSender) EditReplyMarkup(ctx context.Context, chatID, messageID int64, keyboard *telegram.InlineKeyboard) error {
	return s.post(ctx, RouteEditReplyMarkup, editReplyMarkupRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Keyboard:  keyboard,
	}, nil)
}

type deleteMessageRequest struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int64 `json:"message_id"`
}

func (s *HTTPSender) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return s.post(ctx, RouteDeleteMessage, deleteMessageRequest{ChatID: chatID, MessageID: messageID}, nil)
}

type answerCallbackRequest struct {
	CallbackID string `json:"callback_id"`
}

func (s *HTTPSender) AnswerCallback(ctx context.Context, callbackID string) error {
	return s.post(ctx, RouteAnswerCallback, answerCallbackRequest{CallbackID: callbackID}, nil)
}

// DownloadFile скачивает файл платформы по его идентификатору.
func (s *HTTPSender) DownloadFile(ctx context.Context, fileID string) (body []byte, err error) {
	url := s.baseURL + fmt.Sprintf(RouteDownloadFile, fileID)
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %s", reqErr.Error())
	}

	resp, doErr := s.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusCodeErr{Code: resp.StatusCode}
	}
	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %s", err.Error())
	}
	return body, nil
}

func (s *HTTPSender) post(ctx context.Context, route string, payload any, out any) (err error) {
	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return fmt.Errorf("marshal request: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+route, bytes.NewReader(data))
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := s.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return &StatusCodeErr{Code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return fmt.Errorf("decode response: %s", decodeErr.Error())
	}
	return nil
}
