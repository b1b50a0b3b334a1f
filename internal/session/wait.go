package session

import (
	"regexp"
	"slices"

	"github.com/avolkhin/shopbot/internal/telegram"
)

// Примитивы ожидания. Каждый крутит цикл "взять событие → классифицировать →
// повторить или вернуть" до первого совпадения. Неподходящие и запоздавшие
// события (например нажатие кнопки с уже закрытого экрана) молча отбрасываются —
// это осознанно: цикл терпит дубли и события не в тему, не ломая состояние.
//
// Контракт отмены одинаков у всех примитивов: CancelSignal игнорируется при
// cancellable=false и немедленно возвращает ErrCancelled при cancellable=true.
// Остановка сессии (StoppedError) всегда побеждает и пробрасывается как есть.

// WaitMessageIn блокирует до первого текстового сообщения, дословно входящего в items.
func (a *Actor) WaitMessageIn(items []string, cancellable bool) (string, error) {
	a.log.Debug("waiting for a specific message")
	for {
		ev, err := a.next()
		if err != nil {
			return "", err
		}
		if _, ok := ev.(CancelSignal); ok {
			if cancellable {
				return "", ErrCancelled
			}
			continue
		}
		msg := messageOf(ev)
		if msg == nil || msg.Text == "" {
			continue
		}
		if !slices.Contains(items, msg.Text) {
			continue
		}
		return msg.Text, nil
	}
}

// WaitRegex блокирует до первого текстового сообщения, совпавшего с pattern,
// и возвращает первую группу захвата. Шаблон без групп захвата дает пустую строку.
func (a *Actor) WaitRegex(pattern *regexp.Regexp, cancellable bool) (string, error) {
	groups, err := a.WaitRegexGroups(pattern, cancellable)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 {
		return "", nil
	}
	return groups[0], nil
}

// WaitRegexGroups — как WaitRegex, но возвращает все группы захвата
// (разбор списка размеров).
func (a *Actor) WaitRegexGroups(pattern *regexp.Regexp, cancellable bool) ([]string, error) {
	a.log.WithField("pattern", pattern.String()).Debug("waiting for a regex")
	for {
		ev, err := a.next()
		if err != nil {
			return nil, err
		}
		if _, ok := ev.(CancelSignal); ok {
			if cancellable {
				return nil, ErrCancelled
			}
			continue
		}
		msg := messageOf(ev)
		if msg == nil || msg.Text == "" {
			continue
		}
		match := pattern.FindStringSubmatch(msg.Text)
		if match == nil {
			continue
		}
		return match[1:], nil
	}
}

// CallbackOptions расширяет WaitCallback: ожидание может быть удовлетворено
// не только кнопкой, но и геолокацией, контактом, фотографией или произвольным
// текстом (шаг адреса в оформлении заказа принимает кнопку, текст и геолокацию,
// шаг телефона — кнопку, текст и контакт).
type CallbackOptions struct {
	AcceptLocation bool
	AcceptContact  bool
	AcceptPhoto    bool
	AcceptText     bool
	Cancellable    bool
}

// CallbackReply — результат WaitCallback. Заполнено ровно одно поле: Callback
// при нажатии кнопки, Message когда ожидание удовлетворило входящее сообщение.
type CallbackReply struct {
	Callback *telegram.Callback
	Message  *telegram.Message
}

// WaitCallback блокирует до первого нажатия инлайн-кнопки. Нажатие
// подтверждается (AnswerCallback) до возврата.
func (a *Actor) WaitCallback(opts CallbackOptions) (*CallbackReply, error) {
	a.log.Debug("waiting for a callback query")
	for {
		ev, err := a.next()
		if err != nil {
			return nil, err
		}
		if _, ok := ev.(CancelSignal); ok {
			if opts.Cancellable {
				return nil, ErrCancelled
			}
			continue
		}
		upd, ok := ev.(InboundUpdate)
		if !ok {
			continue
		}
		if msg := upd.Update.Message; msg != nil {
			if opts.AcceptLocation && msg.Location != nil {
				return &CallbackReply{Message: msg}, nil
			}
			if opts.AcceptContact && msg.Contact != nil {
				return &CallbackReply{Message: msg}, nil
			}
			if opts.AcceptPhoto && len(msg.Photos) > 0 {
				return &CallbackReply{Message: msg}, nil
			}
			if opts.AcceptText && msg.Text != "" {
				return &CallbackReply{Message: msg}, nil
			}
			continue
		}
		cb := upd.Update.Callback
		if cb == nil {
			continue
		}
		if ansErr := a.sender.AnswerCallback(a.ctx, cb.ID); ansErr != nil {
			a.log.WithError(ansErr).Warn("answering callback query")
		}
		return &CallbackReply{Callback: cb}, nil
	}
}

// WaitPhoto блокирует до первого сообщения с фотографией и возвращает ее варианты размеров.
func (a *Actor) WaitPhoto(cancellable bool) ([]telegram.PhotoSize, error) {
	a.log.Debug("waiting for a photo")
	for {
		ev, err := a.next()
		if err != nil {
			return nil, err
		}
		if _, ok := ev.(CancelSignal); ok {
			if cancellable {
				return nil, ErrCancelled
			}
			continue
		}
		msg := messageOf(ev)
		if msg == nil || len(msg.Photos) == 0 {
			continue
		}
		return msg.Photos, nil
	}
}

// WaitContact блокирует до первого сообщения с шарингом контакта.
func (a *Actor) WaitContact(cancellable bool) (*telegram.Contact, error) {
	a.log.Debug("waiting for a contact")
	for {
		ev, err := a.next()
		if err != nil {
			return nil, err
		}
		if _, ok := ev.(CancelSignal); ok {
			if cancellable {
				return nil, ErrCancelled
			}
			continue
		}
		msg := messageOf(ev)
		if msg == nil || msg.Contact == nil {
			continue
		}
		return msg.Contact, nil
	}
}

func messageOf(ev Event) *telegram.Message {
	upd, ok := ev.(InboundUpdate)
	if !ok {
		return nil
	}
	return upd.Update.Message
}
