package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkhin/shopbot/internal/metrics"
	"github.com/avolkhin/shopbot/internal/telegram"
	"github.com/avolkhin/shopbot/internal/telegram/telegramtest"
)

// echoFactory складывает все полученные текстовые сообщения по пользователям.
type echoFactory struct {
	mu    sync.Mutex
	texts map[int64][]string
}

func (f *echoFactory) factory(a *Actor, _ *telegram.Update) func() error {
	return func() error {
		for {
			text, err := a.WaitMessageIn([]string{"ping", "pong"}, false)
			if err != nil {
				return nil //nolint:nilerr // остановка — нормальное завершение
			}
			f.mu.Lock()
			f.texts[a.ChatID()] = append(f.texts[a.ChatID()], text)
			f.mu.Unlock()
		}
	}
}

func newTestDispatcher(factory ConversationFactory) (*Dispatcher, *telegramtest.Sender) {
	sender := telegramtest.NewSender()
	d := NewDispatcher(DispatcherArgs{
		IdleTimeout: time.Second,
		Sender:      sender,
		Logger:      testLogger(),
		Metrics:     metrics.New(prometheus.NewRegistry()),
		Factory:     factory,
	})
	return d, sender
}

func textFrom(userID int64, text string) *telegram.Update {
	return &telegram.Update{
		UserID:  userID,
		ChatID:  userID,
		Message: &telegram.Message{Text: text},
	}
}

func TestDispatcherRoutesPerUser(t *testing.T) {
	f := &echoFactory{texts: make(map[int64][]string)}
	d, _ := newTestDispatcher(f.factory)

	d.Dispatch(textFrom(1, "ping"))
	d.Dispatch(textFrom(2, "pong"))
	d.Dispatch(textFrom(1, "pong"))

	require.Eventually(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.texts[1]) == 2 && len(f.texts[2]) == 1
	}, time.Second, 10*time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, []string{"ping", "pong"}, f.texts[1])

	// на каждого пользователя живет ровно один актор
	d.mu.Lock()
	assert.Len(t, d.actors, 2)
	d.mu.Unlock()

	d.StopAll(StopReasonShutdown)
}

func TestDispatcherConvertsCancelButton(t *testing.T) {
	cancelled := make(chan struct{})
	factory := func(a *Actor, _ *telegram.Update) func() error {
		return func() error {
			_, err := a.WaitMessageIn([]string{"x"}, true)
			if errors.Is(err, ErrCancelled) {
				close(cancelled)
			}
			return nil
		}
	}
	d, sender := newTestDispatcher(factory)

	// сперва создаем сессию обычным сообщением
	d.Dispatch(textFrom(5, "hello"))
	// затем жмем кнопку отмены
	d.Dispatch(&telegram.Update{
		UserID:   5,
		ChatID:   5,
		Callback: &telegram.Callback{ID: "cb-cancel", Data: telegram.CancelCallbackData},
	})

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("cancel button did not turn into CancelSignal")
	}
	assert.Equal(t, []string{"cb-cancel"}, sender.Answered())
}

func TestDispatcherCancelWithoutSessionIsNoop(t *testing.T) {
	d, sender := newTestDispatcher(func(a *Actor, _ *telegram.Update) func() error {
		return func() error { return nil }
	})

	d.Dispatch(&telegram.Update{
		UserID:   9,
		Callback: &telegram.Callback{ID: "cb", Data: telegram.CancelCallbackData},
	})

	d.mu.Lock()
	assert.Empty(t, d.actors)
	d.mu.Unlock()
	assert.Equal(t, []string{"cb"}, sender.Answered())
}

func TestDispatcherStopAllJoins(t *testing.T) {
	f := &echoFactory{texts: make(map[int64][]string)}
	d, _ := newTestDispatcher(f.factory)

	d.Dispatch(textFrom(1, "ping"))
	d.Dispatch(textFrom(2, "ping"))
	d.StopAll(StopReasonShutdown)

	d.mu.Lock()
	assert.Empty(t, d.actors)
	d.mu.Unlock()
}
