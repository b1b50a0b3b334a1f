package session

import (
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkhin/shopbot/internal/telegram"
	"github.com/avolkhin/shopbot/internal/telegram/telegramtest"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestActor(t *testing.T) (*Actor, *telegramtest.Sender) {
	t.Helper()
	sender := telegramtest.NewSender()
	actor := NewActor(ActorArgs{
		ChatID:      1,
		IdleTimeout: time.Second,
		Sender:      sender,
		Logger:      testLogger(),
	})
	return actor, sender
}

func TestWaitMessageInIgnoresCancelAndMismatch(t *testing.T) {
	actor, _ := newTestActor(t)

	actor.Cancel()
	actor.Post(&telegram.Update{Message: &telegram.Message{Text: "C"}})
	actor.Post(&telegram.Update{Message: &telegram.Message{Text: "A"}})

	got, err := actor.WaitMessageIn([]string{"A", "B"}, false)
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestWaitMessageInCancellable(t *testing.T) {
	actor, _ := newTestActor(t)
	actor.Cancel()

	_, err := actor.WaitMessageIn([]string{"A"}, true)
	require.ErrorIs(t, err, ErrCancelled)
}

func TestWaitMessageInStops(t *testing.T) {
	actor, _ := newTestActor(t)
	actor.mailbox.Post(StopSignal{Reason: StopReasonShutdown})

	var stopped *StoppedError
	_, err := actor.WaitMessageIn([]string{"A"}, false)
	require.ErrorAs(t, err, &stopped)
	assert.Equal(t, StopReasonShutdown, stopped.Reason)
}

func TestWaitRegexReturnsFirstGroup(t *testing.T) {
	actor, _ := newTestActor(t)
	actor.Post(&telegram.Update{Message: &telegram.Message{Text: "not a match"}})
	actor.Post(&telegram.Update{Message: &telegram.Message{Text: "user_42 (@someone)"}})

	got, err := actor.WaitRegex(regexp.MustCompile(`user_([0-9]+)`), false)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestWaitRegexWithoutCaptureGroups(t *testing.T) {
	actor, _ := newTestActor(t)
	actor.Post(&telegram.Update{Message: &telegram.Message{Text: "ping"}})

	got, err := actor.WaitRegex(regexp.MustCompile(`^ping$`), false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWaitCallbackAnswersQuery(t *testing.T) {
	actor, sender := newTestActor(t)
	// текстовое сообщение не удовлетворяет ожидание кнопки
	actor.Post(&telegram.Update{Message: &telegram.Message{Text: "hello"}})
	actor.Post(&telegram.Update{Callback: &telegram.Callback{ID: "cb-1", Data: "cmd_done"}})

	reply, err := actor.WaitCallback(CallbackOptions{})
	require.NoError(t, err)
	require.NotNil(t, reply.Callback)
	assert.Equal(t, "cmd_done", reply.Callback.Data)
	assert.Equal(t, []string{"cb-1"}, sender.Answered())
}

func TestWaitCallbackAcceptsLocation(t *testing.T) {
	actor, _ := newTestActor(t)
	actor.Post(&telegram.Update{Message: &telegram.Message{
		Location: &telegram.Location{Latitude: 55.75, Longitude: 37.61},
	}})

	reply, err := actor.WaitCallback(CallbackOptions{AcceptLocation: true})
	require.NoError(t, err)
	require.NotNil(t, reply.Message)
	assert.InDelta(t, 55.75, reply.Message.Location.Latitude, 0.001)
}

func TestWaitCallbackAcceptsText(t *testing.T) {
	actor, _ := newTestActor(t)
	actor.Post(&telegram.Update{Message: &telegram.Message{Text: "ул. Ленина, 1"}})

	reply, err := actor.WaitCallback(CallbackOptions{AcceptText: true})
	require.NoError(t, err)
	require.NotNil(t, reply.Message)
	assert.Equal(t, "ул. Ленина, 1", reply.Message.Text)
}

func TestWaitPhotoAndContact(t *testing.T) {
	actor, _ := newTestActor(t)
	actor.Post(&telegram.Update{Message: &telegram.Message{
		Photos: []telegram.PhotoSize{{FileID: "small", Width: 90}, {FileID: "big", Width: 800}},
	}})

	photos, err := actor.WaitPhoto(false)
	require.NoError(t, err)
	assert.Len(t, photos, 2)

	actor.Post(&telegram.Update{Message: &telegram.Message{
		Contact: &telegram.Contact{Phone: "123456"},
	}})
	contact, err := actor.WaitContact(false)
	require.NoError(t, err)
	assert.Equal(t, "123456", contact.Phone)
}

func TestActorIdleTimeoutTerminates(t *testing.T) {
	sender := telegramtest.NewSender()
	actor := NewActor(ActorArgs{
		ChatID:      7,
		IdleTimeout: 30 * time.Millisecond,
		Sender:      sender,
		Logger:      testLogger(),
	})

	var waitErr error
	actor.Start(func() error {
		_, waitErr = actor.WaitMessageIn([]string{"never"}, false)
		var stopped *StoppedError
		if assert.ErrorAs(t, waitErr, &stopped) {
			assert.Equal(t, StopReasonTimeout, stopped.Reason)
		}
		return nil
	})

	select {
	case <-actor.Done():
	case <-time.After(time.Second):
		t.Fatal("actor did not terminate on idle timeout")
	}
}

func TestActorStopJoins(t *testing.T) {
	actor, _ := newTestActor(t)
	started := make(chan struct{})
	actor.Start(func() error {
		close(started)
		_, err := actor.WaitMessageIn([]string{"never"}, false)
		return err
	})
	<-started

	done := make(chan struct{})
	go func() {
		actor.Stop(StopReasonShutdown)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not join the actor goroutine")
	}
}
