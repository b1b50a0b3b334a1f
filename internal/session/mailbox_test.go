package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkhin/shopbot/internal/telegram"
)

func textUpdate(text string) InboundUpdate {
	return InboundUpdate{Update: &telegram.Update{Message: &telegram.Message{Text: text}}}
}

func TestMailboxFIFO(t *testing.T) {
	mb := NewMailbox()
	mb.Post(textUpdate("one"))
	mb.Post(CancelSignal{})
	mb.Post(textUpdate("two"))

	ev, err := mb.Take(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "one", ev.(InboundUpdate).Update.Message.Text)

	ev, err = mb.Take(time.Second)
	require.NoError(t, err)
	assert.IsType(t, CancelSignal{}, ev)

	ev, err = mb.Take(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "two", ev.(InboundUpdate).Update.Message.Text)
}

func TestMailboxTakeBlocksUntilPost(t *testing.T) {
	mb := NewMailbox()
	go func() {
		time.Sleep(20 * time.Millisecond)
		mb.Post(textUpdate("late"))
	}()

	ev, err := mb.Take(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "late", ev.(InboundUpdate).Update.Message.Text)
}

// Остановка побеждает уже лежащие в очереди события: после StopSignal никакой
// Take не возвращает событие нормально.
func TestMailboxStopWinsOverQueuedEvents(t *testing.T) {
	mb := NewMailbox()
	mb.Post(textUpdate("queued"))
	mb.Post(StopSignal{Reason: StopReasonShutdown})

	var stopped *StoppedError
	_, err := mb.Take(time.Second)
	require.ErrorAs(t, err, &stopped)
	assert.Equal(t, StopReasonShutdown, stopped.Reason)

	// повторные вызовы тоже немедленно сообщают об остановке
	_, err = mb.Take(time.Second)
	require.ErrorAs(t, err, &stopped)
}

func TestMailboxStopUnblocksWaiter(t *testing.T) {
	mb := NewMailbox()
	go func() {
		time.Sleep(20 * time.Millisecond)
		mb.Post(StopSignal{Reason: StopReasonShutdown})
	}()

	var stopped *StoppedError
	_, err := mb.Take(time.Second)
	require.ErrorAs(t, err, &stopped)
}

func TestMailboxTimeout(t *testing.T) {
	mb := NewMailbox()

	var stopped *StoppedError
	_, err := mb.Take(30 * time.Millisecond)
	require.ErrorAs(t, err, &stopped)
	assert.Equal(t, StopReasonTimeout, stopped.Reason)

	// после таймаута ящик мертв: события больше не обрабатываются
	mb.Post(textUpdate("too late"))
	_, err = mb.Take(time.Second)
	require.ErrorAs(t, err, &stopped)
}
