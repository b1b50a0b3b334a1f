package session

import (
	"errors"
	"sync"
	"time"

	"github.com/avolkhin/shopbot/internal/telegram"
)

// Причины остановки сессии.
const (
	StopReasonTimeout  = "timeout"
	StopReasonShutdown = "shutdown"
)

// ErrCancelled возвращается cancellable-примитивами ожидания, когда пользователь
// нажал кнопку отмены. Это ожидаемое условие управления потоком, не сбой.
var ErrCancelled = errors.New("wait cancelled")

// StoppedError сигнализирует о безусловном завершении сессии (явный Stop или
// таймаут простоя). Примитивы ожидания пробрасывают её наверх без обработки.
type StoppedError struct {
	Reason string
}

func (e *StoppedError) Error() string {
	return "session stopped: " + e.Reason
}

// Event — элемент очереди сессии. Ровно три реализации: InboundUpdate,
// CancelSignal и StopSignal.
type Event interface {
	isEvent()
}

// InboundUpdate — обычное входящее событие чат-платформы.
type InboundUpdate struct {
	Update *telegram.Update
}

// CancelSignal кладется в очередь, когда пользователь нажимает выделенную кнопку отмены.
type CancelSignal struct{}

// StopSignal безусловно завершает сессию, что бы она ни ждала.
type StopSignal struct {
	Reason string
}

func (InboundUpdate) isEvent() {}
func (CancelSignal) isEvent()  {}
func (StopSignal) isEvent()    {}

// Mailbox — неограниченная FIFO-очередь событий одной сессии. Потребитель ровно
// один (горутина актора), продюсеров может быть много. StopSignal не встает в
// очередь, а взводит липкий флаг: после него любой Take немедленно сообщает об
// остановке, даже если в очереди остались обычные события.
type Mailbox struct {
	mu      sync.Mutex
	events  []Event
	stopped *StopSignal
	signal  chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{
		signal: make(chan struct{}, 1),
	}
}

// Post добавляет событие в очередь. Никогда не блокирует вызывающего.
func (m *Mailbox) Post(ev Event) {
	m.mu.Lock()
	if stop, ok := ev.(StopSignal); ok {
		if m.stopped == nil {
			m.stopped = &stop
		}
	} else if m.stopped == nil {
		m.events = append(m.events, ev)
	}
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// Take возвращает следующее событие в порядке поступления. Блокирует вызывающего
// до появления события, но не дольше timeout: простой синтезирует
// StopSignal(timeout). Однажды увидев остановку, Take больше никогда не вернет
// событие нормально.
func (m *Mailbox) Take(timeout time.Duration) (Event, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		m.mu.Lock()
		if m.stopped != nil {
			reason := m.stopped.Reason
			m.mu.Unlock()
			return nil, &StoppedError{Reason: reason}
		}
		if len(m.events) > 0 {
			ev := m.events[0]
			m.events = m.events[1:]
			m.mu.Unlock()
			return ev, nil
		}
		m.mu.Unlock()

		select {
		case <-m.signal:
		case <-timer.C:
			m.mu.Lock()
			if m.stopped == nil {
				m.stopped = &StopSignal{Reason: StopReasonTimeout}
			}
			reason := m.stopped.Reason
			m.mu.Unlock()
			return nil, &StoppedError{Reason: reason}
		}
	}
}
