package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avolkhin/shopbot/internal/metrics"
	"github.com/avolkhin/shopbot/internal/telegram"
)

// ConversationFactory строит функцию беседы для нового актора. first — событие,
// породившее сессию: из него берутся данные пользователя для регистрации.
type ConversationFactory func(a *Actor, first *telegram.Update) func() error

// Dispatcher маршрутизирует входящие события в Mailbox актора с соответствующим
// user-id, создавая актора при отсутствии. Инвариант: на один user-id живет не
// больше одного актора.
type Dispatcher struct {
	idleTimeout time.Duration
	sender      telegram.Sender
	log         *logrus.Logger
	metrics     *metrics.Metrics
	factory     ConversationFactory
	ctx         context.Context

	mu     sync.Mutex
	actors map[int64]*Actor
}

type DispatcherArgs struct {
	IdleTimeout time.Duration
	Sender      telegram.Sender
	Logger      *logrus.Logger
	Metrics     *metrics.Metrics
	Factory     ConversationFactory
	// Ctx передается акторам для их исходящих вызовов.
	Ctx context.Context
}

func NewDispatcher(args DispatcherArgs) *Dispatcher {
	ctx := args.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return &Dispatcher{
		idleTimeout: args.IdleTimeout,
		sender:      args.Sender,
		log:         args.Logger,
		metrics:     args.Metrics,
		factory:     args.Factory,
		ctx:         ctx,
		actors:      make(map[int64]*Actor),
	}
}

// Dispatch направляет событие в сессию его пользователя. Нажатие выделенной
// кнопки отмены превращается в CancelSignal для текущего ожидания; остальные
// события встают в очередь как есть.
func (d *Dispatcher) Dispatch(u *telegram.Update) {
	d.metrics.EventsDispatched.Inc()

	if cb := u.Callback; cb != nil && cb.Data == telegram.CancelCallbackData {
		if err := d.sender.AnswerCallback(d.ctx, cb.ID); err != nil {
			d.log.WithError(err).Warn("answering cancel callback")
		}
		d.mu.Lock()
		actor, ok := d.actors[u.UserID]
		d.mu.Unlock()
		if ok {
			actor.Cancel()
		}
		// отмена без живой сессии ничего не значит
		return
	}

	d.actorFor(u).Post(u)
}

// actorFor возвращает живого актора пользователя или создает и запускает нового.
func (d *Dispatcher) actorFor(u *telegram.Update) *Actor {
	d.mu.Lock()
	defer d.mu.Unlock()

	if actor, ok := d.actors[u.UserID]; ok {
		return actor
	}

	userID := u.UserID
	actor := NewActor(ActorArgs{
		ChatID:      u.ChatID,
		IdleTimeout: d.idleTimeout,
		Sender:      d.sender,
		Logger:      d.log,
		Ctx:         d.ctx,
		OnTerminate: func() {
			d.remove(userID)
			d.metrics.SessionsActive.Dec()
		},
	})
	d.actors[userID] = actor
	d.metrics.SessionsStarted.Inc()
	d.metrics.SessionsActive.Inc()

	actor.Start(d.factory(actor, u))
	return actor
}

func (d *Dispatcher) remove(userID int64) {
	d.mu.Lock()
	delete(d.actors, userID)
	d.mu.Unlock()
}

// StopAll останавливает всех живых акторов и дожидается их завершения.
// Используется при остановке процесса.
func (d *Dispatcher) StopAll(reason string) {
	d.mu.Lock()
	actors := make([]*Actor, 0, len(d.actors))
	for _, a := range d.actors {
		actors = append(actors, a)
	}
	d.mu.Unlock()

	var wg sync.WaitGroup
	for _, a := range actors {
		wg.Add(1)
		go func(a *Actor) {
			defer wg.Done()
			a.Stop(reason)
		}(a)
	}
	wg.Wait()
}
