package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avolkhin/shopbot/internal/telegram"
)

// Actor — последовательный исполнитель одной сессии. Владеет своим Mailbox и
// единственной горутиной, на которой крутится вся беседа от первого события до
// завершения. Пока горутина жива, других потребителей у Mailbox нет, поэтому
// состояние беседы (корзина, стек меню) не требует синхронизации.
type Actor struct {
	chatID      int64
	idleTimeout time.Duration
	sender      telegram.Sender
	log         *logrus.Entry
	ctx         context.Context

	mailbox *Mailbox
	done    chan struct{}

	startOnce   sync.Once
	onTerminate func()
}

type ActorArgs struct {
	ChatID      int64
	IdleTimeout time.Duration
	Sender      telegram.Sender
	Logger      *logrus.Logger
	// Ctx используется для исходящих вызовов и обращений к БД на горутине актора.
	Ctx context.Context
	// OnTerminate вызывается после полной остановки горутины (снятие с учета в диспетчере).
	OnTerminate func()
}

func NewActor(args ActorArgs) *Actor {
	ctx := args.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return &Actor{
		chatID:      args.ChatID,
		idleTimeout: args.IdleTimeout,
		sender:      args.Sender,
		log:         args.Logger.WithField("chat_id", args.ChatID),
		ctx:         ctx,
		mailbox:     NewMailbox(),
		done:        make(chan struct{}),
		onTerminate: args.OnTerminate,
	}
}

// Start запускает горутину актора с функцией беседы run. Повторные вызовы игнорируются.
// Вся обработка ошибок беседы (включая паники) — забота run; сюда возвращаются
// только уже классифицированные остатки, которые просто логируются.
func (a *Actor) Start(run func() error) {
	a.startOnce.Do(func() {
		go func() {
			defer func() {
				if a.onTerminate != nil {
					a.onTerminate()
				}
				close(a.done)
			}()
			a.log.Debug("starting conversation")
			if err := run(); err != nil {
				a.log.WithError(err).Error("conversation finished with error")
				return
			}
			a.log.Debug("conversation finished")
		}()
	})
}

// Post кладет входящее событие в очередь сессии. Вызывается из потока диспетчера,
// никогда не блокирует.
func (a *Actor) Post(u *telegram.Update) {
	a.mailbox.Post(InboundUpdate{Update: u})
}

// Cancel кладет в очередь сигнал мягкой отмены текущего ожидания.
func (a *Actor) Cancel() {
	a.mailbox.Post(CancelSignal{})
}

// Stop посылает сигнал остановки и блокируется до полного завершения горутины актора.
func (a *Actor) Stop(reason string) {
	a.mailbox.Post(StopSignal{Reason: reason})
	<-a.done
}

// Done закрывается после завершения горутины актора.
func (a *Actor) Done() <-chan struct{} {
	return a.done
}

func (a *Actor) ChatID() int64 {
	return a.chatID
}

func (a *Actor) Sender() telegram.Sender {
	return a.sender
}

func (a *Actor) Logger() *logrus.Entry {
	return a.log
}

// Context — контекст для синхронных вызовов (БД, отправка сообщений) на горутине актора.
func (a *Actor) Context() context.Context {
	return a.ctx
}

// next возвращает следующее событие или ошибку остановки. Единственная точка
// приостановки актора.
func (a *Actor) next() (Event, error) {
	return a.mailbox.Take(a.idleTimeout)
}
