package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/avolkhin/shopbot/internal/config"
	"github.com/avolkhin/shopbot/internal/conversation"
	"github.com/avolkhin/shopbot/internal/metrics"
	"github.com/avolkhin/shopbot/internal/money"
	"github.com/avolkhin/shopbot/internal/repository/pgrepo"
	"github.com/avolkhin/shopbot/internal/service"
	"github.com/avolkhin/shopbot/internal/session"
	"github.com/avolkhin/shopbot/internal/telegram/client"
	"github.com/avolkhin/shopbot/internal/transport/webhook"
	"github.com/avolkhin/shopbot/pkg/uow"
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with run address %s", a.Config.RunAddress)
	money.SetExponent(a.Config.CurrencyExp)

	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %s", connErr.Error())
	}
	defer conn.Close()

	unitOfWork := uow.NewUnitOfWork(conn)
	if regErr := pgrepo.RegisterAll(unitOfWork); regErr != nil {
		return fmt.Errorf("app run: %s", regErr.Error())
	}

	services, sErr := service.Factory(unitOfWork)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(registry)

	sender := client.New(a.Config.ChatGatewayURL)

	dispatcher := session.NewDispatcher(session.DispatcherArgs{
		IdleTimeout: a.Config.ConversationTimeout,
		Sender:      sender,
		Logger:      a.Logger,
		Metrics:     m,
		Ctx:         context.Background(),
		Factory: conversation.NewFactory(services, m, conversation.Config{
			CurrencySymbol:        a.Config.CurrencySymbol,
			EnabledLanguages:      a.Config.EnabledLanguages,
			DefaultLanguage:       a.Config.DefaultLanguage,
			FallbackLanguage:      a.Config.FallbackLanguage,
			GuideURL:              a.Config.GuideURL,
			DisplayWelcomeMessage: a.Config.DisplayWelcomeMessage,
			OperatorChatIDs:       a.Config.OperatorChatIDs,
		}),
	})

	router := webhook.New(webhook.RouterArgs{
		Logger:     a.Logger,
		Secret:     a.Config.WebhookSecret,
		Dispatcher: dispatcher,
		Registry:   registry,
	})

	errChan := make(chan error, 1)
	go func() {
		if runErr := router.Run(a.Config.RunAddress); runErr != nil {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		// даем живым сессиям попрощаться с пользователями
		dispatcher.StopAll(session.StopReasonShutdown)
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return err
	}
}
