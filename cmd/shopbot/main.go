package main

import (
	"context"
	"errors"
	"os"

	"github.com/avolkhin/shopbot/internal/app"
	"github.com/avolkhin/shopbot/internal/config"
	"github.com/avolkhin/shopbot/internal/logger"
)

func main() {
	conf := config.MustLoadConfig()
	l := logger.NewFromEnv(os.Stdout)

	if err := app.New(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		panic(err)
	}
}
