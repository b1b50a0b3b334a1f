package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New инициализирует логгер: в релизе JSON под сборщик логов,
// в остальных окружениях — текст с дебагом.
func New(output io.Writer, release bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(output)

	if release {
		l.SetFormatter(new(logrus.JSONFormatter))
		l.SetLevel(logrus.InfoLevel)
		return l
	}

	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.DebugLevel)
	return l
}

// NewFromEnv выбирает режим по GIN_MODE: вебхук-транспорт работает на gin,
// так что логгер и транспорт переключаются одной переменной.
func NewFromEnv(output io.Writer) *logrus.Logger {
	return New(output, os.Getenv("GIN_MODE") == "release")
}
