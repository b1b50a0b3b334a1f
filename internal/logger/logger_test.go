package logger

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewReleaseMode(t *testing.T) {
	l := New(io.Discard, true)

	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}

func TestNewDevelopmentMode(t *testing.T) {
	l := New(io.Discard, false)

	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	assert.Equal(t, logrus.InfoLevel, NewFromEnv(io.Discard).GetLevel())

	t.Setenv("GIN_MODE", "debug")
	assert.Equal(t, logrus.DebugLevel, NewFromEnv(io.Discard).GetLevel())
}
