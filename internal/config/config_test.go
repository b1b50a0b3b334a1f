package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avolkhin/shopbot/internal/money"
)

func TestMergeConfigDefaults(t *testing.T) {
	conf := mergeConfig(&Config{}, &Config{
		RunAddress:          "localhost:8080",
		CurrencySymbol:      "₽",
		ConversationTimeout: 7 * time.Minute,
	})

	assert.Equal(t, "localhost:8080", conf.RunAddress)
	assert.Equal(t, 2, conf.CurrencyExp)
	assert.Equal(t, "₽", conf.CurrencySymbol)
	assert.Equal(t, "ru", conf.DefaultLanguage)
	assert.Equal(t, "en", conf.FallbackLanguage)
	assert.Equal(t, []string{"ru", "en"}, conf.EnabledLanguages)
	assert.Equal(t, 7*time.Minute, conf.ConversationTimeout)

	// показатель валюты отдается кошельку как есть
	money.SetExponent(conf.CurrencyExp)
}

func TestMergeConfigEnvWins(t *testing.T) {
	conf := mergeConfig(&Config{
		RunAddress:  ":9090",
		CurrencyExp: 0,
	}, &Config{
		RunAddress: "localhost:8080",
	})

	assert.Equal(t, ":9090", conf.RunAddress)
	assert.Equal(t, 2, conf.CurrencyExp)
}
