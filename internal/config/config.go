package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	// WebhookSecret входит в путь вебхука и отсекает чужие запросы.
	WebhookSecret string `env:"WEBHOOK_SECRET"`
	// ChatGatewayURL — адрес HTTP-шлюза чат-платформы для исходящих сообщений.
	ChatGatewayURL string `env:"CHAT_GATEWAY_URL"`
	// ConversationTimeout — простой сессии, после которого беседа засыпает.
	ConversationTimeout time.Duration `env:"CONVERSATION_TIMEOUT"`
	// CurrencyExp — число знаков после запятой у валюты магазина.
	CurrencyExp           int      `env:"CURRENCY_EXP"`
	CurrencySymbol        string   `env:"CURRENCY_SYMBOL"`
	DefaultLanguage       string   `env:"DEFAULT_LANGUAGE"`
	FallbackLanguage      string   `env:"FALLBACK_LANGUAGE"`
	EnabledLanguages      []string `env:"ENABLED_LANGUAGES"`
	OperatorChatIDs       []int64  `env:"OPERATOR_CHAT_IDS"`
	GuideURL              string   `env:"GUIDE_URL"`
	DisplayWelcomeMessage bool     `env:"DISPLAY_WELCOME_MESSAGE"`
}

func LoadConfig() (*Config, error) {
	// .env опционален, в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.WebhookSecret == "" {
		return nil, errors.New("webhook secret is not set")
	}
	if conf.ChatGatewayURL == "" {
		return nil, errors.New("chat gateway URL is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.WebhookSecret, "s", "", "Webhook path secret")
	flag.StringVar(&flagConfig.ChatGatewayURL, "u", "", "Chat gateway base URL")
	flag.DurationVar(&flagConfig.ConversationTimeout, "t", 7*time.Minute, "Conversation idle timeout")
	flag.StringVar(&flagConfig.CurrencySymbol, "c", "₽", "Currency symbol")
	flag.StringVar(&flagConfig.GuideURL, "g", "https://github.com/avolkhin/shopbot#readme", "User guide URL")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := &Config{
		RunAddress:            defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:           defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir:         defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		WebhookSecret:         defaultIfBlank(envConfig.WebhookSecret, flagsConfig.WebhookSecret),
		ChatGatewayURL:        defaultIfBlank(envConfig.ChatGatewayURL, flagsConfig.ChatGatewayURL),
		ConversationTimeout:   envConfig.ConversationTimeout,
		CurrencyExp:           envConfig.CurrencyExp,
		CurrencySymbol:        defaultIfBlank(envConfig.CurrencySymbol, flagsConfig.CurrencySymbol),
		DefaultLanguage:       defaultIfBlank(envConfig.DefaultLanguage, "ru"),
		FallbackLanguage:      defaultIfBlank(envConfig.FallbackLanguage, "en"),
		EnabledLanguages:      envConfig.EnabledLanguages,
		OperatorChatIDs:       envConfig.OperatorChatIDs,
		GuideURL:              defaultIfBlank(envConfig.GuideURL, flagsConfig.GuideURL),
		DisplayWelcomeMessage: envConfig.DisplayWelcomeMessage,
	}
	if conf.ConversationTimeout == 0 {
		conf.ConversationTimeout = flagsConfig.ConversationTimeout
	}
	if conf.CurrencyExp == 0 {
		conf.CurrencyExp = 2
	}
	if len(conf.EnabledLanguages) == 0 {
		conf.EnabledLanguages = []string{"ru", "en"}
	}
	return conf
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
