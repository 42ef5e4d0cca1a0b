// Package config loads runtime configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Supported providers and speech engines.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"

	SpeechGTTS   = "gtts"
	SpeechOpenAI = "openai"
)

// Config holds application-wide configuration populated from environment variables.
type Config struct {
	APIKey       string `env:"API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIBase   string `env:"OPENAI_BASE_URL"`

	Provider string `env:"NEWSCAST_PROVIDER" envDefault:"gemini"`
	Model    string `env:"NEWSCAST_MODEL"`

	Speech      string  `env:"NEWSCAST_SPEECH" envDefault:"gtts"`
	Language    string  `env:"NEWSCAST_LANGUAGE" envDefault:"en"`
	Slow        bool    `env:"NEWSCAST_SLOW" envDefault:"false"`
	Voice       string  `env:"NEWSCAST_VOICE" envDefault:"alloy"`
	SpeechModel string  `env:"NEWSCAST_SPEECH_MODEL" envDefault:"tts-1"`
	Speed       float64 `env:"NEWSCAST_SPEED" envDefault:"1.0"`

	OutputDir string `env:"NEWSCAST_OUTPUT_DIR"`
	Addr      string `env:"NEWSCAST_ADDR" envDefault:":8501"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads .env (if any) and parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse parses the current environment without touching .env files.
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated settings. Credentials are checked when the
// matching client is built, so the mock provider runs without keys.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("unsupported provider %q (want gemini, openai or mock)", c.Provider)
	}
	switch c.Speech {
	case SpeechGTTS, SpeechOpenAI:
	default:
		return fmt.Errorf("unsupported speech engine %q (want gtts or openai)", c.Speech)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	return nil
}

// NewLogger builds the root logger from the log settings.
func (c Config) NewLogger() *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "newscast",
	})
	if strings.EqualFold(c.LogFormat, "json") {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger
}
