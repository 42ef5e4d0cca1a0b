package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gaurav-prasanna/newscast/config"
	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/briefing"
	"github.com/gaurav-prasanna/newscast/core/generate"
	"github.com/gaurav-prasanna/newscast/core/output"
	"github.com/gaurav-prasanna/newscast/core/speech"
	"github.com/spf13/cobra"
)

// loadConfig reads the environment and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, *log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("log_level", &cfg.LogLevel)
	override("provider", &cfg.Provider)
	override("model", &cfg.Model)
	override("speech", &cfg.Speech)
	override("language", &cfg.Language)
	override("output_dir", &cfg.OutputDir)
	override("addr", &cfg.Addr)
	if flags.Changed("slow") {
		cfg.Slow, _ = flags.GetBool("slow")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, cfg.NewLogger(), nil
}

func newGenerator(ctx context.Context, cfg config.Config) (core.Generator, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return generate.NewOpenAI(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBase)
	case config.ProviderMock:
		return generate.Static{}, nil
	default:
		return generate.NewGemini(ctx, cfg.APIKey, cfg.Model)
	}
}

func newSynthesizer(cfg config.Config) (core.Synthesizer, error) {
	if cfg.Speech == config.SpeechOpenAI {
		return speech.NewOpenAI(speech.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBase,
			Model:   cfg.SpeechModel,
			Voice:   cfg.Voice,
			Speed:   cfg.Speed,
		})
	}
	tts := speech.NewGTTS(speech.GTTSConfig{Language: cfg.Language, Slow: cfg.Slow})
	if err := tts.Validate(); err != nil {
		return nil, err
	}
	return tts, nil
}

// newService wires the briefing pipeline from cfg.
func newService(ctx context.Context, cfg config.Config, logger *log.Logger, exports ...core.Renderer) (*briefing.Service, error) {
	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing generator: %w", err)
	}
	synth, err := newSynthesizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing speech: %w", err)
	}
	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}
	logger.Debug("pipeline ready", "provider", cfg.Provider, "speech", cfg.Speech, "output_dir", writer.OutputDir)

	return briefing.New(briefing.Options{
		Generator:   gen,
		Synthesizer: synth,
		Writer:      writer,
		Exports:     exports,
		Model:       cfg.Model,
		Logger:      logger,
	})
}
