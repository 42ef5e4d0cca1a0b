package speech

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gaurav-prasanna/newscast/core/chunk"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI synthesizes speech using the OpenAI audio speech endpoint.
type OpenAI struct {
	client  openai.Client
	model   string
	voice   string
	speed   float64
	chunker *chunk.Chunker
}

// OpenAIConfig holds configuration for the OpenAI speech engine.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string  // defaults to "tts-1"
	Voice   string  // defaults to "alloy"
	Speed   float64 // 0.25 to 4.0, defaults to 1.0
}

// NewOpenAI creates an OpenAI speech engine. SDK retries are disabled.
func NewOpenAI(cfg OpenAIConfig, opts ...option.RequestOption) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = string(openai.SpeechModelTTS1)
	}
	if cfg.Voice == "" {
		cfg.Voice = "alloy"
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1.0
	}
	if cfg.Speed < 0.25 || cfg.Speed > 4.0 {
		return nil, fmt.Errorf("speech speed %.2f out of range (0.25-4.0)", cfg.Speed)
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAI{
		client:  openai.NewClient(reqOpts...),
		model:   cfg.Model,
		voice:   cfg.Voice,
		speed:   cfg.Speed,
		chunker: chunk.New(chunk.DefaultMaxRunes),
	}, nil
}

// Synthesize converts text to MP3.
func (s *OpenAI) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return synthesizeChunks(ctx, s.chunker, text, s.speak)
}

func (s *OpenAI) speak(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		Speed:          openai.Float(s.speed),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading speech response: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("openai speech returned no audio")
	}
	return audio, nil
}
