// Package speech implements the Synthesizer interface. Engines return MP3
// bytes; long narration is split with the chunk package and the MP3
// segments are concatenated in order.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/gaurav-prasanna/newscast/core/chunk"
	"golang.org/x/time/rate"
)

const (
	defaultGTTSBinary  = "gtts-cli"
	gttsMaxRunes       = 5000
	gttsChunkTimeout   = 60 * time.Second
	gttsRequestsPerMin = 50
)

// GTTS synthesizes speech with gTTS (Google Translate TTS) through gtts-cli.
// No API key is required.
type GTTS struct {
	binary   string
	language string
	slow     bool
	chunker  *chunk.Chunker

	// Paces requests so Google does not block the client.
	limiter *rate.Limiter
}

// GTTSConfig holds configuration for the gTTS engine.
type GTTSConfig struct {
	// Binary is the gtts-cli executable - defaults to "gtts-cli" on PATH.
	Binary string

	// Language code (e.g., "en", "hi", "ml") - defaults to "en".
	Language string

	// Slow reads the text more slowly.
	Slow bool

	// RequestsPerMinute caps chunk requests (defaults to 50).
	RequestsPerMinute int
}

// NewGTTS creates a gTTS engine.
func NewGTTS(cfg GTTSConfig) *GTTS {
	if cfg.Binary == "" {
		cfg.Binary = defaultGTTSBinary
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = gttsRequestsPerMin
	}
	return &GTTS{
		binary:   cfg.Binary,
		language: cfg.Language,
		slow:     cfg.Slow,
		chunker:  chunk.New(gttsMaxRunes),
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
	}
}

// Synthesize converts text to MP3.
func (e *GTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return synthesizeChunks(ctx, e.chunker, text, func(ctx context.Context, piece string) ([]byte, error) {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
		}
		return e.run(ctx, piece)
	})
}

// Validate checks that the gtts-cli binary is available.
func (e *GTTS) Validate() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return fmt.Errorf("%s not found in PATH: %w\n\nInstall with: pip install gtts", e.binary, err)
	}
	return nil
}

// run feeds one chunk to gtts-cli on stdin and reads MP3 from stdout.
func (e *GTTS) run(ctx context.Context, text string) ([]byte, error) {
	args := []string{"-", "-l", e.language}
	if e.slow {
		args = append(args, "--slow")
	}
	args = append(args, "-o", "-")

	ctx, cancel := context.WithTimeout(ctx, gttsChunkTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("gTTS synthesis timeout: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%s failed: %w, stderr: %s", e.binary, err, strings.TrimSpace(stderr.String()))
	}

	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s produced no MP3 output, stderr: %s", e.binary, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// ErrEmptyText is returned when there is nothing to narrate.
var ErrEmptyText = errors.New("text cannot be empty")

// synthesizeChunks splits text and concatenates the MP3 of every piece.
// MP3 streams are frame based, so concatenation yields a playable file.
func synthesizeChunks(ctx context.Context, c *chunk.Chunker, text string, fn func(context.Context, string) ([]byte, error)) ([]byte, error) {
	pieces := c.Chunk(text)
	if len(pieces) == 0 {
		return nil, ErrEmptyText
	}

	var out bytes.Buffer
	for i, piece := range pieces {
		audio, err := fn(ctx, piece)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(pieces), err)
		}
		out.Write(audio)
	}
	return out.Bytes(), nil
}
