package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/newscast/core/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes an executable shell script standing in for gtts-cli.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "gtts-cli")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestGTTS_Synthesize(t *testing.T) {
	bin := fakeBinary(t, `printf 'MP3:'; cat; printf '|%s' "$@"`)
	engine := NewGTTS(GTTSConfig{Binary: bin, Language: "hi", Slow: true, RequestsPerMinute: 6000})

	audio, err := engine.Synthesize(context.Background(), "Monsoon arrives in Kerala")
	require.NoError(t, err)
	assert.Equal(t, "MP3:Monsoon arrives in Kerala|-|-l|hi|--slow|-o|-", string(audio))
	assert.NoError(t, engine.Validate())
}

func TestGTTS_Failure(t *testing.T) {
	bin := fakeBinary(t, `echo "connection refused" >&2; exit 1`)
	engine := NewGTTS(GTTSConfig{Binary: bin, RequestsPerMinute: 6000})

	_, err := engine.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGTTS_NoOutput(t *testing.T) {
	bin := fakeBinary(t, `cat > /dev/null`)
	engine := NewGTTS(GTTSConfig{Binary: bin, RequestsPerMinute: 6000})

	_, err := engine.Synthesize(context.Background(), "hello")
	assert.ErrorContains(t, err, "no MP3 output")
}

func TestGTTS_EmptyText(t *testing.T) {
	engine := NewGTTS(GTTSConfig{Binary: "does-not-matter"})
	_, err := engine.Synthesize(context.Background(), " \n ")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestGTTS_ValidateMissingBinary(t *testing.T) {
	engine := NewGTTS(GTTSConfig{Binary: "definitely-not-installed-gtts"})
	assert.Error(t, engine.Validate())
}

func TestSynthesizeChunks_Concatenates(t *testing.T) {
	var seen []string
	audio, err := synthesizeChunks(context.Background(), chunk.New(12), "first part\n\nsecond part", func(_ context.Context, s string) ([]byte, error) {
		seen = append(seen, s)
		return []byte("[" + s + "]"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first part", "second part"}, seen)
	assert.Equal(t, "[first part][second part]", string(audio))
}

func TestOpenAI_Synthesize(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-audio"))
	}))
	defer srv.Close()

	engine, err := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL, Voice: "nova"})
	require.NoError(t, err)

	audio, err := engine.Synthesize(context.Background(), "Markets closed higher.")
	require.NoError(t, err)
	assert.Equal(t, "ID3-audio", string(audio))
	assert.Equal(t, "tts-1", body["model"])
	assert.Equal(t, "nova", body["voice"])
	assert.Equal(t, "mp3", body["response_format"])
	assert.Equal(t, "Markets closed higher.", body["input"])
}

func TestOpenAI_Config(t *testing.T) {
	_, err := NewOpenAI(OpenAIConfig{})
	assert.ErrorContains(t, err, "OPENAI_API_KEY")

	_, err = NewOpenAI(OpenAIConfig{APIKey: "k", Speed: 9})
	assert.ErrorContains(t, err, "out of range")
}

func TestOpenAI_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	engine, err := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = engine.Synthesize(context.Background(), strings.Repeat("word ", 10))
	assert.Error(t, err)
}
