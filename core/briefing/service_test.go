package briefing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/output"
	"github.com/gaurav-prasanna/newscast/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockGenerator is a mock implementation of core.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req core.GenerationRequest) (*core.Generation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.Generation), args.Error(1)
}

// MockSynthesizer is a mock implementation of core.Synthesizer
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var fixedDate = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, gen core.Generator, synth core.Synthesizer, exports ...core.Renderer) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := output.New(dir)
	require.NoError(t, err)

	svc, err := New(Options{
		Generator:   gen,
		Synthesizer: synth,
		Writer:      w,
		Exports:     exports,
		Model:       "test-model",
		Now:         func() time.Time { return fixedDate },
		Logger:      log.New(os.Stderr),
	})
	require.NoError(t, err)
	return svc, dir
}

func textGeneration(text string) *core.Generation {
	return &core.Generation{
		Model: "test-model",
		Outputs: []core.Output{
			{Kind: core.OutputThought, Text: "thinking"},
			{Kind: core.OutputText, Text: text},
		},
		Sources: []core.Source{{Title: "Example", URL: "https://example.com/a", Domain: "example.com"}},
	}
}

func TestService_Run(t *testing.T) {
	gen := new(MockGenerator)
	synth := new(MockSynthesizer)
	svc, dir := newTestService(t, gen, synth, render.NewMarkdownRenderer())

	sel := core.FilterSelection{Topics: []core.Topic{"Sports"}, Regions: []string{"All States"}}
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req core.GenerationRequest) bool {
		return req.WebSearch && req.Model == "test-model" && strings.Contains(req.Prompt, "## Sports News")
	})).Return(textGeneration("## Title\n- item one\n- item two\n\n\n\nEnd"), nil)
	synth.On("Synthesize", mock.Anything, "Title\nitem one\nitem two\n\nEnd").Return([]byte("ID3audio"), nil)

	res, err := svc.Run(context.Background(), sel)
	require.NoError(t, err)

	assert.Equal(t, fixedDate, res.Date)
	assert.Equal(t, "Title\nitem one\nitem two\n\nEnd", res.Summary.Clean)
	assert.Len(t, res.Sources, 1)
	require.Len(t, res.Artifacts, 3)

	pdf, ok := res.Artifact(".pdf")
	require.True(t, ok)
	assert.Equal(t, "news_2026-10-15.pdf", pdf.Name)
	assert.Equal(t, "application/pdf", pdf.MIMEType)
	assert.True(t, strings.HasPrefix(string(pdf.Data), "%PDF"))

	audio, ok := res.Artifact(".mp3")
	require.True(t, ok)
	assert.Equal(t, "news_2026-10-15.mp3", audio.Name)
	assert.Equal(t, filepath.Join(dir, "news_2026-10-15.mp3"), audio.Path)

	data, err := os.ReadFile(audio.Path)
	require.NoError(t, err)
	assert.Equal(t, "ID3audio", string(data))

	md, ok := res.Artifact(".md")
	require.True(t, ok)
	assert.FileExists(t, md.Path)

	gen.AssertExpectations(t)
	synth.AssertExpectations(t)
}

func TestService_RunValidation(t *testing.T) {
	tests := []struct {
		name string
		sel  core.FilterSelection
		want error
	}{
		{"no topics", core.FilterSelection{Regions: []string{"Kerala"}}, ErrNoTopics},
		{"no regions", core.FilterSelection{Topics: []core.Topic{"India"}}, ErrNoRegions},
		{"unknown topic", core.FilterSelection{Topics: []core.Topic{"Weather"}, Regions: []string{"Kerala"}}, ErrUnknownTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			synth := new(MockSynthesizer)
			svc, _ := newTestService(t, gen, synth)

			res, err := svc.Run(context.Background(), tt.sel)

			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
			gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
			synth.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
		})
	}
}

func TestService_RunEmptyGeneration(t *testing.T) {
	tests := []struct {
		name string
		gen  *core.Generation
	}{
		{"no outputs", &core.Generation{}},
		{"only thoughts", &core.Generation{Outputs: []core.Output{{Kind: core.OutputThought, Text: "hmm"}}}},
		{"markup only", textGeneration("## \n- \n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(MockGenerator)
			synth := new(MockSynthesizer)
			svc, dir := newTestService(t, gen, synth)
			gen.On("Generate", mock.Anything, mock.Anything).Return(tt.gen, nil)

			res, err := svc.Run(context.Background(), core.FilterSelection{Topics: []core.Topic{"India"}, Regions: []string{"Delhi"}})

			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrEmptyGeneration)
			synth.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestService_RunDownstreamFailures(t *testing.T) {
	sel := core.FilterSelection{Topics: []core.Topic{"India"}, Regions: []string{"Delhi"}}

	t.Run("generation error", func(t *testing.T) {
		gen := new(MockGenerator)
		synth := new(MockSynthesizer)
		svc, _ := newTestService(t, gen, synth)
		gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("401 unauthorized"))

		_, err := svc.Run(context.Background(), sel)
		assert.EqualError(t, err, "generate: 401 unauthorized")
	})

	t.Run("synthesis error leaves no files", func(t *testing.T) {
		gen := new(MockGenerator)
		synth := new(MockSynthesizer)
		svc, dir := newTestService(t, gen, synth)
		gen.On("Generate", mock.Anything, mock.Anything).Return(textGeneration("- headline"), nil)
		synth.On("Synthesize", mock.Anything, "headline").Return(nil, errors.New("gtts-cli failed"))

		_, err := svc.Run(context.Background(), sel)
		assert.EqualError(t, err, "synthesize: gtts-cli failed")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorContains(t, err, "generator")

	_, err = New(Options{Generator: new(MockGenerator)})
	assert.ErrorContains(t, err, "synthesizer")

	_, err = New(Options{Generator: new(MockGenerator), Synthesizer: new(MockSynthesizer)})
	assert.ErrorContains(t, err, "writer")
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "select at least one topic", (&ValidationError{Err: ErrNoTopics}).Error())
	assert.Equal(t, "unknown topic: Weather", (&ValidationError{Err: ErrUnknownTopic, Detail: "Weather"}).Error())
}
