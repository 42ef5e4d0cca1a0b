// Package briefing sequences one end-to-end request: validate the filters,
// build the prompt, call the generation service, normalize the text, then
// render the document and the narration and write both for download.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/normalize"
	"github.com/gaurav-prasanna/newscast/core/output"
	"github.com/gaurav-prasanna/newscast/core/prompt"
	"github.com/gaurav-prasanna/newscast/core/render"
)

// AudioExtension and AudioMIMEType describe the narration artifact.
const (
	AudioExtension = ".mp3"
	AudioMIMEType  = "audio/mpeg"
)

// ArtifactWriter persists one artifact and returns where it was stored.
type ArtifactWriter interface {
	Write(date time.Time, ext string, data []byte) (string, error)
}

// Artifact is one generated download.
type Artifact struct {
	Name     string
	Path     string
	MIMEType string
	Data     []byte
}

// Ext returns the artifact's file extension, including the dot.
func (a Artifact) Ext() string {
	if i := strings.LastIndex(a.Name, "."); i >= 0 {
		return a.Name[i:]
	}
	return ""
}

// Result holds everything one request produced.
type Result struct {
	Date      time.Time
	Summary   core.Summary
	Sources   []core.Source
	Artifacts []Artifact
}

// Artifact returns the artifact with the given extension.
func (r *Result) Artifact(ext string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Ext() == ext {
			return a, true
		}
	}
	return Artifact{}, false
}

// Options configures a Service. Generator, Synthesizer and Writer are required.
type Options struct {
	Generator   core.Generator
	Synthesizer core.Synthesizer
	Writer      ArtifactWriter

	// Normalizer defaults to the standard text normalizer.
	Normalizer core.Normalizer
	// Document defaults to the PDF renderer.
	Document core.Renderer
	// Exports are extra renderers (Markdown, JSON) run after the document.
	Exports []core.Renderer

	// Model overrides the generator's default model when set.
	Model string
	// Now supplies the request date; defaults to time.Now.
	Now    func() time.Time
	Logger *log.Logger
}

// Service runs briefing requests. It holds no per-request state.
type Service struct {
	generator  core.Generator
	synth      core.Synthesizer
	writer     ArtifactWriter
	normalizer core.Normalizer
	document   core.Renderer
	exports    []core.Renderer
	model      string
	now        func() time.Time
	logger     *log.Logger
}

// New creates a Service.
func New(opts Options) (*Service, error) {
	switch {
	case opts.Generator == nil:
		return nil, errors.New("briefing: generator is required")
	case opts.Synthesizer == nil:
		return nil, errors.New("briefing: synthesizer is required")
	case opts.Writer == nil:
		return nil, errors.New("briefing: artifact writer is required")
	}

	s := &Service{
		generator:  opts.Generator,
		synth:      opts.Synthesizer,
		writer:     opts.Writer,
		normalizer: opts.Normalizer,
		document:   opts.Document,
		exports:    opts.Exports,
		model:      opts.Model,
		now:        opts.Now,
		logger:     opts.Logger,
	}
	if s.normalizer == nil {
		s.normalizer = normalize.New()
	}
	if s.document == nil {
		s.document = render.NewPDFRenderer()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s, nil
}

// Validate checks that sel can be turned into a request.
func Validate(sel core.FilterSelection) error {
	if len(sel.Topics) == 0 {
		return &ValidationError{Err: ErrNoTopics}
	}
	if len(sel.Regions) == 0 {
		return &ValidationError{Err: ErrNoRegions}
	}
	for _, t := range sel.Topics {
		if !prompt.IsTopic(t) {
			return &ValidationError{Err: ErrUnknownTopic, Detail: string(t)}
		}
	}
	return nil
}

// Run executes one request. Any failure ends the request; artifacts are
// only written once every stage has succeeded.
func (s *Service) Run(ctx context.Context, sel core.FilterSelection) (*Result, error) {
	if err := Validate(sel); err != nil {
		return nil, err
	}

	date := s.now()
	logger := s.logger.With("date", date.Format("2006-01-02"))

	// 1. Generate
	start := time.Now()
	logger.Info("generating briefing", "topics", sel.Topics, "regions", sel.Regions)
	gen, err := s.generator.Generate(ctx, core.GenerationRequest{
		Model:     s.model,
		Prompt:    prompt.Build(sel),
		WebSearch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	raw, ok := gen.FirstText()
	if !ok {
		return nil, ErrEmptyGeneration
	}
	logger.Info("generation complete",
		"model", gen.Model,
		"outputs", len(gen.Outputs),
		"sources", len(gen.Sources),
		"elapsed", time.Since(start).Round(time.Millisecond))

	// 2. Normalize
	summary := core.Summary{Raw: raw, Clean: s.normalizer.Normalize(raw)}
	if summary.Clean == "" {
		return nil, ErrEmptyGeneration
	}

	meta := core.BriefingMeta{
		Date:            date,
		Topics:          sel.Topics,
		Regions:         sel.Regions,
		Model:           gen.Model,
		Sources:         gen.Sources,
		SearchQueries:   gen.SearchQueries,
		SuggestionsHTML: gen.SuggestionsHTML,
	}

	// 3. Render document, narration and exports
	var artifacts []Artifact

	doc, err := s.render(s.document, summary, meta)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, doc)

	start = time.Now()
	audio, err := s.synth.Synthesize(ctx, summary.Clean)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	logger.Info("narration ready",
		"size", humanize.Bytes(uint64(len(audio))),
		"elapsed", time.Since(start).Round(time.Millisecond))
	artifacts = append(artifacts, Artifact{
		Name:     output.FileName(date, AudioExtension),
		MIMEType: AudioMIMEType,
		Data:     audio,
	})

	for _, r := range s.exports {
		a, err := s.render(r, summary, meta)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}

	// 4. Write
	for i := range artifacts {
		path, err := s.writer.Write(date, artifacts[i].Ext(), artifacts[i].Data)
		if err != nil {
			return nil, fmt.Errorf("write: %w", err)
		}
		artifacts[i].Path = path
		logger.Info("written", "path", path, "size", humanize.Bytes(uint64(len(artifacts[i].Data))))
	}

	return &Result{
		Date:      date,
		Summary:   summary,
		Sources:   gen.Sources,
		Artifacts: artifacts,
	}, nil
}

func (s *Service) render(r core.Renderer, summary core.Summary, meta core.BriefingMeta) (Artifact, error) {
	ext := r.Extension()
	data, err := r.Render(summary, meta)
	if err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", strings.TrimPrefix(ext, "."), err)
	}
	return Artifact{
		Name:     output.FileName(meta.Date, ext),
		MIMEType: r.MIMEType(),
		Data:     data,
	}, nil
}
