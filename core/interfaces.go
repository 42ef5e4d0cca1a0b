// Package core defines the pipeline types and interfaces for newscast.
// Each stage of the briefing pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// Topic is a news category the user can select.
type Topic string

// FilterSelection holds the topics and regions chosen for one request.
type FilterSelection struct {
	Topics  []Topic
	Regions []string
}

// OutputKind tags a single output returned by the generation service.
type OutputKind string

const (
	OutputText         OutputKind = "text"
	OutputThought      OutputKind = "thought"
	OutputBlob         OutputKind = "blob"
	OutputFunctionCall OutputKind = "function_call"
	OutputCode         OutputKind = "code"
	OutputCodeResult   OutputKind = "code_result"
)

// Output is one typed element of a generation response.
// Only the fields relevant to Kind are populated.
type Output struct {
	Kind     OutputKind
	Text     string
	MIMEType string
	Data     []byte
}

// Source is a web citation attached to a grounded generation.
type Source struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Domain string `json:"domain,omitempty"`
}

// GenerationRequest is sent to a Generator.
type GenerationRequest struct {
	Model     string
	Prompt    string
	WebSearch bool
}

// Generation is the full response of one generation call.
type Generation struct {
	Model   string
	Outputs []Output

	// Grounding metadata, populated when web search was used.
	Sources         []Source
	SearchQueries   []string
	SuggestionsHTML string
}

// FirstText returns the text of the first text-typed output.
// The second return value is false when no such output exists or it is blank.
func (g *Generation) FirstText() (string, bool) {
	if g == nil {
		return "", false
	}
	for _, o := range g.Outputs {
		if o.Kind != OutputText {
			continue
		}
		if o.Text == "" {
			return "", false
		}
		return o.Text, true
	}
	return "", false
}

// Summary carries the generated text before and after normalization.
type Summary struct {
	Raw   string
	Clean string
}

// BriefingMeta holds request metadata passed to renderers.
type BriefingMeta struct {
	Date            time.Time
	Topics          []Topic
	Regions         []string
	Model           string
	Sources         []Source
	SearchQueries   []string
	SuggestionsHTML string
}

// DateStamp formats the briefing date as YYYY-MM-DD.
func (m BriefingMeta) DateStamp() string {
	return m.Date.Format("2006-01-02")
}

// Generator calls a remote text-generation service.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (*Generation, error)
}

// Normalizer converts generated markup into plain narration text.
type Normalizer interface {
	Normalize(raw string) string
}

// Renderer converts a summary (and metadata) into a final document format.
type Renderer interface {
	Render(summary Summary, meta BriefingMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".pdf").
	Extension() string
	MIMEType() string
}

// Synthesizer converts narration text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
