// Package render: JSON renderer.
// Builds a structured export of one briefing: request metadata, the clean
// text, the sections parsed from the generated Markdown, and the grounding
// data (sources, search queries, suggestion chips).
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/extract"
	"github.com/gaurav-prasanna/newscast/core/normalize"
)

// Section is a heading-delimited part of the briefing.
type Section struct {
	Heading   string   `json:"heading"`
	Level     int      `json:"level"`
	Headlines []string `json:"headlines"`
}

// BriefingJSON is the complete JSON output for one briefing.
type BriefingJSON struct {
	Date          string               `json:"date"`
	Model         string               `json:"model,omitempty"`
	Topics        []core.Topic         `json:"topics"`
	Regions       []string             `json:"regions"`
	Text          string               `json:"text"`
	Markdown      string               `json:"markdown"`
	Sections      []Section            `json:"sections"`
	Sources       []core.Source        `json:"sources"`
	SearchQueries []string             `json:"search_queries,omitempty"`
	Suggestions   []extract.Suggestion `json:"suggestions,omitempty"`
}

// JSONRenderer produces structured JSON output.
type JSONRenderer struct {
	normalizer core.Normalizer
}

// NewJSONRenderer creates a JSONRenderer. Headings and headlines are
// cleaned with the default text normalizer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{normalizer: normalize.New()}
}

// Render converts the summary and metadata into indented JSON.
func (r *JSONRenderer) Render(summary core.Summary, meta core.BriefingMeta) ([]byte, error) {
	suggestions, err := extract.Suggestions(meta.SuggestionsHTML)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	out := BriefingJSON{
		Date:          meta.DateStamp(),
		Model:         meta.Model,
		Topics:        meta.Topics,
		Regions:       meta.Regions,
		Text:          summary.Clean,
		Markdown:      summary.Raw,
		Sections:      r.buildSections(summary.Raw),
		Sources:       meta.Sources,
		SearchQueries: meta.SearchQueries,
		Suggestions:   suggestions,
	}
	if out.Sources == nil {
		out.Sources = []core.Source{}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// MIMEType returns the JSON media type.
func (r *JSONRenderer) MIMEType() string {
	return "application/json"
}

// --- Markdown parsing helpers ---

var (
	headingRegex  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	listItemRegex = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)
)

// buildSections groups list items under the heading that precedes them.
// Items before the first heading land in an untitled section.
func (r *JSONRenderer) buildSections(md string) []Section {
	sections := []Section{}
	var current *Section

	flush := func() {
		if current != nil && (current.Heading != "" || len(current.Headlines) > 0) {
			sections = append(sections, *current)
		}
	}

	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if m := headingRegex.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			current = &Section{
				Heading:   r.normalizer.Normalize(m[2]),
				Level:     len(m[1]),
				Headlines: []string{},
			}
			continue
		}
		m := listItemRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if current == nil {
			current = &Section{Headlines: []string{}}
		}
		if item := r.normalizer.Normalize(m[1]); item != "" {
			current.Headlines = append(current.Headlines, item)
		}
	}
	flush()
	return sections
}
