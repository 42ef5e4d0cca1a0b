package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/extract"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// policy sanitizes converted model output; generated Markdown may carry raw HTML.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// SummaryHTML converts the generated Markdown into sanitized HTML.
func SummaryHTML(markdown string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

var htmlDocument = template.Must(template.New("briefing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>News Briefing {{.Date}}</title>
</head>
<body>
<h1>News Briefing {{.Date}}</h1>
{{.Body}}
{{- if .Sources}}
<h2>Sources</h2>
<ol>
{{- range .Sources}}
<li><a href="{{.URL}}">{{.Title}}</a></li>
{{- end}}
</ol>
{{- end}}
{{- if .Suggestions}}
<h2>Related searches</h2>
<ul>
{{- range .Suggestions}}
<li><a href="{{.URL}}">{{.Query}}</a></li>
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))

// HTMLRenderer produces a standalone HTML page of the briefing.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render converts the raw summary and grounding data into an HTML document.
func (r *HTMLRenderer) Render(summary core.Summary, meta core.BriefingMeta) ([]byte, error) {
	body, err := SummaryHTML(strings.TrimSpace(summary.Raw))
	if err != nil {
		return nil, err
	}
	suggestions, err := extract.Suggestions(meta.SuggestionsHTML)
	if err != nil {
		return nil, fmt.Errorf("suggestions: %w", err)
	}

	var buf bytes.Buffer
	err = htmlDocument.Execute(&buf, struct {
		Date        string
		Body        template.HTML
		Sources     []core.Source
		Suggestions []extract.Suggestion
	}{meta.DateStamp(), body, meta.Sources, suggestions})
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

// MIMEType returns the HTML media type.
func (r *HTMLRenderer) MIMEType() string {
	return "text/html; charset=utf-8"
}
