package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/gaurav-prasanna/newscast/core/extract"
)

// MarkdownRenderer writes the generated Markdown as-is, followed by the
// grounding sources and the related searches.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the raw summary plus appendices as Markdown bytes.
func (r *MarkdownRenderer) Render(summary core.Summary, meta core.BriefingMeta) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# News Briefing %s\n\n", meta.DateStamp())
	b.WriteString(strings.TrimSpace(summary.Raw))
	b.WriteString("\n")

	if len(meta.Sources) > 0 {
		b.WriteString("\n## Sources\n\n")
		for i, src := range meta.Sources {
			fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, src.Title, src.URL)
		}
	}

	related, err := extract.Markdown(meta.SuggestionsHTML)
	if err != nil {
		return nil, fmt.Errorf("related searches: %w", err)
	}
	if related != "" {
		b.WriteString("\n## Related searches\n\n")
		b.WriteString(related)
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// MIMEType returns the Markdown media type.
func (r *MarkdownRenderer) MIMEType() string {
	return "text/markdown; charset=utf-8"
}
