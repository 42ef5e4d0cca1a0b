// Package normalize implements the Normalizer interface.
// It converts generated Markdown-flavored text into plain narration text,
// which serves as the canonical input for the document and speech stages.
package normalize

import (
	"regexp"
	"strings"
)

// Rule is a single text-to-text rewrite. Rules only ever delete characters.
type Rule struct {
	Name  string
	Apply func(string) string
}

var (
	headingRegex  = regexp.MustCompile(`(?m)^[ \t]*#+[ \t]*`)
	strongRegex   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	lightRegex    = regexp.MustCompile(`\*(.+?)\*`)
	bulletRegex   = regexp.MustCompile(`(?m)^[ \t]*- `)
	blankRunRegex = regexp.MustCompile(`\n{3,}`)
)

// StripHeadings removes heading markers (and surrounding spaces or tabs)
// from the start of every line.
func StripHeadings(s string) string {
	return headingRegex.ReplaceAllString(s, "")
}

// StripStrongEmphasis replaces **text** with text. Spans never cross lines.
func StripStrongEmphasis(s string) string {
	return strongRegex.ReplaceAllString(s, "$1")
}

// StripLightEmphasis replaces *text* with text. Spans never cross lines.
func StripLightEmphasis(s string) string {
	return lightRegex.ReplaceAllString(s, "$1")
}

// StripBullets removes a leading "- " bullet (after optional indentation)
// from every line.
func StripBullets(s string) string {
	return bulletRegex.ReplaceAllString(s, "")
}

// CollapseBlankRuns reduces three or more consecutive newlines to two.
func CollapseBlankRuns(s string) string {
	return blankRunRegex.ReplaceAllString(s, "\n\n")
}

// TrimEdges removes leading and trailing whitespace.
func TrimEdges(s string) string {
	return strings.TrimSpace(s)
}

// Rules returns the default rule sequence. Order matters: blank-run
// collapsing runs after stripping because emptied lines create new runs.
func Rules() []Rule {
	return []Rule{
		{Name: "headings", Apply: StripHeadings},
		{Name: "strong-emphasis", Apply: StripStrongEmphasis},
		{Name: "light-emphasis", Apply: StripLightEmphasis},
		{Name: "bullets", Apply: StripBullets},
		{Name: "blank-runs", Apply: CollapseBlankRuns},
		{Name: "trim", Apply: TrimEdges},
	}
}

// TextNormalizer applies an ordered rule sequence until the text stops changing.
type TextNormalizer struct {
	rules []Rule
}

// New creates a TextNormalizer. With no rules it uses Rules().
func New(rules ...Rule) *TextNormalizer {
	if len(rules) == 0 {
		rules = Rules()
	}
	return &TextNormalizer{rules: rules}
}

// Normalize runs every rule in order, repeating the full pass until a fixed
// point. Nested markers such as "***x***" or "- # x" need more than one pass.
// Each changing pass shortens the text, so the loop terminates.
func (n *TextNormalizer) Normalize(raw string) string {
	text := raw
	for {
		next := n.pass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func (n *TextNormalizer) pass(s string) string {
	for _, r := range n.rules {
		s = r.Apply(s)
	}
	return s
}
