// Package extract reads the search suggestion widget that accompanies a
// web-search grounded generation. The widget is an HTML fragment holding
// styling plus a carousel of "chip" links, one per suggested search.
//  1. Noise elements (style, script, images) are removed first.
//  2. Chips are read as query/link pairs, or the fragment is converted to
//     Markdown for text exports.
package extract

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"img", "picture", "svg",
	".headline", ".logo",
}

// Suggestion is one suggested search query with its link.
type Suggestion struct {
	Query string `json:"query"`
	URL   string `json:"url"`
}

// Suggestions parses the widget HTML and returns its chips in document order.
// Blank input yields no suggestions and no error.
func Suggestions(html string) ([]Suggestion, error) {
	if strings.TrimSpace(html) == "" {
		return nil, nil
	}
	doc, err := clean(html)
	if err != nil {
		return nil, err
	}

	// Chips are the documented markup; fall back to any link.
	links := doc.Find("a.chip")
	if links.Length() == 0 {
		links = doc.Find("a[href]")
	}

	var out []Suggestion
	links.Each(func(_ int, s *goquery.Selection) {
		query := strings.Join(strings.Fields(s.Text()), " ")
		href, _ := s.Attr("href")
		if query == "" {
			return
		}
		out = append(out, Suggestion{Query: query, URL: href})
	})
	return out, nil
}

// Markdown converts the widget HTML into Markdown with noise removed.
func Markdown(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	doc, err := clean(html)
	if err != nil {
		return "", err
	}

	fragment, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing suggestions: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("converting suggestions to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

func clean(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	return doc, nil
}
