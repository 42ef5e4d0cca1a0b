package sources

import (
	"testing"

	"github.com/gaurav-prasanna/newscast/core"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://Example.com/news/", "https://example.com/news"},
		{"https://example.com/", "https://example.com/"},
		{"https://example.com/a#top", "https://example.com/a"},
		{"https://example.com/a?utm_source=x&id=3", "https://example.com/a?id=3"},
		{"https://example.com/a?utm_campaign=y", "https://example.com/a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in), tt.in)
	}
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "thehindu.com", Domain("https://www.thehindu.com/news/national/"))
	assert.Equal(t, "espncricinfo.com", Domain("https://espncricinfo.com:443/live"))
	assert.Equal(t, "", Domain("::not a url"))
}

func TestDedupe(t *testing.T) {
	in := []core.Source{
		{Title: "A", URL: "https://www.example.com/a/"},
		{Title: "A again", URL: "https://www.example.com/a#frag"},
		{Title: "", URL: "https://news.example.org/b"},
		{Title: "mail", URL: "mailto:desk@example.com"},
		{Title: "relative", URL: "/c"},
	}

	out := Dedupe(in)

	assert.Equal(t, []core.Source{
		{Title: "A", URL: "https://www.example.com/a/", Domain: "example.com"},
		{Title: "news.example.org", URL: "https://news.example.org/b", Domain: "news.example.org"},
	}, out)
}

func TestSet_Add(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Add(core.Source{URL: "https://example.com/x", Domain: "custom"}))
	assert.False(t, s.Add(core.Source{URL: "https://EXAMPLE.com/x/"}))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "custom", s.All()[0].Domain)
}
