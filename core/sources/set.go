package sources

import (
	"strings"

	"github.com/gaurav-prasanna/newscast/core"
)

// Set is an insertion-ordered set of sources keyed by normalized URL.
type Set struct {
	items []core.Source
	seen  map[string]bool
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{
		seen: make(map[string]bool),
	}
}

// Add inserts src if its URL is a web URL not seen before.
// It reports whether src was added.
func (s *Set) Add(src core.Source) bool {
	if !IsWebURL(src.URL) {
		return false
	}
	key := NormalizeURL(src.URL)
	if s.seen[key] {
		return false
	}
	s.seen[key] = true

	src.Title = strings.TrimSpace(src.Title)
	if src.Domain == "" {
		src.Domain = Domain(src.URL)
	}
	if src.Title == "" {
		src.Title = src.Domain
	}
	s.items = append(s.items, src)
	return true
}

// Len returns the number of unique sources.
func (s *Set) Len() int {
	return len(s.items)
}

// All returns the sources in insertion order.
func (s *Set) All() []core.Source {
	return s.items
}

// Dedupe returns srcs without duplicates or non-web URLs, order preserved.
func Dedupe(srcs []core.Source) []core.Source {
	set := NewSet()
	for _, src := range srcs {
		set.Add(src)
	}
	return set.All()
}
