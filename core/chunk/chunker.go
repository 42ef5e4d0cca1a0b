// Package chunk splits narration text into pieces a speech engine accepts.
// Splits prefer paragraph boundaries, then sentence ends, then spaces.
// A single word longer than the limit is cut at the limit.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxRunes suits the OpenAI speech endpoint's 4096 character cap.
const DefaultMaxRunes = 4000

// Chunker splits text into pieces of at most MaxRunes runes.
type Chunker struct {
	MaxRunes int
}

// New creates a Chunker with the given limit.
// Defaults to DefaultMaxRunes if maxRunes <= 0.
func New(maxRunes int) *Chunker {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &Chunker{MaxRunes: maxRunes}
}

// Chunk splits text into trimmed, non-empty pieces. Joining the pieces with
// spaces yields the same words in the same order.
func (c *Chunker) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for text != "" {
		if utf8.RuneCountInString(text) <= c.MaxRunes {
			chunks = append(chunks, text)
			break
		}
		cut := c.cutPoint(text)
		piece := strings.TrimSpace(text[:cut])
		if piece != "" {
			chunks = append(chunks, piece)
		}
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}

// cutPoint returns a byte offset within the first MaxRunes runes of text.
func (c *Chunker) cutPoint(text string) int {
	limit := byteOffset(text, c.MaxRunes)
	window := text[:limit]

	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return i
	}
	if i := strings.LastIndex(window, "\n"); i > 0 {
		return i
	}
	if i := lastSentenceEnd(window); i > 0 {
		return i
	}
	if i := strings.LastIndex(window, " "); i > 0 {
		return i
	}
	return limit
}

// lastSentenceEnd returns the offset just past the last ". ", "! " or "? ".
func lastSentenceEnd(s string) int {
	best := -1
	for _, p := range []string{". ", "! ", "? "} {
		if i := strings.LastIndex(s, p); i > best {
			best = i
		}
	}
	if best < 0 {
		return -1
	}
	return best + 1
}

// byteOffset returns the byte index of the n-th rune of s.
func byteOffset(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
