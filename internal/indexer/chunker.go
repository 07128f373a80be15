package indexer

import (
	"strings"
	"unicode/utf8"
)

// Default chunking parameters, measured in runes.
const (
	DefaultChunkSize    = 1500
	DefaultChunkOverlap = 200
)

// DefaultSeparators are tried in order; the first one present in the text is used.
var DefaultSeparators = []string{"\n\n", "\n", ".", " "}

// RecursiveChunker splits text on a hierarchy of separators and merges the pieces
// into overlapping windows of at most Size runes.
type RecursiveChunker struct {
	Size       int
	Overlap    int
	Separators []string
}

// NewRecursiveChunker creates a chunker with the default separators.
func NewRecursiveChunker(size, overlap int) *RecursiveChunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &RecursiveChunker{
		Size:       size,
		Overlap:    overlap,
		Separators: DefaultSeparators,
	}
}

// Chunk splits a document's text into chunks tagged with source and a 0-based index.
func (c *RecursiveChunker) Chunk(text, source string) []Chunk {
	pieces := c.Split(text)
	chunks := make([]Chunk, 0, len(pieces))
	for i, p := range pieces {
		chunks = append(chunks, Chunk{Index: i, Source: source, Text: p})
	}
	return chunks
}

// Split returns the trimmed, non-empty windows of text.
func (c *RecursiveChunker) Split(text string) []string {
	return c.split(text, c.Separators)
}

func (c *RecursiveChunker) split(text string, separators []string) []string {
	if len(separators) == 0 {
		return nil
	}

	separator := separators[len(separators)-1]
	var rest []string
	for i, s := range separators {
		if strings.Contains(text, s) {
			separator = s
			rest = separators[i+1:]
			break
		}
	}

	var out, good []string
	for _, s := range splitKeepSeparator(text, separator) {
		if runeLen(s) < c.Size {
			good = append(good, s)
			continue
		}
		if len(good) > 0 {
			out = append(out, c.merge(good)...)
			good = nil
		}
		if len(rest) == 0 {
			if t := strings.TrimSpace(s); t != "" {
				out = append(out, t)
			}
		} else {
			out = append(out, c.split(s, rest)...)
		}
	}
	if len(good) > 0 {
		out = append(out, c.merge(good)...)
	}
	return out
}

// merge packs small pieces into windows no longer than Size, carrying up to
// Overlap runes of trailing pieces into the next window.
func (c *RecursiveChunker) merge(pieces []string) []string {
	var docs, current []string
	total := 0
	for _, p := range pieces {
		n := runeLen(p)
		if total+n > c.Size && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
				docs = append(docs, doc)
			}
			for len(current) > 0 && (total > c.Overlap || total+n > c.Size) {
				total -= runeLen(current[0])
				current = current[1:]
			}
		}
		current = append(current, p)
		total += n
	}
	if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
		docs = append(docs, doc)
	}
	return docs
}

// splitKeepSeparator splits text on sep, attaching each separator to the start
// of the piece that follows it. Empty pieces are dropped.
func splitKeepSeparator(text, sep string) []string {
	if sep == "" {
		return []string{text}
	}
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	if parts[0] != "" {
		out = append(out, parts[0])
	}
	for _, p := range parts[1:] {
		out = append(out, sep+p)
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
