package rag

import "strings"

const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// boundaries are tried in order; a cut lands right after the separator.
var boundaries = []string{"\n\n", "\n", ". ", " "}

// Splitter cuts text into windows of at most Size runes. Consecutive windows
// share up to Overlap runes, and every cut prefers the coarsest boundary
// available inside the window before falling back to a hard cut.
type Splitter struct {
	Size    int
	Overlap int
}

func NewSplitter(size, overlap int) Splitter {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}
	return Splitter{Size: size, Overlap: overlap}
}

func (s Splitter) Split(text string) []string {
	runes := []rune(text)
	n := len(runes)
	var chunks []string

	emit := func(from, to int) {
		if piece := strings.TrimSpace(string(runes[from:to])); piece != "" {
			chunks = append(chunks, piece)
		}
	}

	for pos := 0; pos < n; {
		end := pos + s.Size
		if end >= n {
			emit(pos, n)
			break
		}

		cut := s.findCut(runes, pos, end)
		emit(pos, cut)

		next := cut - s.Overlap
		// Start the overlap on a word boundary when one exists.
		for i := next; i < cut; i++ {
			if runes[i] == ' ' || runes[i] == '\n' {
				next = i + 1
				break
			}
		}
		if next <= pos {
			next = cut
		}
		pos = next
	}
	return chunks
}

// findCut returns the exclusive end of the window starting at pos. Cuts are
// kept past pos+Overlap so the next window always advances.
func (s Splitter) findCut(runes []rune, pos, end int) int {
	window := string(runes[pos:end])
	floor := s.Overlap
	for _, sep := range boundaries {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		cut := len([]rune(window[:idx+len(sep)]))
		if cut > floor {
			return pos + cut
		}
	}
	return end
}
