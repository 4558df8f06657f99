package circular

import (
	"regexp"
	"strings"
)

// Segment is one contiguous, non-empty block of a circular's text,
// 1-indexed in original document order. Immutable once produced.
type Segment struct {
	Index   int
	Content string
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// Split partitions raw text into ordered segments. Segments are separated
// by blank lines (a newline, optional whitespace, another newline); each
// segment is trimmed and empty pieces are dropped.
func Split(raw string) []Segment {
	cleaned := blankLineRe.ReplaceAllString(raw, "\n\n")

	var segments []Segment
	for _, piece := range strings.Split(cleaned, "\n\n") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		segments = append(segments, Segment{
			Index:   len(segments) + 1,
			Content: piece,
		})
	}
	return segments
}
