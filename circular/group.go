package circular

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned by Group when the number of labels does
// not equal the number of segments. No partial grouping is produced.
var ErrLengthMismatch = errors.New("circular: segment-label length mismatch")

// LabeledGroup maps each label to the concatenated content of its segments.
// Key order is the order of first occurrence of each distinct label, which
// decides the extraction order downstream. Segments sharing a label are
// joined in original order with a blank-line separator.
type LabeledGroup struct {
	order []Label
	text  map[Label]string
}

// Group pairs segments with labels. The two sequences must have equal
// length; otherwise ErrLengthMismatch is returned and no output exists.
func Group(segments []Segment, labels []Label) (*LabeledGroup, error) {
	if len(segments) != len(labels) {
		return nil, fmt.Errorf("%w: %d segments vs %d labels",
			ErrLengthMismatch, len(segments), len(labels))
	}

	g := &LabeledGroup{text: make(map[Label]string, len(labels))}
	for i, seg := range segments {
		label := labels[i]
		if existing, ok := g.text[label]; ok {
			g.text[label] = existing + "\n\n" + seg.Content
		} else {
			g.order = append(g.order, label)
			g.text[label] = seg.Content
		}
	}
	return g, nil
}

// Labels returns the distinct labels in first-occurrence order.
func (g *LabeledGroup) Labels() []Label {
	out := make([]Label, len(g.order))
	copy(out, g.order)
	return out
}

// Text returns the concatenated content for a label.
func (g *LabeledGroup) Text(label Label) (string, bool) {
	t, ok := g.text[label]
	return t, ok
}

// Len returns the number of distinct labels.
func (g *LabeledGroup) Len() int {
	return len(g.order)
}
