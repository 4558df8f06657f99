package circular

import (
	"errors"
	"strings"
	"testing"
)

func TestGroupMergesSameLabelInOrder(t *testing.T) {
	segments := []Segment{
		{Index: 1, Content: "Intro"},
		{Index: 2, Content: "Methods"},
		{Index: 3, Content: "Results"},
	}
	labels := []Label{"A", "B", "A"}

	g, err := Group(segments, labels)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}

	if got := g.Labels(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Labels() = %v, want [A B]", got)
	}
	if txt, _ := g.Text("A"); txt != "Intro\n\nResults" {
		t.Errorf("Text(A) = %q, want %q", txt, "Intro\n\nResults")
	}
	if txt, _ := g.Text("B"); txt != "Methods" {
		t.Errorf("Text(B) = %q, want %q", txt, "Methods")
	}
}

func TestGroupLengthMismatch(t *testing.T) {
	segments := []Segment{{Index: 1, Content: "only one"}}
	labels := []Label{"A", "B"}

	g, err := Group(segments, labels)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if g != nil {
		t.Error("expected no partial output on mismatch")
	}
}

// Grouping then re-splitting each label's text must recover the original
// segments per label, in original relative order.
func TestGroupRoundTrip(t *testing.T) {
	segments := []Segment{
		{Index: 1, Content: "one"},
		{Index: 2, Content: "two"},
		{Index: 3, Content: "three"},
		{Index: 4, Content: "four"},
	}
	labels := []Label{"X", "Y", "X", "X"}

	g, err := Group(segments, labels)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}

	perLabel := map[Label][]string{}
	for i, seg := range segments {
		perLabel[labels[i]] = append(perLabel[labels[i]], seg.Content)
	}

	for label, want := range perLabel {
		txt, ok := g.Text(label)
		if !ok {
			t.Fatalf("Text(%s) missing", label)
		}
		got := strings.Split(txt, "\n\n")
		if len(got) != len(want) {
			t.Fatalf("label %s: %d pieces, want %d", label, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("label %s piece %d = %q, want %q", label, i, got[i], want[i])
			}
		}
	}
}

func TestGroupEveryContentAppearsOnce(t *testing.T) {
	segments := []Segment{
		{Index: 1, Content: "alpha"},
		{Index: 2, Content: "beta"},
	}
	labels := []Label{"A", "A"}

	g, err := Group(segments, labels)
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	txt, _ := g.Text("A")
	if strings.Count(txt, "alpha") != 1 || strings.Count(txt, "beta") != 1 {
		t.Errorf("Text(A) = %q, want alpha and beta exactly once", txt)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}
