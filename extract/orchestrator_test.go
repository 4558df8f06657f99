package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/gcnml/gcnkit/circular"
)

// stubClassifier returns a fixed label sequence (or error) regardless of
// segment content.
type stubClassifier struct {
	labels []circular.Label
	err    error
	calls  int
}

func (s *stubClassifier) Classify(_ context.Context, segments []circular.Segment) ([]circular.Label, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.labels, nil
}

// stubExtractor returns fixed fields or a fixed error, counting calls.
type stubExtractor struct {
	fields map[string]any
	err    error
	calls  int
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (map[string]any, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fields, nil
}

const sampleHeader = "TITLE: GCN CIRCULAR\nNUMBER: 12345\nSUBJECT: X\nDATE: D\nFROM: Name <e@x.com>"

func TestRunHappyPath(t *testing.T) {
	raw := sampleHeader + "\n\nA. Author (Inst)\n\nWe observed the field."
	cls := &stubClassifier{labels: []circular.Label{
		circular.LabelHeader, circular.LabelAuthors, circular.LabelScience,
	}}
	authors := &stubExtractor{fields: map[string]any{"collaboration": "null"}}
	science := &stubExtractor{fields: map[string]any{"intent": "FOLLOW_UP_OBSERVATION"}}

	o := NewWithExtractors(cls, map[circular.Label]Extractor{
		circular.LabelHeader:  headerExtractor{},
		circular.LabelAuthors: authors,
		circular.LabelScience: science,
	})

	res, err := o.Run(context.Background(), raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.RawText != raw {
		t.Error("RawText should be the original input")
	}
	if res.Fields["circularId"] != "12345" {
		t.Errorf("circularId = %v, want 12345", res.Fields["circularId"])
	}
	if res.Fields["intent"] != "FOLLOW_UP_OBSERVATION" {
		t.Errorf("intent = %v", res.Fields["intent"])
	}
	if authors.calls != 1 || science.calls != 1 {
		t.Errorf("extractor calls = %d, %d, want 1, 1", authors.calls, science.calls)
	}
}

func TestRunNoSegments(t *testing.T) {
	o := NewWithExtractors(&stubClassifier{}, nil)
	_, err := o.Run(context.Background(), "   \n \n  ")
	if !errors.Is(err, ErrNoSegments) {
		t.Fatalf("err = %v, want ErrNoSegments", err)
	}
}

func TestRunClassifierFailure(t *testing.T) {
	cls := &stubClassifier{err: errors.New("model unavailable")}
	o := NewWithExtractors(cls, nil)
	_, err := o.Run(context.Background(), "some text")
	if !errors.Is(err, ErrClassification) {
		t.Fatalf("err = %v, want ErrClassification", err)
	}
}

func TestRunClassifierLengthMismatch(t *testing.T) {
	cls := &stubClassifier{labels: []circular.Label{circular.LabelHeader}}
	o := NewWithExtractors(cls, nil)
	_, err := o.Run(context.Background(), "one\n\ntwo")
	if !errors.Is(err, ErrClassification) {
		t.Fatalf("err = %v, want ErrClassification", err)
	}
}

func TestRunMandatoryFailureAborts(t *testing.T) {
	// Header labeled paragraph that does not parse as a header.
	raw := "not a header at all\n\nA. Author (Inst)\n\nScience text."
	cls := &stubClassifier{labels: []circular.Label{
		circular.LabelHeader, circular.LabelAuthors, circular.LabelScience,
	}}
	authors := &stubExtractor{fields: map[string]any{"collaboration": "null"}}

	o := NewWithExtractors(cls, map[circular.Label]Extractor{
		circular.LabelHeader:  headerExtractor{},
		circular.LabelAuthors: authors,
	})

	_, err := o.Run(context.Background(), raw)
	if !errors.Is(err, ErrMandatory) {
		t.Fatalf("err = %v, want ErrMandatory", err)
	}
}

func TestRunNonMandatoryFailureSkips(t *testing.T) {
	raw := sampleHeader + "\n\nA. Author (Inst)\n\nScience text."
	cls := &stubClassifier{labels: []circular.Label{
		circular.LabelHeader, circular.LabelAuthors, circular.LabelScience,
	}}
	authors := &stubExtractor{err: errors.New("parse failed")}
	science := &stubExtractor{fields: map[string]any{"intent": "NEW_EVENT_DETECTION"}}

	o := NewWithExtractors(cls, map[circular.Label]Extractor{
		circular.LabelHeader:  headerExtractor{},
		circular.LabelAuthors: authors,
		circular.LabelScience: science,
	})

	res, err := o.Run(context.Background(), raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Header and science fields present, author fields absent.
	if res.Fields["circularId"] != "12345" {
		t.Errorf("circularId = %v", res.Fields["circularId"])
	}
	if res.Fields["intent"] != "NEW_EVENT_DETECTION" {
		t.Errorf("intent = %v", res.Fields["intent"])
	}
	if _, ok := res.Fields["collaboration"]; ok {
		t.Error("failed extractor's fields must not be merged")
	}
}

func TestRunUnknownLabelVerbatim(t *testing.T) {
	raw := sampleHeader + "\n\nSee https://example.org/map"
	cls := &stubClassifier{labels: []circular.Label{
		circular.LabelHeader, circular.Label("SkyMapLink"),
	}}
	o := NewWithExtractors(cls, map[circular.Label]Extractor{
		circular.LabelHeader: headerExtractor{},
	})

	res, err := o.Run(context.Background(), raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Fields["skyMapLink"] != "See https://example.org/map" {
		t.Errorf("skyMapLink = %v", res.Fields["skyMapLink"])
	}
}

func TestRunTerminatesAfterDistinctLabels(t *testing.T) {
	// Five segments, three distinct labels: exactly three extraction steps.
	raw := sampleHeader + "\n\na\n\nb\n\nc\n\nd"
	cls := &stubClassifier{labels: []circular.Label{
		circular.LabelHeader,
		circular.LabelScience, circular.LabelScience,
		circular.LabelLinks, circular.LabelLinks,
	}}
	science := &stubExtractor{fields: map[string]any{"intent": "NEW_EVENT_DETECTION"}}
	links := &stubExtractor{fields: map[string]any{"externalLinks": "x"}}

	o := NewWithExtractors(cls, map[circular.Label]Extractor{
		circular.LabelHeader:  headerExtractor{},
		circular.LabelScience: science,
		circular.LabelLinks:   links,
	})

	if _, err := o.Run(context.Background(), raw); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if science.calls != 1 {
		t.Errorf("science extractor called %d times, want 1 (merged paragraphs)", science.calls)
	}
	if links.calls != 1 {
		t.Errorf("links extractor called %d times, want 1", links.calls)
	}
}

func TestMergeLastWriterWins(t *testing.T) {
	raw := sampleHeader + "\n\nfirst\n\nsecond"
	cls := &stubClassifier{labels: []circular.Label{
		circular.LabelHeader, circular.Label("A"), circular.Label("B"),
	}}
	first := &stubExtractor{fields: map[string]any{"shared": "from A", "only_a": 1}}
	second := &stubExtractor{fields: map[string]any{"shared": "from B"}}

	o := NewWithExtractors(cls, map[circular.Label]Extractor{
		circular.LabelHeader: headerExtractor{},
		circular.Label("A"):  first,
		circular.Label("B"):  second,
	})

	res, err := o.Run(context.Background(), raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Fields["shared"] != "from B" {
		t.Errorf("shared = %v, want last writer (from B)", res.Fields["shared"])
	}
	if res.Fields["only_a"] != 1 {
		t.Errorf("only_a = %v, want 1", res.Fields["only_a"])
	}
}
