// Package extract runs the label-driven extraction pipeline over one
// circular: split the text into segments, classify each segment, group
// same-label segments, then dispatch one extractor per distinct label and
// fold the outputs into a single structured record.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gcnml/gcnkit/circular"
	"github.com/gcnml/gcnkit/classify"
	"github.com/gcnml/gcnkit/llm"
)

// MandatoryLabel is the one label whose extraction failure aborts a run.
const MandatoryLabel = circular.LabelHeader

// Orchestrator drives one extraction run at a time. It is safe to reuse
// across runs; each run's state is created and discarded inside Run.
type Orchestrator struct {
	classifier classify.Classifier
	extractors map[circular.Label]Extractor
}

// Options configures the LLM-backed extractor set.
type Options struct {
	// ExtractQuantities enables the physical-quantity sentence pass on
	// ScientificContent paragraphs.
	ExtractQuantities bool
}

// New wires the standard extractor set: deterministic header parsing,
// LLM authorship parsing, LLM report-intent labeling, and verbatim
// retention for every other label.
func New(chat llm.Provider, classifier classify.Classifier, opts Options) *Orchestrator {
	return NewWithExtractors(classifier, map[circular.Label]Extractor{
		circular.LabelHeader:  headerExtractor{},
		circular.LabelAuthors: authorsExtractor{chat: chat},
		circular.LabelScience: scienceExtractor{chat: chat, extractQuantities: opts.ExtractQuantities},
	})
}

// NewWithExtractors wires an explicit label-to-extractor table. Labels
// without an entry fall back to verbatim retention. Used directly by tests
// substituting deterministic stubs.
func NewWithExtractors(classifier classify.Classifier, extractors map[circular.Label]Extractor) *Orchestrator {
	return &Orchestrator{classifier: classifier, extractors: extractors}
}

// Run executes the full state machine for one document. Fatal conditions
// (no segments, classification failure, mandatory header failure) abort
// with an error; any other extractor failure is logged and skipped.
func (o *Orchestrator) Run(ctx context.Context, rawText string) (*Result, error) {
	// Splitting.
	segments := circular.Split(rawText)
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	slog.Debug("extract: split complete", "segments", len(segments))

	labels, err := o.classifier.Classify(ctx, segments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	if len(labels) != len(segments) {
		return nil, fmt.Errorf("%w: got %d labels for %d segments",
			ErrClassification, len(labels), len(segments))
	}

	group, err := circular.Group(segments, labels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	// Routing/Extracting loop. The pending queue starts as the group's
	// distinct labels in first-occurrence order and strictly shrinks by
	// one per step, so the loop runs exactly group.Len() times.
	state := newState(rawText, group)
	for len(state.Pending) > 0 {
		label := state.Pending[0]
		state.Current = label
		if err := o.step(ctx, state, label); err != nil {
			return nil, err
		}
		state.advance()
	}

	slog.Info("extract: run complete", "fields", len(state.Fields))
	return state.result(), nil
}

// step handles exactly one label: look up its paragraph, dispatch the
// extractor, merge on success. Only the mandatory label's failure is fatal.
func (o *Orchestrator) step(ctx context.Context, state *State, label circular.Label) error {
	paragraph, ok := state.Paragraphs.Text(label)
	if !ok || strings.TrimSpace(paragraph) == "" {
		if label == MandatoryLabel {
			return fmt.Errorf("%w: %s paragraph is empty or missing", ErrMandatory, label)
		}
		slog.Warn("extract: paragraph empty or missing, skipping", "label", label)
		return nil
	}

	fields, err := o.extractorFor(label).Extract(ctx, paragraph)
	if err != nil {
		if label == MandatoryLabel {
			return fmt.Errorf("%w: %v", ErrMandatory, err)
		}
		slog.Error("extract: extractor failed, skipping label", "label", label, "error", err)
		return nil
	}

	state.Merge(fields)
	slog.Debug("extract: label extracted", "label", label, "fields", len(fields))
	return nil
}

// extractorFor resolves the dispatch table, falling back to verbatim
// retention for unregistered (including unknown) labels.
func (o *Orchestrator) extractorFor(label circular.Label) Extractor {
	if e, ok := o.extractors[label]; ok {
		return e
	}
	return verbatimExtractor{key: label.FieldKey()}
}
