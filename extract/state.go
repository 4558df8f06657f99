package extract

import "github.com/gcnml/gcnkit/circular"

// Result is the terminal output of one extraction run. Its JSON form is
// the persisted layout consumed by graph ingestion.
type Result struct {
	RawText string         `json:"raw_text"`
	Fields  map[string]any `json:"extracted_dset"`
}

// State carries one run's progress through the orchestrator. A State is
// owned exclusively by its run; extractors receive read-only paragraph
// text and return new field values instead of mutating it.
type State struct {
	RawText    string
	Paragraphs *circular.LabeledGroup
	Pending    []circular.Label
	Fields     map[string]any
	Current    circular.Label
}

func newState(raw string, group *circular.LabeledGroup) *State {
	return &State{
		RawText:    raw,
		Paragraphs: group,
		Pending:    group.Labels(),
		Fields:     make(map[string]any),
	}
}

// Merge folds an extractor's output into the accumulated result with
// shallow key overwrite. Duplicate keys across extractors favor the most
// recently run extractor (last-writer-wins). This is a documented policy,
// not an accident of iteration order.
func (s *State) Merge(fields map[string]any) {
	for k, v := range fields {
		s.Fields[k] = v
	}
}

// advance pops the head of the pending queue. Every step removes exactly
// one entry and never re-adds one, so the queue strictly shrinks and the
// run terminates after len(distinct labels) steps.
func (s *State) advance() {
	s.Pending = s.Pending[1:]
}

// result freezes the terminal state into the run's output.
func (s *State) result() *Result {
	return &Result{RawText: s.RawText, Fields: s.Fields}
}
