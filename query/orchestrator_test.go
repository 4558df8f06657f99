package query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type stubGuardrail struct {
	decision Decision
	err      error
	calls    int
}

func (s *stubGuardrail) Decide(ctx context.Context, question, schema string) (Decision, error) {
	s.calls++
	return s.decision, s.err
}

type stubGenerator struct {
	query string
	err   error
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, question, schema string) (string, error) {
	s.calls++
	return s.query, s.err
}

type stubCorrector struct {
	query string
	err   error
	calls int
}

func (s *stubCorrector) Correct(ctx context.Context, question, schema, failedQuery, execError string) (string, error) {
	s.calls++
	return s.query, s.err
}

// stubExecutor fails for the first failures calls, then returns rows.
type stubExecutor struct {
	failures int
	rows     []map[string]any
	calls    int
	queries  []string
}

func (s *stubExecutor) Run(ctx context.Context, queryText string, params map[string]any) ([]map[string]any, error) {
	s.calls++
	s.queries = append(s.queries, queryText)
	if s.calls <= s.failures {
		return nil, errors.New("no such table: circs")
	}
	return s.rows, nil
}

type stubSynthesizer struct {
	answer string
	err    error
	calls  int
}

func (s *stubSynthesizer) Synthesize(ctx context.Context, question string, rows []map[string]any) (string, error) {
	s.calls++
	return s.answer, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestRunSuccess(t *testing.T) {
	gd := &stubGuardrail{decision: DecisionInDomain}
	gen := &stubGenerator{query: "SELECT subject FROM circulars"}
	cor := &stubCorrector{}
	ex := &stubExecutor{rows: []map[string]any{{"subject": "GRB 250101A"}}}
	syn := &stubSynthesizer{answer: "The circular reports GRB 250101A."}

	st := New(gd, gen, cor, ex, syn, quietLogger()).Run(context.Background(), "what was reported?", "schema")

	if st.Answer != "The circular reports GRB 250101A." {
		t.Errorf("Answer = %q, want synthesized text", st.Answer)
	}
	if st.Retries != 0 {
		t.Errorf("Retries = %d, want 0", st.Retries)
	}
	if st.Query != "SELECT subject FROM circulars" {
		t.Errorf("Query = %q, want generated query", st.Query)
	}
	if cor.calls != 0 {
		t.Errorf("corrector called %d times, want 0", cor.calls)
	}
	if len(st.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1", len(st.Rows))
	}
}

func TestRunGuardrailRefusal(t *testing.T) {
	gd := &stubGuardrail{decision: DecisionOutOfDomain}
	gen := &stubGenerator{}
	ex := &stubExecutor{}

	st := New(gd, gen, &stubCorrector{}, ex, &stubSynthesizer{}, quietLogger()).
		Run(context.Background(), "what is the meaning of life?", "schema")

	if st.Answer != RefusalMessage {
		t.Errorf("Answer = %q, want refusal message", st.Answer)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
	if ex.calls != 0 {
		t.Errorf("executor called %d times, want 0", ex.calls)
	}
}

func TestRunGuardrailErrorFailsClosed(t *testing.T) {
	gd := &stubGuardrail{err: errors.New("chat down")}
	gen := &stubGenerator{}

	st := New(gd, gen, &stubCorrector{}, &stubExecutor{}, &stubSynthesizer{}, quietLogger()).
		Run(context.Background(), "how many circulars?", "schema")

	if st.Answer != RefusalMessage {
		t.Errorf("Answer = %q, want refusal message", st.Answer)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times, want 0", gen.calls)
	}
}

func TestRunRetryCeiling(t *testing.T) {
	gd := &stubGuardrail{decision: DecisionInDomain}
	gen := &stubGenerator{query: "SELECT * FROM circs"}
	cor := &stubCorrector{query: "SELECT * FROM circs"}
	ex := &stubExecutor{failures: 100}

	st := New(gd, gen, cor, ex, &stubSynthesizer{}, quietLogger()).
		Run(context.Background(), "list circulars", "schema")

	if st.Answer != FailureMessage {
		t.Errorf("Answer = %q, want failure message", st.Answer)
	}
	if cor.calls != 3 {
		t.Errorf("corrector called %d times, want exactly 3", cor.calls)
	}
	if st.Retries != 3 {
		t.Errorf("Retries = %d, want 3", st.Retries)
	}
	// Initial attempt plus one execution per correction.
	if ex.calls != 4 {
		t.Errorf("executor called %d times, want 4", ex.calls)
	}
}

func TestRunCorrectionRecovers(t *testing.T) {
	gd := &stubGuardrail{decision: DecisionInDomain}
	gen := &stubGenerator{query: "SELECT * FROM circs"}
	cor := &stubCorrector{query: "SELECT * FROM circulars"}
	ex := &stubExecutor{failures: 1, rows: []map[string]any{{"n": int64(7)}}}
	syn := &stubSynthesizer{answer: "There are 7 circulars."}

	st := New(gd, gen, cor, ex, syn, quietLogger()).
		Run(context.Background(), "how many circulars?", "schema")

	if st.Answer != "There are 7 circulars." {
		t.Errorf("Answer = %q, want synthesized text", st.Answer)
	}
	if st.Retries != 1 {
		t.Errorf("Retries = %d, want 1", st.Retries)
	}
	if got := ex.queries[len(ex.queries)-1]; got != "SELECT * FROM circulars" {
		t.Errorf("final query = %q, want corrected query", got)
	}
}

func TestRunGeneratorFailureForwardsEmptyQuery(t *testing.T) {
	gd := &stubGuardrail{decision: DecisionInDomain}
	gen := &stubGenerator{err: errors.New("chat down")}
	cor := &stubCorrector{query: "SELECT 1"}
	ex := &stubExecutor{failures: 1, rows: []map[string]any{}}
	syn := &stubSynthesizer{answer: "Nothing matches."}

	st := New(gd, gen, cor, ex, syn, quietLogger()).
		Run(context.Background(), "anything?", "schema")

	if ex.queries[0] != "" {
		t.Errorf("first executed query = %q, want empty", ex.queries[0])
	}
	if cor.calls != 1 {
		t.Errorf("corrector called %d times, want 1", cor.calls)
	}
	if st.Answer != "Nothing matches." {
		t.Errorf("Answer = %q, want synthesized text", st.Answer)
	}
}

func TestRunCorrectorFailureStillCounts(t *testing.T) {
	gd := &stubGuardrail{decision: DecisionInDomain}
	gen := &stubGenerator{query: "SELECT * FROM circs"}
	cor := &stubCorrector{err: errors.New("chat down")}
	ex := &stubExecutor{failures: 100}

	st := New(gd, gen, cor, ex, &stubSynthesizer{}, quietLogger()).
		Run(context.Background(), "list circulars", "schema")

	if st.Answer != FailureMessage {
		t.Errorf("Answer = %q, want failure message", st.Answer)
	}
	if st.Retries != 3 {
		t.Errorf("Retries = %d, want 3", st.Retries)
	}
	// Corrections after the first forward an empty query.
	for i, q := range ex.queries[1:] {
		if q != "" {
			t.Errorf("corrected query %d = %q, want empty", i+1, q)
		}
	}
}

func TestRunSynthesisFallback(t *testing.T) {
	gd := &stubGuardrail{decision: DecisionInDomain}
	gen := &stubGenerator{query: "SELECT subject FROM circulars"}
	ex := &stubExecutor{rows: []map[string]any{{"subject": "GRB 250101A"}}}
	syn := &stubSynthesizer{err: errors.New("chat down")}

	st := New(gd, gen, &stubCorrector{}, ex, syn, quietLogger()).
		Run(context.Background(), "what was reported?", "schema")

	if want := `{"subject":"GRB 250101A"}`; st.Answer != want {
		t.Errorf("Answer = %q, want rendered rows %q", st.Answer, want)
	}
}

func TestRenderRowsEmpty(t *testing.T) {
	if got := renderRows(nil); got != "No matching records." {
		t.Errorf("renderRows(nil) = %q", got)
	}
}
