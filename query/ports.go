package query

import "context"

// Decision is the guardrail's verdict on an incoming question.
type Decision string

const (
	DecisionInDomain    Decision = "in_domain"
	DecisionOutOfDomain Decision = "out_of_domain"
)

// Guardrail decides whether a question is answerable from the graph at
// all. A capability error is treated as out-of-domain (fail-closed).
type Guardrail interface {
	Decide(ctx context.Context, question, schema string) (Decision, error)
}

// Generator translates a question into query text. Its raw output may wrap
// the query in prose or fenced blocks.
type Generator interface {
	Generate(ctx context.Context, question, schema string) (string, error)
}

// Corrector revises a failing query using the execution error as feedback.
type Corrector interface {
	Correct(ctx context.Context, question, schema, failedQuery, execError string) (string, error)
}

// Executor runs query text against the graph store inside a scoped
// transaction and returns row records, or an error for a malformed query
// or connection failure.
type Executor interface {
	Run(ctx context.Context, queryText string, params map[string]any) ([]map[string]any, error)
}

// Synthesizer turns retrieved rows into a readable answer after a
// successful execution. A synthesis failure is non-fatal: the orchestrator
// falls back to rendering the rows directly.
type Synthesizer interface {
	Synthesize(ctx context.Context, question string, rows []map[string]any) (string, error)
}
