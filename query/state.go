package query

// Action names the next step the driver loop will take. ActionEnd is
// reached by exactly one of: guardrail rejection, successful execution, or
// retry-budget exhaustion.
type Action string

const (
	ActionGuardrail Action = "guardrail"
	ActionGenerate  Action = "generate"
	ActionExecute   Action = "execute"
	ActionCorrect   Action = "correct"
	ActionEnd       Action = "end"
)

// State carries one question's progress through the orchestrator. It is
// owned exclusively by its run; capabilities receive read-only views and
// return new values.
type State struct {
	Question string
	Schema   string

	// Query is the current query text, replaced on each generation or
	// correction. It may be empty when a capability failed; execution is
	// expected to fail fast on it and hand off to correction.
	Query string

	// LastError holds the most recent execution error message.
	LastError string

	// Retries counts correction attempts. It increases by exactly one per
	// attempt and the machine terminates once it exceeds the ceiling.
	Retries int

	Rows   []map[string]any
	Answer string
	Next   Action
}
