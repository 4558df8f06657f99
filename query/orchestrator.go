package query

import (
	"context"
	"log/slog"
)

// maxCorrections bounds the number of times a failed query may be
// rewritten before the run gives up. Retries are numbered 0, 1, 2: the
// third failed execution on entry to the correction step ends the run.
const maxCorrections = 3

// RefusalMessage is returned verbatim when the guardrail rejects a
// question as outside the catalog's domain.
const RefusalMessage = "I can only answer questions about the circular catalog. Please ask about circulars, their authors, collaborations, or reported events."

// FailureMessage is returned verbatim when every permitted correction
// attempt has been spent without a successful execution.
const FailureMessage = "I could not produce a working query for that question after several attempts. Try rephrasing it."

// Orchestrator drives a question through guardrail, query generation,
// execution and bounded correction. It never returns an error: every
// failure mode lands in the final State with a user-facing Answer.
type Orchestrator struct {
	guardrail   Guardrail
	generator   Generator
	corrector   Corrector
	executor    Executor
	synthesizer Synthesizer
	log         *slog.Logger
}

// New assembles an orchestrator from its capability ports.
func New(g Guardrail, gen Generator, c Corrector, ex Executor, syn Synthesizer, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		guardrail:   g,
		generator:   gen,
		corrector:   c,
		executor:    ex,
		synthesizer: syn,
		log:         log,
	}
}

// Run answers a natural-language question against the given schema
// description. The returned state carries the answer plus the full trace
// of the attempt: the last query text, row results and retry count.
func (o *Orchestrator) Run(ctx context.Context, question, schema string) *State {
	st := &State{
		Question: question,
		Schema:   schema,
		Next:     ActionGuardrail,
	}
	for st.Next != ActionEnd {
		switch st.Next {
		case ActionGuardrail:
			o.stepGuardrail(ctx, st)
		case ActionGenerate:
			o.stepGenerate(ctx, st)
		case ActionExecute:
			o.stepExecute(ctx, st)
		case ActionCorrect:
			o.stepCorrect(ctx, st)
		}
	}
	return st
}

// stepGuardrail fails closed: if the decision capability itself errors,
// the question is treated as out of domain.
func (o *Orchestrator) stepGuardrail(ctx context.Context, st *State) {
	decision, err := o.guardrail.Decide(ctx, st.Question, st.Schema)
	if err != nil {
		o.log.Warn("guardrail check failed, refusing", "error", err)
		decision = DecisionOutOfDomain
	}
	if decision != DecisionInDomain {
		st.Answer = RefusalMessage
		st.Next = ActionEnd
		return
	}
	st.Next = ActionGenerate
}

// stepGenerate is permissive: a generation failure forwards an empty
// query so the execute step fails fast and routes into correction.
func (o *Orchestrator) stepGenerate(ctx context.Context, st *State) {
	q, err := o.generator.Generate(ctx, st.Question, st.Schema)
	if err != nil {
		o.log.Warn("query generation failed", "error", err)
		q = ""
	}
	st.Query = q
	st.Next = ActionExecute
}

func (o *Orchestrator) stepExecute(ctx context.Context, st *State) {
	rows, err := o.executor.Run(ctx, st.Query, nil)
	if err != nil {
		st.LastError = err.Error()
		st.Next = ActionCorrect
		return
	}
	st.Rows = rows
	answer, err := o.synthesizer.Synthesize(ctx, st.Question, rows)
	if err != nil {
		o.log.Warn("answer synthesis failed, rendering rows", "error", err)
		answer = renderRows(rows)
	}
	st.Answer = answer
	st.Next = ActionEnd
}

func (o *Orchestrator) stepCorrect(ctx context.Context, st *State) {
	if st.Retries > maxCorrections-1 {
		st.Answer = FailureMessage
		st.Next = ActionEnd
		return
	}
	q, err := o.corrector.Correct(ctx, st.Question, st.Schema, st.Query, st.LastError)
	if err != nil {
		o.log.Warn("query correction failed", "error", err, "retry", st.Retries)
		q = ""
	}
	st.Query = q
	st.Retries++
	st.Next = ActionExecute
}
