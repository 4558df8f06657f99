// Package query answers natural-language questions about the circular
// catalog. An Orchestrator routes a question through a domain guardrail,
// query generation, execution against the graph store, and a bounded
// number of correction attempts when execution fails.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gcnml/gcnkit/llm"
)

// LLMGuardrail asks a chat model whether a question can be answered from
// the catalog schema at all.
type LLMGuardrail struct {
	chat llm.Provider
}

// NewLLMGuardrail creates a guardrail backed by the given provider.
func NewLLMGuardrail(chat llm.Provider) *LLMGuardrail {
	return &LLMGuardrail{chat: chat}
}

const guardrailSystem = `You are a gatekeeper for a question-answering system over a catalog of
astronomical circulars. The catalog holds circulars, their authors and
affiliations, collaborations, and the events they report. Decide whether
the user's question can be answered from this catalog.

Database schema:

%s

Respond with a JSON object of the form {"decision": "in_domain"} or
{"decision": "out_of_domain"}. Do not include anything else.`

type guardrailResult struct {
	Decision string `json:"decision"`
}

// Decide implements Guardrail. Any transport or parse failure surfaces as
// an error; the orchestrator treats those as out-of-domain.
func (g *LLMGuardrail) Decide(ctx context.Context, question, schema string) (Decision, error) {
	resp, err := g.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: fmt.Sprintf(guardrailSystem, schema)},
			{Role: "user", Content: question},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return DecisionOutOfDomain, fmt.Errorf("guardrail chat: %w", err)
	}

	payload, err := llm.ExtractJSON(resp.Content)
	if err != nil {
		return DecisionOutOfDomain, fmt.Errorf("parsing guardrail decision: %w", err)
	}
	var res guardrailResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return DecisionOutOfDomain, fmt.Errorf("unmarshalling guardrail decision: %w", err)
	}
	switch Decision(strings.TrimSpace(res.Decision)) {
	case DecisionInDomain:
		return DecisionInDomain, nil
	case DecisionOutOfDomain:
		return DecisionOutOfDomain, nil
	default:
		return DecisionOutOfDomain, fmt.Errorf("unknown guardrail decision %q", res.Decision)
	}
}
