package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gcnml/gcnkit/llm"
)

const synthesizeSystem = `You answer questions about a catalog of astronomical circulars. You are
given the user's question and the rows a database query returned for it.
Write a short, direct answer in plain prose based only on those rows. If
the rows are empty, say that nothing in the catalog matches.`

// LLMSynthesizer implements Synthesizer with a chat model.
type LLMSynthesizer struct {
	chat llm.Provider
}

// NewLLMSynthesizer creates a synthesizer backed by the given provider.
func NewLLMSynthesizer(chat llm.Provider) *LLMSynthesizer {
	return &LLMSynthesizer{chat: chat}
}

// Synthesize implements Synthesizer.
func (s *LLMSynthesizer) Synthesize(ctx context.Context, question string, rows []map[string]any) (string, error) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encoding result rows: %w", err)
	}
	resp, err := s.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: synthesizeSystem},
			{Role: "user", Content: fmt.Sprintf("Question: %s\n\nRows:\n%s", question, payload)},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("answer synthesis chat: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// renderRows is the fallback answer when synthesis is unavailable: one
// JSON object per line, with keys in sorted order.
func renderRows(rows []map[string]any) string {
	if len(rows) == 0 {
		return "No matching records."
	}
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		enc, err := json.Marshal(row)
		if err != nil {
			fmt.Fprintf(&b, "%v", row)
			continue
		}
		b.Write(enc)
	}
	return b.String()
}
