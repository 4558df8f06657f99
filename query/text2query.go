package query

import (
	"context"
	"fmt"

	"github.com/gcnml/gcnkit/llm"
)

const generateSystem = `You translate questions about a catalog of astronomical circulars into
a single SQLite SELECT statement. Use only the tables and columns in the
schema below. Never modify data: no INSERT, UPDATE, DELETE, DROP or
PRAGMA. Return only the query, optionally inside a fenced code block.

Database schema:

%s`

const correctSystem = `A SQLite SELECT statement you are helping with failed to execute.
Rewrite it so that it runs against the schema below and still answers the
original question. Use only the tables and columns in the schema. Return
only the corrected query, optionally inside a fenced code block.

Database schema:

%s`

// LLMTranslator implements both Generator and Corrector with a chat
// model. Raw model output is stripped to the query text with
// ExtractQueryBlock before it is returned.
type LLMTranslator struct {
	chat llm.Provider
}

// NewLLMTranslator creates a generator/corrector backed by the given
// provider.
func NewLLMTranslator(chat llm.Provider) *LLMTranslator {
	return &LLMTranslator{chat: chat}
}

// Generate implements Generator.
func (t *LLMTranslator) Generate(ctx context.Context, question, schema string) (string, error) {
	resp, err := t.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: fmt.Sprintf(generateSystem, schema)},
			{Role: "user", Content: question},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("query generation chat: %w", err)
	}
	return ExtractQueryBlock(resp.Content), nil
}

// Correct implements Corrector.
func (t *LLMTranslator) Correct(ctx context.Context, question, schema, failedQuery, execError string) (string, error) {
	user := fmt.Sprintf("Question: %s\n\nFailed query:\n%s\n\nExecution error:\n%s",
		question, failedQuery, execError)
	resp, err := t.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: fmt.Sprintf(correctSystem, schema)},
			{Role: "user", Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("query correction chat: %w", err)
	}
	return ExtractQueryBlock(resp.Content), nil
}
