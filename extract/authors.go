package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gcnml/gcnkit/llm"
)

// AuthorEntry is one author with their institutional affiliation.
type AuthorEntry struct {
	Author      string `json:"author"`
	Affiliation string `json:"affiliation"`
}

// authorsExtractor parses the AuthorList paragraph with a chat model into
// a collaboration name and a list of author/affiliation entries.
type authorsExtractor struct {
	chat llm.Provider
}

// authorListResult is the JSON shape the authorship prompt asks for.
type authorListResult struct {
	Collaboration string        `json:"collaboration"`
	Authors       []AuthorEntry `json:"authors"`
}

const authorshipSystemPrompt = `You are an expert in parsing astronomical and scientific authorship lists. Your task is to extract structured information from the input text.

**Instructions:**
1. The text contains one or more groups of authors followed by their institutional affiliations in parentheses.
2. All authors listed before a parenthetical institution belong to that institution.
3. Additionally, check if the text ends with a phrase like "report on behalf of the [Team Name] team" or similar. If so, record the team name.
4. Author names may appear as "Initial. Lastname". Preserve spacing and punctuation as given.

Respond ONLY with a JSON object of the form:
{"collaboration": "<team name, or \"null\" if not mentioned>", "authors": [{"author": "...", "affiliation": "..."}]}`

func (e authorsExtractor) Extract(ctx context.Context, paragraph string) (map[string]any, error) {
	resp, err := e.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: authorshipSystemPrompt},
			{Role: "user", Content: "**Input Text:**\n" + paragraph},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return nil, fmt.Errorf("authorship chat: %w", err)
	}

	payload, err := llm.ExtractJSON(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing authorship result: %w", err)
	}

	var result authorListResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("unmarshalling authorship result: %w", err)
	}
	if result.Collaboration == "" {
		result.Collaboration = "null"
	}

	return map[string]any{
		"collaboration": result.Collaboration,
		"authors":       result.Authors,
	}, nil
}
