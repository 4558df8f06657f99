// Package classify assigns a topic label to every segment of a circular.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gcnml/gcnkit/circular"
	"github.com/gcnml/gcnkit/llm"
)

// Classifier labels an ordered list of segments. The returned list must
// have exactly one label per input segment, in order.
type Classifier interface {
	Classify(ctx context.Context, segments []circular.Segment) ([]circular.Label, error)
}

// LLMClassifier implements Classifier with a chat model.
type LLMClassifier struct {
	chat llm.Provider
}

// NewLLMClassifier creates a classifier backed by the given provider.
func NewLLMClassifier(chat llm.Provider) *LLMClassifier {
	return &LLMClassifier{chat: chat}
}

// labelListResult is the JSON shape the labeling prompt asks for.
type labelListResult struct {
	Labels []string `json:"labels"`
}

// Classify wraps each segment in a numbered <PN>...</PN> tag, asks the
// model for one label per segment, and enforces the length contract.
func (c *LLMClassifier) Classify(ctx context.Context, segments []circular.Segment) ([]circular.Label, error) {
	numbered := make([]string, len(segments))
	for i, seg := range segments {
		numbered[i] = fmt.Sprintf("<P%d>%s</P%d>", seg.Index, seg.Content, seg.Index)
	}
	input := strings.Join(numbered, "\n\n")
	slog.Debug("classify: numbered segments prepared", "count", len(segments))

	resp, err := c.chat.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: labelSystemPrompt()},
			{Role: "user", Content: "**Numbered Paragraphs:**\n" + input},
		},
		Temperature:    0,
		ResponseFormat: "json_object",
	})
	if err != nil {
		return nil, fmt.Errorf("paragraph labeling chat: %w", err)
	}

	labels, err := parseLabels(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing paragraph labels: %w", err)
	}
	if len(labels) != len(segments) {
		return nil, fmt.Errorf("classifier returned %d labels for %d segments",
			len(labels), len(segments))
	}

	slog.Info("classify: paragraph labeling complete", "labels", labels)
	return labels, nil
}

// parseLabels accepts either {"labels": [...]} or a bare JSON array.
func parseLabels(raw string) ([]circular.Label, error) {
	payload, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var names []string
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &names); err != nil {
			return nil, fmt.Errorf("unmarshalling label array: %w", err)
		}
	} else {
		var result labelListResult
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			return nil, fmt.Errorf("unmarshalling label object: %w", err)
		}
		names = result.Labels
	}

	labels := make([]circular.Label, len(names))
	for i, n := range names {
		labels[i] = circular.Label(strings.TrimSpace(n))
	}
	return labels, nil
}

func labelSystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are an expert astronomer analyzing NASA GCN Circulars.\n\n")
	b.WriteString("**Task:** Assign exactly ONE specific topic Label to each of the numbered paragraphs provided below.\n\n")
	b.WriteString("**Allowed topics (Choose Only From These):**\n")
	for _, l := range circular.AllLabels {
		fmt.Fprintf(&b, "- %s: %s\n", l, circular.LabelDescriptions[l])
	}
	b.WriteString(`
**Important Instructions:**
1. GCNs typically follow this structure:
   - 1st Paragraph: Usually HeaderInformation (containing TITLE, NUMBER, SUBJECT, DATE, FROM).
   - 2nd Paragraph: Usually AuthorList.
   - Middle Paragraph(s): Primarily ScientificContent.
   - Optional sections like ExternalLinks, ContactInformation, and Acknowledgements usually appear toward the end.
   - Final paragraphs (if present) may be CitationInstructions or Correction information.
2. Input Format: Each paragraph is enclosed in paired tags <PN>...</PN>, where N is the paragraph's order (1, 2, 3, ...). This numbering is for your reference to assign the correct tag based on position and content. Do NOT use any numbers found WITHIN the paragraph text to influence your decision.
3. Output Format: Respond ONLY with a JSON object of the form {"labels": [...]}, one allowed label per paragraph, in order.
   Example for 3 paragraphs: {"labels": ["HeaderInformation", "AuthorList", "ScientificContent"]}`)
	return b.String()
}
