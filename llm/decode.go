package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// codeBlockRe strips markdown code fences from LLM output.
var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// ExtractJSON finds a JSON object or array in LLM response text. It handles
// the common quirks: markdown code fences and prose before or after the
// JSON payload.
func ExtractJSON(raw string) (string, error) {
	if m := codeBlockRe.FindStringSubmatch(raw); len(m) > 1 {
		raw = m[1]
	}
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "[") {
		return raw, nil
	}

	// Find the outermost object or array, whichever starts first.
	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	switch {
	case objStart >= 0 && (arrStart < 0 || objStart < arrStart):
		if end := strings.LastIndex(raw, "}"); end > objStart {
			return raw[objStart : end+1], nil
		}
	case arrStart >= 0:
		if end := strings.LastIndex(raw, "]"); end > arrStart {
			return raw[arrStart : end+1], nil
		}
	}

	return "", fmt.Errorf("no JSON payload found in response")
}
