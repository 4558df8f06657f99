package query

import "strings"

// ExtractQueryBlock pulls the first query block out of raw capability
// output. Models wrap their answers unpredictably: bare query text, a
// fenced block with or without a language tag, prose around the block, or
// an unterminated fence. Fences are runs of three or more backticks; a
// block closes on a run at least as long as the one that opened it, so
// shorter backtick runs inside the block are kept.
func ExtractQueryBlock(raw string) string {
	open := strings.Index(raw, "```")
	if open < 0 {
		return strings.TrimSpace(raw)
	}

	// Measure the opening fence length.
	fence := 3
	for open+fence < len(raw) && raw[open+fence] == '`' {
		fence++
	}
	rest := raw[open+fence:]

	// Skip an optional language tag up to the end of the fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		// Fence with no content after it.
		return strings.TrimSpace(rest)
	}

	// Find a closing run of at least the opening length.
	marker := strings.Repeat("`", fence)
	if end := strings.Index(rest, marker); end >= 0 {
		return strings.TrimSpace(rest[:end])
	}
	// Unterminated fence: take everything to the end.
	return strings.TrimSpace(rest)
}
