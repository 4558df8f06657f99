package llm

import "testing"

func TestExtractJSONBare(t *testing.T) {
	got, err := ExtractJSON(`{"labels": ["A"]}`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != `{"labels": ["A"]}` {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONFenced(t *testing.T) {
	in := "Here you go:\n```json\n{\"labels\": [\"A\", \"B\"]}\n```\nHope that helps."
	got, err := ExtractJSON(in)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != `{"labels": ["A", "B"]}` {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONArrayInProse(t *testing.T) {
	got, err := ExtractJSON(`The answer is ["X", "Y"] as requested.`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != `["X", "Y"]` {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONObjectInProse(t *testing.T) {
	got, err := ExtractJSON(`Sure. {"decision": "in_domain"} Done.`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if got != `{"decision": "in_domain"}` {
		t.Errorf("got %q", got)
	}
}

func TestExtractJSONNone(t *testing.T) {
	if _, err := ExtractJSON("no structured data here"); err == nil {
		t.Error("expected error for prose-only input")
	}
}

func TestNewProviderUnknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "nope"}); err == nil {
		t.Error("expected error for unknown provider")
	}
	if _, err := NewProvider(Config{}); err == nil {
		t.Error("expected error for empty provider")
	}
}
