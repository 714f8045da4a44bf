package plangen

import (
	"encoding/json"
	"testing"
)

func TestExtractJSON_Bare(t *testing.T) {
	raw, err := ExtractJSON(`{"blocks": []}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"blocks": []}` {
		t.Fatalf("got %s", raw)
	}
}

func TestExtractJSON_Fenced(t *testing.T) {
	input := "Here is your plan:\n```json\n{\"summary\": \"x\", \"blocks\": []}\n```\nEnjoy!"
	raw, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("extracted JSON does not parse: %v", err)
	}
	if out["summary"] != "x" {
		t.Errorf("unexpected extraction: %s", raw)
	}
}

func TestExtractJSON_LeadingProse(t *testing.T) {
	raw, err := ExtractJSON(`Sure! {"a": {"b": "}"}} trailing`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"a": {"b": "}"}}` {
		t.Fatalf("brace matching failed: %s", raw)
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	if _, err := ExtractJSON("I could not generate a plan."); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	if _, err := ExtractJSON(`{"blocks": [`); err == nil {
		t.Fatal("expected error for unbalanced object")
	}
}
