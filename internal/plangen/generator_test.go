package plangen

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/fluently/internal/llm"
	"github.com/abhisek/fluently/internal/profile"
)

func testProfile() *profile.PatientProfile {
	return &profile.PatientProfile{
		Mood:                     "hopeful",
		Interests:                []string{"gardening", "cooking"},
		Difficulty:               "medium",
		Notes:                    "Mild word-finding difficulty.",
		EstimatedDurationMinutes: 20,
	}
}

func validPlanJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "A gentle session around the garden.",
		"blocks": [
			{
				"type": "picture_description",
				"topic": "gardening",
				"difficulty": "medium",
				"description": "Name what you see.",
				"items": [
					{"prompt": "Which picture shows the rose?", "answer": "rose", "distractors": ["tulip", "daisy", "fern"]}
				]
			},
			{
				"type": "word_repetition",
				"topic": "gardening",
				"items": [{"prompt": "Repeat: trowel.", "answer": "trowel"}]
			},
			{
				"type": "sentence_completion",
				"topic": "gardening",
				"items": [{"prompt": "I water the plants every ___.", "answer": "morning"}]
			},
			{
				"type": "word_finding",
				"topic": "gardening",
				"items": [{"prompt": "Name a tool for digging.", "answer": "shovel"}]
			}
		]
	}`)
}

func TestGenerate_ProducesRebalancedPlan(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPlanJSON()})
	gen := New(mock, DefaultConfig())

	plan, err := gen.Generate(context.Background(), testProfile(), "sess-1", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := plan.TotalItems(); got != 8 {
		t.Errorf("expected 8 items, got %d", got)
	}
	if plan.SessionMetadata.SessionID != "sess-1" {
		t.Errorf("missing session id in metadata")
	}
	if plan.SessionMetadata.EstimatedDurationMinutes != 20 {
		t.Errorf("expected duration 20, got %d", plan.SessionMetadata.EstimatedDurationMinutes)
	}
	if plan.Summary == nil || plan.Summary.Overview == "" {
		t.Error("expected summary with overview")
	}
	if len(plan.PracticeQuestions) == 0 {
		t.Error("expected practice questions derived from themes")
	}
}

func TestGenerate_FencedResponse(t *testing.T) {
	fenced := "Here you go:\n```json\n" + string(validPlanJSON()) + "\n```"
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(fenced)})
	gen := New(mock, DefaultConfig())

	plan, err := gen.Generate(context.Background(), testProfile(), "sess-2", 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := plan.TotalItems(); got != 4 {
		t.Errorf("expected 4 items, got %d", got)
	}
}

func TestGenerate_MalformedJSONIsFatal(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`this is not a plan`)})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testProfile(), "sess-3", 8); err == nil {
		t.Fatal("expected error for malformed response")
	}
	// One call only: no retry on malformed output.
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 LLM call, got %d", mock.CallCount())
	}
}

func TestGenerate_SchemaViolationIsFatal(t *testing.T) {
	// Valid JSON, but an item with a numeric prompt and a block missing
	// its type. Like malformed JSON, this is terminal: one call, no retry.
	bad := json.RawMessage(`{
		"summary": "x",
		"blocks": [
			{"topic": "gardening", "items": [{"prompt": 42, "answer": "rose"}]}
		]
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: bad})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testProfile(), "sess-7", 8); err == nil {
		t.Fatal("expected error for schema violation")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 LLM call, got %d", mock.CallCount())
	}
}

func TestGenerate_EmptyBlockListIsFatal(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"blocks": []}`)})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testProfile(), "sess-4", 8); err == nil {
		t.Fatal("expected error for empty block list")
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), testProfile(), "sess-5", 8); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestGenerate_TargetClamped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPlanJSON()})
	gen := New(mock, DefaultConfig())

	plan, err := gen.Generate(context.Background(), testProfile(), "sess-6", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := plan.TotalItems(); got != MinItems {
		t.Errorf("expected clamp to %d items, got %d", MinItems, got)
	}
}

func TestBuildSummary_SafetyNote(t *testing.T) {
	p := testProfile()
	p.SafetyConcern = true

	s := buildSummary(p, "")
	if s.ClinicalNote == "" {
		t.Error("expected clinical note for safety concern")
	}
	if len(s.Themes) == 0 {
		t.Error("expected fallback themes")
	}
}
