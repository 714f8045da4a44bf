package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLLMEventRoundTrip(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-haiku",
		Purpose:      "checkin",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    350,
		Success:      true,
		RequestBody:  `{"system":"..."}`,
		ResponseBody: `How are you feeling today?`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Purpose != "checkin" || e.InputTokens != 120 || !e.Success {
		t.Errorf("event not stored faithfully: %+v", e)
	}

	got, err := repo.GetLLMEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ResponseBody != "How are you feeling today?" {
		t.Errorf("GetLLMEvent mismatch: %+v", got)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown event ID")
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Provider: "mock", Model: "mock", Purpose: "checkin", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "checkin", InputTokens: 20, OutputTokens: 10, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "plan-gen", InputTokens: 50, OutputTokens: 200, LatencyMs: 900, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(stats))
	}
	// Ordered by purpose: checkin, plan-gen.
	if stats[0].Purpose != "checkin" || stats[0].Calls != 2 || stats[0].InputTokens != 30 {
		t.Errorf("unexpected checkin stats: %+v", stats[0])
	}
	if stats[0].AvgLatencyMs != 200 {
		t.Errorf("expected avg latency 200, got %d", stats[0].AvgLatencyMs)
	}
	if stats[1].Purpose != "plan-gen" || stats[1].OutputTokens != 200 {
		t.Errorf("unexpected plan-gen stats: %+v", stats[1])
	}
}

func TestAnswerAccuracy(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", BlockType: "word_repetition", Prompt: "Repeat: pan.", Expected: "pan", Submitted: "pan", Correct: true, Tier: "exact"},
		{SessionID: "s1", BlockType: "word_repetition", Prompt: "Repeat: spoon.", Expected: "spoon", Submitted: "fork", Correct: false, Tier: "semantic"},
		{SessionID: "s1", BlockType: "word_finding", Prompt: "Name a pet.", Expected: "dog", Submitted: "puppy", Correct: true, Tier: "semantic"},
	}
	for _, a := range answers {
		if err := repo.AppendAnswer(ctx, a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err := repo.AnswerAccuracy(ctx)
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 block types, got %d", len(stats))
	}
	// Ordered by block type: word_finding, word_repetition.
	if stats[0].BlockType != "word_finding" || stats[0].Attempts != 1 || stats[0].Correct != 1 {
		t.Errorf("unexpected word_finding stats: %+v", stats[0])
	}
	if stats[1].BlockType != "word_repetition" || stats[1].Attempts != 2 || stats[1].Correct != 1 {
		t.Errorf("unexpected word_repetition stats: %+v", stats[1])
	}
}

func TestSessionEvents(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	for _, ev := range []string{"started", "finalizing", "complete"} {
		if err := repo.AppendSession(ctx, SessionEventData{SessionID: "s1", Event: ev}); err != nil {
			t.Fatalf("append %s: %v", ev, err)
		}
	}
}
