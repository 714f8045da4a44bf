package practice

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/abhisek/fluently/internal/evaluate"
	"github.com/abhisek/fluently/internal/llm"
	"github.com/abhisek/fluently/internal/plangen"
)

func testPlan() *plangen.TherapySessionPlan {
	return &plangen.TherapySessionPlan{
		Blocks: []plangen.TherapyBlock{
			{
				Type:  plangen.BlockWordRepetition,
				Topic: "kitchen",
				Items: []plangen.TherapyItem{
					{Prompt: "Repeat: pan.", Answer: "pan"},
					{Prompt: "Repeat: spoon.", Answer: "spoon"},
				},
			},
			{
				Type:  plangen.BlockWordFinding,
				Topic: "kitchen",
				Items: []plangen.TherapyItem{
					{Prompt: "Name something you boil water in.", Answer: "kettle"},
				},
			},
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestEngine_FullRunAllCorrect(t *testing.T) {
	e := New("sess-1", evaluate.New(nil, nil))
	e.LoadPlan(testPlan())
	e.Start()

	answers := []string{"PAN", "a spoon", "kettle"}
	for _, a := range answers {
		if s := e.Snapshot(); s.Status != StatusPresenting {
			t.Fatalf("expected presenting before submit, got %s", s.Status)
		}
		e.SubmitAnswer(context.Background(), a)

		s := e.Snapshot()
		if s.Status != StatusFeedback {
			t.Fatalf("exact match must resolve synchronously, got %s", s.Status)
		}
		if s.Feedback == nil || !s.Feedback.Correct {
			t.Fatalf("expected correct feedback for %q", a)
		}
		e.Next()
	}

	s := e.Snapshot()
	if s.Status != StatusEnded {
		t.Errorf("expected ended after last item, got %s", s.Status)
	}
	if s.Score.Correct != 3 || s.Score.Total != 3 {
		t.Errorf("expected score 3/3, got %d/%d", s.Score.Correct, s.Score.Total)
	}
}

func TestEngine_SemanticTierCorrect(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`CORRECT`)})
	e := New("sess-2", evaluate.New(mock, nil))
	e.LoadPlan(testPlan())
	e.Start()

	// "skillet" shares no substring with "pan", so the exact tier fails
	// and the semantic tier must decide.
	e.SubmitAnswer(context.Background(), "skillet")

	waitFor(t, func() bool { return e.Snapshot().Status == StatusFeedback })

	s := e.Snapshot()
	if !s.Feedback.Correct || s.Feedback.Tier != evaluate.TierSemantic {
		t.Errorf("expected semantic-tier correct, got %+v", s.Feedback)
	}
	if s.Score.Correct != 1 || s.Score.Total != 1 {
		t.Errorf("expected score 1/1, got %d/%d", s.Score.Correct, s.Score.Total)
	}
}

func TestEngine_SemanticTierIncorrect(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`INCORRECT`)})
	e := New("sess-3", evaluate.New(mock, nil))
	e.LoadPlan(testPlan())
	e.Start()

	e.SubmitAnswer(context.Background(), "banana")

	waitFor(t, func() bool { return e.Snapshot().Status == StatusFeedback })

	s := e.Snapshot()
	if s.Feedback.Correct {
		t.Error("expected incorrect feedback")
	}
	if s.Feedback.Message == "" || s.Feedback.Expected != "pan" {
		t.Errorf("feedback should name the expected answer, got %+v", s.Feedback)
	}
	if s.Score.Correct != 0 || s.Score.Total != 1 {
		t.Errorf("expected score 0/1, got %d/%d", s.Score.Correct, s.Score.Total)
	}
}

// blockingProvider holds every call until release is closed.
type blockingProvider struct {
	release chan struct{}
	calls   chan struct{}
}

func newBlockingProvider() *blockingProvider {
	return &blockingProvider{
		release: make(chan struct{}),
		calls:   make(chan struct{}, 8),
	}
}

func (b *blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	b.calls <- struct{}{}
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &llm.Response{Content: json.RawMessage(`CORRECT`), StopReason: "end"}, nil
}

func (b *blockingProvider) ModelID() string { return "blocking" }

func TestEngine_DoubleSubmitIgnoredWhilePending(t *testing.T) {
	provider := newBlockingProvider()
	e := New("sess-4", evaluate.New(provider, nil))
	e.LoadPlan(testPlan())
	e.Start()

	e.SubmitAnswer(context.Background(), "banana")
	<-provider.calls

	// Second submit and Next must both be ignored while evaluating.
	e.SubmitAnswer(context.Background(), "orange")
	e.Next()
	if s := e.Snapshot(); s.Status != StatusPresenting {
		t.Fatalf("expected presenting while pending, got %s", s.Status)
	}

	close(provider.release)
	waitFor(t, func() bool { return e.Snapshot().Status == StatusFeedback })

	s := e.Snapshot()
	if s.Score.Total != 1 {
		t.Errorf("expected a single evaluated answer, got total %d", s.Score.Total)
	}
	if len(provider.calls) != 0 {
		t.Error("second submit reached the provider")
	}
}

func TestEngine_LateResultDiscardedAfterEnd(t *testing.T) {
	provider := newBlockingProvider()
	e := New("sess-5", evaluate.New(provider, nil))
	e.LoadPlan(testPlan())
	e.Start()

	e.SubmitAnswer(context.Background(), "banana")
	<-provider.calls

	e.End()
	close(provider.release)

	// The stale result must not change the score or revive the session.
	time.Sleep(50 * time.Millisecond)
	s := e.Snapshot()
	if s.Status != StatusEnded {
		t.Errorf("expected ended, got %s", s.Status)
	}
	if s.Score.Total != 0 {
		t.Errorf("stale result was applied: score total %d", s.Score.Total)
	}
}

func TestEngine_OutOfStateCallsAreNoOps(t *testing.T) {
	e := New("sess-6", evaluate.New(nil, nil))

	e.Start()
	e.Next()
	e.SubmitAnswer(context.Background(), "pan")
	if s := e.Snapshot(); s.Status != StatusIdle {
		t.Fatalf("expected idle, got %s", s.Status)
	}

	e.LoadPlan(testPlan())
	e.SubmitAnswer(context.Background(), "pan") // not presenting yet
	if s := e.Snapshot(); s.Status != StatusLoaded || s.Score.Total != 0 {
		t.Fatalf("submit before start must be a no-op, got %+v", e.Snapshot())
	}

	e.Start()
	e.Next() // no feedback showing
	if s := e.Snapshot(); s.Status != StatusPresenting || s.ItemIndex != 0 {
		t.Fatal("next without feedback must be a no-op")
	}

	// Reloading mid-session is ignored.
	e.LoadPlan(testPlan())
	if s := e.Snapshot(); s.Status != StatusPresenting {
		t.Fatalf("mid-session reload must be a no-op, got %s", s.Status)
	}
}

func TestEngine_SkipsEmptyBlocks(t *testing.T) {
	// Leading, middle, and trailing blocks without items are passed
	// over; the session must never present an empty block.
	plan := &plangen.TherapySessionPlan{
		Blocks: []plangen.TherapyBlock{
			{Type: plangen.BlockPictureDescription, Topic: "kitchen"},
			{
				Type:  plangen.BlockWordRepetition,
				Topic: "kitchen",
				Items: []plangen.TherapyItem{{Prompt: "Repeat: pan.", Answer: "pan"}},
			},
			{Type: plangen.BlockSentenceCompletion, Topic: "kitchen"},
			{
				Type:  plangen.BlockWordFinding,
				Topic: "kitchen",
				Items: []plangen.TherapyItem{{Prompt: "Name something you boil water in.", Answer: "kettle"}},
			},
			{Type: plangen.BlockWordFinding, Topic: "garden"},
		},
	}

	e := New("sess-8", evaluate.New(nil, nil))
	e.LoadPlan(plan)
	e.Start()

	s := e.Snapshot()
	if s.Status != StatusPresenting || s.BlockIndex != 1 {
		t.Fatalf("expected to present the first non-empty block, got %+v", s)
	}

	for _, a := range []string{"pan", "kettle"} {
		e.SubmitAnswer(context.Background(), a)
		if s := e.Snapshot(); s.Status != StatusFeedback {
			t.Fatalf("expected feedback for %q, got %s", a, s.Status)
		}
		e.Next()
	}

	s = e.Snapshot()
	if s.Status != StatusEnded {
		t.Errorf("expected ended after last non-empty block, got %s", s.Status)
	}
	if s.Score.Correct != 2 || s.Score.Total != 2 {
		t.Errorf("expected score 2/2, got %d/%d", s.Score.Correct, s.Score.Total)
	}
}

func TestEngine_MissingItemEntersErrorState(t *testing.T) {
	e := New("sess-9", evaluate.New(nil, nil))
	e.LoadPlan(testPlan())
	e.Start()

	// Force the cursor past the plan; the next submit must surface the
	// violation instead of silently ignoring it.
	e.mu.Lock()
	e.state.BlockIndex = len(e.state.Plan.Blocks)
	e.mu.Unlock()

	e.SubmitAnswer(context.Background(), "pan")
	s := e.Snapshot()
	if s.Status != StatusError || s.Err == "" {
		t.Fatalf("expected error state with message, got %+v", s)
	}

	// Wedged operations stay no-ops; loading a fresh plan recovers.
	e.SubmitAnswer(context.Background(), "pan")
	e.Next()
	if s := e.Snapshot(); s.Status != StatusError {
		t.Fatalf("expected error state to hold, got %s", s.Status)
	}
	e.LoadPlan(testPlan())
	if s := e.Snapshot(); s.Status != StatusLoaded {
		t.Errorf("expected loaded after recovery, got %s", s.Status)
	}
}

func TestEngine_EmptyPlanIsAnError(t *testing.T) {
	e := New("sess-7", evaluate.New(nil, nil))

	e.LoadPlan(&plangen.TherapySessionPlan{})
	s := e.Snapshot()
	if s.Status != StatusError || s.Err == "" {
		t.Fatalf("expected error state, got %+v", s)
	}

	// Recoverable: a valid plan can be loaded afterwards.
	e.LoadPlan(testPlan())
	if s := e.Snapshot(); s.Status != StatusLoaded {
		t.Errorf("expected loaded after recovery, got %s", s.Status)
	}
}
