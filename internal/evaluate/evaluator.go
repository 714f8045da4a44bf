package evaluate

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/fluently/internal/llm"
	"github.com/abhisek/fluently/internal/store"
)

// ErrEvaluationInFlight is returned when an evaluation is already
// running on this evaluator. Callers treat it as a no-op, which shields
// scoring from double-clicks and repeated UI events.
var ErrEvaluationInFlight = errors.New("evaluation already in flight")

// Tier names recorded with each result.
const (
	TierExact    = "exact"
	TierSemantic = "semantic"
)

// Result is the outcome of one evaluation.
type Result struct {
	Correct   bool
	Submitted string
	Expected  string

	// Tier is the tier that decided the outcome.
	Tier string
}

// Evaluator is the two-tier correctness judge. One Evaluator serves one
// practice session; its in-flight guard is a single shared flag, so
// evaluations are serialized across items. That serialization is
// intentional — the practice flow never has two items under evaluation
// at once.
type Evaluator struct {
	provider llm.Provider
	events   store.EventRepo

	mu    sync.Mutex
	inUse bool
}

// New creates an Evaluator. The provider may be nil, in which case the
// semantic tier is skipped and exact-tier failures stand. Events may be
// nil to disable answer logging.
func New(provider llm.Provider, events store.EventRepo) *Evaluator {
	if events == nil {
		events = store.NoopEventRepo{}
	}
	return &Evaluator{provider: provider, events: events}
}

// Evaluate judges submitted against expected. The exact tier runs
// synchronously; the semantic tier is consulted only when the exact
// tier fails. A semantic-tier service failure never propagates — the
// exact-tier failure stands and the answer is incorrect.
//
// Returns ErrEvaluationInFlight when called while a previous evaluation
// has not resolved.
func (e *Evaluator) Evaluate(ctx context.Context, sessionID, blockType, prompt, submitted, expected string) (*Result, error) {
	e.mu.Lock()
	if e.inUse {
		e.mu.Unlock()
		return nil, ErrEvaluationInFlight
	}
	e.inUse = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inUse = false
		e.mu.Unlock()
	}()

	result := &Result{Submitted: submitted, Expected: expected, Tier: TierExact}

	if ExactMatch(submitted, expected) {
		result.Correct = true
	} else if e.provider != nil && submitted != "" {
		correct, err := semanticMatch(ctx, e.provider, submitted, expected)
		if err == nil {
			result.Tier = TierSemantic
			result.Correct = correct
		}
		// On error the exact-tier failure stands: incorrect.
	}

	e.record(ctx, sessionID, blockType, prompt, result)
	return result, nil
}

func (e *Evaluator) record(ctx context.Context, sessionID, blockType, prompt string, r *Result) {
	// Best effort; scoring never fails because logging did.
	_ = e.events.AppendAnswer(ctx, store.AnswerEventData{
		SessionID: sessionID,
		BlockType: blockType,
		Prompt:    prompt,
		Expected:  r.Expected,
		Submitted: r.Submitted,
		Correct:   r.Correct,
		Tier:      r.Tier,
	})
}
