package practice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/fluently/internal/evaluate"
	"github.com/abhisek/fluently/internal/plangen"
)

// Engine drives one practice session. All methods are safe for
// concurrent use; state transitions are serialized under a mutex and
// answer results carry a sequence number so a result arriving after the
// session has moved on is discarded instead of applied.
type Engine struct {
	evaluator *evaluate.Evaluator
	sessionID string

	mu      sync.Mutex
	state   State
	seq     uint64
	pending bool
}

// New creates an Engine bound to a session ID for answer logging.
func New(sessionID string, evaluator *evaluate.Evaluator) *Engine {
	return &Engine{
		evaluator: evaluator,
		sessionID: sessionID,
		state:     State{Status: StatusIdle},
	}
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LoadPlan installs a plan and resets the session. Accepted from the
// idle, ended, and error states; ignored mid-session.
func (e *Engine) LoadPlan(plan *plangen.TherapySessionPlan) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(evLoadPlan{plan: plan})
	e.pending = false
}

// Start begins presenting the first item of a loaded plan.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(evStart{})
}

// SubmitAnswer evaluates the patient's answer to the item under
// presentation. An exact match resolves synchronously; otherwise the
// semantic tier runs in the background and feedback appears when it
// resolves. Submissions while another answer is being evaluated, or
// outside the presenting state, are ignored.
//
// The context should outlive the caller when the semantic tier may run,
// e.g. context.Background() from a request handler.
func (e *Engine) SubmitAnswer(ctx context.Context, answer string) {
	e.mu.Lock()
	if e.state.Status != StatusPresenting || e.pending {
		e.mu.Unlock()
		return
	}
	block, item, ok := e.state.Plan.ItemAt(e.state.BlockIndex, e.state.ItemIndex)
	if !ok {
		// The cursor points at nothing; the session cannot continue.
		e.apply(evFault{msg: fmt.Sprintf("no item at block %d, item %d", e.state.BlockIndex, e.state.ItemIndex)})
		e.mu.Unlock()
		return
	}
	seq := e.seq
	e.pending = true
	blockType := string(block.Type)
	prompt, expected := item.Prompt, item.Answer
	e.mu.Unlock()

	if evaluate.ExactMatch(answer, expected) {
		res, err := e.evaluator.Evaluate(ctx, e.sessionID, blockType, prompt, answer, expected)
		e.deliver(seq, res, err, answer, expected)
		return
	}

	go func() {
		res, err := e.evaluator.Evaluate(ctx, e.sessionID, blockType, prompt, answer, expected)
		e.deliver(seq, res, err, answer, expected)
	}()
}

// Next advances past the feedback to the next item, or ends the session
// after the last one. Ignored while an answer is being evaluated.
func (e *Engine) Next() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return
	}
	e.apply(evNext{})
}

// End finishes the session from any state. Any in-flight evaluation
// result is discarded when it arrives.
func (e *Engine) End() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.apply(evEnd{})
	e.pending = false
}

// apply runs the reducer and bumps the sequence number so results from
// before the transition can no longer land.
func (e *Engine) apply(ev event) {
	e.state = reduce(e.state, ev)
	e.seq++
}

func (e *Engine) deliver(seq uint64, res *evaluate.Result, err error, submitted, expected string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.seq != seq {
		// The session moved on while this answer was evaluating.
		return
	}
	e.pending = false

	if err != nil {
		if errors.Is(err, evaluate.ErrEvaluationInFlight) {
			return
		}
		// Evaluation could not run at all; the answer stands as incorrect.
		res = &evaluate.Result{Submitted: submitted, Expected: expected, Tier: evaluate.TierExact}
	}
	e.apply(evResult{result: res})
}
