// Package practice runs a generated plan as an interactive session: it
// walks the plan item by item, routes answers through the two-tier
// evaluator, and keeps a running score. State changes go through a pure
// reducer so every transition is testable in isolation.
package practice

import (
	"fmt"

	"github.com/abhisek/fluently/internal/evaluate"
	"github.com/abhisek/fluently/internal/plangen"
)

// Status is the lifecycle phase of a practice session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusLoaded     Status = "loaded"
	StatusPresenting Status = "presenting"
	StatusFeedback   Status = "showing_feedback"
	StatusEnded      Status = "ended"
	StatusError      Status = "error"
)

// Score is the running tally of evaluated answers.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Feedback describes the outcome of the most recent answer. It is set
// while the session shows feedback and cleared on advance.
type Feedback struct {
	Correct  bool   `json:"correct"`
	Tier     string `json:"tier"`
	Expected string `json:"expected"`
	Message  string `json:"message"`
}

// State is a snapshot of a practice session. The plan pointer is shared
// but plans are immutable once generated.
type State struct {
	Status     Status
	Plan       *plangen.TherapySessionPlan
	BlockIndex int
	ItemIndex  int
	Score      Score
	Feedback   *Feedback
	Err        string
}

// CurrentItem returns the block and item under presentation, or false
// when the session is not presenting.
func (s State) CurrentItem() (*plangen.TherapyBlock, *plangen.TherapyItem, bool) {
	if s.Status != StatusPresenting && s.Status != StatusFeedback {
		return nil, nil, false
	}
	return s.Plan.ItemAt(s.BlockIndex, s.ItemIndex)
}

type event interface{ isEvent() }

type evLoadPlan struct {
	plan *plangen.TherapySessionPlan
}

type evStart struct{}

type evResult struct {
	result *evaluate.Result
}

type evNext struct{}

type evEnd struct{}

// evFault records an invariant violation, e.g. a cursor pointing at a
// missing item. The session transitions to error rather than wedging.
type evFault struct {
	msg string
}

func (evLoadPlan) isEvent() {}
func (evStart) isEvent()    {}
func (evResult) isEvent()   {}
func (evNext) isEvent()     {}
func (evEnd) isEvent()      {}
func (evFault) isEvent()    {}

// reduce applies one event to a state. Events that do not apply in the
// current status leave the state unchanged, which makes repeated or
// out-of-order calls harmless.
func reduce(s State, ev event) State {
	switch ev := ev.(type) {
	case evLoadPlan:
		if s.Status != StatusIdle && s.Status != StatusEnded && s.Status != StatusError {
			return s
		}
		if ev.plan == nil || ev.plan.TotalItems() == 0 {
			return State{Status: StatusError, Err: "plan has no exercise items"}
		}
		return State{Status: StatusLoaded, Plan: ev.plan}

	case evStart:
		if s.Status != StatusLoaded {
			return s
		}
		s.Status = StatusPresenting
		s.BlockIndex = 0
		s.ItemIndex = 0
		return skipEmptyBlocks(s)

	case evResult:
		if s.Status != StatusPresenting {
			return s
		}
		s.Status = StatusFeedback
		s.Score.Total++
		if ev.result.Correct {
			s.Score.Correct++
		}
		s.Feedback = buildFeedback(ev.result)
		return s

	case evNext:
		if s.Status != StatusFeedback {
			return s
		}
		s.Feedback = nil
		s.ItemIndex++
		if s.ItemIndex >= len(s.Plan.Blocks[s.BlockIndex].Items) {
			s.BlockIndex++
			s.ItemIndex = 0
		}
		s.Status = StatusPresenting
		return skipEmptyBlocks(s)

	case evFault:
		s.Status = StatusError
		s.Err = ev.msg
		s.Feedback = nil
		return s

	case evEnd:
		if s.Status == StatusEnded {
			return s
		}
		s.Status = StatusEnded
		s.Feedback = nil
		return s
	}

	return s
}

// skipEmptyBlocks moves a presenting cursor past blocks with no items.
// Running off the end of the plan ends the session.
func skipEmptyBlocks(s State) State {
	for s.BlockIndex < len(s.Plan.Blocks) && len(s.Plan.Blocks[s.BlockIndex].Items) == 0 {
		s.BlockIndex++
		s.ItemIndex = 0
	}
	if s.BlockIndex >= len(s.Plan.Blocks) {
		s.Status = StatusEnded
	}
	return s
}

func buildFeedback(r *evaluate.Result) *Feedback {
	f := &Feedback{
		Correct:  r.Correct,
		Tier:     r.Tier,
		Expected: r.Expected,
	}
	if r.Correct {
		f.Message = "That's right!"
	} else {
		f.Message = fmt.Sprintf("Not quite. The expected answer was %q.", r.Expected)
	}
	return f
}
