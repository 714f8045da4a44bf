// Package session holds the live check-in session records and the
// volatile in-memory store that owns them.
package session

import (
	"time"

	"github.com/abhisek/fluently/internal/plangen"
	"github.com/abhisek/fluently/internal/profile"
)

// Status is the lifecycle state of a check-in session.
type Status string

const (
	// StatusActive accepts repeated patient messages.
	StatusActive Status = "active"

	// StatusFinalizing means the finalize trigger fired and plan
	// generation is running in the background.
	StatusFinalizing Status = "finalizing"

	// StatusComplete means the plan has been written and can be read.
	StatusComplete Status = "complete"

	// StatusError is terminal; the patient must start a new session.
	StatusError Status = "error"
)

// TurnRole identifies the speaker of a conversation turn.
type TurnRole string

const (
	RolePatient   TurnRole = "patient"
	RoleAssistant TurnRole = "assistant"
)

// Turn is one conversation turn. Turns are append-only and never mutated
// after append; slice order is conversation order.
type Turn struct {
	Role TurnRole `json:"role"`
	Text string   `json:"text"`
}

// Session is the record for one check-in conversation and its eventual
// exercise plan. Owned exclusively by the Store; mutated only by the
// check-in orchestrator and the plan generation pipeline.
type Session struct {
	ID                    string
	CreatedAt             time.Time
	Status                Status
	History               []Turn
	Profile               *profile.PatientProfile
	Plan                  *plangen.TherapySessionPlan
	ErrMsg                string
	PracticeQuestionCount int
}

// AppendTurn adds a turn to the history.
func (s *Session) AppendTurn(role TurnRole, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
}
