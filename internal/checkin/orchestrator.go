// Package checkin drives the conversational check-in: a turn-by-turn
// state machine that gathers a patient profile through dialogue and, on
// the finalize trigger, hands the profile to background plan generation.
package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/fluently/internal/llm"
	"github.com/abhisek/fluently/internal/plangen"
	"github.com/abhisek/fluently/internal/profile"
	"github.com/abhisek/fluently/internal/session"
	"github.com/abhisek/fluently/internal/store"
)

// ErrSessionNotFound is returned for operations on unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// StartResult is the outcome of opening a new check-in.
type StartResult struct {
	SessionID    string `json:"session_id"`
	FirstMessage string `json:"first_message"`
}

// TurnReply is the outcome of one processed patient message.
type TurnReply struct {
	Reply     string         `json:"reply"`
	Status    session.Status `json:"status"`
	PlanReady bool           `json:"plan_ready"`
}

// PlanStatus is the poll-style read of a session's plan.
type PlanStatus struct {
	Status session.Status              `json:"status"`
	Plan   *plangen.TherapySessionPlan `json:"plan,omitempty"`
	ErrMsg string                      `json:"error,omitempty"`
}

// Config wires an Orchestrator's collaborators.
type Config struct {
	Provider llm.Provider
	Sessions *session.Store
	Planner  *plangen.Generator
	Events   store.EventRepo
	Logger   zerolog.Logger

	// QuestionCount is the practice item target stamped onto new
	// sessions. Zero means the plangen default.
	QuestionCount int
}

// Orchestrator owns the check-in conversation lifecycle.
type Orchestrator struct {
	provider llm.Provider
	sessions *session.Store
	planner  *plangen.Generator
	events   store.EventRepo
	logger   zerolog.Logger
	target   int
}

// New creates an Orchestrator from the config.
func New(cfg Config) *Orchestrator {
	events := cfg.Events
	if events == nil {
		events = store.NoopEventRepo{}
	}
	return &Orchestrator{
		provider: cfg.Provider,
		sessions: cfg.Sessions,
		planner:  cfg.Planner,
		events:   events,
		logger:   cfg.Logger,
		target:   cfg.QuestionCount,
	}
}

// StartSession opens a new check-in and returns its greeting. History
// is seeded with a synthetic patient opener so the reasoning service
// always sees a turn sequence starting with a non-assistant role.
func (o *Orchestrator) StartSession(ctx context.Context) *StartResult {
	sess := &session.Session{
		ID:                    uuid.NewString(),
		CreatedAt:             time.Now(),
		Status:                session.StatusActive,
		PracticeQuestionCount: plangen.ClampTarget(o.target),
	}
	sess.AppendTurn(session.RolePatient, openingPatientTurn)
	sess.AppendTurn(session.RoleAssistant, greeting)
	o.sessions.Set(sess.ID, sess)

	o.recordEvent(ctx, sess.ID, "started", "")
	o.logger.Info().Str("session_id", sess.ID).Msg("check-in session started")

	return &StartResult{SessionID: sess.ID, FirstMessage: greeting}
}

// ProcessMessage handles one patient message. In the active state it
// appends the turn, consults the reasoning service, and either replies
// with text or fires the finalize path; in any other state it returns a
// holding message without touching the conversation.
func (o *Orchestrator) ProcessMessage(ctx context.Context, sessionID, text string) (*TurnReply, error) {
	sess := o.sessions.Get(sessionID)
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	if sess.Status != session.StatusActive {
		return &TurnReply{
			Reply:     holdingMessage(sess.Status),
			Status:    sess.Status,
			PlanReady: sess.Status == session.StatusComplete,
		}, nil
	}

	sess.AppendTurn(session.RolePatient, text)

	resp, err := o.provider.Generate(llm.WithPurpose(ctx, "checkin"), llm.Request{
		System:      systemPrompt,
		Messages:    historyMessages(sess.History),
		Tool:        finalizeTool,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		o.sessions.Set(sessionID, sess)
		return nil, fmt.Errorf("conversation turn: %w", err)
	}

	// The response is classified exactly once: a valid finalize call or
	// a plain text turn. A malformed trigger payload demotes the turn to
	// text rather than erroring the session.
	result := classifyTurn(resp)

	if result.profile == nil {
		sess.AppendTurn(session.RoleAssistant, result.text)
		o.sessions.Set(sessionID, sess)
		return &TurnReply{Reply: result.text, Status: session.StatusActive}, nil
	}

	sess.AppendTurn(session.RoleAssistant, result.text)
	sess.Profile = result.profile
	sess.Status = session.StatusFinalizing
	o.sessions.Set(sessionID, sess)

	o.recordEvent(ctx, sessionID, "finalizing", "")
	o.logger.Info().Str("session_id", sessionID).Msg("check-in finalized, generating plan")

	// Fire-and-forget: the patient's request returns now; readers poll
	// GetPlan for the outcome. A detached context keeps generation alive
	// after this request ends.
	go o.generatePlan(context.Background(), sessionID, result.profile)

	return &TurnReply{Reply: result.text, Status: session.StatusFinalizing}, nil
}

// GetPlan reads the session's plan state. Safe to poll at any time.
func (o *Orchestrator) GetPlan(sessionID string) (*PlanStatus, error) {
	sess := o.sessions.Get(sessionID)
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return &PlanStatus{
		Status: sess.Status,
		Plan:   sess.Plan,
		ErrMsg: sess.ErrMsg,
	}, nil
}

func (o *Orchestrator) generatePlan(ctx context.Context, sessionID string, p *profile.PatientProfile) {
	sess := o.sessions.Get(sessionID)
	if sess == nil {
		return
	}

	plan, err := o.planner.Generate(ctx, p, sessionID, sess.PracticeQuestionCount)

	// Re-read in case the record was replaced while generating.
	sess = o.sessions.Get(sessionID)
	if sess == nil {
		return
	}

	if err != nil {
		sess.Status = session.StatusError
		sess.ErrMsg = err.Error()
		o.sessions.Set(sessionID, sess)
		o.recordEvent(ctx, sessionID, "error", err.Error())
		o.logger.Error().Err(err).Str("session_id", sessionID).Msg("plan generation failed")
		return
	}

	sess.Plan = plan
	sess.Status = session.StatusComplete
	o.sessions.Set(sessionID, sess)
	o.recordEvent(ctx, sessionID, "complete", "")
	o.logger.Info().
		Str("session_id", sessionID).
		Int("items", plan.TotalItems()).
		Msg("plan generated")
}

// turnResult is the tagged outcome of one reasoning-service response:
// either plain text or a finalize with a parsed profile plus closing text.
type turnResult struct {
	text    string
	profile *profile.PatientProfile
}

func classifyTurn(resp *llm.Response) turnResult {
	if resp.ToolCall != nil && resp.ToolCall.Name == finalizeToolName {
		p, err := profile.ParseTrigger(resp.ToolCall.Input)
		if err == nil {
			closing := resp.Text()
			if closing == "" {
				closing = defaultClosing
			}
			return turnResult{text: closing, profile: p}
		}
	}
	return turnResult{text: resp.Text()}
}

func historyMessages(turns []session.Turn) []llm.Message {
	msgs := make([]llm.Message, len(turns))
	for i, t := range turns {
		role := llm.RoleUser
		if t.Role == session.RoleAssistant {
			role = llm.RoleAssistant
		}
		msgs[i] = llm.Message{Role: role, Content: t.Text}
	}
	return msgs
}

func holdingMessage(s session.Status) string {
	switch s {
	case session.StatusFinalizing:
		return holdingFinalizing
	case session.StatusComplete:
		return holdingComplete
	default:
		return holdingError
	}
}

func (o *Orchestrator) recordEvent(ctx context.Context, sessionID, event, detail string) {
	_ = o.events.AppendSession(ctx, store.SessionEventData{
		SessionID: sessionID,
		Event:     event,
		Detail:    detail,
	})
}
