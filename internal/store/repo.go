package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// AnswerEventData captures a single scored answer attempt.
// Tier records which evaluation tier decided the outcome: "exact" or
// "semantic".
type AnswerEventData struct {
	SessionID string
	BlockType string
	Prompt    string
	Expected  string
	Submitted string
	Correct   bool
	Tier      string
}

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID string
	Event     string // "started", "finalizing", "complete", "error", "practice_ended"
	Detail    string
}

// LLMPurposeStats aggregates LLM usage for one purpose label.
type LLMPurposeStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// AnswerStats aggregates answer attempts for one block type.
type AnswerStats struct {
	BlockType string
	Attempts  int
	Correct   int
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = default of 50)
}

// EventRepo provides append and aggregate access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendAnswer records a scored answer attempt.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSession records a session lifecycle transition.
	AppendSession(ctx context.Context, data SessionEventData) error

	// QueryLLMEvents returns recent LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event by ID, or nil when absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeStats, error)

	// AnswerAccuracy aggregates answer attempts per block type.
	AnswerAccuracy(ctx context.Context) ([]AnswerStats, error)
}
