package store

import "context"

// NoopEventRepo discards all events. Used when no database is configured.
type NoopEventRepo struct{}

func (NoopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error { return nil }
func (NoopEventRepo) AppendAnswer(context.Context, AnswerEventData) error         { return nil }
func (NoopEventRepo) AppendSession(context.Context, SessionEventData) error       { return nil }

func (NoopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMRequestEvent, error) {
	return nil, nil
}

func (NoopEventRepo) GetLLMEvent(context.Context, int) (*LLMRequestEvent, error) {
	return nil, nil
}

func (NoopEventRepo) LLMUsageByPurpose(context.Context) ([]LLMPurposeStats, error) {
	return nil, nil
}

func (NoopEventRepo) AnswerAccuracy(context.Context) ([]AnswerStats, error) {
	return nil, nil
}
