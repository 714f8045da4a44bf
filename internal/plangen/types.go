// Package plangen turns a patient profile into a structured exercise
// plan: one LLM generation call followed by a deterministic rebalancing
// pass that forces the item distribution to the configured target.
package plangen

import (
	"time"

	"github.com/abhisek/fluently/internal/profile"
)

// BlockType identifies the exercise format of a therapy block.
type BlockType string

const (
	BlockPictureDescription BlockType = "picture_description"
	BlockWordRepetition     BlockType = "word_repetition"
	BlockSentenceCompletion BlockType = "sentence_completion"
	BlockWordFinding        BlockType = "word_finding"
)

// BlockTypes is the canonical block order for assembled plans.
var BlockTypes = []BlockType{
	BlockPictureDescription,
	BlockWordRepetition,
	BlockSentenceCompletion,
	BlockWordFinding,
}

// TherapyItem is one exercise instance.
type TherapyItem struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`

	// Distractors holds incorrect option labels for picture items.
	// Always exactly 3 after rebalancing; empty for other block types.
	Distractors []string `json:"distractors,omitempty"`
}

// TherapyBlock groups items of one exercise type around a topic.
// Every block has at least one item.
type TherapyBlock struct {
	ID          string        `json:"id"`
	Type        BlockType     `json:"type"`
	Topic       string        `json:"topic"`
	Difficulty  string        `json:"difficulty"`
	Description string        `json:"description"`
	Items       []TherapyItem `json:"items"`
}

// SessionMetadata carries the identifiers stamped onto a finished plan.
type SessionMetadata struct {
	SessionID                string    `json:"session_id"`
	CreatedAt                time.Time `json:"created_at"`
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes"`
}

// Summary is the enrichment attached to a plan, derived from the
// optional profile fields with explicit fallbacks.
type Summary struct {
	Themes        []string `json:"themes"`
	EmotionalTone []string `json:"emotional_tone"`
	Overview      string   `json:"overview"`

	// ClinicalNote surfaces a safety concern from the check-in for the
	// reviewing clinician. Empty when no concern was flagged.
	ClinicalNote string `json:"clinical_note,omitempty"`
}

// PracticeQuestion is an optional conversation prompt carried alongside
// the plan, independent of the exercise blocks.
type PracticeQuestion struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Category     string `json:"category"`
	RelatedTheme string `json:"related_theme"`
}

// TherapySessionPlan is the finished plan handed to the practice engine.
// Immutable once written into the session record.
type TherapySessionPlan struct {
	PatientProfile    profile.PatientProfile `json:"patient_profile"`
	SessionMetadata   SessionMetadata        `json:"session_metadata"`
	Blocks            []TherapyBlock         `json:"blocks"`
	Summary           *Summary               `json:"summary,omitempty"`
	PracticeQuestions []PracticeQuestion     `json:"practice_questions,omitempty"`
}

// TotalItems returns the item count across all blocks.
func (p *TherapySessionPlan) TotalItems() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Items)
	}
	return n
}

// ItemAt returns the item at the given block/item indices, or false when
// the indices fall outside the plan.
func (p *TherapySessionPlan) ItemAt(blockIndex, itemIndex int) (*TherapyBlock, *TherapyItem, bool) {
	if blockIndex < 0 || blockIndex >= len(p.Blocks) {
		return nil, nil, false
	}
	block := &p.Blocks[blockIndex]
	if itemIndex < 0 || itemIndex >= len(block.Items) {
		return nil, nil, false
	}
	return block, &block.Items[itemIndex], true
}
