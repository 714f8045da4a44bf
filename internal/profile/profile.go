// Package profile defines the patient profile gathered by the check-in
// conversation and the policy for parsing it out of the finalize trigger.
package profile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PatientProfile is the structured summary of a completed check-in.
// Produced once at finalization and immutable afterward.
type PatientProfile struct {
	Mood                     string   `json:"mood"`
	Interests                []string `json:"interests"`
	Difficulty               string   `json:"difficulty"`
	Notes                    string   `json:"notes"`
	EstimatedDurationMinutes int      `json:"estimated_duration_minutes"`

	// Optional enrichment fields. Absent values are filled with
	// context-derived defaults downstream.
	Themes        []string `json:"themes,omitempty"`
	EmotionalTone []string `json:"emotional_tone,omitempty"`
	MoodRating    int      `json:"mood_rating,omitempty"`
	StressRating  int      `json:"stress_rating,omitempty"`
	Challenges    []string `json:"challenges,omitempty"`
	Goals         []string `json:"goals,omitempty"`
	SafetyConcern bool     `json:"safety_concern,omitempty"`
	SafetyNotes   string   `json:"safety_notes,omitempty"`
	Quotes        []string `json:"quotes,omitempty"`
}

// Difficulty vocabulary accepted from the finalize trigger.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const defaultDurationMinutes = 15

// ParseTrigger decodes a finalize tool-call payload into a profile and
// applies the required-field policy: mood, at least one interest, and a
// difficulty must be present (with difficulty normalized to the known
// vocabulary); notes and duration get defaults when omitted. A payload
// failing the policy returns an error and the caller treats the turn as
// plain text.
func ParseTrigger(input json.RawMessage) (*PatientProfile, error) {
	var p PatientProfile
	if err := json.Unmarshal(input, &p); err != nil {
		return nil, fmt.Errorf("decode finalize trigger: %w", err)
	}

	p.Mood = strings.TrimSpace(p.Mood)
	p.Interests = trimAll(p.Interests)

	if p.Mood == "" {
		return nil, fmt.Errorf("finalize trigger missing mood")
	}
	if len(p.Interests) == 0 {
		return nil, fmt.Errorf("finalize trigger missing interests")
	}

	p.Difficulty = normalizeDifficulty(p.Difficulty)
	if p.EstimatedDurationMinutes <= 0 {
		p.EstimatedDurationMinutes = defaultDurationMinutes
	}
	if strings.TrimSpace(p.Notes) == "" {
		p.Notes = "No additional notes from check-in."
	}

	return &p, nil
}

// ThemesOrDefault returns the profile's theme list, falling back to
// [mood, interests...] capped at three entries when none were provided.
func (p *PatientProfile) ThemesOrDefault() []string {
	if len(p.Themes) > 0 {
		return p.Themes
	}
	themes := append([]string{p.Mood}, p.Interests...)
	if len(themes) > 3 {
		themes = themes[:3]
	}
	return themes
}

// ToneOrDefault returns the emotional tone list, defaulting to a single
// entry derived from the mood.
func (p *PatientProfile) ToneOrDefault() []string {
	if len(p.EmotionalTone) > 0 {
		return p.EmotionalTone
	}
	return []string{p.Mood}
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case DifficultyEasy, "beginner", "gentle":
		return DifficultyEasy
	case DifficultyHard, "challenging", "advanced":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
