package profile

import (
	"encoding/json"
	"testing"
)

func TestParseTrigger_Valid(t *testing.T) {
	input := json.RawMessage(`{
		"mood": "hopeful",
		"interests": ["gardening", "cooking"],
		"difficulty": "medium",
		"notes": "Word-finding pauses on longer sentences.",
		"estimated_duration_minutes": 20
	}`)

	p, err := ParseTrigger(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Mood != "hopeful" {
		t.Errorf("expected mood 'hopeful', got %q", p.Mood)
	}
	if len(p.Interests) != 2 {
		t.Errorf("expected 2 interests, got %d", len(p.Interests))
	}
	if p.EstimatedDurationMinutes != 20 {
		t.Errorf("expected duration 20, got %d", p.EstimatedDurationMinutes)
	}
}

func TestParseTrigger_MissingMood(t *testing.T) {
	input := json.RawMessage(`{"interests": ["music"], "difficulty": "easy"}`)
	if _, err := ParseTrigger(input); err == nil {
		t.Fatal("expected error for missing mood")
	}
}

func TestParseTrigger_MissingInterests(t *testing.T) {
	input := json.RawMessage(`{"mood": "calm", "difficulty": "easy"}`)
	if _, err := ParseTrigger(input); err == nil {
		t.Fatal("expected error for missing interests")
	}
}

func TestParseTrigger_Defaults(t *testing.T) {
	input := json.RawMessage(`{"mood": "tired", "interests": ["birds"]}`)

	p, err := ParseTrigger(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Difficulty != DifficultyMedium {
		t.Errorf("expected default difficulty medium, got %q", p.Difficulty)
	}
	if p.EstimatedDurationMinutes != 15 {
		t.Errorf("expected default duration 15, got %d", p.EstimatedDurationMinutes)
	}
	if p.Notes == "" {
		t.Error("expected default notes to be filled")
	}
}

func TestParseTrigger_DifficultyVocabulary(t *testing.T) {
	cases := map[string]string{
		"easy":        DifficultyEasy,
		"Challenging": DifficultyHard,
		"unknown":     DifficultyMedium,
		"":            DifficultyMedium,
	}
	for in, want := range cases {
		input, _ := json.Marshal(map[string]any{
			"mood": "ok", "interests": []string{"x"}, "difficulty": in,
		})
		p, err := ParseTrigger(input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if p.Difficulty != want {
			t.Errorf("difficulty %q: expected %q, got %q", in, want, p.Difficulty)
		}
	}
}

func TestThemesOrDefault(t *testing.T) {
	p := &PatientProfile{Mood: "calm", Interests: []string{"fishing", "trains", "radio"}}
	themes := p.ThemesOrDefault()
	if len(themes) != 3 {
		t.Fatalf("expected 3 themes, got %d", len(themes))
	}
	if themes[0] != "calm" || themes[1] != "fishing" {
		t.Errorf("unexpected theme order: %v", themes)
	}

	p.Themes = []string{"family"}
	themes = p.ThemesOrDefault()
	if len(themes) != 1 || themes[0] != "family" {
		t.Errorf("expected explicit themes to win, got %v", themes)
	}
}
