package plangen

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fluently/internal/llm"
	"github.com/abhisek/fluently/internal/profile"
)

// Generator produces therapy session plans using the LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// planOutput is the raw LLM response shape before rebalancing.
type planOutput struct {
	Summary string        `json:"summary"`
	Blocks  []blockOutput `json:"blocks"`
}

type blockOutput struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Topic       string       `json:"topic"`
	Difficulty  string       `json:"difficulty"`
	Description string       `json:"description"`
	Items       []itemOutput `json:"items"`
}

type itemOutput struct {
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Distractors []string `json:"distractors"`
}

// planSchema checks the extracted plan object before parsing. Blocks
// may arrive without items (Rebalance synthesizes fallbacks), but each
// block needs a type and each supplied item a prompt and answer.
var planSchema = &llm.Schema{
	Name: "therapy-plan",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
			"blocks": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "string"},
						"type":        map[string]any{"type": "string"},
						"topic":       map[string]any{"type": "string"},
						"difficulty":  map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"items": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"prompt": map[string]any{"type": "string"},
									"answer": map[string]any{"type": "string"},
									"distractors": map[string]any{
										"type":  "array",
										"items": map[string]any{"type": "string"},
									},
								},
								"required": []any{"prompt", "answer"},
							},
						},
					},
					"required": []any{"type"},
				},
			},
		},
		"required": []any{"blocks"},
	},
}

// Generate produces a complete plan for the profile, rebalanced to
// exactly target items. A transport failure propagates to the caller;
// malformed or empty plan JSON is also an error — the caller marks the
// session failed and never retries (the patient was already told,
// verbally, what to expect).
func (g *Generator) Generate(ctx context.Context, p *profile.PatientProfile, sessionID string, target int) (*TherapySessionPlan, error) {
	ctx = llm.WithPurpose(ctx, "plan-gen")
	target = ClampTarget(target)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(p, target)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	raw, err := ExtractJSON(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("plan response: %w", err)
	}
	// Schema failure is terminal for the session, same as malformed JSON.
	if err := llm.ValidateJSON(planSchema, raw); err != nil {
		return nil, fmt.Errorf("plan response: %w", err)
	}

	var out planOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse plan response: %w", err)
	}
	if len(out.Blocks) == 0 {
		return nil, fmt.Errorf("plan response contained no blocks")
	}

	blocks := Rebalance(convertBlocks(out.Blocks), target, p.Difficulty)

	return &TherapySessionPlan{
		PatientProfile: *p,
		SessionMetadata: SessionMetadata{
			SessionID:                sessionID,
			CreatedAt:                time.Now().UTC(),
			EstimatedDurationMinutes: p.EstimatedDurationMinutes,
		},
		Blocks:            blocks,
		Summary:           buildSummary(p, out.Summary),
		PracticeQuestions: buildPracticeQuestions(p),
	}, nil
}

func convertBlocks(in []blockOutput) []TherapyBlock {
	out := make([]TherapyBlock, 0, len(in))
	for _, b := range in {
		items := make([]TherapyItem, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, TherapyItem{
				Prompt:      it.Prompt,
				Answer:      it.Answer,
				Distractors: it.Distractors,
			})
		}
		out = append(out, TherapyBlock{
			ID:          b.ID,
			Type:        BlockType(b.Type),
			Topic:       b.Topic,
			Difficulty:  b.Difficulty,
			Description: b.Description,
			Items:       items,
		})
	}
	return out
}

// buildSummary derives the plan enrichment from the optional profile
// fields, with explicit fallbacks for everything the check-in omitted.
func buildSummary(p *profile.PatientProfile, overview string) *Summary {
	if overview == "" {
		overview = fmt.Sprintf("A %s practice session built around %s.", p.Difficulty, joinOr(p.Interests))
	}
	s := &Summary{
		Themes:        p.ThemesOrDefault(),
		EmotionalTone: p.ToneOrDefault(),
		Overview:      overview,
	}
	if p.SafetyConcern {
		note := p.SafetyNotes
		if note == "" {
			note = "Patient flagged a safety concern during check-in; review before next appointment."
		}
		s.ClinicalNote = note
	}
	return s
}

// buildPracticeQuestions derives conversation prompts from the profile
// themes. Purely deterministic; no extra LLM call.
func buildPracticeQuestions(p *profile.PatientProfile) []PracticeQuestion {
	themes := p.ThemesOrDefault()
	if len(themes) > 3 {
		themes = themes[:3]
	}
	out := make([]PracticeQuestion, 0, len(themes))
	for _, theme := range themes {
		out = append(out, PracticeQuestion{
			ID:           uuid.NewString(),
			Text:         fmt.Sprintf("Tell me a little more about %s.", theme),
			Category:     "reflection",
			RelatedTheme: theme,
		})
	}
	return out
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return "everyday topics"
	case 1:
		return items[0]
	default:
		return items[0] + " and more"
	}
}
