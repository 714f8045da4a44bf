package checkin

import "github.com/abhisek/fluently/internal/llm"

const systemPrompt = `You are a warm, patient speech-therapy assistant running a daily check-in conversation.

Your job is to learn enough about the patient to plan today's practice session:
- how they are feeling today (mood)
- topics they enjoy talking about (interests)
- how challenging they want today's exercises to be (easy, medium, or hard)
- roughly how long they want to practice, in minutes
- anything notable about their speech today (notes)

Guidelines:
- Ask ONE question at a time. Keep each message to one or two short sentences.
- Use plain, encouraging language. Never use clinical jargon with the patient.
- If the patient mentions feeling unsafe, hopeless, or mentions self-harm, set the safety fields when you finalize, and respond with warmth.
- Once you have the mood, at least one interest, and a difficulty preference, call the finalize_checkin tool with everything you learned. Do not announce the tool call; just include a short friendly closing line.
- Never call the tool before you have mood and at least one interest.`

const finalizeToolName = "finalize_checkin"

// finalizeTool is the structured trigger offered on every conversation
// turn. The model decides when the check-in has gathered enough.
var finalizeTool = &llm.Tool{
	Name:        finalizeToolName,
	Description: "Finish the check-in and hand the gathered patient profile to session planning. Call once, when mood, interests, and difficulty are known.",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mood": map[string]any{
				"type":        "string",
				"description": "The patient's mood today, in their own register.",
			},
			"interests": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Topics the patient enjoys, for theming exercises.",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []string{"easy", "medium", "hard"},
			},
			"notes": map[string]any{
				"type":        "string",
				"description": "Observations about the patient's speech today.",
			},
			"estimated_duration_minutes": map[string]any{
				"type": "integer",
			},
			"themes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"emotional_tone": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"mood_rating": map[string]any{
				"type":        "integer",
				"description": "1-10 self-reported mood.",
			},
			"stress_rating": map[string]any{
				"type":        "integer",
				"description": "1-10 self-reported stress.",
			},
			"challenges": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"goals": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"safety_concern": map[string]any{
				"type":        "boolean",
				"description": "True when the patient expressed anything a clinician should review.",
			},
			"safety_notes": map[string]any{
				"type": "string",
			},
			"quotes": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short verbatim quotes worth keeping.",
			},
		},
		"required": []string{"mood", "interests", "difficulty"},
	},
}

// Canned lines for the fixed points of the conversation.
const (
	openingPatientTurn = "Hi, I'm ready for my check-in."

	greeting = "Hello! It's good to see you. How are you feeling today?"

	defaultClosing = "Thank you for sharing all that. Give me a moment to put together today's practice plan."

	holdingFinalizing = "I'm putting your practice plan together right now. It will be ready in a moment."
	holdingComplete   = "Your practice plan is ready! You can start whenever you like."
	holdingError      = "I'm sorry, something went wrong while preparing your plan. Please start a new session."
)
