package plangen

import (
	"fmt"
	"strings"

	"github.com/abhisek/fluently/internal/profile"
)

const systemPrompt = `You are a speech-language pathologist designing a personalized home practice session for an adult patient recovering from a speech disorder.

Rules:
- Build exercises around the patient's stated interests so the material feels personal, not clinical.
- Respect the requested difficulty: "easy" means single common words and short phrases, "medium" means everyday sentences, "hard" means longer or less frequent constructions.
- Every item needs a prompt the patient reads or hears and a single expected answer, in plain text.
- Block types and what they mean:
  - picture_description: the patient names or describes a pictured object. The answer is the object word. Provide 3 distractor labels per item.
  - word_repetition: the patient repeats a target word or phrase aloud. The answer is the target itself.
  - sentence_completion: the patient finishes a sentence. The answer is the missing word or phrase.
  - word_finding: the patient retrieves a word from a category or description cue. The answer is the word.
- If the check-in flagged a safety concern, keep all content gentle and grounding; never reference the concern itself in exercise text.
- Respond with a single JSON object and nothing else.`

// buildUserMessage renders the generation request: the full profile plus
// the exact item target and the required JSON shape.
func buildUserMessage(p *profile.PatientProfile, target int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Patient mood: %s\n", p.Mood)
	fmt.Fprintf(&b, "Interests: %s\n", strings.Join(p.Interests, ", "))
	fmt.Fprintf(&b, "Difficulty: %s\n", p.Difficulty)
	fmt.Fprintf(&b, "Clinician notes: %s\n", p.Notes)
	fmt.Fprintf(&b, "Session length: about %d minutes\n", p.EstimatedDurationMinutes)

	if len(p.Themes) > 0 {
		fmt.Fprintf(&b, "Themes from check-in: %s\n", strings.Join(p.Themes, ", "))
	}
	if len(p.Goals) > 0 {
		fmt.Fprintf(&b, "Patient goals: %s\n", strings.Join(p.Goals, ", "))
	}
	if len(p.Challenges) > 0 {
		fmt.Fprintf(&b, "Reported challenges: %s\n", strings.Join(p.Challenges, ", "))
	}
	if p.SafetyConcern {
		b.WriteString("A safety concern was flagged during check-in; keep content gentle.\n")
	}

	fmt.Fprintf(&b, "\nGenerate exactly %d exercise items in total, spread across the four block types.\n", target)
	b.WriteString(`
Respond with JSON in exactly this shape:
{
  "summary": "one-sentence session overview",
  "blocks": [
    {
      "id": "optional-stable-id",
      "type": "picture_description | word_repetition | sentence_completion | word_finding",
      "topic": "short topic label",
      "difficulty": "easy | medium | hard",
      "description": "one line shown to the patient before the block",
      "items": [
        {"prompt": "...", "answer": "...", "distractors": ["...", "...", "..."]}
      ]
    }
  ]
}
The "distractors" field is only for picture_description items.`)

	return b.String()
}
