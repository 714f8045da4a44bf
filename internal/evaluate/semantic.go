package evaluate

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/fluently/internal/llm"
)

const semanticSystemPrompt = `You judge whether a speech-therapy patient's answer means the same thing as the expected answer.
Accept synonyms, rephrasings, and minor grammatical differences. Reject answers that name a different thing.
Reply with exactly one word: CORRECT or INCORRECT.`

// correctToken is the only response interpreted as a correct answer.
// Anything else, including malformed output, counts as incorrect.
const correctToken = "CORRECT"

// semanticMatch asks the LLM whether submitted and expected are
// semantically equivalent. Only a literal CORRECT token passes.
func semanticMatch(ctx context.Context, provider llm.Provider, submitted, expected string) (bool, error) {
	ctx = llm.WithPurpose(ctx, "answer-eval")

	req := llm.Request{
		System: semanticSystemPrompt,
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: fmt.Sprintf("Expected answer: %q\nPatient's answer: %q", expected, submitted),
			},
		},
		MaxTokens: 8,
	}

	resp, err := provider.Generate(ctx, req)
	if err != nil {
		return false, err
	}

	token := strings.ToUpper(strings.Trim(resp.Text(), " \t\r\n.!\"'"))
	return token == correctToken, nil
}
