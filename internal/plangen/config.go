package plangen

// Item count bounds for a generated plan.
const (
	MinItems = 4
	MaxItems = 50

	// DefaultItems is used when the session carries no explicit target.
	DefaultItems = 8
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// ClampTarget forces a requested item count into [MinItems, MaxItems],
// substituting DefaultItems for a zero value.
func ClampTarget(target int) int {
	if target == 0 {
		return DefaultItems
	}
	if target < MinItems {
		return MinItems
	}
	if target > MaxItems {
		return MaxItems
	}
	return target
}
