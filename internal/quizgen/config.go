package quizgen

import "github.com/abhisek/unitutor/internal/quiz"

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run on every quiz after schema validation. The first
	// failure stops the pipeline.
	Validators []quiz.Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators:  quiz.DefaultValidators(),
		MaxTokens:   8192,
		Temperature: 0.4,
	}
}
