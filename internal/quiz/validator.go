package quiz

import (
	"fmt"
	"strings"
)

// Validator checks a decoded quiz for problems the schema cannot express.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil when q passes.
	Validate(q *Quiz) *ValidationError
}

// ValidationError describes why a quiz failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regenerating the quiz is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the chain run on every quiz.
func DefaultValidators() []Validator {
	return []Validator{&StructuralValidator{}}
}

// Validate runs validators in order and stops at the first failure.
func Validate(q *Quiz, validators ...Validator) error {
	for _, v := range validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

// StructuralValidator checks that every question is answerable: text and
// explanation present, four distinct options, a correct index in range and
// unique IDs.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Quiz) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if strings.TrimSpace(q.Title) == "" {
		return fail("title is empty")
	}
	if len(q.Questions) == 0 {
		return fail("quiz has no questions")
	}

	seen := make(map[int]bool, len(q.Questions))
	for i, qu := range q.Questions {
		if seen[qu.ID] {
			return fail("question %d: duplicate id %d", i+1, qu.ID)
		}
		seen[qu.ID] = true

		if strings.TrimSpace(qu.Text) == "" {
			return fail("question %d: text is empty", qu.ID)
		}
		if strings.TrimSpace(qu.Explanation) == "" {
			return fail("question %d: explanation is empty", qu.ID)
		}
		if len(qu.Options) != OptionCount {
			return fail("question %d: has %d options, want %d", qu.ID, len(qu.Options), OptionCount)
		}
		distinct := make(map[string]bool, OptionCount)
		for j, opt := range qu.Options {
			opt = strings.TrimSpace(opt)
			if opt == "" {
				return fail("question %d: option %d is empty", qu.ID, j)
			}
			if distinct[opt] {
				return fail("question %d: option %q appears twice", qu.ID, opt)
			}
			distinct[opt] = true
		}
		if qu.CorrectAnswerIndex < 0 || qu.CorrectAnswerIndex >= OptionCount {
			return fail("question %d: correct answer index %d out of range", qu.ID, qu.CorrectAnswerIndex)
		}
	}
	return nil
}
