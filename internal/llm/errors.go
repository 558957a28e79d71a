package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the provider. RetryAfter is zero when the
// provider sent no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the model answered with content that failed the
// request schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx responses and network failures.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the response was cut off at MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrUnsupportedAttachment is returned by providers that cannot read an
// attachment's MIME type.
type ErrUnsupportedAttachment struct {
	Provider string
	MIMEType string
}

func (e *ErrUnsupportedAttachment) Error() string {
	return fmt.Sprintf("%s cannot read %s attachments", e.Provider, e.MIMEType)
}

// Retryable reports whether err is worth another attempt. Cancellation
// and request-shape problems are final; rate limits, outages, invalid
// responses and unclassified (network) errors are not.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	var unsupported *ErrUnsupportedAttachment
	return !errors.As(err, &maxTok) && !errors.As(err, &unsupported)
}

// Describe turns a generation error into one line a player can act on.
// Errors from outside this package are returned as is.
func Describe(err error) string {
	var (
		rl          *ErrRateLimit
		invalid     *ErrInvalidResponse
		down        *ErrProviderUnavailable
		maxTok      *ErrMaxTokensExceeded
		unsupported *ErrUnsupportedAttachment
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "The LLM took too long to answer. Try a shorter document."
	case errors.As(err, &rl):
		return "The LLM provider is rate limiting requests. Wait a minute and try again."
	case errors.As(err, &down):
		return "The LLM provider could not be reached. Check your connection and API key."
	case errors.As(err, &maxTok):
		return "The generated quiz was too long and got cut off. Try a shorter document."
	case errors.As(err, &unsupported):
		return fmt.Sprintf("%s cannot read %s files. Convert the document to text or switch provider.",
			unsupported.Provider, unsupported.MIMEType)
	case errors.As(err, &invalid):
		return "The LLM returned a malformed quiz. Try again."
	}
	return err.Error()
}
