package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// When the request carries a Schema, the response Content has already
	// been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Quiz generation sends a single user
	// message carrying the source document.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil,
	// the response Content is the raw text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string

	// Attachments are binary documents sent alongside Content. Providers
	// that cannot accept a MIME type fail with ErrUnsupportedAttachment.
	Attachments []Attachment
}

// Attachment is an inline file, such as an exam PDF.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Well-known attachment types.
const (
	MIMEPDF      = "application/pdf"
	MIMEText     = "text/plain"
	MIMEJSON     = "application/json"
	MIMEMarkdown = "text/markdown"
)

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as schema name for OpenAI and as
	// the compile cache key). Kebab-case, e.g. "quiz".
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// requested, otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
