package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A multiple choice question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correctAnswerIndex": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
				"topic":              map[string]any{"type": "string", "enum": []any{"math", "chemistry"}},
			},
			"required": []any{"text", "options", "correctAnswerIndex"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"text":"$2+3$?","options":["4","5","6","7"],"correctAnswerIndex":1,"topic":"math"}`)
	if err := validateResponse(questionSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"text":"pH of water?","options":["5","6","7","8"],"correctAnswerIndex":2}`)
	if err := validateResponse(questionSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"text":"q","options":["a","b","c","d"]}`},
		{"wrong type", `{"text":"q","options":["a","b","c","d"],"correctAnswerIndex":"1"}`},
		{"index out of range", `{"text":"q","options":["a","b","c","d"],"correctAnswerIndex":4}`},
		{"too few options", `{"text":"q","options":["a","b","c"],"correctAnswerIndex":0}`},
		{"bad enum", `{"text":"q","options":["a","b","c","d"],"correctAnswerIndex":0,"topic":"history"}`},
		{"malformed", `{not json}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema(), json.RawMessage(tt.raw))
			if err == nil {
				t.Fatal("expected validation error")
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected ErrInvalidResponse, got: %T", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedObjects(t *testing.T) {
	schema := &Schema{
		Name: "test-nested-quiz",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id": map[string]any{"type": "integer"},
						},
						"required": []any{"id"},
					},
				},
			},
			"required": []any{"title", "questions"},
		},
	}

	valid := json.RawMessage(`{"title":"Limits","questions":[{"id":1},{"id":2}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"title":"Limits","questions":[{"id":"one"}]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for wrong nested type")
	}
}
