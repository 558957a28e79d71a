package llm

import (
	"errors"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-3-pro-preview", "gemini-3-pro-preview"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string"},
			"id":    map[string]any{"type": "integer"},
			"topic": map[string]any{"type": "string", "enum": []any{"math", "chemistry", "physics"}},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": float64(4),
			},
		},
		"required": []any{"title", "id"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["title"].Type != "STRING" {
		t.Fatalf("expected STRING for title, got %s", schema.Properties["title"].Type)
	}
	if schema.Properties["id"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for id, got %s", schema.Properties["id"].Type)
	}
	if len(schema.Properties["topic"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["topic"].Enum))
	}
	opts := schema.Properties["options"]
	if opts.Type != "ARRAY" || opts.Items.Type != "STRING" {
		t.Fatalf("expected ARRAY of STRING for options, got %s of %s", opts.Type, opts.Items.Type)
	}
	if opts.MinItems == nil || *opts.MinItems != 4 || opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Fatalf("expected options bounded to 4 items, got min=%v max=%v", opts.MinItems, opts.MaxItems)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiContents_InlinesPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7")
	contents, err := buildGeminiContents([]Message{{
		Role:        RoleUser,
		Content:     "Write a quiz.",
		Attachments: []Attachment{{Name: "exam.pdf", MIMEType: MIMEPDF, Data: pdf}},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("expected blob + text parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != MIMEPDF || string(parts[0].InlineData.Data) != string(pdf) {
		t.Fatalf("expected inline PDF first, got %+v", parts[0])
	}
	if parts[1].Text != "Write a quiz." {
		t.Fatalf("expected prompt text last, got %q", parts[1].Text)
	}
	if contents[0].Role != "user" {
		t.Fatalf("expected user role, got %q", contents[0].Role)
	}
}

func TestBuildGeminiContents_Unsupported(t *testing.T) {
	_, err := buildGeminiContents([]Message{{
		Role:        RoleUser,
		Attachments: []Attachment{{MIMEType: "application/zip"}},
	}})
	var unsupported *ErrUnsupportedAttachment
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected ErrUnsupportedAttachment, got: %T (%v)", err, err)
	}
}
