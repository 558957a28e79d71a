package quiz

// SchemaDefinition is the JSON Schema every quiz payload must satisfy. The
// quiz generator sends it to the LLM as the structured output format.
var SchemaDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":        "string",
			"description": "A suitable title for the quiz based on the document content",
		},
		"version": map[string]any{
			"type":        "string",
			"description": "Semantic version of the quiz format",
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type": "integer",
					},
					"text": map[string]any{
						"type":        "string",
						"description": "The question text, including LaTeX",
					},
					"options": map[string]any{
						"type":        "array",
						"items":       map[string]any{"type": "string"},
						"minItems":    OptionCount,
						"maxItems":    OptionCount,
						"description": "Exactly 4 option strings (including LaTeX)",
					},
					"correctAnswerIndex": map[string]any{
						"type":        "integer",
						"minimum":     0,
						"maximum":     OptionCount - 1,
						"description": "The index (0-3) of the correct option",
					},
					"explanation": map[string]any{
						"type":        "string",
						"description": "Step by step explanation of the solution",
					},
				},
				"required": []any{"id", "text", "options", "correctAnswerIndex", "explanation"},
			},
		},
	},
	"required": []any{"title", "questions"},
}
