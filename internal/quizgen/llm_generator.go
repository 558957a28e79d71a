package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/unitutor/internal/llm"
	"github.com/abhisek/unitutor/internal/quiz"
)

// QuizSchema is the structured output format requested from the LLM.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A multiple-choice quiz generated from a study document",
	Definition:  quiz.SchemaDefinition,
}

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate builds a quiz from doc. JSON documents are parsed directly and
// never reach the provider.
func (g *LLMGenerator) Generate(ctx context.Context, doc Document) (*quiz.Quiz, error) {
	if doc.IsQuiz() {
		return quiz.Parse(doc.Data, g.config.Validators...)
	}
	if !mimeSupported(doc.MIMEType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDocument, doc.MIMEType)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	msg := llm.Message{Role: llm.RoleUser, Content: buildUserMessage(doc)}
	if !doc.isText() {
		msg.Attachments = []llm.Attachment{{Name: doc.Name, MIMEType: doc.MIMEType, Data: doc.Data}}
	}

	req := llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{msg},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var q quiz.Quiz
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	q.Version = quiz.CurrentVersion
	for i := range q.Questions {
		q.Questions[i].ID = i + 1
	}

	if err := quiz.Validate(&q, g.config.Validators...); err != nil {
		return nil, err
	}
	return &q, nil
}

func mimeSupported(mime string) bool {
	for _, m := range mimeByExt {
		if m == mime {
			return true
		}
	}
	return false
}
