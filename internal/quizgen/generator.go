// Package quizgen turns study documents into quizzes.
package quizgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/unitutor/internal/llm"
	"github.com/abhisek/unitutor/internal/quiz"
)

// ErrUnsupportedDocument is returned for files whose type cannot be used
// as quiz source material.
var ErrUnsupportedDocument = errors.New("unsupported document type")

// Generator produces a quiz from a document.
type Generator interface {
	Generate(ctx context.Context, doc Document) (*quiz.Quiz, error)
}

// Document is a source file loaded into memory.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// IsQuiz reports whether the document is already a quiz payload.
func (d Document) IsQuiz() bool {
	return d.MIMEType == llm.MIMEJSON
}

func (d Document) isText() bool {
	return d.MIMEType == llm.MIMEText || d.MIMEType == llm.MIMEMarkdown
}

var mimeByExt = map[string]string{
	".pdf":      llm.MIMEPDF,
	".txt":      llm.MIMEText,
	".md":       llm.MIMEMarkdown,
	".markdown": llm.MIMEMarkdown,
	".json":     llm.MIMEJSON,
}

// DetectMIME maps a file name to one of the supported document types.
func DetectMIME(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mime, ok := mimeByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDocument, ext)
	}
	return mime, nil
}

// LoadDocument reads path and detects its type from the extension.
func LoadDocument(path string) (Document, error) {
	mime, err := DetectMIME(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("document %s is empty", filepath.Base(path))
	}
	return Document{Name: filepath.Base(path), MIMEType: mime, Data: data}, nil
}
