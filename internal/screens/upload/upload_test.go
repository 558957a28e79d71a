package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/unitutor/internal/quiz"
	"github.com/abhisek/unitutor/internal/quizgen"
	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/screens/placeholder"
)

type fakeGenerator struct {
	docs []quizgen.Document
}

func (f *fakeGenerator) Generate(ctx context.Context, doc quizgen.Document) (*quiz.Quiz, error) {
	f.docs = append(f.docs, doc)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &quiz.Quiz{
		Title: "From " + doc.Name,
		Questions: []quiz.Question{
			{ID: 1, Text: "Q?", Options: []string{"a", "b", "c", "d"}, Explanation: "a"},
		},
	}, nil
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

type opened struct {
	quizzes []*quiz.Quiz
}

func (o *opened) factory(q *quiz.Quiz) screen.Screen {
	o.quizzes = append(o.quizzes, q)
	return placeholder.New(q.Title, "")
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

// findGenerated runs the batch returned by submit and picks out the
// generation result, skipping the spinner tick.
func findGenerated(t *testing.T, cmd tea.Cmd) generatedMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("submit did not return a batch")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(generatedMsg); ok {
			return msg
		}
	}
	t.Fatal("batch had no generation result")
	return generatedMsg{}
}

func TestJSONQuizLoadsWithoutGenerator(t *testing.T) {
	data, err := quiz.Marshal(&quiz.Quiz{
		Title: "Ready Made",
		Questions: []quiz.Question{
			{ID: 1, Text: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswerIndex: 1, Explanation: "Sum."},
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := writeFile(t, "ready.json", data)

	o := &opened{}
	s := New(nil, o.factory, nil)
	s.input.SetValue(path)

	_, cmd := s.Update(enter())
	if s.state != stateGenerating {
		t.Fatalf("state = %v, want generating", s.state)
	}
	msg := findGenerated(t, cmd)
	if msg.err != nil {
		t.Fatalf("generate: %v", msg.err)
	}

	_, cmd = s.Update(msg)
	if cmd == nil {
		t.Fatal("no command after generation")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if replace.Screen.Title() != "Ready Made" {
		t.Fatalf("opened %q", replace.Screen.Title())
	}
	if len(o.quizzes) != 1 {
		t.Fatalf("factory called %d times", len(o.quizzes))
	}
}

func TestDocumentNeedsGenerator(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("Mitochondria make ATP."))
	s := New(nil, (&opened{}).factory, nil)
	s.input.SetValue(path)

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("failure should schedule the error timeout")
	}
	if s.state != stateError {
		t.Fatalf("state = %v, want error", s.state)
	}
	if !strings.Contains(s.View(100, 30), "UPLOAD FAILED") {
		t.Fatal("error view missing banner")
	}

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if s.state != stateIdle {
		t.Fatal("any key should dismiss the error")
	}
}

func TestErrorTimeout(t *testing.T) {
	s := New(nil, (&opened{}).factory, nil)
	s.input.SetValue(filepath.Join(t.TempDir(), "slides.pptx"))
	s.Update(enter())
	if s.state != stateError {
		t.Fatalf("state = %v, want error", s.state)
	}

	s.Update(errorTimeoutMsg{seq: s.errSeq - 1})
	if s.state != stateError {
		t.Fatal("stale timeout cleared the error")
	}
	s.Update(errorTimeoutMsg{seq: s.errSeq})
	if s.state != stateIdle {
		t.Fatal("timeout did not clear the error")
	}
}

func TestGeneratorReceivesDocument(t *testing.T) {
	path := writeFile(t, "bio.md", []byte("# Cells\n\nRibosomes build proteins."))
	gen := &fakeGenerator{}
	o := &opened{}
	s := New(gen, o.factory, nil)
	s.input.SetValue(path)

	_, cmd := s.Update(enter())
	msg := findGenerated(t, cmd)
	if len(gen.docs) != 1 || gen.docs[0].Name != "bio.md" {
		t.Fatalf("generator saw %+v", gen.docs)
	}
	s.Update(msg)
	if len(o.quizzes) != 1 || o.quizzes[0].Title != "From bio.md" {
		t.Fatal("generated quiz was not opened")
	}
}

func TestEscCancelsGeneration(t *testing.T) {
	path := writeFile(t, "bio.md", []byte("Ribosomes build proteins."))
	gen := &fakeGenerator{}
	o := &opened{}
	s := New(gen, o.factory, nil)
	s.input.SetValue(path)

	_, cmd := s.Update(enter())
	if !s.HandlesBack() {
		t.Fatal("generation in flight should intercept esc")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.state != stateIdle {
		t.Fatalf("state = %v, want idle", s.state)
	}

	msg := findGenerated(t, cmd)
	if msg.err == nil {
		t.Fatal("cancelled generation should fail")
	}
	s.Update(msg)
	if len(o.quizzes) != 0 || s.state != stateIdle {
		t.Fatal("late result from a cancelled generation was used")
	}
}
