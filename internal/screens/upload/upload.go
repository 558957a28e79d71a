// Package upload loads a study document and turns it into a quiz.
package upload

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/unitutor/internal/llm"
	"github.com/abhisek/unitutor/internal/quiz"
	"github.com/abhisek/unitutor/internal/quizgen"
	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/layout"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

// errorDisplay is how long a failure stays on screen before the form
// returns.
const errorDisplay = 3 * time.Second

// ErrNoGenerator is reported when a document needs an LLM but none is
// configured.
var ErrNoGenerator = errors.New("no LLM provider configured: only .json quizzes can be loaded")

type state int

const (
	stateIdle state = iota
	stateGenerating
	stateError
)

type generatedMsg struct {
	seq  int
	quiz *quiz.Quiz
	err  error
}

type errorTimeoutMsg struct {
	seq int
}

// QuizFactory builds the screen that runs a loaded quiz.
type QuizFactory func(q *quiz.Quiz) screen.Screen

// UploadScreen asks for a file path and generates a quiz from it.
type UploadScreen struct {
	gen     quizgen.Generator
	open    QuizFactory
	logger  *zap.Logger
	input   components.TextInput
	spinner spinner.Model
	state   state
	doc     string
	err     error
	errSeq  int
	genSeq  int
	cancel  context.CancelFunc
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)
var _ screen.BackHandler = (*UploadScreen)(nil)
var _ screen.Closer = (*UploadScreen)(nil)

// New creates an upload screen. gen may be nil, in which case only quiz
// JSON files are accepted.
func New(gen quizgen.Generator, open QuizFactory, logger *zap.Logger) *UploadScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	input := components.NewTextInput(components.InputPath, "path/to/notes.pdf", 512, 60)
	return &UploadScreen{
		gen:    gen,
		open:   open,
		logger: logger,
		input:  input,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ArcadeCyan)),
		),
	}
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *UploadScreen) Title() string {
	return "New Quiz"
}

// HandlesBack keeps esc from leaving while a generation is in flight;
// esc cancels it instead.
func (s *UploadScreen) HandlesBack() bool {
	return s.state == stateGenerating
}

func (s *UploadScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	switch s.state {
	case stateGenerating:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	case stateError:
		return []layout.KeyHint{{Key: "Any key", Description: "Try again"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		if s.state != stateGenerating || msg.seq != s.genSeq {
			return s, nil
		}
		s.Close()
		if msg.err != nil {
			return s, s.fail(msg.err)
		}
		s.logger.Info("quiz ready",
			zap.String("document", s.doc),
			zap.String("title", msg.quiz.Title),
			zap.Int("questions", len(msg.quiz.Questions)))
		next := s.open(msg.quiz)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case errorTimeoutMsg:
		if s.state == stateError && msg.seq == s.errSeq {
			s.state = stateIdle
		}
		return s, nil

	case spinner.TickMsg:
		if s.state != stateGenerating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *UploadScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.state {
	case stateGenerating:
		if msg.String() == "esc" {
			s.Close()
			s.state = stateIdle
		}
		return s, nil
	case stateError:
		s.state = stateIdle
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return s, s.submit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *UploadScreen) submit() tea.Cmd {
	path := s.input.Value()
	if path == "" {
		return nil
	}
	doc, err := quizgen.LoadDocument(path)
	if err != nil {
		return s.fail(err)
	}
	if s.gen == nil && !doc.IsQuiz() {
		return s.fail(ErrNoGenerator)
	}

	s.doc = doc.Name
	s.state = stateGenerating
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.genSeq++
	gen, seq := s.gen, s.genSeq
	generate := func() tea.Msg {
		if doc.IsQuiz() {
			q, err := quiz.Parse(doc.Data)
			return generatedMsg{seq: seq, quiz: q, err: err}
		}
		q, err := gen.Generate(ctx, doc)
		return generatedMsg{seq: seq, quiz: q, err: err}
	}
	return tea.Batch(generate, s.spinner.Tick)
}

func (s *UploadScreen) fail(err error) tea.Cmd {
	s.logger.Warn("quiz generation failed", zap.String("document", s.doc), zap.Error(err))
	s.state = stateError
	s.err = err
	s.errSeq++
	seq := s.errSeq
	return tea.Tick(errorDisplay, func(time.Time) tea.Msg {
		return errorTimeoutMsg{seq: seq}
	})
}

func (s *UploadScreen) View(width, height int) string {
	cw := min(max(width-8, 40), 80)

	var body string
	switch s.state {
	case stateGenerating:
		body = s.spinner.View() + " " +
			lipgloss.NewStyle().Foreground(theme.Text).Render("Generating quiz from "+s.doc+"...")
	case stateError:
		body = components.Banner("UPLOAD FAILED", theme.Error, cw) + "\n\n" +
			lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Render(llm.Describe(s.err))
	default:
		title := components.Banner("UPLOAD STUDY MATERIAL", theme.ArcadeCyan, cw)
		help := lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).
			Render("PDF, text and markdown notes become a quiz. A .json file is loaded as a ready-made quiz.")
		body = title + "\n\n" + help + "\n\n" + s.input.View()
		if s.gen == nil {
			body += "\n\n" + lipgloss.NewStyle().Width(cw).Foreground(theme.Accent).
				Render("No LLM configured. Only .json quizzes can be loaded.")
		}
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
