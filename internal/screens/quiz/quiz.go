// Package quiz runs a multiple choice quiz: answer every question, submit,
// then review the explanations.
package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/unitutor/internal/identity"
	qz "github.com/abhisek/unitutor/internal/quiz"
	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/layout"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseConfirmQuit
	phaseResults
)

// recordedMsg reports the outcome of persisting a graded attempt.
type recordedMsg struct {
	profile *store.Profile
	err     error
}

// QuizScreen presents one question at a time.
type QuizScreen struct {
	quiz     *qz.Quiz
	events   store.EventRepo
	identity *identity.Service
	bonus    func() screen.Screen

	attemptID string
	choices   []components.MultiChoice
	current   int
	phase     phase
	result    qz.Result
	errMsg    string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates a quiz screen. bonus builds the breach screen offered once
// the quiz is graded; nil disables the offer.
func New(q *qz.Quiz, events store.EventRepo, ident *identity.Service, bonus func() screen.Screen) *QuizScreen {
	choices := make([]components.MultiChoice, len(q.Questions))
	for i, question := range q.Questions {
		choices[i] = components.NewMultiChoice(question.Options, question.CorrectAnswerIndex)
	}
	return &QuizScreen{
		quiz:      q,
		events:    events,
		identity:  ident,
		bonus:     bonus,
		attemptID: uuid.NewString(),
		choices:   choices,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.quiz.Title
}

// HandlesBack asks for confirmation before abandoning answered questions.
func (s *QuizScreen) HandlesBack() bool {
	return s.phase != phaseResults && len(s.answers()) > 0
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseConfirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseResults:
		hints := []layout.KeyHint{{Key: "←→", Description: "Review"}}
		if s.bonus != nil {
			hints = append(hints, layout.KeyHint{Key: "B", Description: "Bonus breach"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Done"})
	}
	hints := []layout.KeyHint{
		{Key: "↑↓/1-4", Description: "Choose"},
		{Key: "←→", Description: "Question"},
	}
	if s.quiz.AllAnswered(s.answers()) {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) answers() qz.Answers {
	a := make(qz.Answers, len(s.choices))
	for i, c := range s.choices {
		if c.Answered() {
			a[s.quiz.Questions[i].ID] = c.Chosen
		}
	}
	return a
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		if msg.profile == nil {
			return s, nil
		}
		p := msg.profile
		return s, func() tea.Msg { return screen.ProfileUpdatedMsg{Profile: p} }

	case tea.KeyMsg:
		switch s.phase {
		case phaseConfirmQuit:
			return s.handleConfirm(msg)
		case phaseResults:
			return s.handleResultsKey(msg)
		default:
			return s.handleAnswerKey(msg)
		}
	}
	return s, nil
}

func (s *QuizScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if s.HandlesBack() {
			s.phase = phaseConfirmQuit
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "p", "shift+tab":
		s.step(-1)
		return s, nil
	case "right", "n", "tab":
		s.step(1)
		return s, nil
	case "s":
		return s, s.submit()
	}

	wasAnswered := s.choices[s.current].Answered()
	var cmd tea.Cmd
	s.choices[s.current], cmd = s.choices[s.current].Update(msg)
	if !wasAnswered && s.choices[s.current].Answered() && s.current < len(s.choices)-1 {
		s.current++
	}
	return s, cmd
}

func (s *QuizScreen) handleConfirm(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "y":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "n", "esc":
		s.phase = phaseAnswering
	}
	return s, nil
}

func (s *QuizScreen) handleResultsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "p", "up", "k":
		s.step(-1)
	case "right", "n", "down", "j":
		s.step(1)
	case "b":
		if s.bonus != nil {
			next := s.bonus()
			s.bonus = nil
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "esc", "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *QuizScreen) step(d int) {
	s.current = min(max(s.current+d, 0), len(s.choices)-1)
}

// submit grades the attempt once every question has an answer.
func (s *QuizScreen) submit() tea.Cmd {
	answers := s.answers()
	if !s.quiz.AllAnswered(answers) {
		return nil
	}
	s.result = qz.Grade(s.quiz, answers)
	s.phase = phaseResults
	s.current = 0
	for i := range s.choices {
		s.choices[i].Revealed = true
	}
	return s.record()
}

func (s *QuizScreen) record() tea.Cmd {
	events, ident := s.events, s.identity
	res := s.result
	data := store.QuizEventData{
		AttemptID: s.attemptID,
		Title:     s.quiz.Title,
		Score:     res.Score,
		Total:     res.Total,
		Credits:   res.Credits(),
	}
	return func() tea.Msg {
		ctx := context.Background()
		var profile *store.Profile
		if ident != nil {
			if _, err := ident.Current(ctx); err != nil {
				return recordedMsg{err: err}
			}
			p, err := ident.RecordQuiz(ctx, data.Credits)
			if err != nil {
				return recordedMsg{err: err}
			}
			profile = p
			data.ProfileID = p.ID
		}
		var err error
		if events != nil {
			err = events.AppendQuiz(ctx, data)
		}
		return recordedMsg{profile: profile, err: err}
	}
}
