package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.phase == phaseConfirmQuit {
		return components.Centered(
			"ABANDON QUIZ?\n\nYour answers will be lost.\n\n[Y] Yes   [N] No",
			theme.Accent, width, height)
	}

	cw := min(max(width-8, 40), 90)
	var sections []string

	if s.phase == phaseResults {
		sections = append(sections, s.renderScore(cw))
	}
	sections = append(sections, s.renderProgress(cw), s.renderQuestion(cw))

	if s.phase == phaseResults {
		sections = append(sections, s.renderExplanation(cw))
	} else {
		submit := components.NewButton("SUBMIT [S]", s.quiz.AllAnswered(s.answers()))
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, submit.View()))
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (s *QuizScreen) renderScore(cw int) string {
	text := fmt.Sprintf("SCORE %d / %d   ▸ +%d CREDITS", s.result.Score, s.result.Total, s.result.Credits())
	fg := theme.Success
	if s.result.Score*2 < s.result.Total {
		fg = theme.Accent
	}
	banner := components.Banner(text, fg, cw)
	if s.bonus != nil {
		banner += "\n" + lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.ArcadeYellow).Render("Press B to attempt a bonus breach")
	}
	return banner
}

// renderProgress draws one dot per question: answered, current, open, or
// after grading, right and wrong.
func (s *QuizScreen) renderProgress(cw int) string {
	dots := make([]string, len(s.choices))
	for i, c := range s.choices {
		style := lipgloss.NewStyle().Foreground(theme.Border)
		dot := "○"
		switch {
		case c.Revealed && c.IsCorrect():
			style, dot = style.Foreground(theme.Success), "●"
		case c.Revealed:
			style, dot = style.Foreground(theme.Error), "●"
		case c.Answered():
			style, dot = style.Foreground(theme.ArcadeCyan), "●"
		}
		if i == s.current {
			style = style.Underline(true).Bold(true)
		}
		dots[i] = style.Render(dot)
	}
	line := fmt.Sprintf("QUESTION %d/%d   %s", s.current+1, len(s.choices), strings.Join(dots, " "))
	return lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(line)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	q := s.quiz.Questions[s.current]
	text := lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text)
	return text + "\n\n" + s.choices[s.current].View(cw)
}

func (s *QuizScreen) renderExplanation(cw int) string {
	q := s.quiz.Questions[s.current]
	verdict := theme.Correct.Render("CORRECT")
	if !s.choices[s.current].IsCorrect() {
		verdict = theme.Incorrect.Render("INCORRECT")
	}
	body := lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(q.Explanation)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Width(cw).
		Render(verdict + "\n\n" + body)
}
