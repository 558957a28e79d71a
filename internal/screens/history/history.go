// Package history shows the combined activity log and LLM token usage.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/layout"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

const activityLimit = 100

type tab int

const (
	tabActivity tab = iota
	tabUsage
)

type historyLoadedMsg struct {
	Activity []store.Activity
	Usage    []store.LLMUsage
	Err      error
}

// HistoryScreen displays recent quizzes, breaches, hands and LLM calls.
type HistoryScreen struct {
	eventRepo store.EventRepo
	activity  []store.Activity
	usage     []store.LLMUsage
	tab       tab
	offset    int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{eventRepo: eventRepo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		activity, err := repo.RecentActivity(ctx, activityLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		usage, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return historyLoadedMsg{Activity: activity, Err: err}
		}
		return historyLoadedMsg{Activity: activity, Usage: usage}
	}
}

func (s *HistoryScreen) Title() string {
	return "Logs"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Activity/Usage"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.activity = msg.Activity
		s.usage = msg.Usage
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "left", "right":
			s.tab = 1 - s.tab
			s.offset = 0
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			if s.offset < len(s.activity)-1 {
				s.offset++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading logs...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	if s.tab == tabUsage {
		b.WriteString(s.renderUsage(width))
		return b.String()
	}

	if len(s.activity) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No activity yet. Take a quiz!"))
		return b.String()
	}

	rows := max(height-4, 1)
	end := min(s.offset+rows, len(s.activity))
	for _, a := range s.activity[s.offset:end] {
		stamp := a.Timestamp.Local().Format("Jan 02 15:04")
		tag := lipgloss.NewStyle().Foreground(kindColor(a.Kind)).Bold(true).
			Render(fmt.Sprintf("%-9s", strings.ToUpper(string(a.Kind))))
		line := fmt.Sprintf("%s  %s  %s",
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(stamp), tag,
			lipgloss.NewStyle().Foreground(theme.Text).Render(a.Summary))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	active := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.ArcadeYellow).Bold(true).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1)
	labels := []string{"ACTIVITY", "LLM USAGE"}
	out := make([]string, len(labels))
	for i, l := range labels {
		if tab(i) == s.tab {
			out[i] = active.Render(l)
		} else {
			out[i] = idle.Render(l)
		}
	}
	return strings.Join(out, " ")
}

func (s *HistoryScreen) renderUsage(width int) string {
	if len(s.usage) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No LLM calls recorded.")
	}
	var b strings.Builder
	header := fmt.Sprintf("%-14s %6s %10s %10s %9s", "PURPOSE", "CALLS", "INPUT", "OUTPUT", "AVG MS")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(header)))
	b.WriteString("\n")
	for _, u := range s.usage {
		line := fmt.Sprintf("%-14s %6d %10d %10d %9d", u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func kindColor(k store.ActivityKind) color.Color {
	switch k {
	case store.ActivityQuiz:
		return theme.Success
	case store.ActivityBreach:
		return theme.ArcadeCyan
	case store.ActivityBlackjack:
		return theme.ArcadeYellow
	case store.ActivityLLM:
		return theme.Primary
	default:
		return theme.Text
	}
}
