package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a four-option selector. The chosen option can change
// until the choice is revealed.
type MultiChoice struct {
	Options      []string
	CorrectIndex int
	Cursor       int
	Chosen       int // -1 until an option is picked
	Revealed     bool
}

// NewMultiChoice creates a selector with nothing chosen.
func NewMultiChoice(options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space":
		m.Chosen = m.Cursor
	default:
		if i := shortcutIndex(key); i >= 0 && i < len(m.Options) {
			m.Cursor = i
			m.Chosen = i
		}
	}
	return m, nil
}

// shortcutIndex maps 1-4 and a-d to an option index, or -1.
func shortcutIndex(key string) int {
	if len(key) != 1 {
		return -1
	}
	switch c := key[0]; {
	case c >= '1' && c <= '4':
		return int(c - '1')
	case c >= 'a' && c <= 'd':
		return int(c - 'a')
	}
	return -1
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0
}

// IsCorrect reports whether the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen == m.CorrectIndex
}

// View renders the options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		marker := "○"
		if i == m.Chosen {
			marker = "●"
		}
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, choiceLabels[i], opt)

		style := lipgloss.NewStyle().Width(width).Foreground(theme.Text)
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.Revealed && i == m.Chosen:
			style = style.Foreground(theme.Error).Bold(true)
		case m.Revealed:
			style = style.Foreground(theme.TextDim)
		case i == m.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		case i == m.Chosen:
			style = style.Foreground(theme.ArcadeCyan)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
