package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/ui/theme"
)

// Button is a labelled action that can be disabled.
type Button struct {
	Label   string
	Enabled bool
}

// NewButton creates a new button.
func NewButton(label string, enabled bool) Button {
	return Button{Label: label, Enabled: enabled}
}

// View renders the button.
func (b Button) View() string {
	if b.Enabled {
		return lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Text).
			Bold(true).
			Padding(0, 2).
			Render("▸ " + b.Label)
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		Render(b.Label)
}
