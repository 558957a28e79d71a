package placeholder

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

// DefaultMessage is shown when no message is given.
const DefaultMessage = "╌╌ OFFLINE ╌╌\n\nThis module is not available."

// PlaceholderScreen stands in for a screen whose dependencies are missing,
// e.g. the logs screen when no database could be opened.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	if message == "" {
		message = DefaultMessage
	}
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	return components.Centered(p.message, theme.TextDim, width, height)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
