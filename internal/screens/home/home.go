// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/unitutor/internal/identity"
	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

// Launcher builds the screens reachable from the menu.
type Launcher interface {
	NewQuiz() screen.Screen
	Breach() screen.Screen
	Blackjack() screen.Screen
	Profile() screen.Screen
	Logs() screen.Screen
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	identity   *identity.Service
	menu       components.Menu
	menuLabels []string
	profile    *store.Profile
	llmReady   bool
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. llmReady reports whether documents can be
// turned into quizzes.
func New(launch Launcher, ident *identity.Service, llmReady bool) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "NEW QUIZ", Action: push(launch.NewQuiz)},
		{Label: "BREACH PROTOCOL", Action: push(launch.Breach)},
		{Label: "BLACKJACK", Action: push(launch.Blackjack)},
		{Label: "PROFILE", Action: push(launch.Profile)},
		{Label: "LOGS", Action: push(launch.Logs)},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	menu := components.NewMenu(items)
	return &HomeScreen{
		identity:   ident,
		menu:       menu,
		menuLabels: menu.Labels(),
		llmReady:   llmReady,
	}
}

// Init signs in the guest profile and announces it.
func (h *HomeScreen) Init() tea.Cmd {
	ident := h.identity
	if ident == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := ident.Current(context.Background())
		if err != nil {
			return profileErrMsg{err}
		}
		return screen.ProfileUpdatedMsg{Profile: p}
	}
}

type profileErrMsg struct{ err error }

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ProfileUpdatedMsg:
		h.profile = msg.Profile
		return h, nil
	case profileErrMsg:
		h.errMsg = msg.err.Error()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	credits := 0
	if h.profile != nil {
		credits = h.profile.TotalScore
	}
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(credits, h.llmReady), cw))
	}

	sections = append(sections, renderStatsBar(h.profile, cw, compact))

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	if !h.llmReady {
		sections = append(sections, renderLLMBanner(cw))
	}
	if h.errMsg != "" {
		sections = append(sections, components.Banner("PROFILE ERROR: "+h.errMsg, theme.Error, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
