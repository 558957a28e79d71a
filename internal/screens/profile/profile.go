// Package profile shows the guest identity and lets the player rename,
// recover or sign out.
package profile

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/identity"
	"github.com/abhisek/unitutor/internal/router"
	"github.com/abhisek/unitutor/internal/screen"
	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/layout"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

type mode int

const (
	modeMenu mode = iota
	modeRename
	modeRecover
	modeConfirmLogout
)

type loadedMsg struct {
	profile *store.Profile
	stats   store.Stats
	notice  string
	err     error
}

// ProfileScreen displays and edits the active guest profile.
type ProfileScreen struct {
	identity *identity.Service
	events   store.EventRepo

	profile *store.Profile
	stats   store.Stats
	menu    components.Menu
	input   components.TextInput
	mode    mode
	showKey bool
	notice  string
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.BackHandler = (*ProfileScreen)(nil)

// New creates the profile screen.
func New(ident *identity.Service, events store.EventRepo) *ProfileScreen {
	s := &ProfileScreen{
		identity: ident,
		events:   events,
		input:    components.NewTextInput(components.InputText, "", 64, 40),
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "RENAME", Action: func() tea.Cmd { return s.enter(modeRename) }},
		{Label: "RECOVER ACCOUNT", Action: func() tea.Cmd { return s.enter(modeRecover) }},
		{Label: "SHOW RECOVERY KEY", Action: func() tea.Cmd {
			s.showKey = !s.showKey
			return nil
		}},
		{Label: "LOG OUT", Action: func() tea.Cmd { return s.enter(modeConfirmLogout) }},
		{Label: "BACK", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	})
	return s
}

func (s *ProfileScreen) Init() tea.Cmd {
	ident := s.identity
	return s.load("", func(ctx context.Context) (*store.Profile, error) {
		return ident.Current(ctx)
	})
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

// HandlesBack lets esc leave a form instead of the screen.
func (s *ProfileScreen) HandlesBack() bool {
	return s.mode != modeMenu
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeRename, modeRecover:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeConfirmLogout:
		return []layout.KeyHint{
			{Key: "Y", Description: "Log out"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// load runs op, then reloads the profile's stats. notice is shown once op
// succeeds.
func (s *ProfileScreen) load(notice string, op func(ctx context.Context) (*store.Profile, error)) tea.Cmd {
	events := s.events
	return func() tea.Msg {
		ctx := context.Background()
		p, err := op(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		var stats store.Stats
		if events != nil {
			if stats, err = events.ProfileStats(ctx, p.ID); err != nil {
				return loadedMsg{profile: p, err: err}
			}
		}
		return loadedMsg{profile: p, stats: stats, notice: notice}
	}
}

func (s *ProfileScreen) enter(m mode) tea.Cmd {
	s.mode = m
	s.errMsg = ""
	s.notice = ""
	s.input.Reset()
	switch m {
	case modeRename:
		s.input.SetPlaceholder("new username")
		if s.profile != nil {
			s.input.SetValue(s.profile.ID)
		}
	case modeRecover:
		s.input.SetPlaceholder("word-word-word-word")
	}
	return nil
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			if msg.profile == nil {
				return s, nil
			}
		} else {
			s.mode = modeMenu
			s.errMsg = ""
			s.notice = msg.notice
		}
		s.profile = msg.profile
		s.stats = msg.stats
		p := msg.profile
		return s, func() tea.Msg { return screen.ProfileUpdatedMsg{Profile: p} }

	case tea.KeyMsg:
		switch s.mode {
		case modeRename, modeRecover:
			return s, s.handleFormKey(msg)
		case modeConfirmLogout:
			return s, s.handleLogoutKey(msg)
		}
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ProfileScreen) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.mode = modeMenu
		s.errMsg = ""
		return nil
	case "enter":
		value := s.input.Value()
		ident := s.identity
		if s.mode == modeRename {
			return s.load("Username updated.", func(ctx context.Context) (*store.Profile, error) {
				return ident.Rename(ctx, value)
			})
		}
		return s.load("Account recovered.", func(ctx context.Context) (*store.Profile, error) {
			return ident.Recover(ctx, value)
		})
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *ProfileScreen) handleLogoutKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y":
		ident := s.identity
		s.showKey = false
		return s.load("Signed out. A new guest profile was created.", func(ctx context.Context) (*store.Profile, error) {
			if err := ident.Logout(ctx); err != nil {
				return nil, err
			}
			return ident.Current(ctx)
		})
	case "n", "esc":
		s.mode = modeMenu
	}
	return nil
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	if s.profile != nil {
		sections = append(sections, s.renderCard(cw), s.renderStats(cw))
	}

	switch s.mode {
	case modeRename:
		sections = append(sections, formPrompt("Choose a username (3-16 letters, digits, _ or -):")+"\n"+s.input.View())
	case modeRecover:
		sections = append(sections, formPrompt("Enter your four word recovery key:")+"\n"+s.input.View())
	case modeConfirmLogout:
		sections = append(sections, components.Banner("LOG OUT? [Y/N]", theme.Accent, cw))
	default:
		sections = append(sections, s.menu.View())
	}

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	} else if s.notice != "" && s.mode == modeMenu {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).Render(s.notice))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func formPrompt(text string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
}

func (s *ProfileScreen) renderCard(cw int) string {
	name := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(s.profile.ID)
	credits := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(fmt.Sprintf("¤ %d credits", s.profile.TotalScore))
	key := strings.Repeat("•", 12)
	if s.showKey {
		key = s.profile.RecoveryKey
	}
	lines := []string{
		name,
		credits,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Recovery key: ") + key,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Since " + s.profile.CreatedAt.Local().Format("2006-01-02")),
	}
	return components.ArcadeCard(strings.Join(lines, "\n"), cw)
}

func (s *ProfileScreen) renderStats(cw int) string {
	st := s.stats
	accuracy := "-"
	if st.QuestionsTotal > 0 {
		accuracy = fmt.Sprintf("%d%%", st.QuestionsRight*100/st.QuestionsTotal)
	}
	rows := []string{
		fmt.Sprintf("QUIZZES    %3d   accuracy %s   +%d", st.Quizzes, accuracy, st.QuizCredits),
		fmt.Sprintf("BREACHES   %3d   won %d   +%d", st.Breaches, st.BreachesWon, st.BreachCredits),
		fmt.Sprintf("BLACKJACK  %3d   won %d   net %+d", st.Hands, st.HandsWon, st.BlackjackNet),
	}
	return lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Render(strings.Join(rows, "\n"))
}
