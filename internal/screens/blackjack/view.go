package blackjack

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	bj "github.com/abhisek/unitutor/internal/blackjack"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

var cardBack = lipgloss.NewStyle().
	Foreground(theme.Primary).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Primary).
	Width(5).
	Align(lipgloss.Center)

func renderCard(c bj.Card) string {
	fg := theme.Text
	if c.Red() {
		fg = theme.Error
	}
	return lipgloss.NewStyle().
		Foreground(fg).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(5).
		Align(lipgloss.Center).
		Render(c.String())
}

func renderHand(label string, cards []bj.Card, hidden, score int) string {
	parts := make([]string, 0, len(cards)+hidden)
	for _, c := range cards {
		parts = append(parts, renderCard(c))
	}
	for range hidden {
		parts = append(parts, cardBack.Render("▒▒▒"))
	}
	heading := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%s  [%d]", label, score))
	if len(parts) == 0 {
		return heading
	}
	return heading + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s *BlackjackScreen) View(width, height int) string {
	cw := min(max(width-8, 40), 80)
	var sections []string

	balance := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("BALANCE ¤ %d", s.credits()))
	sections = append(sections, balance)

	switch s.game.Phase() {
	case bj.Betting:
		sections = append(sections, s.renderBetting(cw))
	default:
		dealer, hidden := s.game.Dealer()
		sections = append(sections,
			renderHand("DEALER", dealer, hidden, s.game.DealerScore()),
			renderHand(fmt.Sprintf("YOU  bet ¤ %d", s.game.Bet()), s.game.Player(), 0, s.game.PlayerScore()),
		)
		if r := s.game.Result(); r != bj.ResultNone {
			fg := theme.Error
			switch {
			case r.Won():
				fg = theme.Success
			case r == bj.ResultPush:
				fg = theme.ArcadeCyan
			}
			sections = append(sections, components.Banner(r.Message(), fg, cw))
		}
	}

	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (s *BlackjackScreen) renderBetting(cw int) string {
	title := components.Banner("PLACE YOUR BET", theme.Primary, cw)
	body := title + "\n\n" + s.input.View()
	if bj.CanClaimFaucet(s.credits()) {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).
			Render(fmt.Sprintf("Out of credits. Press F to claim ¤ %d from the faucet.", bj.FaucetAmount))
	}
	return body
}
