package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/store"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

const arcadeTitleFull = `██╗   ██╗███╗   ██╗██╗████████╗██╗   ██╗████████╗ ██████╗ ██████╗
██║   ██║████╗  ██║██║╚══██╔══╝██║   ██║╚══██╔══╝██╔═══██╗██╔══██╗
██║   ██║██╔██╗ ██║██║   ██║   ██║   ██║   ██║   ██║   ██║██████╔╝
██║   ██║██║╚██╗██║██║   ██║   ██║   ██║   ██║   ██║   ██║██╔══██╗
╚██████╔╝██║ ╚████║██║   ██║   ╚██████╔╝   ██║   ╚██████╔╝██║  ██║
 ╚═════╝ ╚═╝  ╚═══╝╚═╝   ╚═╝    ╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═╝`

const arcadeTitleCompact = "U · N · I · T · U · T · O · R"

// renderTitle returns the styled title block or compact fallback. The
// full art is wider than the content column and is centered on its own.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, style.Render(arcadeTitleFull))
}

// renderStatsBar renders the player summary in a bordered box matching content width.
func renderStatsBar(p *store.Profile, cw int, compact bool) string {
	userStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	creditStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	switch {
	case p == nil:
		stats = dimStyle.Render("CONNECTING...")
	case compact:
		stats = fmt.Sprintf("%s %s %s",
			userStyle.Render(p.ID),
			creditStyle.Render(fmt.Sprintf("¤%d", p.TotalScore)),
			quizStyle.Render(fmt.Sprintf("✎%d", p.QuizzesCompleted)),
		)
	default:
		stats = fmt.Sprintf("%s  %s  %s",
			userStyle.Render("▣ "+p.ID),
			creditStyle.Render(fmt.Sprintf("¤ %d CREDITS", p.TotalScore)),
			quizStyle.Render(fmt.Sprintf("✎ %d QUIZZES", p.QuizzesCompleted)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner warns that quizzes can only be loaded from JSON files.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No LLM API key set: only .json quizzes can be loaded (see unitutor --help)")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
