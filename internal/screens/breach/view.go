package breach

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	bp "github.com/abhisek/unitutor/internal/breach"
	"github.com/abhisek/unitutor/internal/ui/components"
	"github.com/abhisek/unitutor/internal/ui/theme"
)

func (s *BreachScreen) View(width, height int) string {
	if s.ctrl == nil {
		msg := "Initializing breach..."
		if s.errMsg != "" {
			msg = "BREACH UNAVAILABLE\n\n" + s.errMsg
		}
		return components.Centered(msg, theme.Error, width, height)
	}

	cw := components.ContentWidth(width)

	left := lipgloss.JoinVertical(lipgloss.Left,
		sectionTitle("CODE MATRIX"),
		s.renderGrid(),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		sectionTitle("SEQUENCE REQUIRED TO UPLOAD"),
		renderTargets(s.state.Targets),
		"",
		sectionTitle("BUFFER"),
		renderBuffer(s.state.Buffer),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	sections := []string{
		components.TimerBar(s.state.TimeRemaining, s.state.TimeLimit, lipgloss.Width(body)).View(),
		body,
		s.renderStatus(cw),
	}
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func sectionTitle(t string) string {
	return lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(t)
}

func (s *BreachScreen) renderGrid() string {
	c := s.state.Constraint
	active := s.state.Status == bp.StatusActive

	var b strings.Builder
	for r, row := range s.state.Grid.Rows() {
		for _, cell := range row {
			p := bp.Position{Row: cell.Row, Col: cell.Col}
			label := " " + string(cell.Value) + " "
			if cell.Used {
				label = " " + strings.Repeat("·", len(cell.Value)) + " "
			}

			style := theme.CellIdle
			switch {
			case cell.Used:
				style = theme.CellUsed
			case active && p == s.cursor:
				style = theme.CellCursor
			case active && c.Allows(p):
				style = theme.CellActiveLine
			}
			b.WriteString(style.Render(label))
		}
		if r < s.state.Grid.Size()-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1).
		Render(b.String())
}

func renderTargets(targets []bp.Target) string {
	var lines []string
	for _, t := range targets {
		seq := make([]string, len(t.Sequence))
		for i, sym := range t.Sequence {
			seq[i] = string(sym)
		}
		mark := "[ ]"
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if t.Completed {
			mark = "[✓]"
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s %-12s %-12s +%d", mark, t.Label, strings.Join(seq, " "), t.Reward)))
	}
	return strings.Join(lines, "\n")
}

func renderBuffer(buf bp.Buffer) string {
	syms := buf.Symbols()
	slots := make([]string, buf.Cap())
	for i := range slots {
		if i < len(syms) {
			slots[i] = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(string(syms[i]))
		} else {
			slots[i] = lipgloss.NewStyle().Foreground(theme.Border).Render("__")
		}
	}
	return strings.Join(slots, " ")
}

func (s *BreachScreen) renderStatus(cw int) string {
	switch {
	case s.state.Status == bp.StatusWon && !s.paid:
		return components.Banner(fmt.Sprintf("ACCESS GRANTED ▸ +%d CREDITS  (transferring...)", s.state.TotalReward), theme.Success, cw)
	case s.state.Status == bp.StatusWon:
		return components.Banner(fmt.Sprintf("ACCESS GRANTED ▸ %d CREDITS TRANSFERRED", s.reward), theme.Success, cw)
	case s.state.Status == bp.StatusLost && s.state.TimeRemaining == 0:
		return components.Banner("BREACH FAILED ▸ TIME EXPIRED", theme.Error, cw)
	case s.state.Status == bp.StatusLost:
		return components.Banner("BREACH FAILED ▸ BUFFER OVERFLOW", theme.Error, cw)
	}

	line := fmt.Sprintf("LOCKED TO %s %d", s.state.Constraint.Axis(), s.state.Constraint.Index()+1)
	if s.state.TotalReward > 0 {
		line += fmt.Sprintf("   ▸ %d CREDITS SECURED", s.state.TotalReward)
	}
	if len(s.last.Completed) > 0 {
		line += "   DAEMON UPLOADED"
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)
}
