package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/unitutor/internal/ui/theme"
)

// ProgressBar displays a horizontal bar. Below LowAt the bar turns red.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	LowAt   float64
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

// TimerBar is a countdown bar showing the seconds left.
func TimerBar(remaining, limit, width int) ProgressBar {
	pct := 0.0
	if limit > 0 {
		pct = float64(remaining) / float64(limit)
	}
	return ProgressBar{
		Label:   "TIME",
		Percent: pct,
		Suffix:  fmt.Sprintf("%2ds", remaining),
		LowAt:   0.25,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + p.Suffix
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	fill := theme.ProgressFilled
	if p.Percent < p.LowAt {
		fill = theme.ProgressLow
	}

	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}
	return result
}
