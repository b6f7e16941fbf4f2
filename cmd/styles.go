package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/fman/internal/status"
)

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtext = lipgloss.Color("#a6adc8")
	colorPink    = lipgloss.Color("#f5c2e7")
	colorRed     = lipgloss.Color("#f38ba8")
	colorPeach   = lipgloss.Color("#fab387")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorTeal    = lipgloss.Color("#94e2d5")
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(colorPeach)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle   = lipgloss.NewStyle().Foreground(colorText)
	headerStyle  = lipgloss.NewStyle().Foreground(colorPink).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(colorTeal)
)

// stateLabel renders a terminal job state.
func stateLabel(state string) string {
	switch state {
	case status.Done.String():
		return successStyle.Render("✔ done")
	case status.Failed.String():
		return errorStyle.Render("✖ failed")
	default:
		return warnStyle.Render(state)
	}
}

// field renders an aligned "label: value" row.
func field(label string, value any) string {
	return labelStyle.Width(10).Render(label+":") + " " + valueStyle.Render(fmt.Sprint(value))
}

// formatDuration returns a more user-friendly duration string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	d = d.Round(time.Second)

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		m := d / time.Minute
		s := (d % time.Minute) / time.Second
		return fmt.Sprintf("%dm %ds", m, s)
	} else {
		h := d / time.Hour
		m := (d % time.Hour) / time.Minute
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
