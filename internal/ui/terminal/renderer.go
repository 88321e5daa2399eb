package terminal

import (
	"strings"

	"pomodoro/internal/core/display"
	"pomodoro/internal/core/interval"

	"github.com/charmbracelet/lipgloss"
)

var (
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2)

	workStyle   = clockStyle.Foreground(lipgloss.Color("203"))
	breakStyle  = clockStyle.Foreground(lipgloss.Color("78"))
	pausedStyle = clockStyle.Foreground(lipgloss.Color("245"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			MarginTop(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

const helpText = "space: start/pause • s: skip • r: reset • q: quit"

// Renderer lays out the timer for the terminal.
type Renderer struct {
	width int
}

// NewRenderer creates a new Renderer instance
func NewRenderer(width int) *Renderer {
	return &Renderer{width: width}
}

// SetWidth updates the renderer width
func (r *Renderer) SetWidth(width int) {
	r.width = width
}

// Render renders the timer view with a pre-rendered progress bar.
func (r *Renderer) Render(view display.View, bar string, notice string) string {
	var b strings.Builder

	b.WriteString(styleFor(view).Render(view.Clock))
	b.WriteString("\n\n")
	b.WriteString(bar)
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(view.Label))
	b.WriteString("\n")
	if notice != "" {
		b.WriteString(noticeStyle.Render(notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(helpText))
	b.WriteString("\n")

	return lipgloss.PlaceHorizontal(r.width, lipgloss.Center, b.String())
}

func styleFor(view display.View) lipgloss.Style {
	switch {
	case view.Paused:
		return pausedStyle
	case view.Phase == interval.PhaseBreak:
		return breakStyle
	default:
		return workStyle
	}
}
