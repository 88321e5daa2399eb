// Package display turns clock snapshots into the strings and values shown by
// every surface, and relays the start/pause intent back to the clock.
package display

import (
	"fmt"

	"pomodoro/internal/core/interval"
)

const (
	ActionStart = "Start"
	ActionPause = "Pause"
)

// View is what a surface renders for one snapshot.
type View struct {
	Clock    string
	Label    string
	Status   string
	Action   string
	Progress float64
	Paused   bool
	Phase    interval.Phase
}

// Toggler receives the start/pause intent.
type Toggler interface {
	TogglePause()
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds uint) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PhaseLabel names the phase; a paused clock shows the phase it will resume.
func PhaseLabel(snapshot interval.Snapshot) string {
	if snapshot.Paused() {
		return fmt.Sprintf("%s (%s)", interval.PhasePaused.Label(), snapshot.ResumePhase.Label())
	}
	return snapshot.Phase.Label()
}

// Render builds the view for a snapshot.
func Render(snapshot interval.Snapshot) View {
	view := View{
		Clock:    FormatClock(snapshot.Remaining),
		Label:    PhaseLabel(snapshot),
		Progress: clamp(snapshot.Progress),
		Paused:   snapshot.Paused(),
		Phase:    snapshot.Phase,
		Action:   ActionPause,
	}
	if view.Paused {
		view.Action = ActionStart
	}
	view.Status = view.Label + " " + view.Clock
	return view
}

// Relay returns a button handler forwarding presses to toggler.
func Relay(toggler Toggler) func() {
	return func() {
		toggler.TogglePause()
	}
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
