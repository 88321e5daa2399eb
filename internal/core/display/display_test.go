package display

import (
	"testing"

	"pomodoro/internal/core/interval"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds uint
		expect  string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{60, "01:00"},
		{299, "04:59"},
		{1500, "25:00"},
		{6000, "100:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatClock(tt.seconds))
		})
	}
}

func TestPhaseLabel(t *testing.T) {
	assert.Equal(t, "Working", PhaseLabel(interval.Snapshot{Phase: interval.PhaseWorking, ResumePhase: interval.PhaseWorking}))
	assert.Equal(t, "Break", PhaseLabel(interval.Snapshot{Phase: interval.PhaseBreak, ResumePhase: interval.PhaseBreak}))
	assert.Equal(t, "Paused (Working)", PhaseLabel(interval.Snapshot{Phase: interval.PhasePaused, ResumePhase: interval.PhaseWorking}))
	assert.Equal(t, "Paused (Break)", PhaseLabel(interval.Snapshot{Phase: interval.PhasePaused, ResumePhase: interval.PhaseBreak}))
}

func TestRender(t *testing.T) {
	view := Render(interval.Snapshot{
		Phase:       interval.PhasePaused,
		ResumePhase: interval.PhaseWorking,
		Remaining:   1500,
		Duration:    1500,
	})

	assert.Equal(t, View{
		Clock:  "25:00",
		Label:  "Paused (Working)",
		Status: "Paused (Working) 25:00",
		Action: ActionStart,
		Paused: true,
		Phase:  interval.PhasePaused,
	}, view)

	view = Render(interval.Snapshot{
		Phase:       interval.PhaseBreak,
		ResumePhase: interval.PhaseBreak,
		Remaining:   61,
		Duration:    300,
		Progress:    1.4,
	})
	assert.Equal(t, "01:01", view.Clock)
	assert.Equal(t, ActionPause, view.Action)
	assert.Equal(t, 1.0, view.Progress)
	assert.False(t, view.Paused)
}

type toggleCounter struct {
	calls int
}

func (counter *toggleCounter) TogglePause() {
	counter.calls++
}

func TestRelay(t *testing.T) {
	counter := &toggleCounter{}
	press := Relay(counter)

	press()
	press()

	assert.Equal(t, 2, counter.calls)
}
