package window

import (
	"testing"

	"pomodoro/internal/core/display"
	"pomodoro/internal/core/interval"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestRenderRunningView(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	timer := New(app, "Pomodoro", nil)
	timer.Render(display.Render(interval.Snapshot{
		Phase:       interval.PhaseBreak,
		ResumePhase: interval.PhaseBreak,
		Remaining:   299,
		Duration:    300,
		Progress:    1.0 / 300,
	}))

	assert.Equal(t, "04:59", timer.clockText.Text)
	assert.Equal(t, breakColor, timer.clockText.Color)
	assert.Equal(t, "Break", timer.phaseLabel.Text)
	assert.Equal(t, display.ActionPause, timer.startButton.Text)
	assert.InDelta(t, 1.0/300, timer.progress.Value, 1e-9)
	assert.Equal(t, "Pomodoro", timer.Window().Title())
	assert.False(t, timer.blink.Running())
}

func TestRenderPausedViewBlinks(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	timer := New(app, "Pomodoro", nil)
	timer.Render(display.Render(interval.Snapshot{
		Phase:       interval.PhasePaused,
		ResumePhase: interval.PhaseWorking,
		Remaining:   1500,
		Duration:    1500,
	}))
	assert.True(t, timer.blink.Running())
	timer.Close()

	assert.Equal(t, "25:00", timer.clockText.Text)
	assert.Equal(t, "Paused (Working)", timer.phaseLabel.Text)
	assert.Equal(t, display.ActionStart, timer.startButton.Text)
	assert.Equal(t, theme.Color(theme.ColorNameDisabled), timer.clockText.Color)
	assert.False(t, timer.blink.Running())
}

func TestStartButtonRelaysToggle(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	presses := 0
	timer := New(app, "Pomodoro", func() { presses++ })

	test.Tap(timer.startButton)
	test.Tap(timer.startButton)

	assert.Equal(t, 2, presses)
}

func TestWindowMinimumSize(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	timer := New(app, "Pomodoro", nil)
	size := timer.Window().Content().MinSize()

	assert.GreaterOrEqual(t, size.Width, float32(minSide))
	assert.GreaterOrEqual(t, size.Height, float32(minSide))
}
