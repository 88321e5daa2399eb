package window

import (
	"context"
	"image/color"

	"pomodoro/internal/core/display"
	"pomodoro/internal/core/interval"
	"pomodoro/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	clockTextSize = 64
	progressWidth = 150
	minSide       = 300
)

var (
	workColor  = color.NRGBA{R: 214, G: 69, B: 65, A: 255}
	breakColor = color.NRGBA{R: 67, G: 160, B: 71, A: 255}
)

// Window is the main timer window.
type Window struct {
	window      fyne.Window
	clockText   *canvas.Text
	phaseLabel  *widget.Label
	progress    *widget.ProgressBar
	startButton *widget.Button
	blink       *animation.Engine
	view        display.View
}

// New creates the main window. onToggle is called for every Start/Pause press.
func New(app fyne.App, title string, onToggle func()) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	clockText := canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	clockText.Alignment = fyne.TextAlignCenter
	clockText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clockText.TextSize = clockTextSize

	phaseLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	startButton := widget.NewButtonWithIcon("Start/Pause", theme.MediaPlayIcon(), onToggle)
	startButton.Importance = widget.HighImportance

	content := container.NewVBox(
		layout.NewSpacer(),
		clockText,
		layout.NewSpacer(),
		container.NewCenter(container.NewGridWrap(fyne.NewSize(progressWidth, progress.MinSize().Height), progress)),
		layout.NewSpacer(),
		phaseLabel,
		layout.NewSpacer(),
		container.NewCenter(startButton),
	)

	minimum := canvas.NewRectangle(color.Transparent)
	minimum.SetMinSize(fyne.NewSize(minSide, minSide))

	window.SetContent(container.NewStack(minimum, container.NewPadded(content)))
	window.Resize(fyne.NewSize(500, 400))

	timer := &Window{
		window:      window,
		clockText:   clockText,
		phaseLabel:  phaseLabel,
		progress:    progress,
		startButton: startButton,
	}
	timer.blink = animation.New(animation.DefaultConfig(), func(visible bool) {
		fyne.Do(func() {
			timer.setClockVisible(visible)
		})
	})
	return timer
}

// Window returns the underlying fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
}

// Render updates every widget from view. Must run on the UI goroutine.
func (timer *Window) Render(view display.View) {
	timer.view = view
	timer.clockText.Text = view.Clock
	timer.clockText.Color = phaseColor(view)
	timer.clockText.Refresh()

	timer.phaseLabel.SetText(view.Label)
	timer.progress.SetValue(view.Progress)

	timer.startButton.SetText(view.Action)
	if view.Paused {
		timer.startButton.SetIcon(theme.MediaPlayIcon())
		timer.blink.Start(context.Background())
	} else {
		timer.startButton.SetIcon(theme.MediaPauseIcon())
		timer.blink.Stop()
	}
}

// Close stops the blink animation.
func (timer *Window) Close() {
	timer.blink.Stop()
}

func (timer *Window) setClockVisible(visible bool) {
	if visible {
		timer.clockText.Color = phaseColor(timer.view)
	} else {
		timer.clockText.Color = color.Transparent
	}
	timer.clockText.Refresh()
}

func phaseColor(view display.View) color.Color {
	if view.Paused {
		return theme.Color(theme.ColorNameDisabled)
	}
	if view.Phase == interval.PhaseBreak {
		return breakColor
	}
	return workColor
}
