package overlay

import (
	"image/color"

	"pomodoro/internal/core/display"
	"pomodoro/internal/core/interval"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	overlayWidth  = float32(320)
	overlayHeight = float32(180)
	overlayAlpha  = uint8(0xd9)
)

// Window is a compact undecorated reminder shown while a break runs.
type Window struct {
	window     fyne.Window
	background *canvas.Rectangle
	title      *canvas.Text
	timerLabel *canvas.Text
	skipButton *widget.Button
	visible    bool
	onSkip     func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the break overlay; it starts hidden.
func New(app fyne.App) *Window {
	window := app.NewWindow("Break")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash windows have no native frame.
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 24, G: 48, B: 28, A: overlayAlpha})

	title := canvas.NewText("Time for a break", color.White)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 20

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 32

	overlay := &Window{
		window:     window,
		background: background,
		title:      title,
		timerLabel: timerLabel,
	}
	overlay.skipButton = widget.NewButton("Skip break", func() {
		if overlay.onSkip != nil {
			overlay.onSkip()
		}
	})

	content := container.NewVBox(title, timerLabel, container.NewCenter(overlay.skipButton))
	window.SetContent(container.NewStack(background, container.NewPadded(container.NewCenter(content))))
	window.Resize(fyne.NewSize(overlayWidth, overlayHeight))
	return overlay
}

// SetOnSkip sets the skip handler.
func (overlay *Window) SetOnSkip(handler func()) {
	overlay.onSkip = handler
}

// Update shows the overlay during a running break and hides it otherwise.
// Must run on the UI goroutine.
func (overlay *Window) Update(view display.View, enabled bool) {
	inBreak := view.Phase == interval.PhaseBreak
	if !enabled || !inBreak {
		overlay.Hide()
		return
	}

	overlay.timerLabel.Text = view.Clock
	overlay.timerLabel.Refresh()
	if !overlay.visible {
		overlay.visible = true
		overlay.window.CenterOnScreen()
		overlay.window.Show()
		overlay.window.RequestFocus()
	}
}

// Hide closes the overlay.
func (overlay *Window) Hide() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	overlay.window.Hide()
}

// Visible reports whether the overlay is showing.
func (overlay *Window) Visible() bool {
	return overlay.visible
}
