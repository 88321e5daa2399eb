package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	workMin   *widget.Entry
	breakMin  *widget.Entry
	chime     *widget.Check
	volume    *widget.Slider
	chimeFile *widget.Entry
	idleCheck *widget.Check
	idleMin   *widget.Entry
	overlay   *widget.Check
	autostart *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		workMin:   widget.NewEntry(),
		breakMin:  widget.NewEntry(),
		chime:     widget.NewCheck("Play chime when an interval ends", nil),
		volume:    widget.NewSlider(0, 1),
		chimeFile: widget.NewEntry(),
		idleCheck: widget.NewCheck("Pause work when I am away", nil),
		idleMin:   widget.NewEntry(),
		overlay:   widget.NewCheck("Show a break reminder window", nil),
		autostart: widget.NewCheck("Launch at login", nil),
	}
	prefs.volume.Step = 0.05
	prefs.chimeFile.SetPlaceHolder("built-in chime (.wav or .mp3 path)")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work for"), prefs.workMin, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break for"), prefs.breakMin, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Chime", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.chime,
		widget.NewLabel("Volume"),
		prefs.volume,
		prefs.chimeFile,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.idleCheck,
		container.NewHBox(widget.NewLabel("Away after"), prefs.idleMin, widget.NewLabel("min")),
		prefs.overlay,
		prefs.autostart,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 480))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workMin.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Minutes())))
	prefs.breakMin.SetText(fmt.Sprintf("%d", int(settings.BreakDuration.Minutes())))
	prefs.chime.SetChecked(settings.ChimeEnabled)
	prefs.volume.SetValue(settings.ChimeVolume)
	prefs.chimeFile.SetText(settings.ChimeFile)
	prefs.idleCheck.SetChecked(settings.IdlePauseEnabled)
	prefs.idleMin.SetText(fmt.Sprintf("%d", int(settings.IdlePauseAfter.Minutes())))
	prefs.overlay.SetChecked(settings.BreakOverlay)
	prefs.autostart.SetChecked(settings.Autostart)
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workMin.Text); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.breakMin.Text); ok {
		settings.BreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.idleMin.Text); ok {
		settings.IdlePauseAfter = time.Duration(minutes) * time.Minute
	}

	settings.ChimeEnabled = prefs.chime.Checked
	settings.ChimeVolume = prefs.volume.Value
	settings.ChimeFile = strings.TrimSpace(prefs.chimeFile.Text)
	settings.IdlePauseEnabled = prefs.idleCheck.Checked
	settings.BreakOverlay = prefs.overlay.Checked
	settings.Autostart = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
