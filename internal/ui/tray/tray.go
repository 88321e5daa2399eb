package tray

import (
	"pomodoro/internal/core/display"
	"pomodoro/internal/core/interval"

	"fyne.io/fyne/v2"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons are shown per phase.
type Icons struct {
	Working fyne.Resource
	Break   fyne.Resource
	Paused  fyne.Resource
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnTogglePause func()
	OnSkip        func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       MenuHost
	title      string
	icons      Icons
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	menu       *fyne.Menu
	callbacks  Callbacks
	current    fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, title string, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		title:     title,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem(display.ActionStart, call(&manager.callbacks.OnTogglePause))
	manager.skipItem = fyne.NewMenuItem("Skip interval", call(&manager.callbacks.OnSkip))

	manager.menu = fyne.NewMenu(title,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", call(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.pauseItem,
		manager.skipItem,
		fyne.NewMenuItem("Reset", call(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", call(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", call(&manager.callbacks.OnQuit)),
	)
	host.SetSystemTrayMenu(manager.menu)

	return manager
}

// SetView updates the status line, pause label and icon.
func (manager *Manager) SetView(view display.View) {
	manager.statusItem.Label = view.Status
	manager.pauseItem.Label = view.Action
	manager.host.SetSystemTrayMenu(manager.menu)

	icon := manager.iconFor(view)
	if icon != nil && icon != manager.current {
		manager.current = icon
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) iconFor(view display.View) fyne.Resource {
	switch {
	case view.Paused:
		return manager.icons.Paused
	case view.Phase == interval.PhaseBreak:
		return manager.icons.Break
	default:
		return manager.icons.Working
	}
}

// call defers the callback lookup so handlers can be replaced after New.
func call(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
