package terminal

import (
	"pomodoro/internal/core/display"
	"pomodoro/internal/core/interval"
	"pomodoro/internal/core/timekeeper"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Controller is the part of the TimeKeeper the terminal drives.
type Controller interface {
	Snapshot() interval.Snapshot
	TogglePause()
	Reset()
	Skip()
}

type eventMsg timekeeper.Event

type eventsClosedMsg struct{}

// Model is the bubbletea model for the terminal timer.
type Model struct {
	controller Controller
	events     <-chan timekeeper.Event
	view       display.View
	progress   progress.Model
	renderer   *Renderer
	width      int
	height     int
	notice     string
}

// New creates a Model reading state from controller and refreshing on events.
func New(controller Controller, events <-chan timekeeper.Event) Model {
	return Model{
		controller: controller,
		events:     events,
		view:       display.Render(controller.Snapshot()),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		renderer:   NewRenderer(DefaultWidth),
		width:      DefaultWidth,
		height:     DefaultHeight,
	}
}

// Init starts listening for TimeKeeper events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case " ", "enter", "p":
			m.controller.TogglePause()
		case "r":
			m.controller.Reset()
		case "s":
			m.controller.Skip()
		default:
			return m, nil
		}
		m.notice = ""
		m.view = display.Render(m.controller.Snapshot())
		return m, nil

	case eventMsg:
		m.view = display.Render(msg.Snapshot)
		switch msg.Type {
		case timekeeper.EventCompleted:
			m.notice = msg.Previous.Label() + " finished"
		case timekeeper.EventIdlePause:
			m.notice = msg.Message
		}
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	return m.renderer.Render(m.view, m.progress.ViewAs(m.view.Progress), m.notice)
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}
