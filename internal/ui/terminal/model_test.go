package terminal

import (
	"testing"

	"pomodoro/internal/core/interval"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeController struct {
	clock   *interval.Clock
	toggles int
	resets  int
	skips   int
}

func newFakeController() *fakeController {
	return &fakeController{clock: interval.New(model.DefaultClockConfig())}
}

func (c *fakeController) Snapshot() interval.Snapshot { return c.clock.Snapshot() }

func (c *fakeController) TogglePause() {
	c.toggles++
	c.clock.TogglePause()
}

func (c *fakeController) Reset() {
	c.resets++
	c.clock.Reset()
}

func (c *fakeController) Skip() {
	c.skips++
	c.clock.Skip()
}

func TestNewModel(t *testing.T) {
	m := New(newFakeController(), nil)

	assert.Equal(t, DefaultWidth, m.width)
	assert.Equal(t, DefaultHeight, m.height)
	assert.Equal(t, "25:00", m.view.Clock)
	assert.True(t, m.view.Paused)
	assert.Nil(t, m.Init())
}

func TestModelWindowResize(t *testing.T) {
	m := New(newFakeController(), nil)

	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestModelKeys(t *testing.T) {
	controller := newFakeController()
	m := New(controller, nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	assert.Equal(t, 1, controller.toggles)
	assert.False(t, m.view.Paused)
	assert.Equal(t, "Working", m.view.Label)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = updated.(Model)
	assert.Equal(t, 1, controller.skips)
	assert.Equal(t, interval.PhaseBreak, m.view.Phase)
	assert.Equal(t, "05:00", m.view.Clock)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = updated.(Model)
	assert.Equal(t, 1, controller.resets)
	assert.Equal(t, "25:00", m.view.Clock)
	assert.True(t, m.view.Paused)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, controller.toggles)
}

func TestModelQuit(t *testing.T) {
	m := New(newFakeController(), nil)

	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModelEvents(t *testing.T) {
	events := make(chan timekeeper.Event, 1)
	m := New(newFakeController(), events)

	clock := interval.New(model.DefaultClockConfig())
	clock.Skip()
	events <- timekeeper.Event{
		Type:     timekeeper.EventCompleted,
		Snapshot: clock.Snapshot(),
		Previous: interval.PhaseWorking,
	}

	msg := m.Init()()
	updated, cmd := m.Update(msg)
	m = updated.(Model)

	assert.NotNil(t, cmd)
	assert.Equal(t, "05:00", m.view.Clock)
	assert.Equal(t, "Working finished", m.notice)
	assert.Contains(t, m.View(), "Working finished")

	close(events)
	msg = cmd()
	assert.IsType(t, eventsClosedMsg{}, msg)

	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelView(t *testing.T) {
	m := New(newFakeController(), nil)

	out := m.View()

	assert.Contains(t, out, "25:00")
	assert.Contains(t, out, "Paused (Working)")
	assert.Contains(t, out, "space: start/pause")
}
