package interval

import (
	"time"

	"pomodoro/internal/core/model"
)

// Notifier is told when a countdown reaches zero. Implementations must not block.
type Notifier interface {
	PlayChime()
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func()

// PlayChime calls fn.
func (fn NotifierFunc) PlayChime() {
	fn()
}

// Clock is the work/break state machine. It is not safe for concurrent use;
// callers serialize access.
//
// The state is an active phase (Working or Break) plus a paused flag, so the
// phase to resume is always the active one.
type Clock struct {
	config    model.ClockConfig
	active    Phase
	paused    bool
	remaining uint
	notifier  Notifier
}

// New creates a clock paused at the start of a working interval.
func New(config model.ClockConfig) *Clock {
	clock := &Clock{config: config.Normalized()}
	clock.Reset()
	return clock
}

// SetNotifier sets the chime target. A nil notifier disables chimes.
func (clock *Clock) SetNotifier(notifier Notifier) {
	clock.notifier = notifier
}

// Tick advances the countdown by one second unless paused. It returns true
// when the interval completed, after the chime was signalled and the phase
// switched.
func (clock *Clock) Tick() bool {
	if clock.paused {
		return false
	}
	if clock.remaining > 0 {
		clock.remaining--
	}
	if clock.remaining > 0 {
		return false
	}

	if clock.notifier != nil {
		clock.notifier.PlayChime()
	}
	clock.switchPhase()
	return true
}

// TogglePause pauses a running clock or resumes a paused one. Remaining time
// is untouched.
func (clock *Clock) TogglePause() {
	clock.paused = !clock.paused
}

// Reset returns to the initial state: paused, working, full duration.
func (clock *Clock) Reset() {
	clock.active = PhaseWorking
	clock.paused = true
	clock.remaining = clock.durationOf(PhaseWorking)
}

// Skip ends the current interval early without a chime. The paused flag is kept.
func (clock *Clock) Skip() {
	clock.switchPhase()
}

// Reconfigure applies new durations. An interval that has not started yet
// takes the new full duration; otherwise remaining time is clamped.
func (clock *Clock) Reconfigure(config model.ClockConfig) {
	previous := clock.durationOf(clock.active)
	clock.config = config.Normalized()
	current := clock.durationOf(clock.active)

	if clock.remaining == previous || clock.remaining > current {
		clock.remaining = current
	}
}

// Phase returns PhasePaused while paused, otherwise the active phase.
func (clock *Clock) Phase() Phase {
	if clock.paused {
		return PhasePaused
	}
	return clock.active
}

// ResumePhase returns the phase restored by the next unpause.
func (clock *Clock) ResumePhase() Phase {
	return clock.active
}

// Remaining returns the seconds left in the current interval.
func (clock *Clock) Remaining() uint {
	return clock.remaining
}

// ProgressFraction returns the elapsed share of the current interval in [0, 1].
func (clock *Clock) ProgressFraction() float64 {
	duration := clock.durationOf(clock.active)
	if duration == 0 {
		return 1
	}
	progress := float64(duration-min(clock.remaining, duration)) / float64(duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Snapshot copies the current state.
func (clock *Clock) Snapshot() Snapshot {
	return Snapshot{
		Phase:       clock.Phase(),
		ResumePhase: clock.active,
		Remaining:   clock.remaining,
		Duration:    clock.durationOf(clock.active),
		Progress:    clock.ProgressFraction(),
	}
}

func (clock *Clock) switchPhase() {
	clock.active = clock.active.Next()
	clock.remaining = clock.durationOf(clock.active)
}

func (clock *Clock) durationOf(phase Phase) uint {
	if phase == PhaseBreak {
		return seconds(clock.config.Break)
	}
	return seconds(clock.config.Work)
}

func seconds(duration time.Duration) uint {
	if duration <= 0 {
		return 0
	}
	return uint(duration / time.Second)
}
