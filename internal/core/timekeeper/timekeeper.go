package timekeeper

import (
	"errors"
	"sync"
	"time"

	"pomodoro/internal/core/interval"
	"pomodoro/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
}

// TimeKeeper drives an interval clock on a fixed cadence and publishes its state.
type TimeKeeper struct {
	mu            sync.Mutex
	clock         *interval.Clock
	config        model.TimeKeeperConfig
	options       Config
	notifier      interval.Notifier
	idleChecker   IdleChecker
	lastIdleCheck time.Time
	events        []chan Event
	stopCh        chan struct{}
	doneCh        chan struct{}
	running       bool
}

// New creates a TimeKeeper with the provided configuration. The clock starts paused.
func New(config model.TimeKeeperConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	config = normalizeConfig(config)

	keeper := &TimeKeeper{
		config:  config,
		options: options,
		clock:   interval.New(config.Clock),
	}
	keeper.clock.SetNotifier(interval.NotifierFunc(keeper.dispatchChimeLocked))
	return keeper
}

// SetNotifier injects the chime target.
func (keeper *TimeKeeper) SetNotifier(notifier interval.Notifier) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.notifier = notifier
}

// SetIdleChecker injects an idle checker.
func (keeper *TimeKeeper) SetIdleChecker(checker IdleChecker) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.idleChecker = checker
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.stopCh = make(chan struct{})
	keeper.doneCh = make(chan struct{})
	keeper.lastIdleCheck = time.Time{}
	stopCh, doneCh := keeper.stopCh, keeper.doneCh
	keeper.emitLocked(EventStateChange, time.Now())
	keeper.mu.Unlock()

	go keeper.run(stopCh, doneCh)
}

// Stop terminates the ticking loop and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	close(keeper.stopCh)
	keeper.running = false
	doneCh := keeper.doneCh
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	<-doneCh
	for _, ch := range events {
		close(ch)
	}
}

// TogglePause pauses a running countdown or resumes a paused one.
func (keeper *TimeKeeper) TogglePause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.clock.TogglePause()
	keeper.lastIdleCheck = time.Time{}
	keeper.emitLocked(EventStateChange, time.Now())
}

// Reset returns the countdown to a paused, full working interval.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.clock.Reset()
	keeper.emitLocked(EventStateChange, time.Now())
}

// Skip ends the current interval early without a chime.
func (keeper *TimeKeeper) Skip() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.clock.Skip()
	keeper.emitLocked(EventStateChange, time.Now())
}

// UpdateConfig applies new durations and idle settings.
func (keeper *TimeKeeper) UpdateConfig(config model.TimeKeeperConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.config = normalizeConfig(config)
	keeper.clock.Reconfigure(keeper.config.Clock)
	keeper.lastIdleCheck = time.Time{}
	keeper.emitLocked(EventStateChange, time.Now())
}

// Snapshot returns the current clock state.
func (keeper *TimeKeeper) Snapshot() interval.Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.clock.Snapshot()
}

func (keeper *TimeKeeper) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			keeper.tick(tickTime)
		}
	}
}

func (keeper *TimeKeeper) tick(tickTime time.Time) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	if keeper.clock.Phase() == interval.PhaseWorking && keeper.handleIdleCheckLocked(tickTime) {
		return
	}
	if keeper.clock.Phase() == interval.PhasePaused {
		return
	}

	previous := keeper.clock.Phase()
	if keeper.clock.Tick() {
		keeper.emitEventLocked(Event{
			Type:     EventCompleted,
			Snapshot: keeper.clock.Snapshot(),
			Previous: previous,
			At:       tickTime,
		})
		keeper.emitLocked(EventStateChange, tickTime)
		return
	}
	keeper.emitLocked(EventProgress, tickTime)
}

// handleIdleCheckLocked pauses the clock when the user has been idle long
// enough and reports whether it did.
func (keeper *TimeKeeper) handleIdleCheckLocked(now time.Time) bool {
	if !keeper.config.IdlePauseEnabled || keeper.idleChecker == nil {
		return false
	}
	if !keeper.lastIdleCheck.IsZero() && now.Sub(keeper.lastIdleCheck) < keeper.config.IdleCheckInterval {
		return false
	}
	keeper.lastIdleCheck = now

	idleDuration, err := keeper.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			keeper.config.IdlePauseEnabled = false
		}
		keeper.emitEventLocked(Event{
			Type:     EventIdleError,
			Snapshot: keeper.clock.Snapshot(),
			Message:  err.Error(),
			At:       now,
		})
		return false
	}
	if idleDuration < keeper.config.IdlePauseAfter {
		return false
	}

	keeper.clock.TogglePause()
	keeper.emitEventLocked(Event{
		Type:     EventIdlePause,
		Snapshot: keeper.clock.Snapshot(),
		Message:  "paused after " + idleDuration.Truncate(time.Second).String() + " idle",
		At:       now,
	})
	keeper.emitLocked(EventStateChange, now)
	return true
}

// dispatchChimeLocked runs under keeper.mu from inside clock.Tick. Notifiers
// must not block, so the call is made in place.
func (keeper *TimeKeeper) dispatchChimeLocked() {
	if keeper.notifier != nil {
		keeper.notifier.PlayChime()
	}
}

func (keeper *TimeKeeper) emitLocked(eventType EventType, at time.Time) {
	keeper.emitEventLocked(Event{
		Type:     eventType,
		Snapshot: keeper.clock.Snapshot(),
		At:       at,
	})
}

func (keeper *TimeKeeper) emitEventLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func normalizeConfig(config model.TimeKeeperConfig) model.TimeKeeperConfig {
	config.Clock = config.Clock.Normalized()
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	if config.IdlePauseAfter <= 0 {
		config.IdlePauseAfter = 5 * time.Minute
	}
	return config
}
