package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains blink timing values.
type Config struct {
	Visible time.Duration
	Hidden  time.Duration
}

// DefaultConfig returns a slow blink suited to a paused clock.
func DefaultConfig() Config {
	return Config{
		Visible: 700 * time.Millisecond,
		Hidden:  400 * time.Millisecond,
	}
}

// Engine alternates a visibility flag while running. It is used to blink the
// clock face while the countdown is paused.
type Engine struct {
	mu      sync.Mutex
	config  Config
	apply   func(visible bool)
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New creates a new blink engine. apply is called from the engine goroutine.
func New(config Config, apply func(visible bool)) *Engine {
	if config.Visible <= 0 || config.Hidden <= 0 {
		config = DefaultConfig()
	}
	return &Engine{
		config: config,
		apply:  apply,
	}
}

// Start begins blinking. Starting a running engine is a no-op.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	engine.cancel = cancel
	engine.stopped = stopped

	go func() {
		defer close(stopped)
		engine.run(runCtx)
	}()
}

// Stop terminates blinking and leaves the target visible.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, stopped := engine.cancel, engine.stopped
	engine.cancel = nil
	engine.stopped = nil
	engine.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
	engine.apply(true)
}

// Running reports whether the engine is blinking.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) run(ctx context.Context) {
	for {
		engine.apply(true)
		if !sleepWithContext(ctx, engine.config.Visible) {
			return
		}
		engine.apply(false)
		if !sleepWithContext(ctx, engine.config.Hidden) {
			return
		}
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
