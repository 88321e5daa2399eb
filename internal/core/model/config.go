package model

import "time"

const (
	DefaultWorkDuration  = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// ClockConfig defines the length of each interval.
type ClockConfig struct {
	Work  time.Duration
	Break time.Duration
}

// DefaultClockConfig returns the classic 25/5 schedule.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		Work:  DefaultWorkDuration,
		Break: DefaultBreakDuration,
	}
}

// Normalized replaces durations shorter than one second with the defaults
// and truncates the rest to whole seconds.
func (config ClockConfig) Normalized() ClockConfig {
	if config.Work < time.Second {
		config.Work = DefaultWorkDuration
	}
	if config.Break < time.Second {
		config.Break = DefaultBreakDuration
	}
	config.Work = config.Work.Truncate(time.Second)
	config.Break = config.Break.Truncate(time.Second)
	return config
}

// TimeKeeperConfig contains runtime settings for the TimeKeeper.
type TimeKeeperConfig struct {
	Clock ClockConfig

	IdlePauseEnabled  bool
	IdlePauseAfter    time.Duration
	IdleCheckInterval time.Duration
}
