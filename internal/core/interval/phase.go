package interval

// Phase represents the countdown mode.
type Phase string

const (
	PhaseWorking Phase = "working"
	PhaseBreak   Phase = "break"
	PhasePaused  Phase = "paused"
)

// Label returns the human readable phase name.
func (phase Phase) Label() string {
	switch phase {
	case PhaseWorking:
		return "Working"
	case PhaseBreak:
		return "Break"
	case PhasePaused:
		return "Paused"
	default:
		return string(phase)
	}
}

// Next returns the phase that follows a completed interval.
func (phase Phase) Next() Phase {
	if phase == PhaseWorking {
		return PhaseBreak
	}
	return PhaseWorking
}

// Snapshot is an immutable copy of the clock state.
type Snapshot struct {
	Phase       Phase
	ResumePhase Phase
	Remaining   uint
	Duration    uint
	Progress    float64
}

// Paused reports whether the snapshot was taken while paused.
func (snapshot Snapshot) Paused() bool {
	return snapshot.Phase == PhasePaused
}
