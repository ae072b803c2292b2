package session

// Phase represents the current Controller mode.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseWork        Phase = "work"
	PhaseShortBreak  Phase = "short_break"
	PhaseLongBreak   Phase = "long_break"
	PhasePausedWork  Phase = "paused_work"
	PhasePausedBreak Phase = "paused_break"
)

// Valid reports whether the phase is one of the six known phases.
func (phase Phase) Valid() bool {
	switch phase {
	case PhaseIdle, PhaseWork, PhaseShortBreak, PhaseLongBreak, PhasePausedWork, PhasePausedBreak:
		return true
	}
	return false
}

// Active reports whether a countdown is running in this phase.
func (phase Phase) Active() bool {
	return phase == PhaseWork || phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Paused reports whether the phase is a paused work or break.
func (phase Phase) Paused() bool {
	return phase == PhasePausedWork || phase == PhasePausedBreak
}

// Break reports whether the phase is a running short or long break.
func (phase Phase) Break() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}
