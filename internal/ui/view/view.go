package view

import (
	"fmt"
	"time"

	"pomodoro/internal/core/session"
)

// State is everything the front-end needs to render a session.
type State struct {
	Mode        string
	Clock       string
	Cycle       string
	ActionLabel string
	Progress    float64
	ShowReset   bool
	ShowPaused  bool
	Status      string
}

// FromStatus maps a session status to display values.
func FromStatus(status session.Status) State {
	state := State{
		Mode:        ModeLabel(status.Phase),
		Clock:       FormatClock(status.Remaining),
		Cycle:       fmt.Sprintf("Cycle: %d / %d", status.Cycles, status.CyclesBeforeLongBreak),
		ActionLabel: ActionLabel(status.Phase),
		Progress:    status.Progress,
		ShowReset:   status.Phase != session.PhaseIdle,
		ShowPaused:  status.Phase.Paused(),
	}
	state.Status = state.Mode + " " + state.Clock
	if state.ShowPaused {
		state.Status += " (paused)"
	}
	return state
}

// ModeLabel returns the heading shown for a phase.
func ModeLabel(phase session.Phase) string {
	switch phase {
	case session.PhaseWork:
		return "Focus"
	case session.PhaseShortBreak:
		return "Short Break"
	case session.PhaseLongBreak:
		return "Long Break"
	case session.PhasePausedWork:
		return "Focus"
	case session.PhasePausedBreak:
		return "Break"
	default:
		return "Ready"
	}
}

// ActionLabel returns the text of the start/pause/resume button.
func ActionLabel(phase session.Phase) string {
	switch {
	case phase == session.PhaseIdle:
		return "Start"
	case phase.Paused():
		return "Resume"
	default:
		return "Pause"
	}
}

// FormatClock renders a duration as MM:SS, rounding down to whole seconds.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
