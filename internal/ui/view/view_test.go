package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/session"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		remaining time.Duration
		expected  string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{61 * time.Second, "01:01"},
		{25 * time.Minute, "25:00"},
		{180 * time.Minute, "180:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatClock(tt.remaining), tt.remaining.String())
	}
}

func TestActionLabel(t *testing.T) {
	assert.Equal(t, "Start", ActionLabel(session.PhaseIdle))
	assert.Equal(t, "Pause", ActionLabel(session.PhaseWork))
	assert.Equal(t, "Pause", ActionLabel(session.PhaseShortBreak))
	assert.Equal(t, "Pause", ActionLabel(session.PhaseLongBreak))
	assert.Equal(t, "Resume", ActionLabel(session.PhasePausedWork))
	assert.Equal(t, "Resume", ActionLabel(session.PhasePausedBreak))
}

func TestFromStatus(t *testing.T) {
	state := FromStatus(session.Status{
		Phase:                 session.PhasePausedWork,
		Remaining:             12*time.Minute + 30*time.Second,
		Cycles:                2,
		CyclesBeforeLongBreak: 4,
		Progress:              0.5,
	})

	assert.Equal(t, State{
		Mode:        "Focus",
		Clock:       "12:30",
		Cycle:       "Cycle: 2 / 4",
		ActionLabel: "Resume",
		Progress:    0.5,
		ShowReset:   true,
		ShowPaused:  true,
		Status:      "Focus 12:30 (paused)",
	}, state)
}

func TestFromStatusIdle(t *testing.T) {
	state := FromStatus(session.Status{Phase: session.PhaseIdle, Remaining: 25 * time.Minute, CyclesBeforeLongBreak: 4})

	assert.Equal(t, "Ready", state.Mode)
	assert.Equal(t, "Start", state.ActionLabel)
	assert.False(t, state.ShowReset)
	assert.False(t, state.ShowPaused)
	assert.Equal(t, "Ready 25:00", state.Status)
}
