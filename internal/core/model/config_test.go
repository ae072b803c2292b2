package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationsFromMinutes(t *testing.T) {
	durations := DurationsFromMinutes(25, 5, 15, 4)

	assert.Equal(t, 1500000*time.Millisecond, durations.Work)
	assert.Equal(t, 300000*time.Millisecond, durations.ShortBreak)
	assert.Equal(t, 900000*time.Millisecond, durations.LongBreak)
	assert.Equal(t, 4, durations.CyclesBeforeLongBreak)
}

func TestDefaultSettingsAreValid(t *testing.T) {
	settings := DefaultSettings()
	require.NoError(t, settings.Validate())
	assert.Equal(t, DurationsFromMinutes(25, 5, 15, 4), settings.Durations())
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero work", func(s *Settings) { s.WorkMinutes = 0 }},
		{"work too long", func(s *Settings) { s.WorkMinutes = MaxWorkMinutes + 1 }},
		{"negative short break", func(s *Settings) { s.ShortBreakMinutes = -1 }},
		{"long break too long", func(s *Settings) { s.LongBreakMinutes = MaxLongBreakMinutes + 1 }},
		{"zero cycles", func(s *Settings) { s.CyclesBeforeLongBreak = 0 }},
		{"zero tick", func(s *Settings) { s.TickInterval = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(&settings)
			err := settings.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}
