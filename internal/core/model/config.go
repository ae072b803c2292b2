package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings indicates a settings value outside its accepted range.
var ErrInvalidSettings = errors.New("invalid settings")

// Accepted settings ranges, in minutes for durations.
const (
	MinWorkMinutes       = 1
	MaxWorkMinutes       = 180
	MinShortBreakMinutes = 1
	MaxShortBreakMinutes = 60
	MinLongBreakMinutes  = 1
	MaxLongBreakMinutes  = 120
	MinCycles            = 1
	MaxCycles            = 12
)

// Durations contains the phase lengths used by the session controller.
type Durations struct {
	Work                  time.Duration
	ShortBreak            time.Duration
	LongBreak             time.Duration
	CyclesBeforeLongBreak int
}

// DurationsFromMinutes converts minute values into Durations.
func DurationsFromMinutes(workMinutes, shortBreakMinutes, longBreakMinutes, cyclesBeforeLong int) Durations {
	return Durations{
		Work:                  minutes(workMinutes),
		ShortBreak:            minutes(shortBreakMinutes),
		LongBreak:             minutes(longBreakMinutes),
		CyclesBeforeLongBreak: cyclesBeforeLong,
	}
}

func minutes(value int) time.Duration {
	return time.Duration(value) * 60 * 1000 * time.Millisecond
}

// Settings defines user-facing configuration in whole minutes.
type Settings struct {
	WorkMinutes           int
	ShortBreakMinutes     int
	LongBreakMinutes      int
	CyclesBeforeLongBreak int
	TickInterval          time.Duration
}

// DefaultSettings returns the classic 25/5/15 schedule with a long break every 4 cycles.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:           25,
		ShortBreakMinutes:     5,
		LongBreakMinutes:      15,
		CyclesBeforeLongBreak: 4,
		TickInterval:          time.Second,
	}
}

// Durations converts settings to controller durations.
func (settings Settings) Durations() Durations {
	return DurationsFromMinutes(
		settings.WorkMinutes,
		settings.ShortBreakMinutes,
		settings.LongBreakMinutes,
		settings.CyclesBeforeLongBreak,
	)
}

// Validate reports the first value outside its accepted range.
func (settings Settings) Validate() error {
	if err := checkRange("work minutes", settings.WorkMinutes, MinWorkMinutes, MaxWorkMinutes); err != nil {
		return err
	}
	if err := checkRange("short break minutes", settings.ShortBreakMinutes, MinShortBreakMinutes, MaxShortBreakMinutes); err != nil {
		return err
	}
	if err := checkRange("long break minutes", settings.LongBreakMinutes, MinLongBreakMinutes, MaxLongBreakMinutes); err != nil {
		return err
	}
	if err := checkRange("cycles before long break", settings.CyclesBeforeLongBreak, MinCycles, MaxCycles); err != nil {
		return err
	}
	if settings.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalidSettings, settings.TickInterval)
	}
	return nil
}

func checkRange(name string, value, low, high int) error {
	if value < low || value > high {
		return fmt.Errorf("%w: %s must be within %d..%d, got %d", ErrInvalidSettings, name, low, high, value)
	}
	return nil
}
