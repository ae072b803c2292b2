package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"pomodoro/internal/core/model"
)

// FormValues holds the raw text of the settings form.
type FormValues struct {
	Work       string
	ShortBreak string
	LongBreak  string
	Cycles     string
}

// ValuesFromSettings renders settings as form text.
func ValuesFromSettings(settings model.Settings) FormValues {
	return FormValues{
		Work:       strconv.Itoa(settings.WorkMinutes),
		ShortBreak: strconv.Itoa(settings.ShortBreakMinutes),
		LongBreak:  strconv.Itoa(settings.LongBreakMinutes),
		Cycles:     strconv.Itoa(settings.CyclesBeforeLongBreak),
	}
}

// Apply parses the form over base and validates the result.
func (values FormValues) Apply(base model.Settings) (model.Settings, error) {
	settings := base
	var err error
	if settings.WorkMinutes, err = parseInt("work", values.Work); err != nil {
		return base, err
	}
	if settings.ShortBreakMinutes, err = parseInt("short break", values.ShortBreak); err != nil {
		return base, err
	}
	if settings.LongBreakMinutes, err = parseInt("long break", values.LongBreak); err != nil {
		return base, err
	}
	if settings.CyclesBeforeLongBreak, err = parseInt("cycles", values.Cycles); err != nil {
		return base, err
	}
	if err := settings.Validate(); err != nil {
		return base, err
	}
	return settings, nil
}

func parseInt(name, value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", model.ErrInvalidSettings, name)
	}
	return parsed, nil
}
