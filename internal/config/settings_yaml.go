package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes           *int `yaml:"work_minutes"`
	ShortBreakMinutes     *int `yaml:"short_break_minutes"`
	LongBreakMinutes      *int `yaml:"long_break_minutes"`
	CyclesBeforeLongBreak *int `yaml:"cycles_before_long_break"`
	TickIntervalMillis    *int `yaml:"tick_interval_ms"`
}

// LoadSettings reads settings from the YAML file at path. An empty path
// resolves to settings.yaml in the user config directory for appName.
// If the file does not exist, default settings are returned.
func LoadSettings(appName, path string) (model.Settings, error) {
	settings := model.DefaultSettings()
	if path == "" {
		resolved, err := ResolveConfigPath(appName)
		if err != nil {
			return settings, err
		}
		path = resolved
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	return ParseSettings(rawData)
}

// ParseSettings decodes YAML settings over the defaults and validates them.
func ParseSettings(rawData []byte) (model.Settings, error) {
	settings := model.DefaultSettings()

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	if err := settings.Validate(); err != nil {
		return model.DefaultSettings(), fmt.Errorf("validate settings: %w", err)
	}
	return settings, nil
}

// ResolveConfigPath returns the default settings file location.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes != nil {
		settings.WorkMinutes = *fileData.WorkMinutes
	}
	if fileData.ShortBreakMinutes != nil {
		settings.ShortBreakMinutes = *fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes != nil {
		settings.LongBreakMinutes = *fileData.LongBreakMinutes
	}
	if fileData.CyclesBeforeLongBreak != nil {
		settings.CyclesBeforeLongBreak = *fileData.CyclesBeforeLongBreak
	}
	if fileData.TickIntervalMillis != nil {
		settings.TickInterval = time.Duration(*fileData.TickIntervalMillis) * time.Millisecond
	}
}
