package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pomodoro/internal/config"
	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/session"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/mainscreen"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/view"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const appName = "Pomodoro"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Pomodoro focus timer",
		Long: `Pomodoro runs a work/break countdown in a desktop window and the system tray.
A long break follows every N completed work cycles.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "settings file (default <user config dir>/Pomodoro/settings.yaml)")
	flags.Int("work", 0, "work phase length in minutes")
	flags.Int("short-break", 0, "short break length in minutes")
	flags.Int("long-break", 0, "long break length in minutes")
	flags.Int("cycles", 0, "work cycles before a long break")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

func loadSettings(cmd *cobra.Command) (model.Settings, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	settings, err := config.LoadSettings(appName, configPath)
	if err != nil {
		return settings, err
	}

	overrides := []struct {
		name   string
		target *int
	}{
		{"work", &settings.WorkMinutes},
		{"short-break", &settings.ShortBreakMinutes},
		{"long-break", &settings.LongBreakMinutes},
		{"cycles", &settings.CyclesBeforeLongBreak},
	}
	for _, override := range overrides {
		if !flags.Changed(override.name) {
			continue
		}
		value, err := flags.GetInt(override.name)
		if err != nil {
			return settings, fmt.Errorf("read --%s: %w", override.name, err)
		}
		*override.target = value
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("validate flags: %w", err)
	}
	return settings, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger(), nil
}

func run(cmd *cobra.Command) error {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info().Err(err).Msg("another instance is running")
			return nil
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	timer := countdown.New(countdown.Config{TickInterval: settings.TickInterval})
	defer timer.Close()

	controller := session.New(settings.Durations(), timer,
		session.WithLogger(logger),
		session.WithObserver(session.ObserverFuncs{
			OnStateChanged: func(event session.Event) {
				logger.Info().
					Str("phase", string(event.Phase)).
					Int("cycles", event.Cycles).
					Dur("remaining", event.Remaining).
					Msg("session phase changed")
			},
		}),
	)
	defer controller.Close()

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	var prefsWindow *preferences.Window
	mainWindow := mainscreen.New(fyneApp, appName, mainscreen.Callbacks{
		OnToggle: controller.Toggle,
		OnReset:  controller.Reset,
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})
	sinks := []view.Sink{mainWindow.Apply}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, appName, tray.Callbacks{
			OnShow:   mainWindow.Show,
			OnToggle: controller.Toggle,
			OnReset:  controller.Reset,
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnQuit: fyneApp.Quit,
		})
		sinks = append(sinks, trayManager.Apply)
		mainWindow.Window().SetCloseIntercept(mainWindow.Window().Hide)
	} else {
		logger.Warn().Msg("system tray unsupported on this platform")
		mainWindow.Window().SetMaster()
	}

	// Notifications arrive on the countdown goroutine; UI-initiated updates
	// are already on the fyne goroutine.
	presenter := view.NewPresenter(fyne.Do, sinks...)
	inline := view.NewPresenter(nil, sinks...)
	controller.AddObserver(presenter)

	prefsWindow = preferences.New(fyneApp, appName+" Settings", settings, func(updated model.Settings) {
		controller.UpdateDurations(updated.Durations())
		inline.Show(controller.Snapshot())
	})

	go guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	inline.Show(controller.Snapshot())
	mainWindow.Show()
	fyneApp.Run()
	return nil
}
