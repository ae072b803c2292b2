package mainscreen

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/ui/view"
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
}

// Window shows the running session.
type Window struct {
	window      fyne.Window
	modeLabel   *widget.Label
	clockLabel  *widget.Label
	cycleLabel  *widget.Label
	pausedLabel *widget.Label
	progress    *widget.ProgressBar
	action      *widget.Button
	reset       *widget.Button
}

// New creates the main window.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)

	modeLabel := widget.NewLabelWithStyle("Ready", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	clockLabel := widget.NewLabelWithStyle("--:--", fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
	clockLabel.SizeName = theme.SizeNameHeadingText
	cycleLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	pausedLabel := widget.NewLabelWithStyle("Paused", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	pausedLabel.Hide()

	progress := widget.NewProgressBar()
	progress.Min = 0
	progress.Max = 1
	progress.TextFormatter = func() string { return "" }

	action := widget.NewButton("Start", func() {
		if callbacks.OnToggle != nil {
			callbacks.OnToggle()
		}
	})
	action.Importance = widget.HighImportance
	reset := widget.NewButton("Reset", func() {
		if callbacks.OnReset != nil {
			callbacks.OnReset()
		}
	})
	reset.Hide()
	settings := widget.NewButton("Settings", func() {
		if callbacks.OnPreferences != nil {
			callbacks.OnPreferences()
		}
	})

	buttons := container.NewHBox(layout.NewSpacer(), action, reset, layout.NewSpacer())
	content := container.NewVBox(
		modeLabel,
		clockLabel,
		progress,
		cycleLabel,
		pausedLabel,
		buttons,
		container.NewHBox(layout.NewSpacer(), settings),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(320, 280))

	return &Window{
		window:      window,
		modeLabel:   modeLabel,
		clockLabel:  clockLabel,
		cycleLabel:  cycleLabel,
		pausedLabel: pausedLabel,
		progress:    progress,
		action:      action,
		reset:       reset,
	}
}

// Window returns the underlying fyne window.
func (screen *Window) Window() fyne.Window {
	return screen.window
}

// Show displays the window.
func (screen *Window) Show() {
	screen.window.Show()
}

// Apply renders a display state. It must run on the fyne goroutine.
func (screen *Window) Apply(state view.State) {
	screen.modeLabel.SetText(state.Mode)
	screen.clockLabel.SetText(state.Clock)
	screen.cycleLabel.SetText(state.Cycle)
	screen.progress.SetValue(state.Progress)
	screen.action.SetText(state.ActionLabel)
	setVisible(screen.reset, state.ShowReset)
	setVisible(screen.pausedLabel, state.ShowPaused)
}

func setVisible(object fyne.CanvasObject, visible bool) {
	if visible {
		object.Show()
		return
	}
	object.Hide()
}
