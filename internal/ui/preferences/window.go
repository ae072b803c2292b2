package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   model.Settings
	onSave     func(model.Settings)
	work       *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	cycles     *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, title string, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow(title)

	work := widget.NewEntry()
	shortBreak := widget.NewEntry()
	longBreak := widget.NewEntry()
	cycles := widget.NewEntry()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		row("Pomodoro", work, fmt.Sprintf("min (%d-%d)", model.MinWorkMinutes, model.MaxWorkMinutes)),
		row("Short break", shortBreak, fmt.Sprintf("min (%d-%d)", model.MinShortBreakMinutes, model.MaxShortBreakMinutes)),
		row("Long break", longBreak, fmt.Sprintf("min (%d-%d)", model.MinLongBreakMinutes, model.MaxLongBreakMinutes)),
		row("Long break every", cycles, fmt.Sprintf("cycles (%d-%d)", model.MinCycles, model.MaxCycles)),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 260))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		work:       work,
		shortBreak: shortBreak,
		longBreak:  longBreak,
		cycles:     cycles,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	values := ValuesFromSettings(settings)
	prefs.work.SetText(values.Work)
	prefs.shortBreak.SetText(values.ShortBreak)
	prefs.longBreak.SetText(values.LongBreak)
	prefs.cycles.SetText(values.Cycles)
}

func (prefs *Window) handleSave() {
	values := FormValues{
		Work:       prefs.work.Text,
		ShortBreak: prefs.shortBreak.Text,
		LongBreak:  prefs.longBreak.Text,
		Cycles:     prefs.cycles.Text,
	}
	settings, err := values.Apply(prefs.settings)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func row(label string, entry *widget.Entry, unit string) fyne.CanvasObject {
	return container.NewGridWithColumns(3, widget.NewLabel(label), entry, widget.NewLabel(unit))
}
