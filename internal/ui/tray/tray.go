package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"pomodoro/internal/ui/view"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	title      string
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		invoke(manager.callbacks.OnToggle)
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		invoke(manager.callbacks.OnReset)
	})
	manager.resetItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// Apply updates menu labels from a display state.
func (manager *Manager) Apply(state view.State) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", state.Status)
	manager.toggleItem.Label = state.ActionLabel
	manager.resetItem.Disabled = !state.ShowReset
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(iconFor(state))
	}
	manager.refreshMenu()
}

func iconFor(state view.State) fyne.Resource {
	switch {
	case state.ShowPaused:
		return theme.MediaPauseIcon()
	case state.ShowReset:
		return theme.MediaPlayIcon()
	default:
		return theme.HistoryIcon()
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			invoke(manager.callbacks.OnShow)
		}),
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		manager.quitItem(),
	))
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}

func (manager *Manager) quitItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Quit", func() {
		invoke(manager.callbacks.OnQuit)
	})
	item.IsQuit = true
	return item
}
