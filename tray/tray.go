package tray

import (
	"fmt"
	"sync"

	"PomoTimer/timer"

	"fyne.io/fyne/v2"
)

// MenuSetter is the part of desktop.App the tray needs.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow   func()
	OnToggle func()
	OnStop   func()
	OnReset  func()
	OnQuit   func()
}

// Manager keeps the tray menu in sync with the timer. It implements timer.Display.
type Manager struct {
	app       MenuSetter
	callbacks Callbacks

	mu     sync.Mutex
	status string
	toggle string
}

// New creates a tray manager and installs its menu.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    "starting...",
		toggle:    "Play",
	}
	manager.app.SetSystemTrayMenu(manager.buildMenu())
	return manager
}

// ShowRemaining updates the status line.
func (manager *Manager) ShowRemaining(mode timer.Mode, seconds int) {
	manager.mu.Lock()
	manager.status = fmt.Sprintf("%s %s", mode.Label(), timer.FormatTime(seconds))
	manager.mu.Unlock()
	manager.refreshMenu()
}

// ShowContext is a no-op, the tray always offers every control.
func (manager *Manager) ShowContext(timer.DisplayContext) {}

// SetToggleLabel renames the play/pause item.
func (manager *Manager) SetToggleLabel(label timer.ToggleLabel) {
	manager.mu.Lock()
	if label == timer.LabelPause {
		manager.toggle = "Pause"
	} else {
		manager.toggle = "Play"
	}
	manager.mu.Unlock()
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.status
}

func (manager *Manager) buildMenu() *fyne.Menu {
	manager.mu.Lock()
	status, toggle := manager.status, manager.toggle
	manager.mu.Unlock()

	statusItem := fyne.NewMenuItem("Status: "+status, nil)
	statusItem.Disabled = true

	return fyne.NewMenu("PomoTimer",
		statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(toggle, func() { call(manager.callbacks.OnToggle) }),
		fyne.NewMenuItem("Stop", func() { call(manager.callbacks.OnStop) }),
		fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	menu := manager.buildMenu()
	fyne.Do(func() {
		manager.app.SetSystemTrayMenu(menu)
	})
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
