package tray

import (
	"testing"

	"PomoTimer/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTray struct {
	menu *fyne.Menu
}

func (f *fakeTray) SetSystemTrayMenu(menu *fyne.Menu) { f.menu = menu }

func item(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, it := range menu.Items {
		if it.Label == label {
			return it
		}
	}
	require.Failf(t, "menu item missing", "%q", label)
	return nil
}

func TestTrayTracksTimer(t *testing.T) {
	test.NewTempApp(t)
	fake := &fakeTray{}
	toggled, stopped, reset := 0, 0, 0
	manager := New(fake, Callbacks{
		OnToggle: func() { toggled++ },
		OnStop:   func() { stopped++ },
		OnReset:  func() { reset++ },
	})
	require.NotNil(t, fake.menu)

	manager.ShowRemaining(timer.ModeShortRest, 297)
	manager.SetToggleLabel(timer.LabelPause)
	assert.Equal(t, "Short Rest 04:57", manager.Status())
	item(t, fake.menu, "Status: Short Rest 04:57")

	item(t, fake.menu, "Pause").Action()
	item(t, fake.menu, "Stop").Action()
	item(t, fake.menu, "Reset").Action()
	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, stopped)
	assert.Equal(t, 1, reset)

	manager.SetToggleLabel(timer.LabelPlay)
	item(t, fake.menu, "Play")

	// callbacks left unset are ignored
	assert.NotPanics(t, func() { item(t, fake.menu, "Quit").Action() })
}
