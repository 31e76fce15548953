package ui

import (
	"image/color"
	"log"
	"time"

	"PomoTimer/control"
	"PomoTimer/timer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// UI constants
const (
	FontSizeMode float32 = 20.0
	FontSizeTime float32 = 64.0

	WindowWidth  = 360
	WindowHeight = 260

	replyTimeout = 200 * time.Millisecond
)

// App is what the window needs from the application.
type App interface {
	EnqueueCommand(cmd control.Command)
}

// MainWindow renders the timer and turns button presses into commands.
// It implements timer.Display and alarm.Notifier.
type MainWindow struct {
	app     App
	fyneApp fyne.App
	window  fyne.Window

	modeText *canvas.Text
	timeText *canvas.Text

	modeButtons    *fyne.Container
	controlButtons *fyne.Container
	modeButton     map[timer.Mode]*widget.Button
	toggleButton   *widget.Button
	stopButton     *widget.Button
	resetButton    *widget.Button
}

// CreateMainWindow builds the timer window. The display starts on the mode buttons.
func CreateMainWindow(a App, fyneApp fyne.App) *MainWindow {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "PomoTimer"
	}
	w := &MainWindow{
		app:        a,
		fyneApp:    fyneApp,
		window:     fyneApp.NewWindow(title),
		modeButton: make(map[timer.Mode]*widget.Button),
	}

	w.modeText = canvas.NewText(timer.ModeWork.Label(), color.White)
	w.modeText.TextSize = FontSizeMode
	w.modeText.Alignment = fyne.TextAlignCenter

	w.timeText = canvas.NewText("--:--", color.White)
	w.timeText.TextSize = FontSizeTime
	w.timeText.TextStyle.Bold = true
	w.timeText.Alignment = fyne.TextAlignCenter

	var modeObjects []fyne.CanvasObject
	for _, mode := range timer.Modes {
		mode := mode // per-iteration copy for the go 1.21 loop-variable semantics
		var btn *widget.Button
		if mode == timer.ModeCustom {
			btn = widget.NewButton(mode.Label(), w.showCustomPrompt)
		} else {
			btn = widget.NewButton(mode.Label(), func() {
				w.send(control.Command{Type: control.CmdSelect, Mode: mode, AutoStart: true})
			})
		}
		w.modeButton[mode] = btn
		modeObjects = append(modeObjects, btn)
	}
	w.modeButtons = container.NewHBox(modeObjects...)

	w.toggleButton = widget.NewButton(toggleText(timer.LabelPlay), func() {
		w.send(control.Command{Type: control.CmdToggle})
	})
	w.stopButton = widget.NewButton("Stop", func() {
		w.send(control.Command{Type: control.CmdStop})
	})
	w.resetButton = widget.NewButton("Reset", func() {
		w.send(control.Command{Type: control.CmdReset})
	})
	w.controlButtons = container.NewHBox(w.toggleButton, w.stopButton, w.resetButton)
	w.controlButtons.Hide()

	buttons := container.NewStack(
		container.NewCenter(w.modeButtons),
		container.NewCenter(w.controlButtons),
	)

	content := container.NewVBox(
		layout.NewSpacer(),
		w.modeText,
		w.timeText,
		layout.NewSpacer(),
		buttons,
	)

	w.window.Canvas().SetOnTypedRune(w.HandleKeyRune)
	w.window.SetContent(container.NewPadded(content))
	w.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	w.window.SetFixedSize(true)
	return w
}

// Window returns the underlying fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}

// ShowRemaining renders seconds as mm:ss.
func (w *MainWindow) ShowRemaining(mode timer.Mode, seconds int) {
	text := timer.FormatTime(seconds)
	fyne.Do(func() {
		w.modeText.Text = mode.Label()
		w.timeText.Text = text
		w.modeText.Refresh()
		w.timeText.Refresh()
	})
}

// ShowContext switches between the mode buttons and the control buttons.
func (w *MainWindow) ShowContext(ctx timer.DisplayContext) {
	fyne.Do(func() {
		if ctx == timer.ContextControls {
			w.modeButtons.Hide()
			w.controlButtons.Show()
		} else {
			w.controlButtons.Hide()
			w.modeButtons.Show()
		}
	})
}

// SetToggleLabel updates the play/pause button.
func (w *MainWindow) SetToggleLabel(label timer.ToggleLabel) {
	fyne.Do(func() {
		w.toggleButton.SetText(toggleText(label))
	})
}

// Notify shows a message when the alarm tones cannot be played.
func (w *MainWindow) Notify(title, message string) {
	fyne.Do(func() {
		w.fyneApp.SendNotification(fyne.NewNotification(title, message))
		dialog.ShowInformation(title, message, w.window)
	})
}

// HandleKeyRune maps keyboard shortcuts to the buttons that are currently
// visible. Play/pause, stop and reset only work while a countdown is shown;
// the mode keys only work on the mode selection.
func (w *MainWindow) HandleKeyRune(r rune) {
	if w.controlButtons.Visible() {
		switch r {
		case ' ':
			w.toggleButton.Tapped(&fyne.PointEvent{})
		case 's', 'S':
			w.stopButton.Tapped(&fyne.PointEvent{})
		case 'r', 'R':
			w.resetButton.Tapped(&fyne.PointEvent{})
		}
		return
	}

	switch r {
	case '1':
		w.modeButton[timer.ModeWork].Tapped(&fyne.PointEvent{})
	case '2':
		w.modeButton[timer.ModeShortRest].Tapped(&fyne.PointEvent{})
	case '3':
		w.modeButton[timer.ModeLongRest].Tapped(&fyne.PointEvent{})
	case 'c', 'C':
		w.showCustomPrompt()
	}
}

// SubmitCustom validates a minutes entry and, if valid, selects and starts a
// custom countdown. Invalid entries are dropped.
func (w *MainWindow) SubmitCustom(text string) bool {
	seconds, err := timer.ParseMinutes(text)
	if err != nil {
		log.Printf("custom timer: ignoring entry: %v", err)
		return false
	}
	w.send(control.Command{Type: control.CmdSelectCustom, Seconds: seconds, AutoStart: true})
	return true
}

func (w *MainWindow) showCustomPrompt() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("e.g. 12.5")
	items := []*widget.FormItem{widget.NewFormItem("Minutes", entry)}
	dialog.ShowForm("Custom timer", "Start", "Cancel", items, func(ok bool) {
		if ok {
			w.SubmitCustom(entry.Text)
		}
	}, w.window)
	w.window.Canvas().Focus(entry)
}

// send posts cmd and waits briefly for the command loop to apply it.
func (w *MainWindow) send(cmd control.Command) {
	reply := make(chan error, 1)
	cmd.Reply = reply
	w.app.EnqueueCommand(cmd)
	select {
	case err := <-reply:
		if err != nil {
			log.Printf("command %s: %v", cmd.Type, err)
		}
	case <-time.After(replyTimeout):
	}
}

func toggleText(label timer.ToggleLabel) string {
	if label == timer.LabelPause {
		return "Pause"
	}
	return "Play"
}
