package main

import (
	"embed"
	"errors"
	"log"

	"PomoTimer/alarm"
	"PomoTimer/control"
	"PomoTimer/platform"
	"PomoTimer/storage"
	"PomoTimer/timer"
	"PomoTimer/tray"
	"PomoTimer/ui"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "PomoTimer"

//go:embed assets/*
var content embed.FS

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("%s is already running", appName)
			return
		}
		log.Fatalf("single instance: %v", err)
	}
	log.Printf("Holding single-instance lock on port %d", guard.Port())
	defer func() {
		_ = guard.Release()
	}()

	cfg, err := timer.LoadConfig(content)
	if err != nil {
		log.Printf("Failed to load timer config, using defaults. %v", err)
	}
	if cfg, err = storage.LoadSettings(appName, cfg); err != nil {
		log.Printf("Failed to load user settings. %v", err)
	}

	fyneApp := app.NewWithID("com.pomotimer.app")
	fyneApp.Settings().SetTheme(ui.NewCustomTheme(ui.TomatoRed))

	player := alarm.NewPlayer()
	a := NewAppManager(cfg, player)

	w := ui.CreateMainWindow(a, fyneApp)
	player.SetFallback(w)
	a.AddDisplay(w)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				w.Window().Show()
				w.Window().RequestFocus()
			},
			OnToggle: func() { a.EnqueueCommand(control.Command{Type: control.CmdToggle}) },
			OnStop:   func() { a.EnqueueCommand(control.Command{Type: control.CmdStop}) },
			OnReset:  func() { a.EnqueueCommand(control.Command{Type: control.CmdReset}) },
			OnQuit:   fyneApp.Quit,
		})
		a.AddDisplay(trayManager)
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	a.EnqueueCommand(control.Command{Type: control.CmdSync})

	w.Window().SetOnClosed(func() {
		a.Shutdown()
	})
	w.Window().SetMaster()
	w.Window().ShowAndRun()
}
