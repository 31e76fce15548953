// Package main contains the application wiring and the AppManager which owns
// the timer engine and serializes everything that touches it.
//
// Maintenance notes / tips:
//   - Concurrency model: the timer engine is not goroutine-safe. Every command
//     from the window, the keyboard or the tray, and every tick, goes through
//     `cmdCh` and is applied by the single `commandLoop` goroutine.
//   - Ticks come from a ticker goroutine per live handle (see `Every`). A tick
//     command re-checks its handle on the loop before calling into the engine,
//     so a stopped handle never fires even if its tick was already queued.
//   - `EnqueueCommand` drops commands when the channel stays full for 150ms
//     rather than blocking the UI.
//   - Display sinks may be added after the loop is running; `displays` is
//     guarded by `displayLock`.
package main

import (
	"context"
	"log"
	"sync"
	"time"

	"PomoTimer/control"
	"PomoTimer/timer"
)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	engine *timer.Engine

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc
	loopDone  chan struct{}

	displays    []timer.Display
	displayLock sync.Mutex
}

// NewAppManager creates the engine and starts the command loop.
func NewAppManager(cfg timer.Config, alarm timer.Alarm) *AppManager {
	a := &AppManager{
		cmdCh:    make(chan control.Command, 256),
		loopDone: make(chan struct{}),
	}
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())

	a.engine = timer.NewEngine(cfg, timer.NewModeRegistry(cfg.Durations), timer.Options{
		Clock:     timer.SystemClock,
		Scheduler: a,
		Display:   a,
		Alarm:     alarm,
	})
	log.Printf("Loaded modes: work=%ds short_rest=%ds long_rest=%ds",
		cfg.Durations.Work, cfg.Durations.ShortRest, cfg.Durations.LongRest)

	go a.commandLoop()
	return a
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	select {
	case a.cmdCh <- cmd:
	case <-a.cmdCtx.Done():
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping %s command", cmd.Type)
	}
}

func (a *AppManager) commandLoop() {
	defer close(a.loopDone)
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			err := a.apply(cmd)
			if err != nil && cmd.Type != control.CmdTick {
				log.Printf("command %s: %v", cmd.Type, err)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

func (a *AppManager) apply(cmd control.Command) error {
	switch cmd.Type {
	case control.CmdSelect:
		if err := a.engine.SelectMode(cmd.Mode); err != nil {
			return err
		}
		if cmd.AutoStart {
			a.engine.Start()
		}
	case control.CmdSelectCustom:
		if err := a.engine.SelectCustom(cmd.Seconds); err != nil {
			return err
		}
		if cmd.AutoStart {
			a.engine.Start()
		}
	case control.CmdToggle:
		a.engine.Toggle()
	case control.CmdReset:
		a.engine.Reset()
	case control.CmdStop:
		a.engine.Stop()
	case control.CmdSync:
		a.engine.Sync()
	case control.CmdTick:
		if cmd.Tick != nil {
			cmd.Tick()
		}
	}
	return nil
}

// Snapshot returns the engine state, read on the command loop.
func (a *AppManager) Snapshot() timer.Snapshot {
	result := make(chan timer.Snapshot, 1)
	a.EnqueueCommand(control.Command{Type: control.CmdTick, Tick: func() {
		result <- a.engine.Snapshot()
	}})
	select {
	case snap := <-result:
		return snap
	case <-time.After(time.Second):
		log.Printf("Snapshot timeout")
		return timer.Snapshot{}
	}
}

type loopTicker struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (t *loopTicker) Stop() { t.cancel() }

// Every implements timer.Scheduler. fn runs on the command loop.
func (a *AppManager) Every(period time.Duration, fn func()) timer.TickHandle {
	ctx, cancel := context.WithCancel(a.cmdCtx)
	handle := &loopTicker{ctx: ctx, cancel: cancel}

	tick := func() {
		if handle.ctx.Err() == nil {
			fn()
		}
	}

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case a.cmdCh <- control.Command{Type: control.CmdTick, Tick: tick}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return handle
}

// AddDisplay registers another display sink.
func (a *AppManager) AddDisplay(d timer.Display) {
	a.displayLock.Lock()
	defer a.displayLock.Unlock()
	a.displays = append(a.displays, d)
}

func (a *AppManager) sinks() []timer.Display {
	a.displayLock.Lock()
	defer a.displayLock.Unlock()
	return append([]timer.Display(nil), a.displays...)
}

// ShowRemaining forwards to every display sink.
func (a *AppManager) ShowRemaining(mode timer.Mode, seconds int) {
	for _, d := range a.sinks() {
		d.ShowRemaining(mode, seconds)
	}
}

// ShowContext forwards to every display sink.
func (a *AppManager) ShowContext(ctx timer.DisplayContext) {
	for _, d := range a.sinks() {
		d.ShowContext(ctx)
	}
}

// SetToggleLabel forwards to every display sink.
func (a *AppManager) SetToggleLabel(label timer.ToggleLabel) {
	for _, d := range a.sinks() {
		d.SetToggleLabel(label)
	}
}

// Shutdown stops the command loop and every ticker goroutine, then waits for
// the loop to exit.
func (a *AppManager) Shutdown() {
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
	<-a.loopDone
}
