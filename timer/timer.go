// Package timer contains the domain logic for the pomodoro timer: the mode
// table (ModeRegistry) and the Engine countdown state machine.
//
// Maintenance notes:
//   - Engine is not safe for concurrent use. Every method, including the tick
//     callback handed to the Scheduler, must run on one goroutine. The
//     application does this through its command loop.
//   - Remaining time is derived from the wall clock on every tick
//     (planned - floor(now - startEpoch)). Never decrement it per tick, the
//     scheduler may fire late or skip.
//   - At most one TickHandle is live. Any transition out of Running cancels it
//     before doing anything else.
package timer

import (
	"log"
	"time"
)

// TickPeriod is the interval between display refreshes while running.
const TickPeriod = time.Second

// State is the externally visible engine state. Completion is transient and
// reported as StateIdle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// DisplayContext selects which group of buttons is visible.
type DisplayContext int

const (
	ContextModes DisplayContext = iota
	ContextControls
)

// ToggleLabel is the label shown on the play/pause control.
type ToggleLabel string

const (
	LabelPlay  ToggleLabel = "play"
	LabelPause ToggleLabel = "pause"
)

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

// TickHandle is a live periodic registration.
type TickHandle interface {
	Stop()
}

// Scheduler registers fn to be invoked every period until the handle is stopped.
// Implementations must invoke fn on the engine's goroutine and must not invoke
// it after Stop returns.
type Scheduler interface {
	Every(period time.Duration, fn func()) TickHandle
}

// Display receives everything the engine wants rendered.
type Display interface {
	ShowRemaining(mode Mode, seconds int)
	ShowContext(ctx DisplayContext)
	SetToggleLabel(label ToggleLabel)
}

// Alarm plays the completion sound. It must not block.
type Alarm interface {
	Alarm(beeps int, frequencyHz float64)
}

// Options contains the collaborators of an Engine.
type Options struct {
	Clock     Clock
	Scheduler Scheduler
	Display   Display
	Alarm     Alarm
}

// Snapshot is a copy of the engine state for rendering and tests.
type Snapshot struct {
	Mode            Mode
	State           State
	Remaining       int
	PlannedDuration int
	ModeDuration    int
}

// Engine is the countdown state machine.
type Engine struct {
	config    Config
	registry  *ModeRegistry
	clock     Clock
	scheduler Scheduler
	display   Display
	alarm     Alarm

	state           State
	mode            Mode
	modeDuration    int
	plannedDuration int
	startEpoch      time.Time
	pausedRemaining int
	tick            TickHandle
}

// NewEngine creates an idle engine in work mode. registry and
// options.Scheduler are required; the other options default to the system
// clock and no-op sinks.
func NewEngine(config Config, registry *ModeRegistry, options Options) *Engine {
	if registry == nil {
		panic("timer: NewEngine called with nil registry")
	}
	if options.Scheduler == nil {
		panic("timer: NewEngine called without a Scheduler")
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.Display == nil {
		options.Display = nopDisplay{}
	}
	if options.Alarm == nil {
		options.Alarm = nopAlarm{}
	}

	e := &Engine{
		config:    config,
		registry:  registry,
		clock:     options.Clock,
		scheduler: options.Scheduler,
		display:   options.Display,
		alarm:     options.Alarm,
		state:     StateIdle,
	}
	if err := e.applyMode(ModeWork); err != nil {
		log.Printf("engine: resolve work duration: %v", err)
	}
	return e
}

// SelectMode makes mode current and shows its full duration. A running or
// paused countdown is stopped first. If mode cannot be resolved nothing changes.
func (e *Engine) SelectMode(mode Mode) error {
	if _, err := e.registry.Resolve(mode); err != nil {
		return err
	}
	if e.state != StateIdle {
		e.Stop()
	}
	if err := e.applyMode(mode); err != nil {
		return err
	}
	e.display.ShowRemaining(e.mode, e.plannedDuration)
	return nil
}

// SelectCustom registers seconds as the custom duration and selects the custom mode.
func (e *Engine) SelectCustom(seconds int) error {
	if err := e.registry.SetCustom(seconds); err != nil {
		return err
	}
	return e.SelectMode(ModeCustom)
}

// Start begins a countdown of the current mode's full duration. Only valid when idle.
func (e *Engine) Start() {
	if e.state != StateIdle {
		return
	}
	if e.modeDuration <= 0 {
		if err := e.applyMode(e.mode); err != nil {
			log.Printf("engine: start %s: %v", e.mode, err)
			return
		}
	}

	e.cancelTick()
	e.plannedDuration = e.modeDuration
	e.startEpoch = e.clock.Now()
	e.pausedRemaining = 0
	e.state = StateRunning
	e.tick = e.scheduler.Every(TickPeriod, e.Tick)

	e.display.ShowContext(ContextControls)
	e.display.SetToggleLabel(LabelPause)
	e.display.ShowRemaining(e.mode, e.plannedDuration)
}

// Pause freezes a running countdown.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.cancelTick()
	e.pausedRemaining = e.remaining()
	e.startEpoch = time.Time{}
	e.state = StatePaused

	e.display.SetToggleLabel(LabelPlay)
	e.display.ShowRemaining(e.mode, e.pausedRemaining)
}

// Resume continues a paused countdown from the remaining seconds captured at pause.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.cancelTick()
	e.plannedDuration = e.pausedRemaining
	e.startEpoch = e.clock.Now()
	e.pausedRemaining = 0
	e.state = StateRunning

	if e.plannedDuration <= 0 {
		e.display.ShowRemaining(e.mode, 0)
		e.complete()
		return
	}

	e.tick = e.scheduler.Every(TickPeriod, e.Tick)
	e.display.SetToggleLabel(LabelPause)
	e.display.ShowRemaining(e.mode, e.plannedDuration)
}

// Toggle starts, pauses or resumes depending on the current state.
func (e *Engine) Toggle() {
	switch e.state {
	case StateIdle:
		e.Start()
	case StateRunning:
		e.Pause()
	case StatePaused:
		e.Resume()
	}
}

// Reset stops the countdown and shows the current mode's full duration again.
// The controls stay visible so the interval can be restarted directly.
func (e *Engine) Reset() {
	e.cancelTick()
	e.plannedDuration = e.modeDuration
	e.startEpoch = time.Time{}
	e.pausedRemaining = 0
	e.state = StateIdle

	e.display.SetToggleLabel(LabelPlay)
	e.display.ShowRemaining(e.mode, e.plannedDuration)
}

// Stop cancels any countdown and returns to work mode selection.
func (e *Engine) Stop() {
	e.cancelTick()
	e.startEpoch = time.Time{}
	e.pausedRemaining = 0
	e.state = StateIdle
	if err := e.applyMode(ModeWork); err != nil {
		log.Printf("engine: stop: %v", err)
	}

	e.display.ShowRemaining(e.mode, e.plannedDuration)
	e.display.ShowContext(ContextModes)
	e.display.SetToggleLabel(LabelPlay)
}

// Tick recomputes the remaining time from the wall clock and completes the
// countdown when it reaches zero.
func (e *Engine) Tick() {
	if e.state != StateRunning {
		return
	}
	remaining := e.remaining()
	e.display.ShowRemaining(e.mode, remaining)
	if remaining <= 0 {
		e.complete()
	}
}

// Sync re-emits the full display state.
func (e *Engine) Sync() {
	snap := e.Snapshot()
	if snap.State == StateIdle {
		e.display.ShowContext(ContextModes)
		e.display.SetToggleLabel(LabelPlay)
	} else {
		e.display.ShowContext(ContextControls)
		if snap.State == StateRunning {
			e.display.SetToggleLabel(LabelPause)
		} else {
			e.display.SetToggleLabel(LabelPlay)
		}
	}
	e.display.ShowRemaining(snap.Mode, snap.Remaining)
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:            e.mode,
		State:           e.state,
		PlannedDuration: e.plannedDuration,
		ModeDuration:    e.modeDuration,
	}
	switch e.state {
	case StateRunning:
		snap.Remaining = e.remaining()
	case StatePaused:
		snap.Remaining = e.pausedRemaining
	default:
		snap.Remaining = e.plannedDuration
	}
	return snap
}

func (e *Engine) complete() {
	e.cancelTick()
	e.startEpoch = time.Time{}
	e.plannedDuration = 0
	e.state = StateIdle

	profile := e.config.ProfileFor(e.mode)
	log.Printf("engine: %s finished, alarm %d x %.0fHz", e.mode, profile.Beeps, profile.Frequency)
	e.alarm.Alarm(profile.Beeps, profile.Frequency)

	e.display.ShowContext(ContextModes)
	e.display.SetToggleLabel(LabelPlay)
}

func (e *Engine) applyMode(mode Mode) error {
	seconds, err := e.registry.Resolve(mode)
	if err != nil {
		return err
	}
	e.mode = mode
	e.modeDuration = seconds
	e.plannedDuration = seconds
	return nil
}

func (e *Engine) remaining() int {
	elapsed := int(e.clock.Now().Sub(e.startEpoch) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := e.plannedDuration - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (e *Engine) cancelTick() {
	if e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}
}

type nopDisplay struct{}

func (nopDisplay) ShowRemaining(Mode, int)    {}
func (nopDisplay) ShowContext(DisplayContext) {}
func (nopDisplay) SetToggleLabel(ToggleLabel) {}

type nopAlarm struct{}

func (nopAlarm) Alarm(int, float64) {}
