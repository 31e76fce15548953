// Package control defines lightweight command messages used by the UI and the
// tray to request actions from the application command loop. The command loop
// is the only goroutine that touches the timer engine.
package control

import "PomoTimer/timer"

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdSelect CommandType = iota
	CmdSelectCustom
	CmdToggle
	CmdReset
	CmdStop
	CmdSync
	CmdTick
)

func (t CommandType) String() string {
	switch t {
	case CmdSelect:
		return "select"
	case CmdSelectCustom:
		return "select-custom"
	case CmdToggle:
		return "toggle"
	case CmdReset:
		return "reset"
	case CmdStop:
		return "stop"
	case CmdSync:
		return "sync"
	case CmdTick:
		return "tick"
	}
	return "unknown"
}

// Command is the message sent to AppManager.commandLoop. The optional Reply
// channel receives the result of the operation once it has been applied.
type Command struct {
	Type      CommandType
	Mode      timer.Mode // CmdSelect
	Seconds   int        // CmdSelectCustom
	AutoStart bool       // start right after a successful select
	Tick      func()     // CmdTick
	Reply     chan error // optional reply channel
}
