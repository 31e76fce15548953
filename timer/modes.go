package timer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDuration indicates a custom duration that is not a positive whole number of seconds.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrUnresolvedMode indicates the custom mode was selected before any custom duration was set.
	ErrUnresolvedMode = errors.New("custom duration not set")
	// ErrUnknownMode indicates a mode name outside the known set.
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode is a named countdown profile.
type Mode string

const (
	ModeWork      Mode = "work"
	ModeShortRest Mode = "short_rest"
	ModeLongRest  Mode = "long_rest"
	ModeCustom    Mode = "custom"
)

// Modes lists the selectable modes in display order.
var Modes = []Mode{ModeWork, ModeShortRest, ModeLongRest, ModeCustom}

// Label returns the human readable name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeShortRest:
		return "Short Rest"
	case ModeLongRest:
		return "Long Rest"
	case ModeCustom:
		return "Custom"
	}
	return string(m)
}

// ModeRegistry holds the fixed duration table and the custom duration.
type ModeRegistry struct {
	fixed  map[Mode]int
	custom int
}

// NewModeRegistry builds a registry from the configured durations.
func NewModeRegistry(d Durations) *ModeRegistry {
	return &ModeRegistry{
		fixed: map[Mode]int{
			ModeWork:      d.Work,
			ModeShortRest: d.ShortRest,
			ModeLongRest:  d.LongRest,
		},
	}
}

// Resolve returns the duration of mode in seconds.
func (r *ModeRegistry) Resolve(mode Mode) (int, error) {
	if mode == ModeCustom {
		if r.custom <= 0 {
			return 0, ErrUnresolvedMode
		}
		return r.custom, nil
	}
	seconds, ok := r.fixed[mode]
	if !ok {
		return 0, fmt.Errorf("%q: %w", mode, ErrUnknownMode)
	}
	return seconds, nil
}

// SetCustom stores the custom duration, replacing any previous value.
func (r *ModeRegistry) SetCustom(seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("custom %ds: %w", seconds, ErrInvalidDuration)
	}
	r.custom = seconds
	return nil
}

// ParseMinutes converts a user entry in decimal minutes (e.g. "12.5") into
// whole seconds, rounding to the nearest second.
func ParseMinutes(input string) (int, error) {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", input, ErrInvalidDuration)
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return 0, fmt.Errorf("minutes %q: %w", input, ErrInvalidDuration)
	}
	seconds := math.Round(minutes * 60)
	if seconds < 1 || seconds > math.MaxInt32 {
		return 0, fmt.Errorf("minutes %q: %w", input, ErrInvalidDuration)
	}
	return int(seconds), nil
}
