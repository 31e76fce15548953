package timer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AppContentReader defines the interface for reading content from the embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// ConfigPath is the location of the mode table inside the embedded assets.
const ConfigPath = "assets/modes.yaml"

// AlarmProfile is the beep count and frequency played when a mode completes.
type AlarmProfile struct {
	Beeps     int     `yaml:"beeps"`
	Frequency float64 `yaml:"frequency_hz"`
}

// Durations holds the fixed mode lengths in whole seconds.
type Durations struct {
	Work      int `yaml:"work"`
	ShortRest int `yaml:"short_rest"`
	LongRest  int `yaml:"long_rest"`
}

// Alarms holds the completion sound for work-like and rest modes.
type Alarms struct {
	Work AlarmProfile `yaml:"work"`
	Rest AlarmProfile `yaml:"rest"`
}

// Config is the static configuration for the timer.
type Config struct {
	Durations Durations `yaml:"durations"`
	Alarms    Alarms    `yaml:"alarms"`
}

// DefaultConfig returns the built-in pomodoro durations and alarm profiles.
func DefaultConfig() Config {
	return Config{
		Durations: Durations{
			Work:      25 * 60,
			ShortRest: 5 * 60,
			LongRest:  10 * 60,
		},
		Alarms: Alarms{
			Work: AlarmProfile{Beeps: 5, Frequency: 880},
			Rest: AlarmProfile{Beeps: 3, Frequency: 440},
		},
	}
}

// LoadConfig reads the mode table from the embedded assets. Fields missing from
// the file keep their default values.
func LoadConfig(reader AppContentReader) (Config, error) {
	cfg := DefaultConfig()

	data, err := reader.ReadFile(ConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("read timer config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse timer config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Validate reports whether every duration and alarm profile is usable.
func (c Config) Validate() error {
	for name, seconds := range map[string]int{
		"work":       c.Durations.Work,
		"short_rest": c.Durations.ShortRest,
		"long_rest":  c.Durations.LongRest,
	} {
		if seconds <= 0 {
			return fmt.Errorf("duration %s=%d: %w", name, seconds, ErrInvalidDuration)
		}
	}
	for name, p := range map[string]AlarmProfile{"work": c.Alarms.Work, "rest": c.Alarms.Rest} {
		if p.Beeps <= 0 || p.Frequency <= 0 {
			return fmt.Errorf("alarm profile %s: beeps and frequency must be positive", name)
		}
	}
	return nil
}

// ProfileFor returns the alarm profile played when mode completes.
func (c Config) ProfileFor(mode Mode) AlarmProfile {
	switch mode {
	case ModeShortRest, ModeLongRest:
		return c.Alarms.Rest
	default:
		return c.Alarms.Work
	}
}
