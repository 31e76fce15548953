package timer

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	fsys := fstest.MapFS{
		ConfigPath: {Data: []byte(`
durations:
  work: 3000
  short_rest: 420
alarms:
  rest:
    beeps: 2
    frequency_hz: 523.25
`)},
	}

	cfg, err := LoadConfig(fsys)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Durations.Work)
	assert.Equal(t, 420, cfg.Durations.ShortRest)
	assert.Equal(t, 600, cfg.Durations.LongRest, "unset fields keep defaults")
	assert.Equal(t, AlarmProfile{Beeps: 5, Frequency: 880}, cfg.Alarms.Work)
	assert.Equal(t, AlarmProfile{Beeps: 2, Frequency: 523.25}, cfg.Alarms.Rest)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(fstest.MapFS{})
	assert.Error(t, err)

	_, err = LoadConfig(fstest.MapFS{ConfigPath: {Data: []byte("durations: [")}})
	assert.Error(t, err)

	cfg, err := LoadConfig(fstest.MapFS{ConfigPath: {Data: []byte("durations:\n  work: -5\n")}})
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestProfileFor(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, AlarmProfile{Beeps: 5, Frequency: 880}, cfg.ProfileFor(ModeWork))
	assert.Equal(t, AlarmProfile{Beeps: 5, Frequency: 880}, cfg.ProfileFor(ModeCustom))
	assert.Equal(t, AlarmProfile{Beeps: 3, Frequency: 440}, cfg.ProfileFor(ModeShortRest))
	assert.Equal(t, AlarmProfile{Beeps: 3, Frequency: 440}, cfg.ProfileFor(ModeLongRest))
}
