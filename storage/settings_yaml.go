package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"PomoTimer/timer"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes      float64 `yaml:"work_minutes"`
	ShortRestMinutes float64 `yaml:"short_rest_minutes"`
	LongRestMinutes  float64 `yaml:"long_rest_minutes"`
	WorkBeeps        int     `yaml:"work_beeps"`
	WorkFrequencyHz  float64 `yaml:"work_frequency_hz"`
	RestBeeps        int     `yaml:"rest_beeps"`
	RestFrequencyHz  float64 `yaml:"rest_frequency_hz"`
}

// LoadSettings applies the user's overrides on top of base.
// If the settings file does not exist, base is returned unchanged.
func LoadSettings(appName string, base timer.Config) (timer.Config, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return base, err
	}
	return loadSettingsFile(configPath, base)
}

// SettingsPath returns where LoadSettings looks for the user's overrides.
func SettingsPath(appName string) (string, error) {
	return resolveConfigPath(appName)
}

func loadSettingsFile(configPath string, base timer.Config) (timer.Config, error) {
	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return base, fmt.Errorf("parse settings yaml: %w", err)
	}

	cfg := base
	applyYamlSettings(&cfg, fileData)
	return cfg, nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(cfg *timer.Config, fileData yamlSettings) {
	if seconds, ok := minutesToSeconds(fileData.WorkMinutes); ok {
		cfg.Durations.Work = seconds
	}
	if seconds, ok := minutesToSeconds(fileData.ShortRestMinutes); ok {
		cfg.Durations.ShortRest = seconds
	}
	if seconds, ok := minutesToSeconds(fileData.LongRestMinutes); ok {
		cfg.Durations.LongRest = seconds
	}

	if fileData.WorkBeeps > 0 {
		cfg.Alarms.Work.Beeps = fileData.WorkBeeps
	}
	if fileData.WorkFrequencyHz > 0 {
		cfg.Alarms.Work.Frequency = fileData.WorkFrequencyHz
	}
	if fileData.RestBeeps > 0 {
		cfg.Alarms.Rest.Beeps = fileData.RestBeeps
	}
	if fileData.RestFrequencyHz > 0 {
		cfg.Alarms.Rest.Frequency = fileData.RestFrequencyHz
	}
}

func minutesToSeconds(minutes float64) (int, bool) {
	if minutes <= 0 || math.IsInf(minutes, 0) || math.IsNaN(minutes) {
		return 0, false
	}
	seconds := int(math.Round(minutes * 60))
	return seconds, seconds > 0
}
