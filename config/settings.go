package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/hadSHOT/hooklint/paths"
)

// Settings holds machine-global hooklint options, loaded from
// ~/.config/hooklint/config.toml. These are tool settings, not part of the
// project's hook configuration.
type Settings struct {
	CacheDir       string `toml:"cache_dir,omitempty"`
	NetworkTimeout string `toml:"network_timeout,omitempty"`
	Color          string `toml:"color,omitempty"`
}

const settingsFileName = "config.toml"

// DefaultSettings returns the settings used when no global config exists.
func DefaultSettings() *Settings {
	return &Settings{
		CacheDir:       paths.CacheDir(),
		NetworkTimeout: "2m",
		Color:          "auto",
	}
}

// LoadSettings reads the global settings file, falling back to defaults for
// anything unset. A missing file is not an error.
func LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	configDir := paths.ConfigDir()
	if configDir == "" {
		return settings, nil
	}

	data, err := os.ReadFile(filepath.Join(configDir, settingsFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	var fileSettings Settings
	if err := toml.Unmarshal(data, &fileSettings); err != nil {
		return nil, err
	}

	if fileSettings.CacheDir != "" {
		settings.CacheDir = expandPath(fileSettings.CacheDir)
	}
	if fileSettings.NetworkTimeout != "" {
		settings.NetworkTimeout = fileSettings.NetworkTimeout
	}
	if fileSettings.Color != "" {
		settings.Color = fileSettings.Color
	}

	return settings, nil
}

// Timeout returns the parsed network timeout, defaulting to two minutes when
// the configured value does not parse.
func (s *Settings) Timeout() time.Duration {
	d, err := time.ParseDuration(s.NetworkTimeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
