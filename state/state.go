// Package state persists small records between hooklint runs, such as the
// revisions the last autoupdate resolved. It is a generic key-value YAML file
// in the XDG state directory.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hadSHOT/hooklint/paths"
)

// State represents persisted hooklint state as a generic map of key-value pairs.
type State map[string]interface{}

// UpdateRecord describes the outcome of one autoupdate resolution.
type UpdateRecord struct {
	Repo      string    `yaml:"repo"`
	OldRev    string    `yaml:"old_rev"`
	NewRev    string    `yaml:"new_rev"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// stateFilePath returns the path to the state file.
func stateFilePath() (string, error) {
	dir := paths.StateDir()
	if dir == "" {
		return "", fmt.Errorf("cannot determine state directory")
	}
	return filepath.Join(dir, "state.yml"), nil
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func Load() (State, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty state if file doesn't exist
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func Save(state State) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Get retrieves a value from the state by key.
// Returns the value and true if found, nil and false otherwise.
func Get(key string) (interface{}, bool, error) {
	state, err := Load()
	if err != nil {
		return nil, false, err
	}
	value, ok := state[key]
	return value, ok, nil
}

// Set stores a value in the state under key.
func Set(key string, value interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}
	state[key] = value
	return Save(state)
}

// RecordUpdates appends autoupdate outcomes under the "autoupdate" key,
// keeping the most recent record per repository.
func RecordUpdates(records []UpdateRecord) error {
	state, err := Load()
	if err != nil {
		return err
	}

	byRepo := make(map[string]UpdateRecord)
	if raw, ok := state["autoupdate"]; ok {
		// Best-effort decode of the existing records; a corrupt entry is
		// replaced rather than fatal.
		if data, err := yaml.Marshal(raw); err == nil {
			var existing []UpdateRecord
			if yaml.Unmarshal(data, &existing) == nil {
				for _, rec := range existing {
					byRepo[rec.Repo] = rec
				}
			}
		}
	}

	for _, rec := range records {
		byRepo[rec.Repo] = rec
	}

	merged := make([]UpdateRecord, 0, len(byRepo))
	for _, rec := range byRepo {
		merged = append(merged, rec)
	}

	state["autoupdate"] = merged
	return Save(state)
}

// LastUpdates returns the most recent autoupdate record per repository.
func LastUpdates() (map[string]UpdateRecord, error) {
	state, err := Load()
	if err != nil {
		return nil, err
	}

	byRepo := make(map[string]UpdateRecord)
	raw, ok := state["autoupdate"]
	if !ok {
		return byRepo, nil
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return byRepo, nil
	}
	var records []UpdateRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return byRepo, nil
	}
	for _, rec := range records {
		byRepo[rec.Repo] = rec
	}
	return byRepo, nil
}
