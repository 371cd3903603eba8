package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hadSHOT/hooklint/errors"
)

// FindConfigFile walks up from startDir looking for a hook configuration file.
// Both the .yaml and .yml spellings are accepted.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{ConfigFileName, AltConfigFileName} {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, ConfigFileName))
		}
		dir = parent
	}
}

// ReadConfigFile reads the raw bytes of a configuration file. Callers that
// need both the parsed config and the original document (schema validation
// runs on the raw document) read once through here.
func ReadConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "read configuration file").
			WithDetail("path", path)
	}
	return data, nil
}

// Load reads and parses a hook configuration file.
func Load(path string) (*Config, error) {
	data, err := ReadConfigFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse parses configuration data. Unknown top-level keys are preserved in
// Extensions rather than rejected; structural problems are reported with the
// document location where possible.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "parse configuration YAML")
	}

	return &cfg, nil
}

// LoadDefault finds and loads the configuration for the current directory.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	path, err := FindConfigFile(cwd)
	if err != nil {
		return nil, err
	}

	return Load(path)
}

// Save writes the configuration back to disk. Output uses two-space indent to
// match the formatting conventions of the ecosystem.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "marshal configuration")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "marshal configuration")
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "write configuration file").
			WithDetail("path", path)
	}

	return nil
}
