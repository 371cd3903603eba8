package config

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hadSHOT/hooklint/errors"
)

// ManifestHook is a hook definition from a repository's .pre-commit-hooks.yaml.
// Unlike config hooks these carry the full definition: the manifest is the
// source of truth the config's id references resolve against.
type ManifestHook struct {
	ID                     string   `yaml:"id"`
	Name                   string   `yaml:"name"`
	Entry                  string   `yaml:"entry"`
	Language               string   `yaml:"language"`
	Description            string   `yaml:"description,omitempty"`
	Files                  string   `yaml:"files,omitempty"`
	Exclude                string   `yaml:"exclude,omitempty"`
	Types                  []string `yaml:"types,omitempty"`
	TypesOr                []string `yaml:"types_or,omitempty"`
	ExcludeTypes           []string `yaml:"exclude_types,omitempty"`
	Stages                 []string `yaml:"stages,omitempty"`
	Args                   []string `yaml:"args,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
	AlwaysRun              bool     `yaml:"always_run,omitempty"`
	PassFilenames          *bool    `yaml:"pass_filenames,omitempty"`
	RequireSerial          bool     `yaml:"require_serial,omitempty"`
	MinimumVersion         string   `yaml:"minimum_pre_commit_version,omitempty"`
}

// Manifest is the set of hooks a repository provides.
type Manifest struct {
	Hooks []ManifestHook
}

// LoadManifest reads a repository's hook manifest from its checkout directory.
func LoadManifest(repoDir string) (*Manifest, error) {
	path := filepath.Join(repoDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeManifestNotFound,
				"repository has no "+ManifestFileName).
				WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeManifestInvalid, "read hook manifest").
			WithDetail("path", path)
	}

	return ParseManifest(data)
}

// ParseManifest parses manifest data. The file is a top-level YAML list of
// hook definitions.
func ParseManifest(data []byte) (*Manifest, error) {
	var hooks []ManifestHook
	if err := yaml.Unmarshal(data, &hooks); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeManifestInvalid, "parse hook manifest")
	}

	for _, hook := range hooks {
		if hook.ID == "" {
			return nil, errors.New(errors.ErrCodeManifestInvalid, "manifest hook is missing an id")
		}
	}

	return &Manifest{Hooks: hooks}, nil
}

// HookIDs returns the sorted ids of all hooks in the manifest.
func (m *Manifest) HookIDs() []string {
	ids := make([]string, 0, len(m.Hooks))
	for _, hook := range m.Hooks {
		ids = append(ids, hook.ID)
	}
	sort.Strings(ids)
	return ids
}

// Lookup returns the hook with the given id, if present.
func (m *Manifest) Lookup(id string) (*ManifestHook, bool) {
	for i := range m.Hooks {
		if m.Hooks[i].ID == id {
			return &m.Hooks[i], true
		}
	}
	return nil, false
}
