package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

const (
	// ConfigFileName is the canonical name of the hook configuration file.
	ConfigFileName = ".pre-commit-config.yaml"

	// AltConfigFileName is the alternate spelling some projects use.
	AltConfigFileName = ".pre-commit-config.yml"

	// ManifestFileName is the hook manifest a hook-providing repository ships.
	ManifestFileName = ".pre-commit-hooks.yaml"
)

// Sentinel values for the repo field that do not refer to a remote repository.
const (
	RepoLocal = "local"
	RepoMeta  = "meta"
)

// HookTypes lists the git hook types a hook may be installed for or staged on.
var HookTypes = []string{
	"commit-msg",
	"post-checkout",
	"post-commit",
	"post-merge",
	"post-rewrite",
	"pre-commit",
	"pre-merge-commit",
	"pre-push",
	"pre-rebase",
	"prepare-commit-msg",
	"manual",
}

// MetaHookIDs lists the hook ids the built-in meta repository provides.
var MetaHookIDs = []string{
	"check-hooks-apply",
	"check-useless-excludes",
	"identity",
}

// Hook is a single hook entry within a repository block. For remote and meta
// repositories only the id is required; everything else overrides what the
// repository's own manifest declares. Local hooks carry their full definition
// inline.
type Hook struct {
	ID                     string            `yaml:"id" json:"id" jsonschema:"required,description=Identifier of the hook as declared by its repository"`
	Name                   string            `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Override for the hook's display name"`
	Alias                  string            `yaml:"alias,omitempty" json:"alias,omitempty" jsonschema:"description=Additional id the hook can be invoked by"`
	Entry                  string            `yaml:"entry,omitempty" json:"entry,omitempty" jsonschema:"description=Command to run (required for local hooks)"`
	Language               string            `yaml:"language,omitempty" json:"language,omitempty" jsonschema:"description=Implementation language of the hook (required for local hooks)"`
	LanguageVersion        string            `yaml:"language_version,omitempty" json:"language_version,omitempty" jsonschema:"description=Language runtime version override"`
	Args                   []string          `yaml:"args,omitempty" json:"args,omitempty" jsonschema:"description=Extra command-line arguments passed to the hook"`
	AdditionalDependencies []string          `yaml:"additional_dependencies,omitempty" json:"additional_dependencies,omitempty" jsonschema:"description=Extra packages installed into the hook's environment"`
	Files                  string            `yaml:"files,omitempty" json:"files,omitempty" jsonschema:"description=Regular expression selecting files the hook runs on"`
	Exclude                string            `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Regular expression excluding files from the hook"`
	Types                  []string          `yaml:"types,omitempty" json:"types,omitempty" jsonschema:"description=File types the hook runs on (AND semantics)"`
	TypesOr                []string          `yaml:"types_or,omitempty" json:"types_or,omitempty" jsonschema:"description=File types the hook runs on (OR semantics)"`
	ExcludeTypes           []string          `yaml:"exclude_types,omitempty" json:"exclude_types,omitempty" jsonschema:"description=File types excluded from the hook"`
	Stages                 []string          `yaml:"stages,omitempty" json:"stages,omitempty" jsonschema:"description=Git hook types this hook runs for"`
	AlwaysRun              bool              `yaml:"always_run,omitempty" json:"always_run,omitempty" jsonschema:"description=Run even when no files match"`
	PassFilenames          *bool             `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty" jsonschema:"description=Whether matched filenames are passed to the hook (default: true)"`
	RequireSerial          bool              `yaml:"require_serial,omitempty" json:"require_serial,omitempty" jsonschema:"description=Run without parallelism"`
	Verbose                bool              `yaml:"verbose,omitempty" json:"verbose,omitempty" jsonschema:"description=Print hook output even on success"`
	LogFile                string            `yaml:"log_file,omitempty" json:"log_file,omitempty" jsonschema:"description=File the hook's output is written to"`
	MinimumVersion         string            `yaml:"minimum_pre_commit_version,omitempty" json:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version this hook needs"`
}

// Repo is one entry of the repos list: a hook source plus the hooks taken
// from it.
type Repo struct {
	Repo  string `yaml:"repo" json:"repo" jsonschema:"required,description=Repository URL or the sentinels 'local'/'meta'"`
	Rev   string `yaml:"rev,omitempty" json:"rev,omitempty" jsonschema:"description=Pinned revision (tag or commit) of the repository"`
	Hooks []Hook `yaml:"hooks" json:"hooks" jsonschema:"required,description=Hooks taken from this repository"`
}

// IsLocal reports whether the entry declares its hooks inline.
func (r *Repo) IsLocal() bool { return r.Repo == RepoLocal }

// IsMeta reports whether the entry refers to the built-in meta hooks.
func (r *Repo) IsMeta() bool { return r.Repo == RepoMeta }

// IsRemote reports whether the entry refers to a remote hook repository.
func (r *Repo) IsRemote() bool { return !r.IsLocal() && !r.IsMeta() }

// Config represents the .pre-commit-config.yaml configuration.
type Config struct {
	Repos                   []Repo            `yaml:"repos" json:"repos" jsonschema:"required,description=Hook repositories and the hooks taken from them"`
	DefaultInstallHookTypes []string          `yaml:"default_install_hook_types,omitempty" json:"default_install_hook_types,omitempty" jsonschema:"description=Hook types installed by default"`
	DefaultLanguageVersion  map[string]string `yaml:"default_language_version,omitempty" json:"default_language_version,omitempty" jsonschema:"description=Default language runtime versions keyed by language"`
	DefaultStages           []string          `yaml:"default_stages,omitempty" json:"default_stages,omitempty" jsonschema:"description=Default stages for hooks that do not set their own"`
	Files                   string            `yaml:"files,omitempty" json:"files,omitempty" jsonschema:"description=Global file-selection regular expression"`
	Exclude                 string            `yaml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Global file-exclusion regular expression"`
	FailFast                bool              `yaml:"fail_fast,omitempty" json:"fail_fast,omitempty" jsonschema:"description=Stop running hooks after the first failure"`
	MinimumVersion          string            `yaml:"minimum_pre_commit_version,omitempty" json:"minimum_pre_commit_version,omitempty" jsonschema:"description=Minimum runner version required by this config"`

	// Extensions captures all other top-level keys (e.g. the hosted-CI
	// 'ci:' block) for forward compatibility.
	Extensions map[string]interface{} `yaml:",inline" json:"-" jsonschema:"-"`
}

// CIConfig is the hosted-CI settings block some configs carry under the 'ci'
// key. It is not part of the core format, so it lives in Extensions and is
// decoded on demand.
type CIConfig struct {
	AutofixCommitMsg    string   `yaml:"autofix_commit_msg"`
	AutofixPRs          *bool    `yaml:"autofix_prs"`
	AutoupdateBranch    string   `yaml:"autoupdate_branch"`
	AutoupdateCommitMsg string   `yaml:"autoupdate_commit_msg"`
	AutoupdateSchedule  string   `yaml:"autoupdate_schedule"`
	Skip                []string `yaml:"skip"`
	SubmodulesSupported *bool    `yaml:"submodules"`
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded config into the provided target struct. The target must be a pointer.
// This provides a type-safe way to access non-core sections such as 'ci'.
//
// Example:
//
//	var ci config.CIConfig
//	err := cfg.UnmarshalExtension("ci", &ci)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// EffectiveInstallHookTypes returns the hook types an installer should set
// up. Defaults are not written back into the struct so that Save round-trips
// only what the user declared.
func (c *Config) EffectiveInstallHookTypes() []string {
	if len(c.DefaultInstallHookTypes) > 0 {
		return c.DefaultInstallHookTypes
	}
	return []string{"pre-commit"}
}

// EffectiveDefaultStages returns the stages hooks run for when they do not
// declare their own. An empty default_stages means every hook type.
func (c *Config) EffectiveDefaultStages() []string {
	if len(c.DefaultStages) > 0 {
		return c.DefaultStages
	}
	return append([]string(nil), HookTypes...)
}

// HookCount returns the total number of hooks declared across all repos.
func (c *Config) HookCount() int {
	n := 0
	for _, repo := range c.Repos {
		n += len(repo.Hooks)
	}
	return n
}

// RemoteRepos returns the entries that refer to remote hook repositories.
func (c *Config) RemoteRepos() []Repo {
	var remotes []Repo
	for _, repo := range c.Repos {
		if repo.IsRemote() {
			remotes = append(remotes, repo)
		}
	}
	return remotes
}
