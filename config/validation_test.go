package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Repos: []Repo{
			{
				Repo: "https://github.com/psf/black",
				Rev:  "25.1.0",
				Hooks: []Hook{
					{ID: "black"},
				},
			},
		},
	}
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateNoRepos(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one repository")
}

func TestValidateRemoteRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing rev",
			mutate:  func(c *Config) { c.Repos[0].Rev = "" },
			wantErr: "must pin a 'rev'",
		},
		{
			name:    "rev with leading dash",
			mutate:  func(c *Config) { c.Repos[0].Rev = "-v1.0.0" },
			wantErr: "invalid 'rev'",
		},
		{
			name:    "empty hooks",
			mutate:  func(c *Config) { c.Repos[0].Hooks = nil },
			wantErr: "at least one hook",
		},
		{
			name:    "bad repo url",
			mutate:  func(c *Config) { c.Repos[0].Repo = "https://example.com/repo;rm -rf" },
			wantErr: "invalid repository URL",
		},
		{
			name:    "bad files regex",
			mutate:  func(c *Config) { c.Repos[0].Hooks[0].Files = "([unclosed" },
			wantErr: "not a valid regular expression",
		},
		{
			name:    "unknown stage",
			mutate:  func(c *Config) { c.Repos[0].Hooks[0].Stages = []string{"pre-commit", "post-push"} },
			wantErr: "unknown hook type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateLocalRepo(t *testing.T) {
	cfg := &Config{
		Repos: []Repo{
			{
				Repo: RepoLocal,
				Hooks: []Hook{
					{ID: "make-test", Name: "make test", Entry: "make test", Language: "system"},
				},
			},
		},
	}
	require.NoError(t, cfg.Validate())

	cfg.Repos[0].Hooks[0].Entry = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must set 'entry'")

	cfg.Repos[0].Hooks[0].Entry = "make test"
	cfg.Repos[0].Rev = "v1.0.0"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not set 'rev'")
}

func TestValidateMetaRepo(t *testing.T) {
	cfg := &Config{
		Repos: []Repo{
			{
				Repo: RepoMeta,
				Hooks: []Hook{
					{ID: "check-hooks-apply"},
					{ID: "identity"},
				},
			},
		},
	}
	require.NoError(t, cfg.Validate())

	cfg.Repos[0].Hooks = append(cfg.Repos[0].Hooks, Hook{ID: "no-such-meta-hook"})
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-meta-hook")
}

func TestValidateGlobalRegexFields(t *testing.T) {
	cfg := validConfig()
	cfg.Exclude = `^vendor/`
	require.NoError(t, cfg.Validate())

	cfg.Exclude = `*broken`
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid regular expression")
}

func TestWarningsMutableRev(t *testing.T) {
	cfg := validConfig()
	cfg.Repos[0].Rev = "main"
	require.NoError(t, cfg.Validate())

	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "mutable ref")
}

func TestWarningsDuplicateHooks(t *testing.T) {
	cfg := validConfig()
	cfg.Repos[0].Hooks = append(cfg.Repos[0].Hooks, Hook{ID: "black"})

	warnings := cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.True(t, strings.Contains(warnings[0], "more than once"))

	// Distinct aliases make duplicates intentional.
	cfg.Repos[0].Hooks[1].Alias = "black-check"
	assert.Empty(t, cfg.Warnings())
}

func TestWarningsCleanConfig(t *testing.T) {
	assert.Empty(t, validConfig().Warnings())
}
