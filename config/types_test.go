package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveInstallHookTypes(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, []string{"pre-commit"}, cfg.EffectiveInstallHookTypes())

	cfg.DefaultInstallHookTypes = []string{"pre-commit", "pre-push"}
	assert.Equal(t, []string{"pre-commit", "pre-push"}, cfg.EffectiveInstallHookTypes())
}

func TestEffectiveDefaultStages(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, HookTypes, cfg.EffectiveDefaultStages())

	cfg.DefaultStages = []string{"commit-msg"}
	assert.Equal(t, []string{"commit-msg"}, cfg.EffectiveDefaultStages())
}

func TestRepoKinds(t *testing.T) {
	local := Repo{Repo: RepoLocal}
	meta := Repo{Repo: RepoMeta}
	remote := Repo{Repo: "https://github.com/psf/black"}

	assert.True(t, local.IsLocal())
	assert.False(t, local.IsRemote())
	assert.True(t, meta.IsMeta())
	assert.False(t, meta.IsRemote())
	assert.True(t, remote.IsRemote())
}
