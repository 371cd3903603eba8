package git

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadSHOT/hooklint/testutil"
)

func TestInstallHooks(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	manager := NewHookManager("hooklint")
	require.NoError(t, manager.InstallHooks(context.Background(), dir, []string{"pre-commit", "pre-push"}))

	for _, name := range []string{"pre-commit", "pre-push"} {
		path := filepath.Join(dir, ".git", "hooks", name)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "hooklint git hook")
		assert.Contains(t, string(content), "validate --quiet")

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.NotZero(t, info.Mode()&0111, "hook must be executable")
		}
	}
}

func TestInstallHooksBacksUpForeignHook(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath), 0755))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho custom\n"), 0755))

	manager := NewHookManager("")
	require.NoError(t, manager.InstallHooks(context.Background(), dir, []string{"pre-commit"}))

	backup, err := os.ReadFile(hookPath + ".pre-hooklint")
	require.NoError(t, err)
	assert.Contains(t, string(backup), "echo custom")
}

func TestUninstallHooksRestoresBackup(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath), 0755))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho custom\n"), 0755))

	manager := NewHookManager("")
	ctx := context.Background()
	require.NoError(t, manager.InstallHooks(ctx, dir, []string{"pre-commit"}))
	require.NoError(t, manager.UninstallHooks(ctx, dir, []string{"pre-commit"}))

	content, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "echo custom")

	_, err = os.Stat(hookPath + ".pre-hooklint")
	assert.True(t, os.IsNotExist(err))
}

func TestUninstallHooksLeavesForeignHooks(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath), 0755))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\necho custom\n"), 0755))

	manager := NewHookManager("")
	require.NoError(t, manager.UninstallHooks(context.Background(), dir, []string{"pre-commit"}))

	content, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "echo custom")
}
