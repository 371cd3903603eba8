package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const hookScriptTemplate = `#!/bin/sh
# hooklint git hook - {{.HookName}}
# Auto-generated, do not edit directly

HOOKLINT_BIN="{{.Binary}}"

# Check if hooklint is installed
if ! command -v "$HOOKLINT_BIN" >/dev/null 2>&1; then
    echo "hooklint not found. Skipping {{.HookName}} hook."
    exit 0
fi

cd "$(git rev-parse --show-toplevel)" || exit 1

# Validate the hook configuration before the external runner sees it
"$HOOKLINT_BIN" validate --quiet
`

// HookManager installs and removes the git hooks hooklint manages.
type HookManager struct {
	binary string
}

// NewHookManager creates a new hook manager
func NewHookManager(binary string) *HookManager {
	if binary == "" {
		binary = "hooklint"
	}
	return &HookManager{
		binary: binary,
	}
}

// InstallHooks writes the managed hook scripts into the repository at
// repoPath for each of the given hook types.
func (m *HookManager) InstallHooks(ctx context.Context, repoPath string, hookTypes []string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	for _, hookName := range hookTypes {
		if err := m.installHook(hooksDir, hookName); err != nil {
			return fmt.Errorf("install %s hook: %w", hookName, err)
		}
	}

	return nil
}

// UninstallHooks removes managed hook scripts, leaving foreign hooks alone.
func (m *HookManager) UninstallHooks(ctx context.Context, repoPath string, hookTypes []string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")

	for _, hookName := range hookTypes {
		hookPath := filepath.Join(hooksDir, hookName)

		// Check it's ours before removing
		if m.isManagedHook(hookPath) {
			if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s hook: %w", hookName, err)
			}
			// Restore any backed-up foreign hook.
			backupPath := hookPath + ".pre-hooklint"
			if _, err := os.Stat(backupPath); err == nil {
				if err := os.Rename(backupPath, hookPath); err != nil {
					return fmt.Errorf("restore %s hook backup: %w", hookName, err)
				}
			}
		}
	}

	return nil
}

// installHook installs a single git hook
func (m *HookManager) installHook(hooksDir, hookName string) error {
	hookPath := filepath.Join(hooksDir, hookName)

	// Check if hook already exists
	if _, err := os.Stat(hookPath); err == nil {
		if !m.isManagedHook(hookPath) {
			// Backup existing hook
			backupPath := hookPath + ".pre-hooklint"
			if err := os.Rename(hookPath, backupPath); err != nil {
				return fmt.Errorf("backup existing hook: %w", err)
			}
		}
	}

	// Generate hook content
	tmpl, err := template.New(hookName).Parse(hookScriptTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		HookName string
		Binary   string
	}{
		HookName: hookName,
		Binary:   m.binary,
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	// Write hook file with executable permissions
	// #nosec G306 - Git hooks need to be executable
	if err := os.WriteFile(hookPath, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	return nil
}

// isManagedHook checks if a hook file was written by hooklint
func (m *HookManager) isManagedHook(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte("hooklint git hook"))
}
