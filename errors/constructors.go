package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *HookError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// HookNotFound creates an unknown hook id error
func HookNotFound(hookID, repo string, available []string) *HookError {
	return New(ErrCodeHookNotFound,
		fmt.Sprintf("hook '%s' is not provided by repository %s", hookID, repo)).
		WithDetail("hook", hookID).
		WithDetail("repo", repo).
		WithDetail("available", available)
}

// ManifestNotFound creates a missing hook manifest error
func ManifestNotFound(repo, rev string) *HookError {
	return New(ErrCodeManifestNotFound,
		fmt.Sprintf("repository %s@%s does not contain a .pre-commit-hooks.yaml manifest", repo, rev)).
		WithDetail("repo", repo).
		WithDetail("rev", rev)
}

// RepoUnreachable creates an unreachable repository error
func RepoUnreachable(repo string, err error) *HookError {
	return Wrap(err, ErrCodeRepoUnreachable, fmt.Sprintf("repository %s is unreachable", repo)).
		WithDetail("repo", repo)
}

// RevNotFound creates an unknown revision error
func RevNotFound(repo, rev string) *HookError {
	return New(ErrCodeRevNotFound, fmt.Sprintf("revision '%s' does not exist in %s", rev, repo)).
		WithDetail("repo", repo).
		WithDetail("rev", rev)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *HookError {
	hookErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		hookErr = hookErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return hookErr
}
