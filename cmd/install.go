package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cli"
	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/git"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var hookTypes []string
	var binary string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install git hooks that validate the configuration before commits",
		Long: `Writes small hook scripts into .git/hooks that validate the hook
configuration before the external runner sees it. Existing foreign
hooks are backed up and restored on uninstall. Hook types default to
the configuration's default_install_hook_types.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, types, err := resolveHookTarget(cmd, hookTypes)
			if err != nil {
				return err
			}

			manager := git.NewHookManager(binary)
			if err := manager.InstallHooks(cmd.Context(), root, types); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s installed hooks: %s\n",
				cli.StatusGlyph(true), strings.Join(types, ", "))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&hookTypes, "hook-type", "t", nil, "Hook type to install (repeatable)")
	cmd.Flags().StringVar(&binary, "binary", "", "Path to the hooklint binary the hooks invoke")

	return cmd
}

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	var hookTypes []string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove installed git hooks and restore any backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, types, err := resolveHookTarget(cmd, hookTypes)
			if err != nil {
				return err
			}

			manager := git.NewHookManager("")
			if err := manager.UninstallHooks(cmd.Context(), root, types); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s removed hooks: %s\n",
				cli.StatusGlyph(true), strings.Join(types, ", "))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&hookTypes, "hook-type", "t", nil, "Hook type to remove (repeatable)")

	return cmd
}

// resolveHookTarget finds the enclosing git repository and decides which hook
// types to act on: explicit flags win, then the config's defaults.
func resolveHookTarget(cmd *cobra.Command, flagTypes []string) (string, []string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	root, err := git.GetGitRoot(cwd)
	if err != nil {
		return "", nil, err
	}

	if len(flagTypes) > 0 {
		for _, t := range flagTypes {
			if !isKnownHookType(t) {
				return "", nil, fmt.Errorf("unknown hook type %q", t)
			}
		}
		return root, flagTypes, nil
	}

	types := []string{"pre-commit"}
	if path, err := cli.ResolveConfigPath(cmd); err == nil {
		if cfg, err := config.Load(path); err == nil {
			types = cfg.EffectiveInstallHookTypes()
		}
	}
	return root, types, nil
}

func isKnownHookType(t string) bool {
	for _, known := range config.HookTypes {
		if t == known {
			return true
		}
	}
	return false
}
