// Package cmd assembles the hooklint command tree.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cli"
)

// NewRootCmd creates the root hooklint command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("hooklint",
		"Lint, verify, and maintain pre-commit hook configurations")
	root.Long = `hooklint keeps .pre-commit-config.yaml files healthy: it validates
them against the format's schema and semantic rules, checks that every
referenced hook id actually exists in its source repository, re-pins
repositories to their latest releases, and installs git hooks that
validate the configuration before the external runner sees it.

hooklint never runs the hooks themselves; executing them stays the job
of the pre-commit runner.`

	root.AddCommand(
		NewValidateCmd(),
		NewVerifyCmd(),
		NewListCmd(),
		NewAutoupdateCmd(),
		NewInitCmd(),
		NewInstallCmd(),
		NewUninstallCmd(),
		NewWatchCmd(),
		NewVersionCmd(),
	)

	return root
}
