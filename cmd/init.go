package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cli"
	"github.com/hadSHOT/hooklint/config"
)

const starterConfig = `repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v6.0.0
    hooks:
      - id: trailing-whitespace
      - id: end-of-file-fixer
      - id: check-yaml
        args: [--allow-multiple-documents]
  - repo: https://github.com/codespell-project/codespell
    rev: v2.4.1
    hooks:
      - id: codespell
        additional_dependencies:
          - tomli
  - repo: https://github.com/astral-sh/ruff-pre-commit
    rev: v0.12.0
    hooks:
      - id: ruff
        args: [--fix]
      - id: ruff-format
  - repo: https://github.com/pre-commit/mirrors-mypy
    rev: v1.17.1
    hooks:
      - id: mypy
`

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter hook configuration in the current directory",
		Long: `Writes a ` + config.ConfigFileName + ` seeded with a small set of
widely-used hooks. Refuses to overwrite an existing configuration
unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			path := filepath.Join(cwd, config.ConfigFileName)

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			// Make sure the template we ship stays parseable.
			if _, err := config.Parse([]byte(starterConfig)); err != nil {
				return fmt.Errorf("starter config is broken: %w", err)
			}

			if err := os.WriteFile(path, []byte(starterConfig), 0644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s created %s\n", cli.StatusGlyph(true), path)
			fmt.Fprintln(cmd.OutOrStdout(), "Run 'hooklint install' to wire it into this repository's git hooks.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")

	return cmd
}
