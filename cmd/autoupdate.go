package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cli"
	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/update"
)

// NewAutoupdateCmd creates the autoupdate command.
func NewAutoupdateCmd() *cobra.Command {
	var dryRun bool
	var bleedingEdge bool

	cmd := &cobra.Command{
		Use:   "autoupdate",
		Short: "Re-pin remote repositories to their latest release tag",
		Long: `Queries each remote repository for its highest semantic version tag
and rewrites the configuration's revisions to match. Repositories whose
tags do not parse as versions are left untouched unless --bleeding-edge
is set, which pins the remote HEAD commit instead.`,
		Example: `  # See what would change
  hooklint autoupdate --dry-run

  # Update the config in place
  hooklint autoupdate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)

			path, err := cli.ResolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), settings.Timeout())
			defer cancel()

			updater := update.New(update.Options{BleedingEdge: bleedingEdge})
			var progress *cli.ProgressReporter
			if !opts.JSONOutput {
				progress = cli.NewProgressReporter(cmd.OutOrStdout())
				updater.OnProgress(progress.Update)
			}

			changes := updater.Plan(ctx, cfg)
			if progress != nil {
				progress.Done()
			}

			if !dryRun {
				if updater.Apply(cfg, changes) > 0 {
					if err := cfg.Save(path); err != nil {
						return err
					}
				}
			}

			return reportChanges(cmd, changes, opts.JSONOutput, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned updates without writing the config")
	cmd.Flags().BoolVar(&bleedingEdge, "bleeding-edge", false, "Pin the remote HEAD commit instead of the latest tag")

	return cmd
}

func reportChanges(cmd *cobra.Command, changes []update.Change, jsonOutput, dryRun bool) error {
	out := cmd.OutOrStdout()

	if jsonOutput {
		type entry struct {
			update.Change
			Updated bool   `json:"updated"`
			Error   string `json:"error,omitempty"`
		}
		entries := make([]entry, 0, len(changes))
		for _, c := range changes {
			e := entry{Change: c, Updated: c.Updated()}
			if c.Err != nil {
				e.Error = c.Err.Error()
			}
			entries = append(entries, e)
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else {
		updated := 0
		for _, c := range changes {
			switch {
			case c.Err != nil:
				fmt.Fprintf(out, "%s %s: %v\n", cli.StatusGlyph(false), c.Repo, c.Err)
			case c.Updated():
				fmt.Fprintf(out, "%s %s: %s -> %s\n", cli.StatusGlyph(true), c.Repo, c.OldRev, c.NewRev)
				updated++
			default:
				fmt.Fprintf(out, "%s %s already at %s\n", cli.StatusGlyph(true), c.Repo, c.OldRev)
			}
		}
		if dryRun && updated > 0 {
			fmt.Fprintf(out, "\n%d updates available (dry run, config unchanged)\n", updated)
		}
	}

	var firstErr error
	for _, c := range changes {
		if c.Err != nil {
			firstErr = c.Err
			break
		}
	}
	return firstErr
}
