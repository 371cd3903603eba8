package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cache"
	"github.com/hadSHOT/hooklint/cli"
	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/state"
	"github.com/hadSHOT/hooklint/verify"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every referenced hook id exists in its repository",
		Long: `Fetches each remote repository at its pinned revision and checks the
hook ids the configuration references against the repository's hook
manifest. Local hooks are self-defining and meta hooks are checked
against the built-in set. Checkouts are cached, so repeated runs only
hit the network for revisions not seen before.`,
		Example: `  hooklint verify

  # Discard cached checkouts first
  hooklint verify --no-cache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			log := cli.GetLogger(cmd)

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
			store := cache.NewStore(settings.CacheDir)
			if noCache {
				if err := store.Clean(); err != nil {
					log.WithError(err).Warn("failed to clean checkout cache")
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), settings.Timeout())
			defer cancel()

			verifier := verify.New(store)
			var progress *cli.ProgressReporter
			if !opts.JSONOutput {
				progress = cli.NewProgressReporter(cmd.OutOrStdout())
				verifier.OnProgress(progress.Update)
			}

			results := verifier.Run(ctx, cfg)
			if progress != nil {
				progress.Done()
			}

			if err := reportVerify(cmd, results, opts.JSONOutput); err != nil {
				return err
			}
			if err := state.Set("last_verify", time.Now().UTC().Format(time.RFC3339)); err != nil {
				log.WithError(err).Debug("failed to record verify time")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Remove cached checkouts before verifying")

	return cmd
}

func reportVerify(cmd *cobra.Command, results []verify.Result, jsonOutput bool) error {
	type entry struct {
		verify.Result
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	var failed []string
	var entries []entry
	for i := range results {
		r := results[i]
		e := entry{Result: r, OK: r.OK()}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		entries = append(entries, e)
		if !r.OK() {
			failed = append(failed, r.Repo)
		}
	}

	if jsonOutput {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		for _, e := range entries {
			if e.OK {
				continue
			}
			if len(e.Unknown) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: unknown hooks: %s\n",
					cli.StatusGlyph(false), e.Repo, strings.Join(e.Unknown, ", "))
			} else if e.Error != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", cli.StatusGlyph(false), e.Repo, e.Error)
			}
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("verification failed for %d of %d repositories", len(failed), len(results))
	}
	return nil
}
