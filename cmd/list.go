package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cli"
	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/state"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the repositories and hooks the configuration references",
		Long: `Prints every repository entry with its pinned revision and hooks. When
an earlier autoupdate recorded a revision bump for a repository, the
previous revision is shown alongside.`,
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

			updates, err := state.LastUpdates()
			if err != nil {
				log.WithError(err).Debug("no autoupdate history available")
				updates = nil
			}

			if opts.JSONOutput {
				return printListJSON(cmd, cfg, updates)
			}
			printList(cmd, cfg, updates)
			return nil
		},
	}

	return cmd
}

type listEntry struct {
	Repo       string   `json:"repo"`
	Rev        string   `json:"rev,omitempty"`
	Hooks      []string `json:"hooks"`
	UpdatedRev string   `json:"previous_rev,omitempty"`
}

func listEntries(cfg *config.Config, updates map[string]state.UpdateRecord) []listEntry {
	entries := make([]listEntry, 0, len(cfg.Repos))
	for _, repo := range cfg.Repos {
		entry := listEntry{Repo: repo.Repo, Rev: repo.Rev}
		for _, hook := range repo.Hooks {
			entry.Hooks = append(entry.Hooks, hook.ID)
		}
		if record, ok := updates[repo.Repo]; ok && record.NewRev == repo.Rev {
			entry.UpdatedRev = record.OldRev
		}
		entries = append(entries, entry)
	}
	return entries
}

func printListJSON(cmd *cobra.Command, cfg *config.Config, updates map[string]state.UpdateRecord) error {
	data, err := json.MarshalIndent(listEntries(cfg, updates), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printList(cmd *cobra.Command, cfg *config.Config, updates map[string]state.UpdateRecord) {
	out := cmd.OutOrStdout()
	for _, entry := range listEntries(cfg, updates) {
		header := entry.Repo
		if entry.Rev != "" {
			header += " @ " + entry.Rev
		}
		if entry.UpdatedRev != "" {
			header += fmt.Sprintf(" (was %s)", entry.UpdatedRev)
		}
		fmt.Fprintln(out, header)
		for _, id := range entry.Hooks {
			fmt.Fprintf(out, "  - %s\n", id)
		}
	}
	fmt.Fprintf(out, "\n%d hooks across %d repositories\n", cfg.HookCount(), len(cfg.Repos))

	if lastVerify, ok, err := state.Get("last_verify"); err == nil && ok {
		fmt.Fprintf(out, "Last verified: %v\n", lastVerify)
	}
}
