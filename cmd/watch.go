package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hadSHOT/hooklint/cli"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate the configuration whenever it changes",
		Long: `Watches the hook configuration file and re-runs validation on every
change. Useful while editing the configuration: problems show up the
moment the file is saved. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cli.GetLogger(cmd)

			path, err := cli.ResolveConfigPath(cmd)
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory, not the file: editors replace files on
			// save, which drops a file-level watch.
			dir := filepath.Dir(path)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			runValidation := func() {
				report := validateConfig(path)
				printReport(cmd, report, false)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", path)
			runValidation()

			var timer *time.Timer
			fire := make(chan struct{}, 1)

			for {
				select {
				case <-cmd.Context().Done():
					return nil

				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != filepath.Clean(path) {
						continue
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
						continue
					}
					// Editors emit bursts of events per save; coalesce them.
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(debounce, func() {
						select {
						case fire <- struct{}{}:
						default:
						}
					})

				case <-fire:
					fmt.Fprintln(cmd.OutOrStdout())
					runValidation()

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.WithError(err).Warn("watcher error")
				}
			}
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "Delay before re-validating after a change")

	return cmd
}
