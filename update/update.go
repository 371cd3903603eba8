// Package update resolves newer revisions for the remote repositories a
// configuration pins.
package update

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/errors"
	"github.com/hadSHOT/hooklint/git"
	"github.com/hadSHOT/hooklint/logging"
	"github.com/hadSHOT/hooklint/state"
)

// Change is a proposed revision bump for one repository.
type Change struct {
	Repo   string `json:"repo"`
	OldRev string `json:"old_rev"`
	NewRev string `json:"new_rev"`
	Err    error  `json:"-"`
}

// Updated reports whether the repository actually moves.
func (c *Change) Updated() bool {
	return c.Err == nil && c.NewRev != "" && c.NewRev != c.OldRev
}

// Options control revision selection.
type Options struct {
	// BleedingEdge selects the remote HEAD commit instead of the highest
	// version tag.
	BleedingEdge bool
}

// Updater plans and applies revision updates.
type Updater struct {
	opts     Options
	log      *logrus.Entry
	progress func(repo, status string)
}

// New creates an Updater.
func New(opts Options) *Updater {
	return &Updater{
		opts: opts,
		log:  logging.NewLogger("autoupdate"),
	}
}

// OnProgress registers a callback invoked per repository. Safe to leave unset.
func (u *Updater) OnProgress(fn func(repo, status string)) {
	u.progress = fn
}

func (u *Updater) report(repo, status string) {
	if u.progress != nil {
		u.progress(repo, status)
	}
}

// Plan resolves the target revision for every remote repository without
// touching the configuration. Lookups run concurrently.
func (u *Updater) Plan(ctx context.Context, cfg *config.Config) []Change {
	remotes := cfg.RemoteRepos()
	changes := make([]Change, len(remotes))

	var wg sync.WaitGroup
	for i := range remotes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			changes[i] = u.planRepo(ctx, &remotes[i])
		}(i)
	}
	wg.Wait()

	return changes
}

func (u *Updater) planRepo(ctx context.Context, repo *config.Repo) Change {
	change := Change{Repo: repo.Repo, OldRev: repo.Rev}
	u.report(repo.Repo, "resolving")

	if u.opts.BleedingEdge {
		head, err := git.RemoteHead(ctx, repo.Repo)
		if err != nil {
			u.log.WithError(err).WithField("repo", repo.Repo).Warn("failed to resolve remote HEAD")
			change.Err = err
			u.report(repo.Repo, "failed")
			return change
		}
		change.NewRev = head
		u.report(repo.Repo, "ok")
		return change
	}

	tags, err := git.LsRemoteTags(ctx, repo.Repo)
	if err != nil {
		u.log.WithError(err).WithField("repo", repo.Repo).Warn("failed to list remote tags")
		change.Err = err
		u.report(repo.Repo, "failed")
		return change
	}

	best, err := git.LatestVersionTag(tags)
	if err != nil {
		change.Err = errors.Wrap(err, errors.ErrCodeNoVersionTags, "no version tags in "+repo.Repo).
			WithDetail("repo", repo.Repo)
		u.report(repo.Repo, "failed")
		return change
	}

	change.NewRev = best.Name
	u.report(repo.Repo, "ok")
	return change
}

// Apply writes planned changes into the configuration and records them in the
// state file. Only changes that actually move a repository are applied.
// Changes match config entries by URL and current rev, so a config listing the
// same repository twice at different revs gets each entry's own plan.
func (u *Updater) Apply(cfg *config.Config, changes []Change) int {
	type changeKey struct {
		repo   string
		oldRev string
	}
	planned := make(map[changeKey]Change)
	for _, change := range changes {
		if change.Updated() {
			planned[changeKey{change.Repo, change.OldRev}] = change
		}
	}

	applied := 0
	var records []state.UpdateRecord
	now := time.Now().UTC()
	for i := range cfg.Repos {
		repo := &cfg.Repos[i]
		if !repo.IsRemote() {
			continue
		}
		change, ok := planned[changeKey{repo.Repo, repo.Rev}]
		if !ok {
			continue
		}
		repo.Rev = change.NewRev
		applied++
		records = append(records, state.UpdateRecord{
			Repo:      repo.Repo,
			OldRev:    change.OldRev,
			NewRev:    change.NewRev,
			UpdatedAt: now,
		})
	}

	if len(records) > 0 {
		if err := state.RecordUpdates(records); err != nil {
			u.log.WithError(err).Warn("failed to record autoupdate state")
		}
	}

	return applied
}
