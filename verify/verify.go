// Package verify checks that every hook id a configuration references is
// actually provided by its source repository's hook manifest.
package verify

import (
	"context"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/hadSHOT/hooklint/cache"
	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/errors"
	"github.com/hadSHOT/hooklint/logging"
)

// Result is the verification outcome for one repository entry.
type Result struct {
	Repo    string   `json:"repo"`
	Rev     string   `json:"rev,omitempty"`
	Hooks   []string `json:"hooks"`
	Unknown []string `json:"unknown,omitempty"`
	Err     error    `json:"-"`
}

// OK reports whether the repository's hooks all resolved.
func (r *Result) OK() bool {
	return r.Err == nil && len(r.Unknown) == 0
}

// Verifier resolves config hook ids against repository manifests.
type Verifier struct {
	store    *cache.Store
	log      *logrus.Entry
	progress func(repo, status string)
}

// New creates a Verifier backed by the given checkout store.
func New(store *cache.Store) *Verifier {
	return &Verifier{
		store: store,
		log:   logging.NewLogger("verify"),
	}
}

// OnProgress registers a callback invoked as repositories move through
// fetching and checking. Safe to leave unset.
func (v *Verifier) OnProgress(fn func(repo, status string)) {
	v.progress = fn
}

func (v *Verifier) report(repo, status string) {
	if v.progress != nil {
		v.progress(repo, status)
	}
}

// Run verifies every repository entry in the configuration. Repositories are
// fetched concurrently; results come back in config order.
func (v *Verifier) Run(ctx context.Context, cfg *config.Config) []Result {
	results := make([]Result, len(cfg.Repos))

	var wg sync.WaitGroup
	for i := range cfg.Repos {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = v.verifyRepo(ctx, &cfg.Repos[i])
		}(i)
	}
	wg.Wait()

	return results
}

func (v *Verifier) verifyRepo(ctx context.Context, repo *config.Repo) Result {
	result := Result{Repo: repo.Repo, Rev: repo.Rev}
	for _, hook := range repo.Hooks {
		result.Hooks = append(result.Hooks, hook.ID)
	}

	switch {
	case repo.IsLocal():
		// Local hooks define themselves inline; Validate already enforced
		// the required fields.
		v.report(repo.Repo, "ok")

	case repo.IsMeta():
		for _, hook := range repo.Hooks {
			if !contains(config.MetaHookIDs, hook.ID) {
				result.Unknown = append(result.Unknown, hook.ID)
			}
		}
		v.report(repo.Repo, statusOf(&result))

	default:
		v.report(repo.Repo, "fetching")
		manifest, err := v.store.Manifest(ctx, repo.Repo, repo.Rev)
		if err != nil {
			v.log.WithError(err).WithField("repo", repo.Repo).Warn("failed to load hook manifest")
			if errors.Is(err, errors.ErrCodeManifestNotFound) {
				result.Err = errors.ManifestNotFound(repo.Repo, repo.Rev)
			} else {
				result.Err = err
			}
			v.report(repo.Repo, "failed")
			return result
		}

		for _, hook := range repo.Hooks {
			if _, ok := manifest.Lookup(hook.ID); !ok {
				result.Unknown = append(result.Unknown, hook.ID)
			}
		}
		if len(result.Unknown) > 0 {
			sort.Strings(result.Unknown)
			result.Err = errors.HookNotFound(result.Unknown[0], repo.Repo, manifest.HookIDs())
		}
		v.report(repo.Repo, statusOf(&result))
	}

	return result
}

func statusOf(r *Result) string {
	if r.OK() {
		return "ok"
	}
	return "failed"
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
