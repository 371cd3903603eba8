// Package cache maintains checkouts of hook repositories under the XDG cache
// directory so repeated verifications do not re-clone.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hadSHOT/hooklint/config"
	"github.com/hadSHOT/hooklint/git"
	"github.com/hadSHOT/hooklint/paths"
)

// Store manages cached repository checkouts keyed by (url, rev).
type Store struct {
	root string
}

// NewStore creates a store rooted at dir. An empty dir falls back to the
// hooklint cache directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = paths.CacheDir()
	}
	return &Store{root: filepath.Join(dir, "repos")}
}

// Root returns the directory checkouts live under.
func (s *Store) Root() string { return s.root }

// key derives a stable directory name for a repo at a rev. A readable prefix
// keeps the cache inspectable; the hash guarantees uniqueness.
func key(repoURL, rev string) string {
	sum := sha256.Sum256([]byte(repoURL + "@" + rev))
	base := filepath.Base(strings.TrimSuffix(repoURL, ".git"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, base)
	return fmt.Sprintf("%s-%s", base, hex.EncodeToString(sum[:8]))
}

// Checkout returns a directory containing the repository at the given rev,
// cloning it on first use.
func (s *Store) Checkout(ctx context.Context, repoURL, rev string) (string, error) {
	dest := filepath.Join(s.root, key(repoURL, rev))

	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return dest, nil
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", fmt.Errorf("create cache root: %w", err)
	}

	// Clone into a staging directory first so an interrupted clone never
	// masquerades as a complete checkout.
	staging, err := os.MkdirTemp(s.root, ".staging-")
	if err != nil {
		return "", fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	cloneDir := filepath.Join(staging, "repo")
	if err := git.CloneAtRev(ctx, repoURL, rev, cloneDir); err != nil {
		return "", err
	}

	if err := os.Rename(cloneDir, dest); err != nil {
		// Another process may have won the race; their checkout is as
		// good as ours.
		if info, statErr := os.Stat(dest); statErr == nil && info.IsDir() {
			return dest, nil
		}
		return "", fmt.Errorf("promote checkout: %w", err)
	}

	return dest, nil
}

// Manifest loads the hook manifest of a repository at a rev, fetching the
// repository if needed.
func (s *Store) Manifest(ctx context.Context, repoURL, rev string) (*config.Manifest, error) {
	dir, err := s.Checkout(ctx, repoURL, rev)
	if err != nil {
		return nil, err
	}
	return config.LoadManifest(dir)
}

// Clean removes all cached checkouts.
func (s *Store) Clean() error {
	return os.RemoveAll(s.root)
}
