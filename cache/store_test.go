package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadSHOT/hooklint/errors"
	"github.com/hadSHOT/hooklint/testutil"
)

func TestCheckout(t *testing.T) {
	repo := testutil.CreateHookRepo(t, "trailing-whitespace")
	store := NewStore(t.TempDir())

	dir, err := store.Checkout(context.Background(), repo, "v1.0.0")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".pre-commit-hooks.yaml"))
	assert.NoError(t, err)
}

func TestCheckoutIsCached(t *testing.T) {
	repo := testutil.CreateHookRepo(t, "trailing-whitespace")
	store := NewStore(t.TempDir())
	ctx := context.Background()

	first, err := store.Checkout(ctx, repo, "v1.0.0")
	require.NoError(t, err)

	// Drop a marker; a second Checkout must reuse the directory, not
	// re-clone over it.
	marker := filepath.Join(first, ".cache-marker")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0644))

	second, err := store.Checkout(ctx, repo, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = os.Stat(marker)
	assert.NoError(t, err)
}

func TestCheckoutDistinctRevs(t *testing.T) {
	repo := testutil.CreateHookRepo(t, "trailing-whitespace")
	testutil.CreateCommit(t, repo, "more.txt", "more\n")
	testutil.CreateTag(t, repo, "v1.1.0")

	store := NewStore(t.TempDir())
	ctx := context.Background()

	a, err := store.Checkout(ctx, repo, "v1.0.0")
	require.NoError(t, err)
	b, err := store.Checkout(ctx, repo, "v1.1.0")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestManifest(t *testing.T) {
	repo := testutil.CreateHookRepo(t, "black", "black-jupyter")
	store := NewStore(t.TempDir())

	manifest, err := store.Manifest(context.Background(), repo, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"black", "black-jupyter"}, manifest.HookIDs())
}

func TestManifestMissing(t *testing.T) {
	testutil.RequireGit(t)

	// A repository without a hook manifest.
	repo := t.TempDir()
	testutil.InitGitRepo(t, repo)
	testutil.CreateTag(t, repo, "v1.0.0")

	store := NewStore(t.TempDir())
	_, err := store.Manifest(context.Background(), repo, "v1.0.0")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeManifestNotFound, errors.GetCode(err))
}

func TestCheckoutBadRev(t *testing.T) {
	repo := testutil.CreateHookRepo(t, "black")
	store := NewStore(t.TempDir())

	_, err := store.Checkout(context.Background(), repo, "v9.9.9")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRevNotFound, errors.GetCode(err))
}

func TestClean(t *testing.T) {
	repo := testutil.CreateHookRepo(t, "black")
	store := NewStore(t.TempDir())

	dir, err := store.Checkout(context.Background(), repo, "v1.0.0")
	require.NoError(t, err)

	require.NoError(t, store.Clean())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
