package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadSHOT/hooklint/errors"
	"github.com/hadSHOT/hooklint/testutil"
)

func TestIsGitRepo(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	assert.False(t, IsGitRepo(dir))

	testutil.InitGitRepo(t, dir)
	assert.True(t, IsGitRepo(dir))
}

func TestGetGitRoot(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	root, err := GetGitRoot(dir)
	require.NoError(t, err)
	// macOS reports /var as /private/var; compare the resolved paths.
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(root)
	assert.Equal(t, wantDir, gotDir)
}

func TestGetGitRootNotARepo(t *testing.T) {
	testutil.RequireGit(t)

	_, err := GetGitRoot(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotARepo, errors.GetCode(err))
}

func TestResolveRef(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.CreateTag(t, dir, "v1.0.0")

	head := testutil.HeadCommit(t, dir)

	sha, err := ResolveRef(dir, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, head, sha)

	_, err = ResolveRef(dir, "v9.9.9")
	assert.Error(t, err)
}

func TestLsRemoteTags(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.CreateTag(t, dir, "v1.0.0")
	testutil.CreateCommit(t, dir, "next.txt", "next\n")
	testutil.CreateTag(t, dir, "v1.1.0")

	tags, err := LsRemoteTags(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "v1.0.0", tags[0].Name)
	assert.Equal(t, "v1.1.0", tags[1].Name)

	// Annotated tags must resolve to the commit, not the tag object.
	head := testutil.HeadCommit(t, dir)
	assert.Equal(t, head, tags[1].Commit)
}

func TestRemoteHead(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	head, err := RemoteHead(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, testutil.HeadCommit(t, dir), head)
}

func TestLatestVersionTag(t *testing.T) {
	tags := []RemoteTag{
		{Name: "v1.9.0", Commit: "a"},
		{Name: "v1.10.0", Commit: "b"},
		{Name: "v2.0.0-rc1", Commit: "c"},
		{Name: "nightly", Commit: "d"},
	}

	best, err := LatestVersionTag(tags)
	require.NoError(t, err)
	// Semantic ordering, not lexicographic: 1.10 beats 1.9, and the
	// prerelease is skipped.
	assert.Equal(t, "v1.10.0", best.Name)
}

func TestLatestVersionTagNoVersions(t *testing.T) {
	_, err := LatestVersionTag([]RemoteTag{{Name: "nightly"}, {Name: "stable"}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoVersionTags, errors.GetCode(err))
}

func TestCloneAtRevTag(t *testing.T) {
	testutil.RequireGit(t)

	src := t.TempDir()
	testutil.InitGitRepo(t, src)
	testutil.CreateTag(t, src, "v1.0.0")
	testutil.CreateCommit(t, src, "later.txt", "later\n")

	dest := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, CloneAtRev(context.Background(), src, "v1.0.0", dest))

	// The checkout must be at the tag, not the newer HEAD.
	sha, err := ResolveRef(dest, "HEAD")
	require.NoError(t, err)

	want, err := ResolveRef(src, "v1.0.0")
	require.NoError(t, err)
	assert.Equal(t, want, sha)
}

func TestCloneAtRevCommit(t *testing.T) {
	testutil.RequireGit(t)

	src := t.TempDir()
	testutil.InitGitRepo(t, src)
	first := testutil.HeadCommit(t, src)
	testutil.CreateCommit(t, src, "later.txt", "later\n")

	dest := filepath.Join(t.TempDir(), "clone")
	require.NoError(t, CloneAtRev(context.Background(), src, first, dest))

	sha, err := ResolveRef(dest, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, first, sha)
}

func TestCloneAtRevMissing(t *testing.T) {
	testutil.RequireGit(t)

	src := t.TempDir()
	testutil.InitGitRepo(t, src)

	dest := filepath.Join(t.TempDir(), "clone")
	err := CloneAtRev(context.Background(), src, "v9.9.9", dest)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRevNotFound, errors.GetCode(err))
}

func TestCloneAtRevRejectsBadInput(t *testing.T) {
	err := CloneAtRev(context.Background(), "https://example.com/repo;evil", "v1.0.0", t.TempDir())
	assert.Error(t, err)

	err = CloneAtRev(context.Background(), "https://example.com/repo", "-v1.0.0", t.TempDir())
	assert.Error(t, err)
}
