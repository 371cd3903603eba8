package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyState(t *testing.T) {
	t.Setenv("HOOKLINT_HOME", t.TempDir())

	state, err := Load()
	require.NoError(t, err)
	assert.Empty(t, state)
}

func TestSetGet(t *testing.T) {
	t.Setenv("HOOKLINT_HOME", t.TempDir())

	require.NoError(t, Set("last_check", "2026-08-25"))

	value, ok, err := Get("last_check")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2026-08-25", value)

	_, ok, err = Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOOKLINT_HOME", t.TempDir())

	state := State{"a": "one", "b": 2}
	require.NoError(t, Save(state))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "one", loaded["a"])
	assert.Equal(t, 2, loaded["b"])
}

func TestRecordUpdates(t *testing.T) {
	t.Setenv("HOOKLINT_HOME", t.TempDir())

	first := []UpdateRecord{
		{Repo: "https://github.com/psf/black", OldRev: "24.1.0", NewRev: "25.1.0", UpdatedAt: time.Now().UTC()},
		{Repo: "https://github.com/pre-commit/pre-commit-hooks", OldRev: "v5.0.0", NewRev: "v6.0.0", UpdatedAt: time.Now().UTC()},
	}
	require.NoError(t, RecordUpdates(first))

	updates, err := LastUpdates()
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "25.1.0", updates["https://github.com/psf/black"].NewRev)

	// A later record for the same repo replaces the earlier one.
	second := []UpdateRecord{
		{Repo: "https://github.com/psf/black", OldRev: "25.1.0", NewRev: "25.2.0", UpdatedAt: time.Now().UTC()},
	}
	require.NoError(t, RecordUpdates(second))

	updates, err = LastUpdates()
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "25.2.0", updates["https://github.com/psf/black"].NewRev)
	assert.Equal(t, "v6.0.0", updates["https://github.com/pre-commit/pre-commit-hooks"].NewRev)
}

func TestLastUpdatesEmpty(t *testing.T) {
	t.Setenv("HOOKLINT_HOME", t.TempDir())

	updates, err := LastUpdates()
	require.NoError(t, err)
	assert.Empty(t, updates)
}
