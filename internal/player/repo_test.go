package player

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	s := NewWithID("p1", time.Now())
	s.Geno = 500
	s.SetUpgradeLevel(CategoryClick, 0, "cell_membrane", 2)
	require.NoError(t, repo.Put(ctx, s))

	reopened, err := NewFileRepo(dir)
	require.NoError(t, err)

	got, ok, err := reopened.Get(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(500), got.Geno)
	assert.Equal(t, 2, got.UpgradeLevel(CategoryClick, 0, "cell_membrane"))
}

func TestFileRepo_GetReturnsACopy(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Put(ctx, NewWithID("p1", time.Now())))

	first, _, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	first.Geno = 999_999

	second, _, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, second.Geno, "mutating a returned state must not leak into the store")
}

func TestFileRepo_ApplyChangesCreatesMissingRecord(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	got, err := repo.ApplyChanges(ctx, "new-player", map[string]json.RawMessage{
		"geno": json.RawMessage(`1234`),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-player", got.ID)
	assert.Equal(t, int64(1234), got.Geno)
	assert.Equal(t, int64(DefaultMaxEnergy), got.MaxEnergy, "fresh defaults underneath the diff")
}

func TestFileRepo_GetMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	_, ok, err := repo.Get(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryRepo_BasicCycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	s := NewWithID("p1", time.Now())
	s.Geno = 42
	require.NoError(t, repo.Put(ctx, s))

	got, ok, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), got.Geno)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
