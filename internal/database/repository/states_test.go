package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/headerscroll/internal/database"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Setup(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestContainerIDIsStable(t *testing.T) {
	t.Parallel()

	require.Equal(t, ContainerID("main"), ContainerID("main"))
	require.NotEqual(t, ContainerID("main"), ContainerID("settings"))
	require.Len(t, ContainerID("main"), 36)
}

func TestStateSaveAndGet(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := NewStateRepo(openTestDB(t))

	missing, err := repo.ByName(ctx, "main")
	require.NoError(t, err)
	require.Nil(t, missing)

	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, ContainerState{
		Name: "main", Offset: 40, Bound: 96, Blob: []byte(`{"kind":"headerscroll"}`), UpdatedAt: at,
	}))

	got, err := repo.ByName(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, ContainerID("main"), got.ID)
	require.Equal(t, 40, got.Offset)
	require.Equal(t, 96, got.Bound)
	require.JSONEq(t, `{"kind":"headerscroll"}`, string(got.Blob))
	require.True(t, got.UpdatedAt.Equal(at), "updated_at %v", got.UpdatedAt)

	// upsert replaces the row
	require.NoError(t, repo.Save(ctx, ContainerState{Name: "main", Offset: 96, Bound: 96}))
	got, err = repo.Get(ctx, ContainerID("main"))
	require.NoError(t, err)
	require.Equal(t, 96, got.Offset)
	require.Nil(t, got.Blob)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestStateListAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStateRepo(openTestDB(t))
	require.NoError(t, repo.SaveAll(ctx, []ContainerState{
		{Name: "settings", Offset: 1, Bound: 2},
		{Name: "main", Offset: 3, Bound: 4},
		{Name: "detail", Offset: 5, Bound: 6},
	}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{"detail", "main", "settings"}, []string{all[0].Name, all[1].Name, all[2].Name})

	ok, err := repo.DeleteByName(ctx, "main")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.DeleteByName(ctx, "main")
	require.NoError(t, err)
	require.False(t, ok)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	all, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSaveAllIsAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewStateRepo(openTestDB(t))
	err := repo.SaveAll(ctx, []ContainerState{
		{Name: "ok", Bound: 10},
		{ID: "clash", Name: "ok", Bound: 10},
	})
	require.Error(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}
