package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/headerscroll/internal/database/repository"
)

func TestStateFileRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "states.json")
	f := NewStateFile(path)

	got, err := f.ByName(ctx, "main")
	require.NoError(t, err)
	require.Nil(t, got)
	list, err := f.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, f.Save(ctx, repository.ContainerState{Name: "main", Offset: 30, Bound: 96, Blob: []byte(`{"a":1}`)}))
	require.NoError(t, f.Save(ctx, repository.ContainerState{Name: "alt", Offset: -4, Bound: 10}))
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "temp file is renamed away")

	reopened := NewStateFile(path)
	got, err = reopened.ByName(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, repository.ContainerID("main"), got.ID)
	require.Equal(t, 30, got.Offset)
	require.JSONEq(t, `{"a":1}`, string(got.Blob))
	require.False(t, got.UpdatedAt.IsZero())

	list, err = reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "alt", list[0].Name)
	require.Zero(t, list[0].Offset)
}

func TestStateFileDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := NewStateFile(filepath.Join(t.TempDir(), "states.json"))
	require.NoError(t, f.SaveAll(ctx, []repository.ContainerState{{Name: "a"}, {Name: "b"}, {Name: "c"}}))

	ok, err := f.DeleteByName(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = f.DeleteByName(ctx, "b")
	require.NoError(t, err)
	require.False(t, ok)

	n, err := f.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	n, err = f.DeleteAll(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestStateFileCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "states.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))
	_, err := NewStateFile(path).List(context.Background())
	require.ErrorContains(t, err, "parse")
}

func TestDefaultStatePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p, err := DefaultStatePath()
	require.NoError(t, err)
	require.Equal(t, statesFile, filepath.Base(p))
}
