package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/config"
	"github.com/rkcad/rk/editor"
	"github.com/rkcad/rk/logging"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	v, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), v)
}

func TestLoadDecodesPartialOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_spacing: 2.5\nundo_history_cap: 10\n"), 0o644))

	v, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2.5, v.GridSpacing)
	require.Equal(t, 10, v.UndoHistoryCap)
	// Unset fields keep their defaults.
	require.Equal(t, config.Defaults().SnapToGrid, v.SnapToGrid)
	require.Equal(t, config.Defaults().DefaultKernel, v.DefaultKernel)
}

func TestChangedSatisfiesConfigChangedDuckType(t *testing.T) {
	c := config.Changed{Values: config.Values{GridSpacing: 3, SnapToGrid: false, UndoHistoryCap: 7}}
	require.Equal(t, 3.0, c.ConfigGridSpacing())
	require.False(t, c.ConfigSnapToGrid())
	require.Equal(t, 7, c.ConfigUndoHistoryCap())
	require.False(t, c.IsUndoable())
}

func TestManagerWatchEnqueuesChangedOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_spacing: 1\n"), 0o644))

	store := editor.NewStore(logging.NewTestLogger())
	mgr, v, err := config.NewManager(path, store, logging.NewTestLogger())
	require.NoError(t, err)
	require.Equal(t, 1.0, v.GridSpacing)
	require.NoError(t, mgr.Watch())
	defer mgr.Stop()

	require.NoError(t, os.WriteFile(path, []byte("grid_spacing: 9\n"), 0o644))

	require.Eventually(t, func() bool {
		store.DrainPending()
		return store.Mode.Sketch.GridSpacing == 9
	}, 2*time.Second, 20*time.Millisecond)
}
