package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectNameFromPath(t *testing.T) {
	require.Equal(t, "bracket", projectNameFromPath("/tmp/bracket.rk.yaml"))
	require.Equal(t, "bracket", projectNameFromPath("bracket"))
}

func TestNewThenInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj.yaml")

	app := newApp()
	require.NoError(t, app.Run([]string{"rk", "new", path}))
	require.NoError(t, app.Run([]string{"rk", "--kernel", "native", "inspect", path}))
}
