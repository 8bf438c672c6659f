package editor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/editor"
	"github.com/rkcad/rk/kernel/native"
	"github.com/rkcad/rk/logging"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

func TestPublishEmptyStoreHasNoOptionalLayers(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())
	frame := s.Publish(native.New())
	require.False(t, frame.HasAxes)
	require.False(t, frame.HasSketch)
	require.Empty(t, frame.Bodies)
}

func TestPublishInSketchModeIncludesPrimitives(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())
	s.Dispatch(editor.SketchCreate{Name: "s1", Plane: spatialmath.PlaneXY()})

	frame := s.Publish(native.New())
	require.True(t, frame.HasSketch)
}

func TestDrainPendingAppliesQueuedActions(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())
	id := uid.New()
	s.Enqueue(editor.AddPart{PartID: id, Name: "bracket"})
	s.DrainPending()

	_, ok := s.Part(id)
	require.True(t, ok)
}
