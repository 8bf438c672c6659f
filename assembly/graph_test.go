package assembly_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

func TestRevoluteJointForwardKinematics(t *testing.T) {
	g := assembly.NewGraph("arm")

	l0 := assembly.NewLink("base")
	l1 := assembly.NewLink("link1")
	l2 := assembly.NewLink("link2")
	g.AddLink(l0)
	g.AddLink(l1)
	g.AddLink(l2)

	j1 := assembly.RevoluteJoint("J1", l0.ID, l1.ID, spatialmath.IdentityPose, r3.Vector{Z: 1})
	require.NoError(t, g.Connect(l0.ID, l1.ID, j1))

	j2 := assembly.FixedJoint("J2", l1.ID, l2.ID, spatialmath.NewPoseFromPosition(r3.Vector{X: 1}))
	require.NoError(t, g.Connect(l1.ID, l2.ID, j2))

	g.SetJointPosition(j1.ID, math.Pi/2)
	g.UpdateWorldTransforms()

	l2Updated, ok := g.Link(l2.ID)
	require.True(t, ok)

	world := spatialmath.TransformPoint(l2Updated.WorldTransform, r3.Vector{})
	require.True(t, spatialmath.ApproxEqual(world, r3.Vector{Y: 1}, 1e-9),
		"expected world position near (0,1,0), got %v", world)
}

// TestMimicJointCorrectsGrandchildTransform covers a mimic joint with a
// non-mimic descendant further down its subtree: Root -(mimic J0)-> L1
// -(fixed J1)-> L2. L2's transform must be derived from L1's
// mimic-corrected transform, not the stale pre-correction one.
func TestMimicJointCorrectsGrandchildTransform(t *testing.T) {
	g := assembly.NewGraph("arm")

	root := assembly.NewLink("root")
	src := assembly.NewLink("src")
	l1 := assembly.NewLink("l1")
	l2 := assembly.NewLink("l2")
	g.AddLink(root)
	g.AddLink(src)
	g.AddLink(l1)
	g.AddLink(l2)

	// A throwaway joint whose position drives the mimic below.
	sourceJoint := assembly.RevoluteJoint("source", root.ID, src.ID, spatialmath.IdentityPose, r3.Vector{Z: 1})
	require.NoError(t, g.Connect(root.ID, src.ID, sourceJoint))
	g.SetJointPosition(sourceJoint.ID, math.Pi/2)

	mimicJoint := assembly.NewJointBuilder("J0", root.ID, l1.ID).
		Revolute().AxisXYZ(0, 0, 1).Mimic(sourceJoint.ID).Build()
	require.NoError(t, g.Connect(root.ID, l1.ID, mimicJoint))

	fixedJoint := assembly.FixedJoint("J1", l1.ID, l2.ID, spatialmath.NewPoseFromPosition(r3.Vector{X: 1}))
	require.NoError(t, g.Connect(l1.ID, l2.ID, fixedJoint))

	g.UpdateWorldTransforms()

	l2Updated, ok := g.Link(l2.ID)
	require.True(t, ok)

	world := spatialmath.TransformPoint(l2Updated.WorldTransform, r3.Vector{})
	require.True(t, spatialmath.ApproxEqual(world, r3.Vector{Y: 1}, 1e-9),
		"expected L2 world position near (0,1,0) reflecting J0's mimicked rotation, got %v", world)
}

func TestConnectRejectsCycle(t *testing.T) {
	g := assembly.NewGraph("chain")

	l0 := assembly.NewLink("l0")
	l1 := assembly.NewLink("l1")
	l2 := assembly.NewLink("l2")
	g.AddLink(l0)
	g.AddLink(l1)
	g.AddLink(l2)

	require.NoError(t, g.Connect(l0.ID, l1.ID, assembly.FixedJoint("J0", l0.ID, l1.ID, spatialmath.IdentityPose)))
	require.NoError(t, g.Connect(l1.ID, l2.ID, assembly.FixedJoint("J1", l1.ID, l2.ID, spatialmath.IdentityPose)))

	err := g.Connect(l2.ID, l0.ID, assembly.FixedJoint("bad", l2.ID, l0.ID, spatialmath.IdentityPose))
	require.ErrorIs(t, err, assembly.ErrWouldCreateCycle)

	// the assembly must be left exactly as it was: l0 still has no parent,
	// and its only child is still l1.
	_, hasParentJoint := g.Disconnect(l0.ID)
	require.False(t, hasParentJoint)
	require.Equal(t, []uid.UID{l1.ID}, g.Children(l0.ID))
}
