package assembly

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// jointVariableTransform returns the 4x4 transform contributed by a
// joint's own motion (rotation about Axis for Revolute/Continuous,
// translation along Axis for Prismatic, identity otherwise).
func jointVariableTransform(j Joint, position float64) mgl64.Mat4 {
	switch j.Type {
	case Revolute, Continuous:
		return spatialmath.AxisRotation(j.Axis, position)
	case Prismatic:
		return spatialmath.AxisTranslation(j.Axis, position)
	default:
		return mgl64.Ident4()
	}
}

// resolvedPositions precomputes, for every joint, the position its
// variable transform should use: a mimic joint's own recorded position
// is ignored in favor of its source joint's position run through
// Mimic.Calculate; every other joint just uses its recorded position.
// Resolving this up front (rather than during the tree walk) means the
// single walk below never needs to special-case mimic joints or care
// what order it visits them in.
func (g *Graph) resolvedPositions() map[uid.UID]float64 {
	out := make(map[uid.UID]float64, len(g.joints))
	for id, j := range g.joints {
		if j.Mimic != nil {
			out[id] = j.Mimic.Calculate(g.jointPositions[j.Mimic.SourceJointID])
		} else {
			out[id] = g.jointPositions[id]
		}
	}
	return out
}

// UpdateWorldTransforms recomputes every link's WorldTransform from the
// root outward in a single pass, composing each joint's origin with its
// resolved variable transform, mirroring the original implementation's
// update_transform_recursive_impl.
func (g *Graph) UpdateWorldTransforms() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cacheValid {
		return
	}
	g.updateWorldTransformsLocked()
}

func (g *Graph) updateWorldTransformsLocked() {
	if !g.HasRoot {
		return
	}
	root, ok := g.links[g.RootLinkID]
	if !ok {
		return
	}
	root.WorldTransform = mgl64.Ident4()
	g.walk(g.RootLinkID, g.resolvedPositions())
	g.cacheValid = true
}

// walk propagates world transforms depth-first from linkID, using
// positions (every joint's resolved position, mimic or not) so that
// every descendant of a mimic joint — not just its immediate child —
// is derived from its parent's already-corrected transform.
func (g *Graph) walk(linkID uid.UID, positions map[uid.UID]float64) {
	parentLink := g.links[linkID]
	for _, edge := range g.children[linkID] {
		j := g.joints[edge.JointID]
		child, ok := g.links[edge.ChildID]
		if !ok {
			continue
		}
		child.WorldTransform = parentLink.WorldTransform.
			Mul4(j.Origin.ToMat4()).
			Mul4(jointVariableTransform(j, positions[j.ID]))
		g.walk(edge.ChildID, positions)
	}
}

// UpdateWorldTransformsWithPositions sets every given joint's position
// and recomputes the tree in one call.
func (g *Graph) UpdateWorldTransformsWithPositions(positions map[uid.UID]float64) {
	g.mu.Lock()
	for jointID, q := range positions {
		g.jointPositions[jointID] = q
	}
	g.cacheValid = false
	g.updateWorldTransformsLocked()
	g.mu.Unlock()
}

// WorldTransform returns a link's cached world transform, recomputing
// the whole tree first if the cache is stale.
func (g *Graph) WorldTransform(linkID uid.UID) (mgl64.Mat4, bool) {
	g.UpdateWorldTransforms()
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.links[linkID]
	if !ok {
		return mgl64.Ident4(), false
	}
	return l.WorldTransform, true
}
