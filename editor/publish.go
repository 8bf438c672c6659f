package editor

import (
	"github.com/golang/geo/r3"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/render"
)

// defaultTessellationTolerance is used for the preview meshes Publish
// produces; the editor redraws every frame, so this favors speed over
// the fine tolerance a final export would use.
const defaultTessellationTolerance = 0.5

// Publish tessellates the current CAD bodies and flattens the active
// sketch (if any) into the renderer-facing contract types defined in
// package render, per spec.md §6. It is read-only: callers invoke it
// after a Dispatch/DrainPending batch to refresh the view.
func (s *Store) Publish(k kernel.Kernel) render.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := render.Frame{
		Bodies: render.BodiesFrom(s.CAD, k, defaultTessellationTolerance),
	}

	if s.HasSelectedPart {
		if link, ok := s.Assembly.Link(s.SelectedPart); ok {
			frame.HasAxes = true
			frame.Axes = render.AxesInstance{Transform: link.WorldTransform, Scale: 1}
		}
	}

	for id, j := range s.Assembly.Joints() {
		if link, ok := s.Assembly.Link(j.ChildLinkID); ok {
			frame.JointMarkers = append(frame.JointMarkers, render.JointMarker{
				JointID:  id,
				Position: toFloat32Position(link.WorldPosition()),
				Radius:   0.05,
				Color:    [4]float32{1, 1, 0, 1},
			})
		}
	}

	if s.Mode.IsSketch() {
		if sk, ok := s.CAD.Sketch(s.Mode.Sketch.ActiveSketch); ok {
			frame.HasSketch = true
			frame.Sketch = render.SketchPrimitivesFrom(sk)
			frame.ConstraintIcons = render.ConstraintIconsFrom(sk)
		}
	}

	return frame
}

func toFloat32Position(v r3.Vector) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
