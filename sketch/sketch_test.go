package sketch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

func rectangleSketch(t *testing.T, w, h float64) (*sketch.Sketch, []uid.UID) {
	t.Helper()
	s := sketch.New("rect", spatialmath.PlaneXY())

	p0 := sketch.NewPoint(spatialmath.Point2{X: 0, Y: 0})
	p1 := sketch.NewPoint(spatialmath.Point2{X: w, Y: 0})
	p2 := sketch.NewPoint(spatialmath.Point2{X: w, Y: h})
	p3 := sketch.NewPoint(spatialmath.Point2{X: 0, Y: h})
	for _, p := range []sketch.Point{p0, p1, p2, p3} {
		s.AddEntity(p)
	}
	l0 := sketch.NewLine(p0.ID, p1.ID)
	l1 := sketch.NewLine(p1.ID, p2.ID)
	l2 := sketch.NewLine(p2.ID, p3.ID)
	l3 := sketch.NewLine(p3.ID, p0.ID)
	for _, l := range []sketch.Line{l0, l1, l2, l3} {
		s.AddEntity(l)
	}
	return s, []uid.UID{p0.ID, p1.ID, p2.ID, p3.ID}
}

func TestExtractProfilesRectangle(t *testing.T) {
	s, _ := rectangleSketch(t, 10, 5)
	wires, err := s.ExtractProfiles()
	require.NoError(t, err)
	require.Len(t, wires, 1)
	require.True(t, wires[0].Closed)
	require.Len(t, wires[0].Points, 4)
}

func TestExtractProfilesNoClosedLoopFails(t *testing.T) {
	s := sketch.New("open", spatialmath.PlaneXY())
	p0 := sketch.NewPoint(spatialmath.Point2{})
	p1 := sketch.NewPoint(spatialmath.Point2{X: 1})
	s.AddEntity(p0)
	s.AddEntity(p1)
	s.AddEntity(sketch.NewLine(p0.ID, p1.ID))

	_, err := s.ExtractProfiles()
	require.ErrorIs(t, err, sketch.ErrProfileExtraction)
}

func TestExtractProfilesCircle(t *testing.T) {
	s := sketch.New("circle", spatialmath.PlaneXY())
	center := sketch.NewPoint(spatialmath.Point2{})
	s.AddEntity(center)
	s.AddEntity(sketch.NewCircle(center.ID, 5))

	wires, err := s.ExtractProfiles()
	require.NoError(t, err)
	require.Len(t, wires, 1)
	require.Len(t, wires[0].Points, 32)
}

func TestAddConstraintRejectsUnknownEntity(t *testing.T) {
	s := sketch.New("s", spatialmath.PlaneXY())
	err := s.AddConstraint(sketch.NewConstraint(sketch.Coincident, uid.New(), uid.New()))
	require.ErrorIs(t, err, sketch.ErrEntityNotFound)
}

func TestRemoveEntityCascadesConstraints(t *testing.T) {
	s, ids := rectangleSketch(t, 10, 5)
	c := sketch.NewDimensionalConstraint(sketch.Distance, 10, ids[0], ids[1])
	require.NoError(t, s.AddConstraint(c))
	require.Len(t, s.Constraints(), 1)

	s.RemoveEntity(ids[0])
	require.Len(t, s.Constraints(), 0)
}

func TestSolveFullyConstrainedRectangle(t *testing.T) {
	s, ids := rectangleSketch(t, 10, 5)
	require.NoError(t, s.AddConstraint(sketch.NewFixedConstraint(ids[0], 0, 0)))
	require.NoError(t, s.AddConstraint(sketch.NewDimensionalConstraint(sketch.HorizontalDistance, 10, ids[0], ids[1])))
	require.NoError(t, s.AddConstraint(sketch.NewConstraint(sketch.Horizontal, lineBetween(s, ids[0], ids[1]))))
	require.NoError(t, s.AddConstraint(sketch.NewDimensionalConstraint(sketch.VerticalDistance, 5, ids[1], ids[2])))
	require.NoError(t, s.AddConstraint(sketch.NewConstraint(sketch.Vertical, lineBetween(s, ids[1], ids[2]))))
	require.NoError(t, s.AddConstraint(sketch.NewConstraint(sketch.Horizontal, lineBetween(s, ids[3], ids[2]))))
	require.NoError(t, s.AddConstraint(sketch.NewConstraint(sketch.Vertical, lineBetween(s, ids[0], ids[3]))))

	result := s.Solve()
	require.Equal(t, sketch.FullyConstrained, result.Status)
}

// lineBetween returns the UID of the Line entity connecting a and b, in
// either direction, panicking if none is found (a test-only helper).
func lineBetween(s *sketch.Sketch, a, b uid.UID) uid.UID {
	for id, e := range s.Entities() {
		if l, ok := e.(sketch.Line); ok {
			if (l.StartID == a && l.EndID == b) || (l.StartID == b && l.EndID == a) {
				return id
			}
		}
	}
	panic("no line found")
}
