package sketch

import (
	"math"

	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

type pointLookup func(id uid.UID) spatialmath.Point2

// residual computes the scalar residual for one constraint, zero when
// satisfied, per the formulas in spec.md §4.3.
func residual(c Constraint, entities map[uid.UID]Entity, p pointLookup) float64 {
	switch c.Kind {
	case Coincident:
		a, b := p(c.Refs[0]), p(c.Refs[1])
		dx, dy := a.X-b.X, a.Y-b.Y
		return dx*dx + dy*dy

	case Horizontal:
		l := lineDir(entities, c.Refs[0], p)
		return l.dy * l.dy

	case Vertical:
		l := lineDir(entities, c.Refs[0], p)
		return l.dx * l.dx

	case Parallel:
		d1 := lineDir(entities, c.Refs[0], p)
		d2 := lineDir(entities, c.Refs[1], p)
		cross := d1.dx*d2.dy - d1.dy*d2.dx
		return cross * cross

	case Perpendicular:
		d1 := lineDir(entities, c.Refs[0], p)
		d2 := lineDir(entities, c.Refs[1], p)
		dot := d1.dx*d2.dx + d1.dy*d2.dy
		return dot * dot

	case Tangent:
		// Treated as a perpendicularity between the line and the
		// radius at the tangency point; approximate via distance of
		// circle center from the line equaling its radius.
		return circleLineTangency(entities, c.Refs, p)

	case EqualLength:
		len1 := lineLength(entities, c.Refs[0], p)
		len2 := lineLength(entities, c.Refs[1], p)
		d := len1 - len2
		return d * d

	case EqualRadius:
		r1 := entityRadius(entities, c.Refs[0])
		r2 := entityRadius(entities, c.Refs[1])
		d := r1 - r2
		return d * d

	case PointOnCurve:
		return pointOnLineResidual(entities, c.Refs[0], c.Refs[1], p)

	case Midpoint:
		return midpointResidual(entities, c.Refs[0], c.Refs[1], p)

	case Symmetric:
		return symmetricResidual(entities, c.Refs, p)

	case Distance:
		a, b := p(c.Refs[0]), p(c.Refs[1])
		dist := math.Hypot(a.X-b.X, a.Y-b.Y)
		d := dist - c.Value
		return d * d

	case HorizontalDistance:
		a, b := p(c.Refs[0]), p(c.Refs[1])
		d := (a.X - b.X) - c.Value
		return d * d

	case VerticalDistance:
		a, b := p(c.Refs[0]), p(c.Refs[1])
		d := (a.Y - b.Y) - c.Value
		return d * d

	case Angle:
		d1 := lineDir(entities, c.Refs[0], p)
		d2 := lineDir(entities, c.Refs[1], p)
		cross := d1.dx*d2.dy - d1.dy*d2.dx
		dot := d1.dx*d2.dx + d1.dy*d2.dy
		angle := math.Atan2(cross, dot)
		diff := reduceMod2Pi(angle - c.Value)
		return diff * diff

	case Radius:
		r := entityRadius(entities, c.Refs[0])
		d := r - c.Value
		return d * d

	case Diameter:
		r := entityRadius(entities, c.Refs[0])
		d := 2*r - c.Value
		return d * d

	case Length:
		l := lineLength(entities, c.Refs[0], p)
		d := l - c.Value
		return d * d

	default:
		return 0
	}
}

func reduceMod2Pi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

type dir struct{ dx, dy float64 }

func lineDir(entities map[uid.UID]Entity, lineID uid.UID, p pointLookup) dir {
	l, ok := entities[lineID].(Line)
	if !ok {
		return dir{}
	}
	a, b := p(l.StartID), p(l.EndID)
	return dir{dx: b.X - a.X, dy: b.Y - a.Y}
}

func lineLength(entities map[uid.UID]Entity, lineID uid.UID, p pointLookup) float64 {
	d := lineDir(entities, lineID, p)
	return math.Hypot(d.dx, d.dy)
}

func entityRadius(entities map[uid.UID]Entity, id uid.UID) float64 {
	switch e := entities[id].(type) {
	case Circle:
		return e.Radius
	case Arc:
		return e.Radius
	default:
		return 0
	}
}

func pointOnLineResidual(entities map[uid.UID]Entity, pointID, lineID uid.UID, p pointLookup) float64 {
	l, ok := entities[lineID].(Line)
	if !ok {
		return 0
	}
	a, b := p(l.StartID), p(l.EndID)
	pt := p(pointID)
	// Perpendicular distance from pt to the infinite line through a,b.
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return 0
	}
	cross := dx*(pt.Y-a.Y) - dy*(pt.X-a.X)
	dist := cross / length
	return dist * dist
}

func midpointResidual(entities map[uid.UID]Entity, pointID, lineID uid.UID, p pointLookup) float64 {
	l, ok := entities[lineID].(Line)
	if !ok {
		return 0
	}
	a, b := p(l.StartID), p(l.EndID)
	pt := p(pointID)
	mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
	dx, dy := pt.X-mx, pt.Y-my
	return dx*dx + dy*dy
}

func symmetricResidual(entities map[uid.UID]Entity, refs []uid.UID, p pointLookup) float64 {
	if len(refs) < 3 {
		return 0
	}
	a, b, axisLine := p(refs[0]), p(refs[1]), refs[2]
	l, ok := entities[axisLine].(Line)
	if !ok {
		return 0
	}
	axisStart, axisEnd := p(l.StartID), p(l.EndID)
	// a and b must be mirror images about the axis line: their midpoint
	// lies on the axis and the segment a-b is perpendicular to it.
	mid := spatialmath.Point2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	onAxis := pointOnLineResidual(entities, refs[0], axisLine, func(uid.UID) spatialmath.Point2 { return mid })
	axisDir := dir{dx: axisEnd.X - axisStart.X, dy: axisEnd.Y - axisStart.Y}
	segDir := dir{dx: b.X - a.X, dy: b.Y - a.Y}
	dot := axisDir.dx*segDir.dx + axisDir.dy*segDir.dy
	return onAxis + dot*dot
}

func circleLineTangency(entities map[uid.UID]Entity, refs []uid.UID, p pointLookup) float64 {
	if len(refs) < 2 {
		return 0
	}
	circle, ok := entities[refs[0]].(Circle)
	if !ok {
		return 0
	}
	l, ok := entities[refs[1]].(Line)
	if !ok {
		return 0
	}
	center := p(circle.CenterID)
	a, b := p(l.StartID), p(l.EndID)
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return 0
	}
	dist := math.Abs(dx*(center.Y-a.Y)-dy*(center.X-a.X)) / length
	d := dist - circle.Radius
	return d * d
}
