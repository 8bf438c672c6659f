package sketch

import (
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// maxTraceIterations bounds closed-loop tracing so a pathological or
// degenerate entity graph (e.g. a zero-length line) cannot stall
// profile extraction, per spec.md §4.2 step 2 / §8's boundary case.
const maxTraceIterations = 100

// circleSegments is the fixed sampling resolution for free-standing
// circles, per spec.md §4.2 step 4.
const circleSegments = 32

// ExtractProfiles walks the sketch's non-construction lines to build
// closed-loop wires, and emits one wire per free-standing
// non-construction circle. Returns ErrProfileExtraction if no closed
// profile is found at all.
func (s *Sketch) ExtractProfiles() ([]kernel.Wire2D, error) {
	var wires []kernel.Wire2D

	lines := make(map[uid.UID]Line)
	for id, e := range s.entities {
		if s.construction.Contains(id) {
			continue
		}
		if l, ok := e.(Line); ok {
			lines[id] = l
		}
	}

	used := make(uid.Set)
	for startID := range lines {
		if used.Contains(startID) {
			continue
		}
		loop, consumed, closed := traceClosedLoop(lines, startID, used)
		if !closed {
			continue
		}
		for id := range consumed {
			used.Add(id)
		}
		pts := make([]spatialmath.Point2, len(loop))
		for i, pid := range loop {
			pt, _ := s.entities[pid].(Point)
			pts[i] = pt.Pos
		}
		wires = append(wires, kernel.NewWire(pts, true))
	}

	for id, e := range s.entities {
		if s.construction.Contains(id) {
			continue
		}
		if c, ok := e.(Circle); ok {
			center, _ := s.entities[c.CenterID].(Point)
			wires = append(wires, kernel.Circle(center.Pos, c.Radius, circleSegments))
		}
	}

	if len(wires) == 0 {
		return nil, ErrProfileExtraction
	}
	return wires, nil
}

// traceClosedLoop follows vertex-sharing lines starting from startID
// until it returns to the start vertex (closed) or runs out of unused
// connecting lines (open), capped at maxTraceIterations steps. Returns
// the ordered vertex UIDs of the loop and the set of line UIDs
// consumed.
func traceClosedLoop(lines map[uid.UID]Line, startID uid.UID, globalUsed uid.Set) (loopPoints []uid.UID, consumed uid.Set, closed bool) {
	consumed = make(uid.Set)
	start := lines[startID]
	loopPoints = []uid.UID{start.StartID}
	currentVertex := start.EndID
	consumed.Add(startID)
	startVertex := start.StartID

	for i := 0; i < maxTraceIterations; i++ {
		loopPoints = append(loopPoints, currentVertex)
		if currentVertex == startVertex {
			return loopPoints[:len(loopPoints)-1], consumed, true
		}
		next, nextID, ok := findConnectingLine(lines, currentVertex, consumed, globalUsed)
		if !ok {
			return loopPoints, consumed, false
		}
		consumed.Add(nextID)
		if next.StartID == currentVertex {
			currentVertex = next.EndID
		} else {
			currentVertex = next.StartID
		}
	}
	return loopPoints, consumed, false
}

func findConnectingLine(lines map[uid.UID]Line, vertex uid.UID, consumed, globalUsed uid.Set) (Line, uid.UID, bool) {
	for id, l := range lines {
		if consumed.Contains(id) || globalUsed.Contains(id) {
			continue
		}
		if l.StartID == vertex || l.EndID == vertex {
			return l, id, true
		}
	}
	return Line{}, uid.Nil, false
}
