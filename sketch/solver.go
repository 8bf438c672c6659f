package sketch

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// SolveStatus classifies the outcome of a constraint solve.
type SolveStatus int

const (
	FullyConstrained SolveStatus = iota
	UnderConstrained
	OverConstrained
	Failed
)

func (s SolveStatus) String() string {
	switch s {
	case FullyConstrained:
		return "FullyConstrained"
	case UnderConstrained:
		return "UnderConstrained"
	case OverConstrained:
		return "OverConstrained"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// SolveResult is the outcome reported by Sketch.Solve.
type SolveResult struct {
	Status                 SolveStatus
	DoF                     int
	ConflictingConstraints  []uid.UID
	Reason                  string
	Residual                float64
	Iterations              int
}

const (
	maxIterations  = 50
	convergenceTol = 1e-6
	lmInitial      = 1e-3
)

// Solver runs Gauss-Newton with Levenberg-Marquardt damping over the
// free-coordinate vector derived from a sketch's non-fixed points, per
// spec.md §4.3.
type Solver struct{}

// NewSolver constructs a Solver. The solver carries no state between
// calls; a fresh instance is created per Sketch.Solve invocation.
func NewSolver() *Solver {
	return &Solver{}
}

type varSlot struct {
	pointID uid.UID
	xIdx    int // index of X in the flat vector; Y is xIdx+1
}

// Solve builds the free-variable vector, minimizes residuals via
// damped Gauss-Newton, and returns the result plus the solved point
// positions (including fixed points, unchanged).
func (s *Solver) Solve(entities map[uid.UID]Entity, constraints map[uid.UID]Constraint) (SolveResult, map[uid.UID]spatialmath.Point2) {
	fixed := make(map[uid.UID]spatialmath.Point2)
	for _, c := range constraints {
		if c.Kind == Fixed {
			fixed[c.Refs[0]] = spatialmath.Point2{X: c.FixedX, Y: c.FixedY}
		}
	}

	var pointIDs []uid.UID
	for id, e := range entities {
		if _, ok := e.(Point); ok {
			pointIDs = append(pointIDs, id)
		}
	}
	sort.Slice(pointIDs, func(i, j int) bool { return pointIDs[i].String() < pointIDs[j].String() })

	positions := make(map[uid.UID]spatialmath.Point2, len(pointIDs))
	for _, id := range pointIDs {
		p := entities[id].(Point)
		if fp, ok := fixed[id]; ok {
			positions[id] = fp
		} else {
			positions[id] = p.Pos
		}
	}

	var slots []varSlot
	for _, id := range pointIDs {
		if _, isFixed := fixed[id]; isFixed {
			continue
		}
		slots = append(slots, varSlot{pointID: id, xIdx: len(slots) * 2})
	}
	n := len(slots) * 2

	var activeConstraints []Constraint
	for _, c := range constraints {
		if c.Kind != Fixed {
			activeConstraints = append(activeConstraints, c)
		}
	}
	sort.Slice(activeConstraints, func(i, j int) bool { return activeConstraints[i].ID.String() < activeConstraints[j].ID.String() })
	m := len(activeConstraints)

	if n == 0 {
		return SolveResult{Status: FullyConstrained, DoF: 0}, positions
	}

	v := mat.NewVecDense(n, nil)
	for _, slot := range slots {
		p := positions[slot.pointID]
		v.SetVec(slot.xIdx, p.X)
		v.SetVec(slot.xIdx+1, p.Y)
	}

	getPoint := func(vv *mat.VecDense, id uid.UID) spatialmath.Point2 {
		if fp, ok := fixed[id]; ok {
			return fp
		}
		for _, slot := range slots {
			if slot.pointID == id {
				return spatialmath.Point2{X: vv.AtVec(slot.xIdx), Y: vv.AtVec(slot.xIdx + 1)}
			}
		}
		return positions[id]
	}

	residuals := func(vv *mat.VecDense) *mat.VecDense {
		r := mat.NewVecDense(m, nil)
		for i, c := range activeConstraints {
			r.SetVec(i, residual(c, entities, func(id uid.UID) spatialmath.Point2 { return getPoint(vv, id) }))
		}
		return r
	}

	jacobian := func(vv *mat.VecDense) *mat.Dense {
		j := mat.NewDense(m, n, nil)
		vNorm := mat.Norm(vv, math.Inf(1))
		h := math.Max(1e-4, 1e-4*vNorm)
		base := residuals(vv)
		for col := 0; col < n; col++ {
			perturbed := mat.VecDenseCopyOf(vv)
			perturbed.SetVec(col, perturbed.AtVec(col)+h)
			rPlus := residuals(perturbed)
			for row := 0; row < m; row++ {
				j.Set(row, col, (rPlus.AtVec(row)-base.AtVec(row))/h)
			}
		}
		return j
	}

	lambda := lmInitial
	r := residuals(v)
	resNorm := mat.Norm(r, 2)
	iter := 0
	for ; iter < maxIterations && resNorm >= convergenceTol; iter++ {
		j := jacobian(v)

		var jt mat.Dense
		jt.CloneFrom(j.T())
		var jtj mat.Dense
		jtj.Mul(&jt, j)
		for i := 0; i < n; i++ {
			jtj.Set(i, i, jtj.At(i, i)+lambda)
		}
		var jtr mat.VecDense
		jtr.MulVec(&jt, r)
		jtr.ScaleVec(-1, &jtr)

		var delta mat.VecDense
		if err := delta.SolveVec(&jtj, &jtr); err != nil {
			lambda *= 10
			continue
		}

		candidate := mat.VecDenseCopyOf(v)
		candidate.AddVec(candidate, &delta)
		candidateR := residuals(candidate)
		candidateNorm := mat.Norm(candidateR, 2)

		if candidateNorm < resNorm {
			v = candidate
			r = candidateR
			resNorm = candidateNorm
			lambda = math.Max(lambda/10, 1e-12)
		} else {
			lambda *= 10
		}
	}

	for _, slot := range slots {
		positions[slot.pointID] = spatialmath.Point2{X: v.AtVec(slot.xIdx), Y: v.AtVec(slot.xIdx + 1)}
	}

	rank := estimateRank(jacobian(v), 1e-9)

	if resNorm < convergenceTol {
		if rank >= n {
			return SolveResult{Status: FullyConstrained, DoF: 0, Residual: resNorm, Iterations: iter}, positions
		}
		return SolveResult{Status: UnderConstrained, DoF: n - rank, Residual: resNorm, Iterations: iter}, positions
	}

	if rank < m {
		conflicting := conflictingConstraints(activeConstraints, entities, v, slots, fixed)
		return SolveResult{Status: OverConstrained, ConflictingConstraints: conflicting, Residual: resNorm, Iterations: iter}, positions
	}

	return SolveResult{Status: Failed, Reason: "did not converge within iteration cap", Residual: resNorm, Iterations: iter}, positions
}

func estimateRank(j *mat.Dense, tol float64) int {
	var svd mat.SVD
	ok := svd.Factorize(j, mat.SVDNone)
	if !ok {
		return 0
	}
	values := svd.Values(nil)
	rank := 0
	for _, sv := range values {
		if sv > tol {
			rank++
		}
	}
	return rank
}

// conflictingConstraints reports the UIDs of active constraints whose
// residual remains large at the final iterate, a practical proxy for
// "this constraint disagrees with the others".
func conflictingConstraints(constraints []Constraint, entities map[uid.UID]Entity, v *mat.VecDense, slots []varSlot, fixed map[uid.UID]spatialmath.Point2) []uid.UID {
	lookup := func(id uid.UID) spatialmath.Point2 {
		if fp, ok := fixed[id]; ok {
			return fp
		}
		for _, slot := range slots {
			if slot.pointID == id {
				return spatialmath.Point2{X: v.AtVec(slot.xIdx), Y: v.AtVec(slot.xIdx + 1)}
			}
		}
		return spatialmath.Point2{}
	}
	var conflicts []uid.UID
	for _, c := range constraints {
		if math.Abs(residual(c, entities, lookup)) > 1e-3 {
			conflicts = append(conflicts, c.ID)
		}
	}
	return conflicts
}
