package feature

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/logging"
	"github.com/rkcad/rk/sketch"
	"github.com/rkcad/rk/uid"
)

// FeatureError pairs a feature UID with the error its last rebuild
// attempt produced.
type FeatureError struct {
	FeatureID uid.UID
	Err       error
}

// RebuildReport is the per-rebuild outcome: one FeatureError per
// feature that failed, plus a combined error convenient for
// errors.Is-style checks against ErrRebuildFailed.
type RebuildReport struct {
	Errors  []FeatureError
	Combined error
}

// OK reports whether every feature rebuilt successfully.
func (r RebuildReport) OK() bool { return len(r.Errors) == 0 }

// History owns the ordered feature list, the sketch pool features draw
// from, and the derived body map, per spec.md §3/§4.5.
type History struct {
	mu       sync.Mutex
	sketches map[uid.UID]*sketch.Sketch
	features []Feature
	bodies   map[uid.UID]*Body
	// memo maps feature UID to the body UID it produced on a prior
	// rebuild, reused across rebuilds so body identity is stable (the
	// Open Question decision recorded in DESIGN.md/SPEC_FULL.md §4.5).
	memo   map[uid.UID]uid.UID
	logger logging.Logger
}

// NewHistory constructs an empty feature history.
func NewHistory(logger logging.Logger) *History {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	return &History{
		sketches: make(map[uid.UID]*sketch.Sketch),
		bodies:   make(map[uid.UID]*Body),
		memo:     make(map[uid.UID]uid.UID),
		logger:   logger.Named("feature"),
	}
}

// AddSketch adds a sketch to the pool features can reference.
func (h *History) AddSketch(s *sketch.Sketch) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sketches[s.ID] = s
}

// RemoveSketch removes a sketch from the pool; features referencing it
// will fail at their next rebuild with ErrSketchNotFound rather than
// aborting the whole history (spec.md §3's lifecycle rule).
func (h *History) RemoveSketch(id uid.UID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sketches, id)
}

// Sketch looks up a sketch by UID.
func (h *History) Sketch(id uid.UID) (*sketch.Sketch, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sketches[id]
	return s, ok
}

// Sketches returns every sketch in the pool, for persistence.
func (h *History) Sketches() map[uid.UID]*sketch.Sketch {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[uid.UID]*sketch.Sketch, len(h.sketches))
	for id, s := range h.sketches {
		out[id] = s
	}
	return out
}

// AddFeature appends a feature to the end of the ordered history.
func (h *History) AddFeature(f Feature) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.features = append(h.features, f)
}

// RemoveFeature deletes a feature by UID and its memoized body mapping.
func (h *History) RemoveFeature(id uid.UID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, f := range h.features {
		if f.ID == id {
			h.features = append(h.features[:i:i], h.features[i+1:]...)
			break
		}
	}
	delete(h.memo, id)
}

// SetSuppressed toggles a feature's suppressed flag.
func (h *History) SetSuppressed(id uid.UID, suppressed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, f := range h.features {
		if f.ID == id {
			h.features[i].Suppressed = suppressed
			return
		}
	}
}

// Features returns a copy of the ordered feature list.
func (h *History) Features() []Feature {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Feature(nil), h.features...)
}

// Bodies returns the current derived body map.
func (h *History) Bodies() map[uid.UID]*Body {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[uid.UID]*Body, len(h.bodies))
	for k, v := range h.bodies {
		out[k] = v
	}
	return out
}

// Rebuild re-executes every non-suppressed feature in order against
// the given kernel, per spec.md §4.5's algorithm: the bodies map is
// cleared and rebuilt from scratch each time, but body UIDs are reused
// via the feature→body memo so downstream references stay stable.
// Per-feature failures are recorded in the report and do not abort the
// remaining features: per spec.md §3's lifecycle rule, a feature whose
// rebuild fails (e.g. its sketch was removed, or profile extraction
// failed) stays in history so the user can fix the cause and retry —
// only the narrow scenario 6 case, a boolean op the kernel rejects
// outright (kernel.ErrBooleanFailed), drops the feature, since a
// rejected boolean has no parameters left to fix and would otherwise
// resurface the same error on every future rebuild.
func (h *History) Rebuild(k kernel.Kernel) RebuildReport {
	h.mu.Lock()
	defer h.mu.Unlock()

	newBodies := make(map[uid.UID]*Body)
	var errs []FeatureError
	var combined error

	remaining := h.features[:0:0]
	for _, f := range h.features {
		if f.Suppressed {
			remaining = append(remaining, f)
			continue
		}
		body, err := h.executeFeature(k, f, newBodies)
		if err != nil {
			h.logger.Warnw("feature rebuild failed", "feature_id", f.ID, "kind", f.Kind.String(), "error", err)
			errs = append(errs, FeatureError{FeatureID: f.ID, Err: err})
			combined = multierr.Append(combined, errors.Wrapf(err, "feature %s (%s)", f.ID, f.Kind))
			if errors.Is(err, kernel.ErrBooleanFailed) {
				// A boolean op the kernel rejects outright is dropped
				// from history entirely, not merely skipped, so it
				// never silently reappears on the next rebuild attempt.
				delete(h.memo, f.ID)
				continue
			}
			// Any other failure (missing sketch, failed profile
			// extraction, missing target body) keeps the feature in
			// history, unsuppressed, so the next Rebuild retries it
			// once its cause is fixed.
			remaining = append(remaining, f)
			continue
		}
		newBodies[body.ID] = body
		remaining = append(remaining, f)
	}

	h.features = remaining
	h.bodies = newBodies
	if combined != nil {
		combined = errors.Wrap(ErrRebuildFailed, combined.Error())
	}
	return RebuildReport{Errors: errs, Combined: combined}
}

// Clone deep-copies the history: every sketch is cloned, every feature
// is copied (including its Edges slice), and every body is copied with
// a fresh, empty mesh cache (mesh data is always recomputed from the
// kernel, never meaningfully shared across a snapshot boundary). Used
// by editor's undo snapshots, which need an independent copy of the CAD
// state as it stood before an undoable action.
func (h *History) Clone() *History {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := &History{
		sketches: make(map[uid.UID]*sketch.Sketch, len(h.sketches)),
		features: make([]Feature, len(h.features)),
		bodies:   make(map[uid.UID]*Body, len(h.bodies)),
		memo:     make(map[uid.UID]uid.UID, len(h.memo)),
		logger:   h.logger,
	}
	for id, s := range h.sketches {
		out.sketches[id] = s.Clone()
	}
	for i, f := range h.features {
		clone := f
		clone.Edges = append([]uid.UID(nil), f.Edges...)
		out.features[i] = clone
	}
	for id, b := range h.bodies {
		out.bodies[id] = &Body{ID: b.ID, Name: b.Name, Solid: b.Solid, SourceFeatureID: b.SourceFeatureID}
	}
	for id, bodyID := range h.memo {
		out.memo[id] = bodyID
	}
	return out
}

func (h *History) bodyIDFor(featureID uid.UID) uid.UID {
	if id, ok := h.memo[featureID]; ok {
		return id
	}
	id := uid.New()
	h.memo[featureID] = id
	return id
}

func (h *History) executeFeature(k kernel.Kernel, f Feature, bodies map[uid.UID]*Body) (*Body, error) {
	switch f.Kind {
	case KindExtrude:
		return h.executeExtrude(k, f, bodies)
	case KindRevolve:
		return h.executeRevolve(k, f, bodies)
	case KindBoolean:
		return h.executeBoolean(k, f, bodies)
	case KindFillet:
		return h.executeFillet(k, f, bodies)
	case KindChamfer:
		return h.executeChamfer(k, f, bodies)
	default:
		return nil, errors.Errorf("unknown feature kind %v", f.Kind)
	}
}

func (h *History) resolveTarget(f Feature, bodies map[uid.UID]*Body) (*Body, bool) {
	if !f.HasTargetBody {
		return nil, false
	}
	b, ok := bodies[f.TargetBodyID]
	return b, ok
}

func (h *History) applyBooleanAgainstTarget(k kernel.Kernel, f Feature, own kernel.Solid, bodies map[uid.UID]*Body) (kernel.Solid, error) {
	kop, ok := f.Op.ToKernelOp()
	if !ok {
		return own, nil
	}
	target, ok := h.resolveTarget(f, bodies)
	if !ok {
		return kernel.Solid{}, ErrMissingTargetBody
	}
	combined, err := k.Boolean(target.Solid, own, kop)
	if err != nil {
		return kernel.Solid{}, err
	}
	delete(bodies, f.TargetBodyID)
	return combined, nil
}
