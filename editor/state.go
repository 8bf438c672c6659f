package editor

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/logging"
	"github.com/rkcad/rk/spatialmath"
	"github.com/rkcad/rk/uid"
)

// ErrPartNotFound is returned by Store methods that reference a part by
// UID that isn't present.
var ErrPartNotFound = errors.New("part not found")

// Part is a named, transformable mesh instance in the assembly, the Go
// analog of the original implementation's rk-core Part (minus the
// STL-import-only fields, which belong to the project-file boundary).
type Part struct {
	ID        uid.UID
	Name      string
	Transform spatialmath.Pose
}

// Store is the single owned application-state aggregate: parts, the
// assembly graph, the CAD data (sketches + feature history), the
// current editor mode, selection, and the modified flag. Every mutation
// goes through Dispatch, which holds mu for the duration of one action.
// Grounded on the original implementation's AppState/CadState split
// (state/sketch/cad_state.rs).
type Store struct {
	mu sync.Mutex

	Parts    map[uid.UID]Part
	Assembly *assembly.Graph
	CAD      *feature.History

	Mode Mode

	SelectedPart    uid.UID
	HasSelectedPart bool

	Modified bool

	// LastRebuildReport holds the outcome of the most recently completed
	// feature-history rebuild, whether dispatched synchronously or
	// delivered asynchronously via RebuildCompleteAction.
	LastRebuildReport feature.RebuildReport

	// Pending holds actions enqueued from outside the main dispatch
	// call site (e.g. a config hot-reload running on its own
	// goroutine); DrainPending applies them in FIFO order on the next
	// frame tick, per spec.md §3's `pending_actions:queue<Action>`.
	Pending []Action

	history *UndoHistory
	logger  logging.Logger
}

// NewStore builds an empty Store: an empty assembly graph named
// "assembly", an empty feature history, Assembly mode, and a 50-entry
// undo cap.
func NewStore(logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewTestLogger()
	}
	return &Store{
		Parts:    make(map[uid.UID]Part),
		Assembly: assembly.NewGraph("assembly"),
		CAD:      feature.NewHistory(logger),
		Mode:     AssemblyMode(),
		history:  NewUndoHistory(defaultMaxHistory),
		logger:   logger.Named("editor"),
	}
}

func (s *Store) snapshot(description string) snapshot {
	parts := make(map[uid.UID]Part, len(s.Parts))
	for id, p := range s.Parts {
		parts[id] = p
	}
	return snapshot{
		parts:       parts,
		assembly:    s.Assembly.Clone(),
		cad:         s.CAD.Clone(),
		mode:        s.Mode,
		description: description,
	}
}

func (s *Store) restore(snap snapshot) {
	s.Parts = snap.parts
	s.Assembly = snap.assembly
	s.CAD = snap.cad
	s.Mode = snap.mode
}

// Part looks up a part by UID.
func (s *Store) Part(id uid.UID) (Part, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Parts[id]
	return p, ok
}

// CanUndo reports whether Dispatch(Undo{}) would do anything.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Dispatch(Redo{}) would do anything.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Enqueue appends an action to the pending queue instead of applying it
// immediately, for producers outside the main frame loop (e.g. a config
// hot-reload watcher running on its own goroutine).
func (s *Store) Enqueue(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pending = append(s.Pending, a)
}

// DrainPending dispatches every queued action in FIFO order, emptying
// the queue. Call once per frame, per spec.md §3's dispatcher note
// ("a dispatcher drains the queue once per frame").
func (s *Store) DrainPending() {
	s.mu.Lock()
	pending := s.Pending
	s.Pending = nil
	s.mu.Unlock()

	for _, a := range pending {
		s.Dispatch(a)
	}
}
