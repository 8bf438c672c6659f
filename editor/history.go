package editor

import (
	"github.com/rkcad/rk/assembly"
	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/uid"
)

// snapshot captures enough of the Store to restore it verbatim: the
// part data, the assembly graph, the CAD feature history, the editor
// mode, and a human-readable description of the action that produced
// it, mirrored from the original implementation's UndoSnapshot
// (project + cad_state + description), per spec.md §4.7's "the
// dispatcher snapshots (project, cad_state, description)".
type snapshot struct {
	parts       map[uid.UID]Part
	assembly    *assembly.Graph
	cad         *feature.History
	mode        Mode
	description string
}

// UndoHistory is a bounded two-stack undo/redo manager, grounded on the
// original implementation's UndoHistory (state/history.rs): pushing a new
// state clears the redo stack; undo/redo move a snapshot between the two
// stacks; the undo stack is trimmed from the oldest end once it exceeds
// maxHistory.
type UndoHistory struct {
	undoStack []snapshot
	redoStack []snapshot
	maxHistory int
}

const defaultMaxHistory = 50

// NewUndoHistory builds a history manager capped at maxHistory entries.
func NewUndoHistory(maxHistory int) *UndoHistory {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	return &UndoHistory{maxHistory: maxHistory}
}

// SaveState pushes the current state onto the undo stack before an
// undoable action is applied, and clears the redo stack.
func (h *UndoHistory) SaveState(s snapshot) {
	h.redoStack = nil
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxHistory {
		h.undoStack = h.undoStack[1:]
	}
}

// Undo pops the most recent saved state, pushing current onto the redo
// stack, and returns the popped state.
func (h *UndoHistory) Undo(current snapshot) (snapshot, bool) {
	if len(h.undoStack) == 0 {
		return snapshot{}, false
	}
	n := len(h.undoStack) - 1
	previous := h.undoStack[n]
	h.undoStack = h.undoStack[:n]
	current.description = previous.description
	h.redoStack = append(h.redoStack, current)
	return previous, true
}

// Redo pops the most recently undone state, pushing current onto the
// undo stack, and returns the popped state.
func (h *UndoHistory) Redo(current snapshot) (snapshot, bool) {
	if len(h.redoStack) == 0 {
		return snapshot{}, false
	}
	n := len(h.redoStack) - 1
	next := h.redoStack[n]
	h.redoStack = h.redoStack[:n]
	current.description = next.description
	h.undoStack = append(h.undoStack, current)
	return next, true
}

// CanUndo reports whether there is a state to undo to.
func (h *UndoHistory) CanUndo() bool { return len(h.undoStack) > 0 }

// CanRedo reports whether there is a state to redo to.
func (h *UndoHistory) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear empties both stacks.
func (h *UndoHistory) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// SetMax changes the undo cap, trimming the undo stack's oldest entries
// immediately if it now exceeds the new limit. Used by a config reload
// (see configChanged in dispatch.go) to apply an updated undo_history_cap
// without restarting the editor.
func (h *UndoHistory) SetMax(maxHistory int) {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	h.maxHistory = maxHistory
	if len(h.undoStack) > h.maxHistory {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxHistory:]
	}
}
