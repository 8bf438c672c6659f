package config

// Changed carries a freshly reloaded configuration onto the editor's
// action queue (editor.Store.Enqueue/DrainPending, spec.md §3). It
// implements editor.Action and the package-internal configChanged
// interface dispatch.go matches against, by structural duck-typing, so
// editor itself never imports this package (avoiding the import cycle
// Manager's *editor.Store field would otherwise create).
type Changed struct {
	Values Values
}

func (Changed) IsUndoable() bool { return false }
func (Changed) Describe() string { return "Reload Config" }

// The three methods below satisfy editor's unexported configChanged
// interface, letting Dispatch apply a reload without this package's
// Values type ever being named in editor.
func (c Changed) ConfigGridSpacing() float64  { return c.Values.GridSpacing }
func (c Changed) ConfigSnapToGrid() bool      { return c.Values.SnapToGrid }
func (c Changed) ConfigUndoHistoryCap() int   { return c.Values.UndoHistoryCap }
