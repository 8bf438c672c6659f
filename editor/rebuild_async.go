package editor

import (
	"golang.org/x/sync/errgroup"

	"github.com/rkcad/rk/feature"
	"github.com/rkcad/rk/kernel"
)

// RebuildCompleteAction delivers a feature-history rebuild's result back
// into the dispatch queue from whatever goroutine computed it. Grounded
// on spec.md §5's single-writer rule for the bodies map: a long kernel
// call never mutates Store fields directly from a foreign goroutine, it
// only ever does so by enqueueing an action that Dispatch applies.
type RebuildCompleteAction struct {
	Report feature.RebuildReport
}

func (RebuildCompleteAction) IsUndoable() bool { return false }
func (RebuildCompleteAction) Describe() string { return "Rebuild Complete" }

// RebuildAsync runs a feature-history rebuild against k on a worker
// goroutine instead of blocking the caller, delivering the result back
// via Enqueue/RebuildCompleteAction. Used when a rebuild is triggered by
// a long-running kernel (e.g. the full B-rep backend) rather than the
// native kernel's effectively-instant one.
func (s *Store) RebuildAsync(k kernel.Kernel) {
	var g errgroup.Group
	g.Go(func() error {
		report := s.CAD.Rebuild(k)
		s.Enqueue(RebuildCompleteAction{Report: report})
		return report.Combined
	})
	go func() {
		_ = g.Wait()
	}()
}
