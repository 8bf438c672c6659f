package editor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rkcad/rk/editor"
	"github.com/rkcad/rk/kernel"
	"github.com/rkcad/rk/logging"
)

func TestRebuildAsyncDeliversViaPendingQueue(t *testing.T) {
	s := editor.NewStore(logging.NewTestLogger())

	s.RebuildAsync(kernel.NullKernel{})

	require.Eventually(t, func() bool {
		s.DrainPending()
		return len(s.CAD.Features()) == 0 && s.LastRebuildReport.OK()
	}, time.Second, time.Millisecond)
}
