package tasks

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

func TestServerStopsWhenContextCancelled(t *testing.T) {
	mr := miniredis.RunT(t)
	srv := NewServer(mr.Addr(), "", "", 0, NewTaskHandler(nil), logger.New("tasks_test"))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, srv.Start(ctx))

	cancel()

	// The cancel above triggers the drain; an explicit call on top of
	// it returns once the same single shutdown has finished.
	srv.Shutdown()
}
