package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Run(`stops with context check`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls atomic.Int32
		done := make(chan struct{})
		go func() {
			NewInstance("TestWorker", time.Millisecond, time.Millisecond).Run(ctx, func(ctx context.Context) {
				if calls.Add(1) == 3 {
					cancel()
				}
			})
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("worker did not stop")
		}
		require.GreaterOrEqual(t, calls.Load(), int32(3))
	})

	t.Run(`recovers from panic check`, func(t *testing.T) {
		require.NotPanics(t, func() {
			NewInstance("TestWorker", time.Millisecond, time.Millisecond).Run(context.Background(), func(ctx context.Context) {
				panic("boom")
			})
		})
	})
}
