package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanout_RunsConcurrentlyAndCollectsEveryResult(t *testing.T) {
	var running, peak int32
	gate := make(chan struct{})
	task := func(name string, err error) Task {
		return Task{Name: name, Run: func(context.Context) error {
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-gate
			atomic.AddInt32(&running, -1)
			return err
		}}
	}
	boom := errors.New("smtp down")

	done := make(chan []Result)
	go func() {
		done <- Fanout(context.Background(), task("customer_email", boom), task("admin_email", nil), task("sheets_append", nil))
	}()
	require.Eventually(t, func() bool { return atomic.LoadInt32(&running) == 3 }, time.Second, time.Millisecond)
	close(gate)

	results := <-done
	require.Len(t, results, 3)
	assert.Equal(t, int32(3), atomic.LoadInt32(&peak))
	assert.Equal(t, "customer_email", results[0].Name)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.NoError(t, results[1].Err)
	assert.NoError(t, results[2].Err)
}

func TestFanout_RecoversPanics(t *testing.T) {
	results := Fanout(context.Background(), Task{Name: "bad", Run: func(context.Context) error { panic("nil map") }})
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "nil map")
}

func TestFanout_IgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := Fanout(ctx, Task{Name: "email", Run: func(ctx context.Context) error { return ctx.Err() }})
	assert.NoError(t, results[0].Err)
}

func TestFanout_NoTasks(t *testing.T) {
	assert.Empty(t, Fanout(context.Background()))
}
