//go:build integration

package worker

// Runs the dispatcher and pool against a real Redis.
// Run with: go test -tags integration ./internal/worker/... -v

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()
	c, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	url, err := c.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

type recordingSyncer struct {
	mu   sync.Mutex
	ids  []uuid.UUID
	fail uuid.UUID
}

func (s *recordingSyncer) SyncOrder(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	if id == s.fail {
		return errors.New("spreadsheet unavailable")
	}
	return nil
}

func (s *recordingSyncer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func TestPool_ProcessesJobsAndDeadLettersFailures(t *testing.T) {
	rdb := startRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ok, bad := uuid.New(), uuid.New()
	syncer := &recordingSyncer{fail: bad}
	pool := NewPool(rdb, map[string]Handler{JobSheetsSync: NewSheetsSyncHandler(syncer)})
	pool.Start(ctx, 2)

	d := NewDispatcher(rdb)
	require.NoError(t, d.EnqueueSheetsSync(ctx, ok.String()))
	require.NoError(t, d.EnqueueSheetsSync(ctx, bad.String()))

	require.Eventually(t, func() bool { return syncer.count() == 2 }, 10*time.Second, 50*time.Millisecond)
	require.Eventually(t, func() bool {
		n, err := DeadLetterCount(ctx, rdb, QueueSheets)
		return err == nil && n == 1
	}, 5*time.Second, 50*time.Millisecond)

	raw, err := rdb.LIndex(ctx, DeadLetterPrefix+QueueSheets, 0).Result()
	require.NoError(t, err)
	var entry DeadLetter
	require.NoError(t, json.Unmarshal([]byte(raw), &entry))
	assert.Equal(t, QueueSheets, entry.Queue)
	assert.Equal(t, JobSheetsSync, entry.Type)
	assert.Equal(t, "spreadsheet unavailable", entry.Error)
	assert.False(t, entry.FailedAt.IsZero())
	assert.JSONEq(t, `{"order_id":"`+bad.String()+`"}`, string(entry.Payload))

	cancel()
	pool.Wait()
}

func TestPool_UnknownJobTypeIsParked(t *testing.T) {
	rdb := startRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := NewPool(rdb, map[string]Handler{})
	pool.Start(ctx, 1)

	encoded, _ := json.Marshal(Job{Type: "reindex", Payload: json.RawMessage(`{}`)})
	require.NoError(t, rdb.LPush(ctx, QueueSheets, encoded).Err())

	require.Eventually(t, func() bool {
		n, err := DeadLetterCount(ctx, rdb, QueueSheets)
		return err == nil && n == 1
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	pool.Wait()
}
