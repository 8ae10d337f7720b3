package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueSheets = "jobs:sheets"

	JobSheetsSync = "sheets_sync"
)

const popTimeout = 5 * time.Second

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes the payload of one job type. A returned error sends the
// job to the dead letter list.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueSheetsSync pushes a spreadsheet append for one stored order.
func (d *Dispatcher) EnqueueSheetsSync(ctx context.Context, orderID string) error {
	return d.enqueue(ctx, QueueSheets, JobSheetsSync, SheetsSyncPayload{OrderID: orderID})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, queue, encoded).Err(); err != nil {
		return fmt.Errorf("enqueue %s: %w", jobType, err)
	}
	return nil
}

// Pool consumes the job queues with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler
	queues   []string
	wg       sync.WaitGroup
}

// NewPool maps job types to handlers. Jobs of an unknown type are parked.
func NewPool(rdb *redis.Client, handlers map[string]Handler) *Pool {
	return &Pool{rdb: rdb, handlers: handlers, queues: []string{QueueSheets}}
}

// Start launches numWorkers goroutines. Each one blocks on BRPOP and exits
// when ctx is cancelled.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

// Wait blocks until every worker has returned.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		if ctx.Err() != nil {
			log.Info().Msgf("worker %d shutting down", id)
			return
		}
		result, err := p.rdb.BRPop(ctx, popTimeout, p.queues...).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				log.Error().Err(err).Int("worker", id).Msg("worker: brpop failed")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.process(ctx, result[0], result[1])
	}
}

func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		p.park(ctx, queue, "", quoted, "invalid envelope: "+err.Error())
		return
	}
	h, ok := p.handlers[job.Type]
	if !ok {
		p.park(ctx, queue, job.Type, job.Payload, "no handler for job type")
		return
	}
	if err := runHandler(ctx, h, job.Payload); err != nil {
		log.Error().Err(err).Str("queue", queue).Str("type", job.Type).Msg("job failed")
		p.park(ctx, queue, job.Type, job.Payload, err.Error())
		return
	}
	log.Debug().Str("type", job.Type).Str("queue", queue).Msg("job done")
}

// runHandler turns a handler panic into an error so the worker survives it.
func runHandler(ctx context.Context, h Handler, payload json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx, payload)
}
