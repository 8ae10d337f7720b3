package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Jobs that fail are parked on dlq:<queue> for an operator to look at.
// Nothing moves them back onto the work queue.
const DeadLetterPrefix = "dlq:"

// DeadLetter is one parked job as stored in the dead letter list.
type DeadLetter struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type,omitempty"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	FailedAt time.Time       `json:"failed_at"`
}

func deadLetterKey(queue string) string { return DeadLetterPrefix + queue }

// park records a failed job. Errors talking to Redis are logged and dropped,
// the job is lost at that point either way.
func (p *Pool) park(ctx context.Context, queue, jobType string, payload json.RawMessage, cause string) {
	data, err := json.Marshal(DeadLetter{
		Queue:    queue,
		Type:     jobType,
		Payload:  payload,
		Error:    cause,
		FailedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("worker: encode dead letter")
		return
	}

	// Parking also happens while the pool context is being cancelled.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.rdb.LPush(ctx, deadLetterKey(queue), data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Str("type", jobType).Msg("worker: park job")
		return
	}
	log.Warn().Str("queue", queue).Str("type", jobType).Str("error", cause).Msg("worker: job parked")
}

// DeadLetterCount reports how many jobs of queue are parked.
func DeadLetterCount(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, deadLetterKey(queue)).Result()
}
