package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// Dispatcher enqueues async jobs into Redis lists. The worker pool dequeues
// them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueProgressEmail pushes a progress-email job.
func (d *Dispatcher) EnqueueProgressEmail(ctx context.Context, payload ProgressEmailPayload) error {
	return d.enqueue(ctx, QueueProgressEmail, "progress_email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
