package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/idesignres/iisim/pkg/observability"
)

// QueueManager manages task queuing
type QueueManager struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
}

// NewQueueManager creates a new queue manager enqueuing on queue
func NewQueueManager(redisOpt *asynq.RedisClientOpt, queue string) *QueueManager {
	if queue == "" {
		queue = QueueCompile
	}

	return &QueueManager{
		client:    asynq.NewClient(*redisOpt),
		inspector: asynq.NewInspector(*redisOpt),
		queue:     queue,
	}
}

// Queue returns the name of the queue tasks are enqueued on
func (q *QueueManager) Queue() string {
	return q.queue
}

// EnqueueCompile enqueues a compile task
func (q *QueueManager) EnqueueCompile(payload CompilePayload, opts ...asynq.Option) error {
	if payload.IndustryDir == "" {
		return ErrMissingIndustryDir
	}

	if payload.EnqueuedAt.IsZero() {
		payload.EnqueuedAt = time.Now()
	}

	if payload.Trigger == "" {
		payload.Trigger = TriggerManual
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeIndustryCompile, data)

	// Default options
	defaultOpts := []asynq.Option{
		asynq.TaskID(payload.UniqueID()),
		asynq.Queue(q.queue),
		asynq.MaxRetry(3),
		asynq.Timeout(10 * time.Minute),
	}

	allOpts := defaultOpts
	allOpts = append(allOpts, opts...)

	if _, err := q.client.Enqueue(task, allOpts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return fmt.Errorf("%w: %s", ErrTaskAlreadyQueued, payload.IndustryDir)
		}
		return err
	}

	observability.RecordTaskEnqueued(payload.Industry(), payload.Trigger)

	return nil
}

// IsTaskPendingOrRunning checks if a compile task for the payload's industry is pending or running
func (q *QueueManager) IsTaskPendingOrRunning(payload CompilePayload) (bool, error) {
	info, err := q.inspector.GetTaskInfo(q.queue, payload.UniqueID())
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return false, nil
		}
		return false, err
	}

	return info.State == asynq.TaskStatePending ||
		info.State == asynq.TaskStateActive ||
		info.State == asynq.TaskStateRetry, nil
}

// GetQueueStats returns queue statistics
func (q *QueueManager) GetQueueStats() (*asynq.QueueInfo, error) {
	return q.inspector.GetQueueInfo(q.queue)
}

// Close closes the queue manager
func (q *QueueManager) Close() error {
	if err := q.inspector.Close(); err != nil {
		return err
	}
	return q.client.Close()
}
