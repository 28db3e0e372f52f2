package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/sweeply/fieldops/internal/config"
	"github.com/sweeply/fieldops/pkg/logger"
)

const (
	TaskTypeNotify = "notify:deliver"
)

// NotifyTask is a notification to be delivered to one profile.
type NotifyTask struct {
	Type           string  `json:"type"`
	RecipientID    string  `json:"recipient_id"`
	Title          string  `json:"title"`
	Body           string  `json:"body"`
	MajorProjectID *string `json:"major_project_id,omitempty"`
	MinorProjectID *string `json:"minor_project_id,omitempty"`
}

// TaskQueue defines the interface for notification delivery.
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(task *NotifyTask) error
	// IsAsync returns true if queue processes tasks asynchronously
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

var (
	globalTaskQueue TaskQueue
	taskQueueOnce   sync.Once
)

// InitTaskQueue initializes the global task queue based on config.
func InitTaskQueue(cfg *config.Config) TaskQueue {
	taskQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncQueue(&cfg.Redis)
			if err != nil {
				logger.Infof("[TaskQueue] Redis unavailable, falling back to sync mode: %v", err)
				globalTaskQueue = NewSyncQueue()
			} else {
				logger.Infof("[TaskQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
				globalTaskQueue = queue
			}
		} else {
			logger.Infof("[TaskQueue] Sync queue initialized (Redis disabled)")
			globalTaskQueue = NewSyncQueue()
		}
	})
	return globalTaskQueue
}

// GetTaskQueue returns the global task queue instance.
func GetTaskQueue() TaskQueue {
	return globalTaskQueue
}

// AsyncQueue implements TaskQueue using asynq (Redis-based).
type AsyncQueue struct {
	client *asynq.Client
}

// NewAsyncQueue creates a new Redis-based async queue.
func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode.
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

// Enqueue adds a notification task to the async queue.
func (q *AsyncQueue) Enqueue(task *NotifyTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeNotify, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Infof("[AsyncQueue] Task enqueued: id=%s, queue=%s", info.ID, info.Queue)
	return nil
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements TaskQueue with synchronous processing (no Redis).
type SyncQueue struct {
	processor func(context.Context, *NotifyTask) error
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function to process tasks synchronously.
func (q *SyncQueue) SetProcessor(processor func(context.Context, *NotifyTask) error) {
	q.processor = processor
}

// Enqueue processes the task immediately in its own goroutine so callers
// never block on delivery.
func (q *SyncQueue) Enqueue(task *NotifyTask) error {
	if q.processor == nil {
		logger.Infof("[SyncQueue] Warning: no processor set, task will be dropped")
		return nil
	}

	go func() {
		ctx := context.Background()
		if err := q.processor(ctx, task); err != nil {
			logger.Infof("[SyncQueue] Task processing failed: %v", err)
		}
	}()

	return nil
}

func (q *SyncQueue) IsAsync() bool {
	return false
}

func (q *SyncQueue) Close() error {
	return nil
}
