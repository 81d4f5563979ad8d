// Package queue wraps asynq for the few background jobs the service runs.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"planwise-api/core/config"
	"planwise-api/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer schedules a background task. Implementations must not block on
// the task itself.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

type Client struct {
	client    *asynq.Client
	uniqueFor time.Duration
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client:    asynq.NewClient(redisOpt(cfg)),
		uniqueFor: 30 * time.Second,
	}
}

// Enqueue marshals payload as JSON. Identical tasks enqueued within the
// uniqueness window collapse into one.
func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, data)
	info, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Unique(c.uniqueFor))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		logger.Debug("Queue:Enqueue:Duplicate", "type", taskType)
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueueing %s: %w", taskType, err)
	}

	logger.Debug("Queue:Enqueue", "type", taskType, "id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Noop drops every task; used when the queue is disabled.
type Noop struct{}

func (Noop) Enqueue(context.Context, string, any) error { return nil }

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(cfg config.RedisConfig, concurrency int) *Worker {
	server := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Worker:TaskFailed", "type", task.Type(), "error", err)
		}),
	})
	return &Worker{server: server, mux: asynq.NewServeMux()}
}

func (w *Worker) HandleFunc(taskType string, handler func(ctx context.Context, task *asynq.Task) error) {
	w.mux.HandleFunc(taskType, handler)
}

func (w *Worker) Start() error {
	logger.Info("Queue:Worker:Start")
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

// Decode unmarshals a task payload produced by Client.Enqueue.
func Decode(task *asynq.Task, v any) error {
	if err := json.Unmarshal(task.Payload(), v); err != nil {
		return fmt.Errorf("decoding %s payload: %w: %w", task.Type(), err, asynq.SkipRetry)
	}
	return nil
}
