package jobs

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTrendWarmup pre-computes monthly comparison reports into the cache.
	TaskTrendWarmup = "report:trend_warmup"
	// TaskIntegrityScan re-checks the accounting equation per company.
	TaskIntegrityScan = "ledger:integrity_scan"
)

// TrendWarmupPayload scopes a warmup run.
type TrendWarmupPayload struct {
	CompanyIDs []uuid.UUID `json:"company_ids"`
	FromMonth  string      `json:"from_month"` // YYYY-MM
}

// IntegrityScanPayload scopes an integrity run.
type IntegrityScanPayload struct {
	CompanyIDs []uuid.UUID `json:"company_ids"`
	FromMonth  string      `json:"from_month"`
	ToMonth    string      `json:"to_month"`
}

// NewTrendWarmupTask constructs the asynq task for a warmup run.
func NewTrendWarmupTask(payload TrendWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTrendWarmup, data), nil
}

// NewIntegrityScanTask constructs the asynq task for an integrity run.
func NewIntegrityScanTask(payload IntegrityScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIntegrityScan, data), nil
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

// EnqueueTrendWarmup enqueues a warmup task.
func (c *Client) EnqueueTrendWarmup(ctx context.Context, payload TrendWarmupPayload) (*asynq.TaskInfo, error) {
	task, err := NewTrendWarmupTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// EnqueueIntegrityScan enqueues an integrity scan task.
func (c *Client) EnqueueIntegrityScan(ctx context.Context, payload IntegrityScanPayload) (*asynq.TaskInfo, error) {
	task, err := NewIntegrityScanTask(payload)
	if err != nil {
		return nil, err
	}
	return c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
