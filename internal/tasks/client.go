package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/events"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// TaskClient handles task enqueuing with improved error handling and context support
type TaskClient struct {
	client       *asynq.Client
	logger       *logger.Logger
	redisOptions *redis.Options
	redisClient  *redis.Client
}

func (c *TaskClient) GetClient() *asynq.Client {
	return c.client
}

// GetRedisClient exposes the shared redis connection for rate limiting.
func (c *TaskClient) GetRedisClient() *redis.Client {
	return c.redisClient
}

// NewTaskClient creates a new TaskClient with the given Redis configuration
func NewTaskClient(redisAddr, username, password string, db int) *TaskClient {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Username: username,
		Password: password,
		DB:       db,
	}

	redisClient := redis.NewClient(
		&redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
	)

	return &TaskClient{
		client: asynq.NewClient(redisOpt),
		redisOptions: &redis.Options{
			Addr:     redisAddr,
			Username: username,
			Password: password,
			DB:       db,
		},
		redisClient: redisClient,
		logger:      logger.New("TASKS"),
	}
}

// EnqueueBookingConfirmation queues the confirmation for a freshly
// created booking on the critical queue.
func (c *TaskClient) EnqueueBookingConfirmation(ctx context.Context, bookingID string) error {
	payload, err := json.Marshal(BookingConfirmationPayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to marshal booking confirmation payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeBookingConfirmation, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(RetryMax),
		asynq.Timeout(TimeoutShort),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue booking confirmation: %w", err)
	}

	c.logger.Info("enqueued booking confirmation %s task=%s", bookingID, info.ID)
	return nil
}

// EnqueueContactNotify queues an admin notification for a new inbox
// message. Inbox traffic is not time sensitive, so it rides the
// default queue.
func (c *TaskClient) EnqueueContactNotify(ctx context.Context, messageID string) error {
	payload, err := json.Marshal(ContactNotifyPayload{MessageID: messageID})
	if err != nil {
		return fmt.Errorf("failed to marshal contact notify payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeContactNotify, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(RetryDefault),
		asynq.Timeout(TimeoutShort),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue contact notify: %w", err)
	}

	c.logger.Info("enqueued contact notify %s task=%s", messageID, info.ID)
	return nil
}

// KickMediaReconcile enqueues one reconcile sweep at the next boundary
// of the given cron expression, so a fresh deployment sweeps without
// waiting for the scheduler's first tick.
func (c *TaskClient) KickMediaReconcile(ctx context.Context, cronExpr string) error {
	task := asynq.NewTask(TaskTypeMediaReconcile, nil)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(RetryMin),
		asynq.Timeout(TimeoutLong),
		CronSchedule(cronExpr),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue media reconcile: %w", err)
	}

	c.logger.Info("enqueued media reconcile task=%s", info.ID)
	return nil
}

// WireEvents hooks task enqueuing onto domain events so request
// handlers never talk to the queue directly.
func (c *TaskClient) WireEvents() {
	events.On("bookings.created", func(data interface{}) {
		booking, ok := data.(*models.Booking)
		if !ok {
			return
		}
		if err := c.EnqueueBookingConfirmation(context.Background(), booking.ID); err != nil {
			c.logger.Warn("failed to enqueue confirmation for booking %s: %v", booking.ID, err)
		}
	})

	events.On("contact_messages.created", func(data interface{}) {
		message, ok := data.(*models.ContactMessage)
		if !ok {
			return
		}
		if err := c.EnqueueContactNotify(context.Background(), message.ID); err != nil {
			c.logger.Warn("failed to enqueue notify for message %s: %v", message.ID, err)
		}
	})
}

// Close closes the underlying asynq client
func (c *TaskClient) Close() error {
	return c.client.Close()
}
