package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/config"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/events"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/handlers"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/tasks/rate"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

var (
	cfg, _ = config.Load()
)

// staleSessionAge is how long an auth transaction may outlive its
// expiry before cleanup removes it.
const staleSessionAge = 30 * 24 * time.Hour

// TaskHandler handles task processing with improved error handling and logging
type TaskHandler struct {
	db          *gorm.DB
	logger      *logger.Logger
	taskClient  *TaskClient
	confirmRate *rate.QueueRateLimiter
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB) *TaskHandler {
	taskClient := NewTaskClient(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)

	return &TaskHandler{
		db:         db,
		logger:     logger.New("task_handler"),
		taskClient: taskClient,
		confirmRate: rate.NewQueueRateLimiter(taskClient.GetRedisClient(), rate.QueueConfig{
			Name: QueueCritical,
			Limit: rate.Limit{
				Window:  time.Minute,
				MaxJobs: 10,
			},
		}),
	}
}

// HandleBookingConfirmation confirms a pending booking and records the
// confirmation timestamp in the booking metadata. Confirmations are
// rate limited per contact email so a burst of bookings from one
// address is spread out rather than processed at once.
func (h *TaskHandler) HandleBookingConfirmation(ctx context.Context, t *asynq.Task) error {
	var payload BookingConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal booking confirmation payload: %w", err)
	}

	var booking models.Booking
	err := h.db.WithContext(ctx).
		Preload("Destination").
		Where("id = ? AND is_deleted = ?", payload.BookingID, false).
		First(&booking).Error
	if err != nil {
		// Booking was removed before the task ran; nothing to confirm.
		h.logger.Warn("booking %s not found, skipping confirmation", payload.BookingID)
		return nil
	}

	if booking.Status != models.BookingStatusPending {
		h.logger.Info("booking %s is %s, skipping confirmation", booking.ID, booking.Status)
		return nil
	}

	allowed, err := h.confirmRate.Allow(ctx, booking.ContactEmail)
	if err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}
	if !allowed {
		// Returning an error lets asynq retry with backoff.
		return fmt.Errorf("confirmation rate limit reached for %s", booking.ContactEmail)
	}

	meta := map[string]interface{}{}
	if len(booking.Metadata) > 0 {
		_ = json.Unmarshal(booking.Metadata, &meta)
	}
	meta["confirmed_at"] = time.Now().Format(time.RFC3339)
	encoded, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode booking metadata: %w", err)
	}

	err = h.db.WithContext(ctx).Model(&booking).Updates(map[string]interface{}{
		"status":   models.BookingStatusConfirmed,
		"metadata": datatypes.JSON(encoded),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to confirm booking %s: %w", booking.ID, err)
	}

	events.Emit("bookings.confirmed", &booking)
	h.logger.Success("confirmed booking %s for %s", booking.ID, booking.ContactEmail)
	return nil
}

// HandleContactNotify announces a new inbox message to the operators.
// Delivery is a log line today; the unread count rides along so the
// operator can see the backlog at a glance.
func (h *TaskHandler) HandleContactNotify(ctx context.Context, t *asynq.Task) error {
	var payload ContactNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal contact notify payload: %w", err)
	}

	var message models.ContactMessage
	err := h.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", payload.MessageID, false).
		First(&message).Error
	if err != nil {
		h.logger.Warn("contact message %s not found, skipping notify", payload.MessageID)
		return nil
	}

	if message.Read {
		h.logger.Info("contact message %s already read, skipping notify", message.ID)
		return nil
	}

	var unread int64
	err = h.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("read = ? AND is_deleted = ?", false, false).
		Count(&unread).Error
	if err != nil {
		return fmt.Errorf("failed to count unread messages: %w", err)
	}

	h.logger.Success("new contact message %q from %s <%s> (%d unread)",
		message.Subject, message.Name, message.Email, unread)
	return nil
}

// HandleAuthCleanup removes spent password resets and stale sessions.
func (h *TaskHandler) HandleAuthCleanup(ctx context.Context, t *asynq.Task) error {
	now := time.Now()

	resets := h.db.WithContext(ctx).
		Where("used = ? OR expires_at < ?", true, now).
		Delete(&models.PasswordReset{})
	if resets.Error != nil {
		return fmt.Errorf("failed to clean password resets: %w", resets.Error)
	}

	sessions := h.db.WithContext(ctx).
		Where("expires_at < ?", now.Add(-staleSessionAge)).
		Delete(&models.AuthTransaction{})
	if sessions.Error != nil {
		return fmt.Errorf("failed to clean auth transactions: %w", sessions.Error)
	}

	h.logger.Info("auth cleanup removed %d resets and %d sessions",
		resets.RowsAffected, sessions.RowsAffected)
	return nil
}

// HandleMediaReconcile sweeps the bucket against the media records.
// Objects without a record are deleted; records without an object are
// logged for an operator, since deleting rows on a storage listing
// hiccup would be worse than a dangling record.
func (h *TaskHandler) HandleMediaReconcile(ctx context.Context, t *asynq.Task) error {
	storage := handlers.GetStorageHandler()
	if storage == nil {
		h.logger.Warn("media reconcile skipped, no storage handler registered")
		return nil
	}

	keys, err := storage.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list storage keys: %w", err)
	}

	var recorded []string
	err = h.db.WithContext(ctx).Model(&models.MediaAsset{}).
		Where("is_deleted = ?", false).
		Pluck("key", &recorded).Error
	if err != nil {
		return fmt.Errorf("failed to list media records: %w", err)
	}

	known := make(map[string]bool, len(recorded))
	for _, key := range recorded {
		known[key] = true
	}

	inBucket := make(map[string]bool, len(keys))
	orphans := 0
	for _, key := range keys {
		inBucket[key] = true
		if known[key] {
			continue
		}
		if err := storage.DeleteFile(ctx, key); err != nil {
			h.logger.Warn("failed to delete orphaned object %s: %v", key, err)
			continue
		}
		orphans++
	}

	missing := 0
	for _, key := range recorded {
		if !inBucket[key] {
			h.logger.Warn("media record without storage object: %s", key)
			missing++
		}
	}

	h.logger.Info("media reconcile removed %d orphaned objects, %d records missing objects", orphans, missing)
	return nil
}
