package tasks

import "time"

// Task Types
const (
	// Booking lifecycle
	TaskTypeBookingConfirmation = "booking:confirmation"

	// Inbox
	TaskTypeContactNotify = "contact:notify"

	// Housekeeping
	TaskTypeAuthCleanup    = "auth:cleanup"
	TaskTypeMediaReconcile = "media:reconcile"
)

// Task Queues
const (
	QueueCritical = "critical" // For time-sensitive tasks like booking confirmations
	QueueDefault  = "default"  // For regular tasks
	QueueLow      = "low"      // For background tasks like cleanup and reconciliation
)

// Task Priorities (1-10, higher is more important)
const (
	PriorityCritical = 10
	PriorityHigh     = 8
	PriorityNormal   = 5
	PriorityLow      = 3
	PriorityBG       = 1
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// BookingConfirmationPayload identifies the booking to confirm.
type BookingConfirmationPayload struct {
	BookingID string `json:"bookingId"`
}

// ContactNotifyPayload identifies the contact message to announce.
type ContactNotifyPayload struct {
	MessageID string `json:"messageId"`
}
