package domain

import "time"

// NotificationEventStatus is the delivery state of an outbox event.
type NotificationEventStatus string

const (
	NotificationStatusPending NotificationEventStatus = "pending"
	NotificationStatusSent    NotificationEventStatus = "sent"
	NotificationStatusFailed  NotificationEventStatus = "failed"
)

// Notification function names understood by the delivery endpoint.
const (
	NotificationBookingCreated   = "send-booking-notification" // owner notice about a new request
	NotificationBookingReceived  = "send-booking-received"     // customer ack right after creation
	NotificationBookingConfirmed = "send-booking-confirmation"
	NotificationBookingCancelled = "send-booking-cancellation"
)

// NotificationEvent is a single queued notification. Events are written in
// the same transaction as the booking change they describe and delivered
// later by the outbox worker. Delivery is best effort: a failed event never
// affects the booking that produced it.
type NotificationEvent struct {
	ID          string
	Function    string
	Payload     []byte
	Status      NotificationEventStatus
	Attempts    int
	LastError   *string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}
