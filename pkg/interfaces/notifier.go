package interfaces

import "context"

// NotificationType identifies the kind of user notification.
type NotificationType string

const (
	// NotificationNewFollower is sent when a user gains a follower.
	NotificationNewFollower NotificationType = "NEW_FOLLOWER"
)

// Notification is the payload delivered to a user.
type Notification struct {
	UserID   string           `json:"user_id"`
	SenderID string           `json:"sender_id"`
	Type     NotificationType `json:"type"`
	Message  string           `json:"message"`
}

// Notifier delivers notifications to users. Delivery is fire-and-forget from
// the caller's perspective; a failure must never roll back the mutation that
// triggered it.
type Notifier interface {
	NotifyUser(ctx context.Context, n Notification) error
}
