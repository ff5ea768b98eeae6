package notification

import (
	"context"

	"github.com/reelstack/reelstack/pkg/interfaces"
)

// NoopNotifier drops every notification. Used when no transport is
// configured and in tests.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that discards everything.
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// NotifyUser discards the notification.
func (n *NoopNotifier) NotifyUser(context.Context, interfaces.Notification) error {
	return nil
}

var _ interfaces.Notifier = (*NoopNotifier)(nil)
