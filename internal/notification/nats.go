// Package notification delivers user notifications over NATS. Delivery is
// best-effort: publish failures are reported to the caller but must never
// abort the mutation that produced the notification.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/reelstack/reelstack/pkg/interfaces"
)

// subjectPrefix namespaces user notification subjects, e.g.
// notifications.user.<id>.
const subjectPrefix = "notifications.user."

// NATSNotifier publishes notifications to a NATS subject per user.
type NATSNotifier struct {
	conn   *nats.Conn
	logger interfaces.Logger
}

// NewNATSNotifier connects to the NATS server at url.
func NewNATSNotifier(url string, logger interfaces.Logger) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", interfaces.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", interfaces.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	return &NATSNotifier{conn: conn, logger: logger}, nil
}

// NotifyUser publishes a notification to the recipient's subject.
func (n *NATSNotifier) NotifyUser(_ context.Context, notification interfaces.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	subject := subjectPrefix + notification.UserID
	if err := n.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	n.logger.Debug("notification published",
		interfaces.String("subject", subject),
		interfaces.String("type", string(notification.Type)))
	return nil
}

// Close drains and closes the connection.
func (n *NATSNotifier) Close() error {
	return n.conn.Drain()
}

var _ interfaces.Notifier = (*NATSNotifier)(nil)
