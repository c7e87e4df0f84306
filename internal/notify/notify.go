// Package notify delivers outbound messages to claimants. Delivery is
// best-effort: the orchestrator records its state transition first and a
// failed send never rolls it back.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Message is one outbound communication to a claimant.
type Message struct {
	Recipient string
	Subject   string
	BodyHTML  string
}

// Notifier sends outbound messages.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes outbound messages to the structured log instead of a
// real transport. Used in local development and as the default sink when no
// mail transport is configured.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send logs the message. Never fails.
func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	n.log.Info("outbound message",
		zap.String("recipient", msg.Recipient),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.BodyHTML)),
	)
	return nil
}
