// Package notify delivers routing-failure alerts to the office inbox.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier sends a subject/body alert. Delivery is fire-and-forget from the
// router's point of view: a failed send is logged, never fatal to a batch.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// Discard drops alerts, for runs with no channel configured.
type Discard struct{}

func (Discard) Notify(context.Context, string, string) error { return nil }

// Log writes alerts to the run log instead of a mailbox.
type Log struct {
	Logger *zap.Logger
}

func (l Log) Notify(_ context.Context, subject, body string) error {
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Warn("routing alert", zap.String("subject", subject), zap.String("body", body))
	return nil
}
