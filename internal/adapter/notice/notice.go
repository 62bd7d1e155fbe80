package notice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niksmo/fitstore/internal/core/domain"
	"github.com/niksmo/fitstore/internal/core/port"
)

var (
	_ port.Notifier = (*LogNotifier)(nil)
	_ port.Notifier = (Multi)(nil)
)

// A LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier returns a notifier writing to l, or to [slog.Default]
// when l is nil.
func NewLogNotifier(l *slog.Logger) LogNotifier {
	if l == nil {
		l = slog.Default()
	}
	return LogNotifier{l.With("op", "LogNotifier.Notify")}
}

func (n LogNotifier) Notify(ctx context.Context, v domain.Notification) error {
	n.log.InfoContext(ctx, v.Message,
		"kind", v.Kind,
		"productID", v.ProductID,
	)
	return nil
}

// Multi delivers every notification to each of its notifiers.
type Multi []port.Notifier

func (m Multi) Notify(ctx context.Context, v domain.Notification) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
