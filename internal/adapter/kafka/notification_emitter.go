package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/fitstore/internal/core/domain"
	"github.com/niksmo/fitstore/internal/core/port"
)

var _ port.Notifier = (*NotificationEmitter)(nil)

type emitter interface {
	EmitSync(key string, msg any) error
	Finish() error
}

// A NotificationEmitter publishes store notifications to a Kafka stream.
//
// Records are keyed by product id, so notifications about one product
// keep their order within a partition.
type NotificationEmitter struct {
	ge       emitter
	opPrefix string
}

// A NotificationEmitterConfig used for setup [NotificationEmitter].
//
// All fields are required.
type NotificationEmitterConfig struct {
	SeedBrokers []string
	Topic       string
	Serde       Serde
}

func NewNotificationEmitter(
	config NotificationEmitterConfig,
) (NotificationEmitter, error) {
	const op = "NewNotificationEmitter"

	if len(config.SeedBrokers) == 0 || config.Topic == "" {
		return NotificationEmitter{}, opErr(errors.New("brokers and topic are required"), op)
	}
	if config.Serde == nil {
		return NotificationEmitter{}, opErr(errors.New("serde is nil"), op)
	}

	ge, err := goka.NewEmitter(
		config.SeedBrokers,
		goka.Stream(config.Topic),
		notificationCodec{config.Serde},
	)
	if err != nil {
		return NotificationEmitter{}, opErr(err, op)
	}

	return newNotificationEmitter(ge), nil
}

func newNotificationEmitter(ge emitter) NotificationEmitter {
	return NotificationEmitter{ge: ge, opPrefix: "NotificationEmitter"}
}

func (e NotificationEmitter) Notify(
	ctx context.Context, n domain.Notification,
) error {
	const op = "Notify"

	if err := ctx.Err(); err != nil {
		return opErr(err, e.opPrefix, op)
	}

	if err := e.ge.EmitSync(n.ProductID, notificationToSchemaV1(n)); err != nil {
		return opErr(err, e.opPrefix, op)
	}
	return nil
}

func (e NotificationEmitter) Close() {
	const op = "Close"
	log := slog.With("op", makeOp(e.opPrefix, op))

	log.Info("closing emitter...")
	if err := e.ge.Finish(); err != nil {
		log.Error("failed to finish gracefully", "err", err)
		return
	}
	log.Info("emitter is closed")
}
