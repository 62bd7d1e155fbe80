package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamba/avro/v2"
	"github.com/twmb/franz-go/pkg/sr"
)

var (
	ErrTooFewOpts = errors.New("too few options")
)

// A Serde encodes values into registry framed Avro and back.
type Serde interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

type Opt func(*registration) error

// A registration describes where a schema is registered.
type registration struct {
	subject string
	si      SchemaIdentifier
}

func (r registration) validate() error {
	var errs []error
	if r.subject == "" {
		errs = append(errs, errors.New("subject is not set"))
	}
	if r.si == nil {
		errs = append(errs, errors.New("schema identifier is not set"))
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrTooFewOpts, errors.Join(errs...))
	}
	return nil
}

func SubjectOpt(subject string) Opt {
	return func(r *registration) error {
		if subject == "" {
			return errors.New("subject is empty string")
		}
		r.subject = subject
		return nil
	}
}

func SchemaIdentifierOpt(si SchemaIdentifier) Opt {
	return func(r *registration) error {
		if si == nil {
			return errors.New("schema identifier is nil")
		}
		r.si = si
		return nil
	}
}

// NewSerdeNotificationV1 returns a registry framed serde for [NotificationV1].
//
// Both [SubjectOpt] and [SchemaIdentifierOpt] are required.
func NewSerdeNotificationV1(ctx context.Context, opts ...Opt) (Serde, error) {
	const op = "NewSerdeNotificationV1"

	s, err := newAvroSerde[NotificationV1](ctx, NotificationSchemaTextV1, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// newAvroSerde registers schemaText and binds its registry id to T.
func newAvroSerde[T any](
	ctx context.Context, schemaText string, opts []Opt,
) (*sr.Serde, error) {
	var r registration
	for _, o := range opts {
		if err := o(&r); err != nil {
			return nil, err
		}
	}
	if err := r.validate(); err != nil {
		return nil, err
	}

	avroSchema, err := avro.Parse(schemaText)
	if err != nil {
		return nil, err
	}

	id, err := r.si.DetermineID(ctx, r.subject, schemaText)
	if err != nil {
		return nil, err
	}

	var zero T
	s := new(sr.Serde)
	s.Register(
		id,
		zero,
		sr.EncodeFn(func(v any) ([]byte, error) {
			return avro.Marshal(avroSchema, v)
		}),
		sr.DecodeFn(func(data []byte, v any) error {
			return avro.Unmarshal(avroSchema, data, v)
		}),
	)
	return s, nil
}
