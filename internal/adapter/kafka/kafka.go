package kafka

import (
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/fitstore/internal/core/domain"
	"github.com/niksmo/fitstore/pkg/schema"
)

var (
	ErrInvalidValueType = errors.New("invalid value type")
)

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

// A notificationCodec used for serde [schema.NotificationV1] as a goka codec.
type notificationCodec struct {
	serde Serde
}

func (c notificationCodec) Encode(v any) ([]byte, error) {
	const op = "notificationCodec.Encode"
	if _, ok := v.(schema.NotificationV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c notificationCodec) Decode(data []byte) (any, error) {
	const op = "notificationCodec.Decode"
	var s schema.NotificationV1
	if err := c.serde.Decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

func notificationToSchemaV1(v domain.Notification) (s schema.NotificationV1) {
	s.Kind = string(v.Kind)
	s.ProductID = v.ProductID
	s.Message = v.Message
	s.Time = v.Time
	return
}
