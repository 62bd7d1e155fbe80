package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const NotificationSchemaTextV1 = `{
	"type": "record",
	"namespace": "fitstore",
	"name": "notification",
	"fields": [
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "message", "type": "string"},
		{"name": "time", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type NotificationV1 struct {
	Kind      string    `avro:"kind"`
	ProductID string    `avro:"product_id"`
	Message   string    `avro:"message"`
	Time      time.Time `avro:"time"`
}

// NotificationV1Avro returns the parsed [NotificationSchemaTextV1].
//
// Panics if the schema text is invalid.
func NotificationV1Avro() avro.Schema {
	return avro.MustParse(NotificationSchemaTextV1)
}
