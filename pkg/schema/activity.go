package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const ActivitySchemaTextV1 = `{
	"type": "record",
	"namespace": "qkart",
	"name": "activity",
	"fields": [
		{"name": "id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "username", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ActivityV1 struct {
	ID         string    `avro:"id"`
	Kind       string    `avro:"kind"`
	Username   string    `avro:"username"`
	ProductID  string    `avro:"product_id"`
	Query      string    `avro:"query"`
	Quantity   int       `avro:"quantity"`
	OccurredAt time.Time `avro:"occurred_at"`
}

func ActivityV1Avro() avro.Schema {
	return avro.MustParse(ActivitySchemaTextV1)
}
