package schema

import (
	"time"

	"github.com/hamba/avro/v2"
)

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "shopfront",
	"name": "cart_event",
	"fields" : [
		{"name": "event_id", "type": "string"},
		{"name": "cart_id", "type": "string"},
		{"name": "kind", "type": {
			"type": "enum",
			"name": "cart_event_kind",
			"symbols": ["added", "removed", "cleared"]
		}},
		{"name": "product_id", "type": "string"},
		{"name": "variant", "type": "string"},
		{"name": "quantity", "type": "int"},
		{"name": "unit_price", "type": "string"},
		{"name": "total_items", "type": "int"},
		{"name": "occurred_at", "type": {
			"type": "long",
			"logicalType": "timestamp-millis"
		}}
	]
}`

// CartEventV1 is the record value of the cart events stream.
//
// UnitPrice keeps the decimal text to stay exact.
type CartEventV1 struct {
	EventID    string    `avro:"event_id"`
	CartID     string    `avro:"cart_id"`
	Kind       string    `avro:"kind"`
	ProductID  string    `avro:"product_id"`
	Variant    string    `avro:"variant"`
	Quantity   int       `avro:"quantity"`
	UnitPrice  string    `avro:"unit_price"`
	TotalItems int       `avro:"total_items"`
	OccurredAt time.Time `avro:"occurred_at"`
}

func CartEventV1Avro() avro.Schema {
	return avro.MustParse(CartEventSchemaTextV1)
}

const CartStatsSchemaTextV1 = `{
	"type": "record",
	"namespace": "shopfront",
	"name": "cart_stats",
	"fields" : [
		{"name": "total_items", "type": "int"},
		{"name": "last_kind", "type": "string"},
		{"name": "events", "type": "long"},
		{"name": "updated_at", "type": {
			"type": "long",
			"logicalType": "timestamp-millis"
		}}
	]
}`

// CartStatsV1 is the group table value folded from cart events.
type CartStatsV1 struct {
	TotalItems int       `avro:"total_items"`
	LastKind   string    `avro:"last_kind"`
	Events     int64     `avro:"events"`
	UpdatedAt  time.Time `avro:"updated_at"`
}

func CartStatsV1Avro() avro.Schema {
	return avro.MustParse(CartStatsSchemaTextV1)
}
