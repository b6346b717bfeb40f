package kafka_test

import (
	"context"
	"testing"
	"time"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/pkg/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type stubSchemaIdentifier int

func (id stubSchemaIdentifier) DetermineID(
	context.Context, string, string,
) (int, error) {
	return int(id), nil
}

func newCartEventSerde(t *testing.T) schema.Serde {
	t.Helper()
	serde, err := schema.NewSerdeCartEventV1(
		t.Context(),
		schema.SubjectOpt("cart-events-value"),
		schema.SchemaIdentifierOpt(stubSchemaIdentifier(1)),
	)
	require.NoError(t, err)
	return serde
}

func testCartEvent() domain.CartEvent {
	return domain.CartEvent{
		ID:         "evt-1",
		CartID:     "cart-1",
		Kind:       domain.CartEventAdded,
		ProductID:  "42",
		Variant:    "M",
		Quantity:   2,
		UnitPrice:  decimal.RequireFromString("12.50"),
		TotalItems: 2,
		OccurredAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC),
	}
}

type MockProducerClient struct {
	mock.Mock
}

func (c *MockProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	args := c.Called(ctx, rs)
	err := args.Error(0)
	res := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		res = append(res, kgo.ProduceResult{Record: r, Err: err})
	}
	return res
}

func (c *MockProducerClient) Close() {
	c.Called()
}

type MockConsumerClient struct {
	mock.Mock
}

func (c *MockConsumerClient) PollFetches(ctx context.Context) kgo.Fetches {
	args := c.Called(ctx)
	return args.Get(0).(kgo.Fetches)
}

func (c *MockConsumerClient) CommitUncommittedOffsets(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *MockConsumerClient) Close() {
	c.Called()
}

func kafkaSchemaOf(evt domain.CartEvent) schema.CartEventV1 {
	return schema.CartEventV1{
		EventID:    evt.ID,
		CartID:     evt.CartID,
		Kind:       string(evt.Kind),
		ProductID:  evt.ProductID.String(),
		Variant:    evt.Variant,
		Quantity:   evt.Quantity,
		UnitPrice:  evt.UnitPrice.String(),
		TotalItems: evt.TotalItems,
		OccurredAt: evt.OccurredAt,
	}
}
