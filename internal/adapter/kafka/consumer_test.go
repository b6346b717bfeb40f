package kafka_test

import (
	"context"
	"testing"

	"github.com/niksmo/shopfront/internal/adapter/kafka"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

func fetchesOf(values ...[]byte) kgo.Fetches {
	rs := make([]*kgo.Record, len(values))
	for i, v := range values {
		rs[i] = &kgo.Record{Topic: "cart-events", Value: v, Offset: int64(i)}
	}
	return kgo.Fetches{{
		Topics: []kgo.FetchTopic{{
			Topic: "cart-events",
			Partitions: []kgo.FetchPartition{{
				Partition: 0,
				Records:   rs,
			}},
		}},
	}}
}

func TestCartEventsConsumer(t *testing.T) {
	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = kafka.NewCartEventsConsumer(
				kafka.ConsumerCustomClientOpt(new(MockConsumerClient)),
			)
		})
	})

	t.Run("DecodesAndCommits", func(t *testing.T) {
		serde := newCartEventSerde(t)
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		want := testCartEvent()
		value, err := serde.Encode(kafkaSchemaOf(want))
		require.NoError(t, err)

		cl := new(MockConsumerClient)
		cl.On("PollFetches", mock.Anything).
			Return(fetchesOf(value, []byte("garbage"))).Once()
		cl.On("PollFetches", mock.Anything).
			Run(func(mock.Arguments) { cancel() }).
			Return(kgo.Fetches{})
		cl.On("CommitUncommittedOffsets", mock.Anything).Return(nil).Once()
		cl.On("Close").Return().Once()

		var got []domain.CartEvent
		c, err := kafka.NewCartEventsConsumer(
			kafka.ConsumerCustomClientOpt(cl),
			kafka.ConsumerDecoderOpt(serde),
			kafka.CartEventsHandlerOpt(func(evt domain.CartEvent) {
				got = append(got, evt)
			}),
		)
		require.NoError(t, err)

		c.Run(ctx)
		c.Close()

		require.Len(t, got, 1)
		assert.Equal(t, want.ID, got[0].ID)
		assert.Equal(t, want.CartID, got[0].CartID)
		assert.Equal(t, want.Kind, got[0].Kind)
		assert.True(t, want.UnitPrice.Equal(got[0].UnitPrice))
		assert.True(t, want.OccurredAt.Equal(got[0].OccurredAt))
		cl.AssertExpectations(t)
	})
}
