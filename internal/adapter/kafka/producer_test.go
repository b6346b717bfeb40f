package kafka_test

import (
	"errors"
	"testing"

	"github.com/niksmo/shopfront/internal/adapter/kafka"
	"github.com/niksmo/shopfront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestCartEventsProducer(t *testing.T) {
	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = kafka.NewCartEventsProducer(
				kafka.ProducerCustomClientOpt(new(MockProducerClient)),
			)
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := kafka.NewCartEventsProducer(
			kafka.ProducerCustomClientOpt(new(MockProducerClient)),
			kafka.ProducerEncoderOpt(nil),
		)
		assert.Error(t, err)
	})

	t.Run("KeyedByCartID", func(t *testing.T) {
		serde := newCartEventSerde(t)
		cl := new(MockProducerClient)
		cl.On("ProduceSync", mock.Anything, mock.Anything).Return(nil).Once()

		p, err := kafka.NewCartEventsProducer(
			kafka.ProducerCustomClientOpt(cl),
			kafka.ProducerEncoderOpt(serde),
		)
		require.NoError(t, err)

		evt := testCartEvent()
		require.NoError(t, p.ProduceCartEvent(t.Context(), evt))

		rs := cl.Calls[0].Arguments.Get(1).([]*kgo.Record)
		require.Len(t, rs, 1)
		assert.Equal(t, []byte("cart-1"), rs[0].Key)

		var s schema.CartEventV1
		require.NoError(t, serde.Decode(rs[0].Value, &s))
		assert.Equal(t, "evt-1", s.EventID)
		assert.Equal(t, "added", s.Kind)
		assert.Equal(t, "42", s.ProductID)
		assert.Equal(t, "12.5", s.UnitPrice)
		assert.Equal(t, 2, s.TotalItems)
		assert.True(t, evt.OccurredAt.Equal(s.OccurredAt))
	})

	t.Run("RetriesRetriableErrors", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kerr.LeaderNotAvailable).Once()
		cl.On("ProduceSync", mock.Anything, mock.Anything).Return(nil).Once()

		p, err := kafka.NewCartEventsProducer(
			kafka.ProducerCustomClientOpt(cl),
			kafka.ProducerEncoderOpt(newCartEventSerde(t)),
		)
		require.NoError(t, err)

		require.NoError(t, p.ProduceCartEvent(t.Context(), testCartEvent()))
		cl.AssertNumberOfCalls(t, "ProduceSync", 2)
	})

	t.Run("FatalErrorIsNotRetried", func(t *testing.T) {
		errFatal := errors.New("record too large")
		cl := new(MockProducerClient)
		cl.On("ProduceSync", mock.Anything, mock.Anything).Return(errFatal)

		p, err := kafka.NewCartEventsProducer(
			kafka.ProducerCustomClientOpt(cl),
			kafka.ProducerEncoderOpt(newCartEventSerde(t)),
		)
		require.NoError(t, err)

		err = p.ProduceCartEvent(t.Context(), testCartEvent())
		assert.ErrorIs(t, err, errFatal)
		cl.AssertNumberOfCalls(t, "ProduceSync", 1)
	})

	t.Run("Close", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("Close").Return().Once()

		p, err := kafka.NewCartEventsProducer(
			kafka.ProducerCustomClientOpt(cl),
			kafka.ProducerEncoderOpt(newCartEventSerde(t)),
		)
		require.NoError(t, err)
		p.Close()
		cl.AssertExpectations(t)
	})
}
