package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
	"github.com/niksmo/shopfront/pkg/retry"
	"github.com/niksmo/shopfront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CartEventsProducer = (*CartEventsProducer)(nil)

const (
	produceAttempts = 3
	produceDelay    = 50 * time.Millisecond
)

// A producer is used for composition.
//
// Producing records to kafka broker and closing underlying [kgo.Client].
type producer struct {
	opPrefix string
	cl       ProducerClient
	retry    retry.RetryConfig
}

func newProducer(opPrefix string, cl ProducerClient) producer {
	return producer{
		opPrefix: opPrefix,
		cl:       cl,
		retry: retry.RetryConfig{
			MaxAttempts: produceAttempts,
			Backoff:     retry.ExponentialBackoff(produceDelay),
			ShouldRetry: kerr.IsRetriable,
		},
	}
}

func (p producer) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p producer) produce(
	ctx context.Context, rs ...*kgo.Record,
) error {
	const op = "produce"
	err := retry.Do(ctx, p.retry, func() error {
		return p.cl.ProduceSync(ctx, rs...).FirstErr()
	})
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}
	return nil
}

// A CartEventsProducer used for produce [domain.CartEvent]
// keyed by cart id, so one cart's events keep their order.
type CartEventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewCartEventsProducer(
	opts ...ProducerOpt,
) (CartEventsProducer, error) {
	const op = "NewCartEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartEventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "CartEventsProducer"
	return CartEventsProducer{
		producer: newProducer(opPrefix, options.cl),
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p CartEventsProducer) Close() {
	p.producer.close()
}

func (p CartEventsProducer) ProduceCartEvent(
	ctx context.Context, evt domain.CartEvent,
) error {
	const op = "ProduceCartEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	slog.Debug(
		"cart event produced",
		"op", makeOp(p.opPrefix, op),
		"cartID", evt.CartID,
		"kind", evt.Kind,
	)
	return nil
}

func (p CartEventsProducer) createRecord(
	v domain.CartEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := p.toSchema(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	return &kgo.Record{Key: []byte(s.CartID), Value: b}, nil
}

func (CartEventsProducer) toSchema(v domain.CartEvent) schema.CartEventV1 {
	return cartEventToSchemaV1(v)
}
