package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

type ConsumerOpt func(*consumerOpts) error

func ConsumerClientOpt(
	seedBrokers []string, topic, group string, tlsConfig *tls.Config,
) ConsumerOpt {
	return func(co *consumerOpts) error {
		kopts := []kgo.Opt{
			kgo.SeedBrokers(seedBrokers...),
			kgo.ConsumeTopics(topic),
			kgo.ConsumerGroup(group),
			kgo.DisableAutoCommit(),
		}
		if tlsConfig != nil {
			kopts = append(kopts, kgo.DialTLSConfig(tlsConfig))
		}

		cl, err := kgo.NewClient(kopts...)
		if err != nil {
			return err
		}
		co.cl = cl
		return nil
	}
}

// ConsumerCustomClientOpt sets already configured client.
func ConsumerCustomClientOpt(cl ConsumerClient) ConsumerOpt {
	return func(co *consumerOpts) error {
		if cl == nil {
			return errors.New("consumer client is nil")
		}
		co.cl = cl
		return nil
	}
}

func ConsumerDecoderOpt(decoder Decoder) ConsumerOpt {
	return func(co *consumerOpts) error {
		if decoder == nil {
			return errors.New("decoder is nil")
		}
		co.decoder = decoder
		return nil
	}
}

// CartEventsHandlerOpt sets the function receiving every decoded event.
func CartEventsHandlerOpt(fn func(domain.CartEvent)) ConsumerOpt {
	return func(co *consumerOpts) error {
		if fn == nil {
			return errors.New("cart events handler is nil")
		}
		co.handle = fn
		return nil
	}
}

type consumerOpts struct {
	cl      ConsumerClient
	decoder Decoder
	handle  func(domain.CartEvent)
}

func (co *consumerOpts) apply(opts ...ConsumerOpt) error {
	for _, opt := range opts {
		if err := opt(co); err != nil {
			return err
		}
	}
	return nil
}

type consumerParent interface {
	processFetches(context.Context, kgo.Fetches) error
}

// A consumer is used for composition.
//
// Fetching records from kafka broker and closing underlying [kgo.Client].
type consumer struct {
	opPrefix      string
	parent        consumerParent
	cl            ConsumerClient
	slowDownTimer *time.Timer
}

func (c consumer) run(ctx context.Context) {
	const op = "run"
	log := slog.With("op", makeOp(c.opPrefix, op))

	log.Info("running")

	for {
		select {
		case <-ctx.Done():
			return
		default:
			err := c.consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				log.Error("failed to consume", "err", err)
				c.slowDown(ctx)
			}
		}
	}
}

func (c consumer) consume(ctx context.Context) error {
	const op = "consume"

	fetches, err := c.pollFetches(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	if fetches.Empty() {
		return nil
	}

	err = c.parent.processFetches(ctx, fetches)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.commit(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) pollFetches(ctx context.Context) (kgo.Fetches, error) {
	const op = "pollFetches"

	fetches := c.cl.PollFetches(ctx)
	if err := fetches.Err0(); err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	err := c.handleFetchesErrs(fetches)
	if err != nil {
		return nil, opErr(err, c.opPrefix, op)
	}

	return fetches, nil
}

func (c consumer) handleFetchesErrs(fetches kgo.Fetches) error {
	var errsMessages []string
	fetches.EachError(func(t string, p int32, err error) {
		if err != nil {
			errMsg := fmt.Sprintf(
				"topic %q partition %d: %q", t, p, err,
			)
			errsMessages = append(errsMessages, errMsg)
		}
	})

	if len(errsMessages) != 0 {
		return errors.New(strings.Join(errsMessages, "; "))
	}
	return nil
}

func (c consumer) slowDown(ctx context.Context) {
	c.slowDownTimer.Reset(1 * time.Second)
	select {
	case <-ctx.Done():
	case <-c.slowDownTimer.C:
	}
}

func (c consumer) commit(ctx context.Context) error {
	const op = "commit"

	err := ctx.Err()
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}

	err = c.cl.CommitUncommittedOffsets(ctx)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c consumer) close() {
	const op = "close"
	log := slog.With("op", makeOp(c.opPrefix, op))

	c.slowDownTimer.Stop()

	log.Info("closing consumer...")
	c.cl.Close()
	log.Info("consumer is closed")
}

// A CartEventsConsumer reads the cart events stream and hands every
// decoded event to the handler.
type CartEventsConsumer struct {
	opPrefix string
	consumer consumer
	decoder  Decoder
	handle   func(domain.CartEvent)
}

func NewCartEventsConsumer(opts ...ConsumerOpt) (*CartEventsConsumer, error) {
	const op = "NewCartEventsConsumer"

	if len(opts) != 3 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return nil, opErr(err, op)
	}

	opPrefix := "CartEventsConsumer"
	c := &CartEventsConsumer{
		opPrefix: opPrefix,
		decoder:  options.decoder,
		handle:   options.handle,
	}
	c.consumer = consumer{
		opPrefix:      opPrefix,
		parent:        c,
		cl:            options.cl,
		slowDownTimer: time.NewTimer(0),
	}
	return c, nil
}

// Run blocks until ctx is done.
func (c *CartEventsConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c *CartEventsConsumer) Close() {
	c.consumer.close()
}

func (c *CartEventsConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"
	log := slog.With("op", makeOp(c.opPrefix, op))

	iter := fetches.RecordIter()
	for !iter.Done() {
		if err := ctx.Err(); err != nil {
			return opErr(err, c.opPrefix, op)
		}

		r := iter.Next()
		var s schema.CartEventV1
		if err := c.decoder.Decode(r.Value, &s); err != nil {
			log.Warn("skip undecodable record",
				"partition", r.Partition, "offset", r.Offset, "err", err)
			continue
		}

		evt, err := cartEventFromSchemaV1(s)
		if err != nil {
			log.Warn("skip malformed event", "eventID", s.EventID, "err", err)
			continue
		}
		c.handle(evt)
	}
	return nil
}
