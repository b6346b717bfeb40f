package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"sync"

	"github.com/hamba/avro/v2"
	"github.com/lovoo/goka"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
	"github.com/niksmo/shopfront/pkg/schema"
)

var _ port.CartStatsProcessor = (*CartStatsProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A cartEventCodec used for serde [schema.CartEventV1]
type cartEventCodec struct {
	serde Serde
}

func newCartEventCodec(s Serde) cartEventCodec {
	return cartEventCodec{s}
}

func (c cartEventCodec) Encode(v any) ([]byte, error) {
	const op = "cartEventCodec.Encode"
	if _, ok := v.(schema.CartEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c cartEventCodec) Decode(data []byte) (any, error) {
	const op = "cartEventCodec.Decode"
	var s schema.CartEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A cartStatsCodec used for serde [schema.CartStatsV1].
//
// Table values are plain avro without the registry header.
type cartStatsCodec struct {
	avroSchema avro.Schema
}

func newCartStatsCodec() cartStatsCodec {
	return cartStatsCodec{schema.CartStatsV1Avro()}
}

func (c cartStatsCodec) Encode(v any) ([]byte, error) {
	const op = "cartStatsCodec.Encode"
	s, ok := v.(schema.CartStatsV1)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data, err := schema.AvroEncodeFn(c.avroSchema)(s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return data, nil
}

func (c cartStatsCodec) Decode(data []byte) (any, error) {
	const op = "cartStatsCodec.Decode"
	var s schema.CartStatsV1
	if err := schema.AvroDecodeFn(c.avroSchema)(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// foldCartStats applies the event to the stored stats. Events older than
// the last applied one are ignored and reported with false.
func foldCartStats(
	stats schema.CartStatsV1, hasStats bool, evt schema.CartEventV1,
) (schema.CartStatsV1, bool) {
	if hasStats && evt.OccurredAt.Before(stats.UpdatedAt) {
		return stats, false
	}
	stats.TotalItems = evt.TotalItems
	stats.LastKind = evt.Kind
	stats.UpdatedAt = evt.OccurredAt
	stats.Events++
	return stats, true
}

// A CartStatsProcessor proccess cart events
// from stream topic to group table keyed by cart id.
type CartStatsProcessor struct {
	opPrefix string
	proc     processor
}

func NewCartStatsProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	cartEventSerde Serde,
	tlsConfig *tls.Config,
) (*CartStatsProcessor, error) {
	const op = "NewCartStatsProcessor"

	applyTLS(tlsConfig)

	p := &CartStatsProcessor{opPrefix: "CartStatsProcessor"}

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newCartEventCodec(cartEventSerde),
			p.processFn,
		),
		goka.Persist(newCartStatsCodec()),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return p, nil
}

func (p *CartStatsProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *CartStatsProcessor) Close() {
	p.proc.close()
}

func (p *CartStatsProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"

	event, _ := msg.(schema.CartEventV1)
	log := slog.With(
		"op", makeOp(p.opPrefix, op), "cartID", event.CartID,
	)

	stored, hasStats := ctx.Value().(schema.CartStatsV1)
	stats, ok := foldCartStats(stored, hasStats, event)
	if !ok {
		log.Warn("skip stale event", "eventID", event.EventID)
		return
	}
	ctx.SetValue(stats)
	log.Info(
		"set cart stats",
		"kind", domain.CartEventKind(event.Kind),
		"totalItems", stats.TotalItems,
	)
}
