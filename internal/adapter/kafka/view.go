package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
	"github.com/niksmo/shopfront/pkg/schema"
)

var _ port.CartStatsReader = (*CartStatsView)(nil)

// A CartStatsViewConfig used for setup [CartStatsView].
//
// TLSConfig is optional.
type CartStatsViewConfig struct {
	SeedBrokers []string
	GroupTable  string
	TLSConfig   *tls.Config
}

// A CartStatsView serves lookups of the cart stats group table.
type CartStatsView struct {
	gv *goka.View
}

func NewCartStatsView(config CartStatsViewConfig) (*CartStatsView, error) {
	const op = "NewCartStatsView"

	applyTLS(config.TLSConfig)

	gv, err := goka.NewView(
		config.SeedBrokers,
		goka.GroupTable(goka.Group(config.GroupTable)),
		newCartStatsCodec(),
	)
	if err != nil {
		return nil, opErr(err, op)
	}

	return &CartStatsView{gv}, nil
}

// Run blocks until ctx is done.
func (v *CartStatsView) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "CartStatsView.Run"
	log := slog.With("op", op)

	defer stopFn()
	err := v.gv.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v *CartStatsView) CartStats(
	ctx context.Context, cartID string,
) (domain.CartStats, error) {
	const op = "CartStatsView.CartStats"

	if err := ctx.Err(); err != nil {
		return domain.CartStats{}, opErr(err, op)
	}

	value, err := v.gv.Get(cartID)
	if err != nil {
		return domain.CartStats{}, opErr(err, op)
	}

	if value == nil {
		return domain.CartStats{}, opErr(domain.ErrCartStatsNotFound, op)
	}

	s, ok := value.(schema.CartStatsV1)
	if !ok {
		return domain.CartStats{}, opErr(
			fmt.Errorf("%w: %T", ErrInvalidValueType, value), op,
		)
	}

	return cartStatsFromSchemaV1(cartID, s), nil
}

func cartStatsFromSchemaV1(cartID string, s schema.CartStatsV1) domain.CartStats {
	return domain.CartStats{
		CartID:     cartID,
		TotalItems: s.TotalItems,
		LastKind:   domain.CartEventKind(s.LastKind),
		Events:     s.Events,
		UpdatedAt:  s.UpdatedAt,
	}
}
