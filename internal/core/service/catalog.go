package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
)

// ErrCatalogLoad is the only error shoppers see. Transport, status and
// decoding failures of the product fetch all collapse into it.
var ErrCatalogLoad = errors.New("catalog load failed")

var _ port.CatalogReader = (*Catalog)(nil)

// A Catalog loads the product list once and keeps its load state.
type Catalog struct {
	fetcher port.ProductsFetcher

	mu       sync.RWMutex
	state    domain.CatalogState
	products []domain.Product
	err      error
}

func NewCatalog(fetcher port.ProductsFetcher) *Catalog {
	return &Catalog{fetcher: fetcher}
}

// Load fetches the product list. There is no retry and no caching: the
// catalog is either fully loaded or failed.
func (c *Catalog) Load(ctx context.Context) ([]domain.Product, error) {
	const op = "Catalog.Load"
	log := slog.With("op", op)

	c.setState(domain.CatalogLoading, nil, nil)

	ps, err := c.fetch(ctx)
	if err != nil {
		err = fmt.Errorf("%s: %w: %w", op, ErrCatalogLoad, err)
		c.setState(domain.CatalogFailed, nil, err)
		log.Error("failed to load products", "err", err)
		return nil, err
	}

	c.setState(domain.CatalogLoaded, ps, nil)
	log.Info("products loaded", "nProducts", len(ps))
	return slices.Clone(ps), nil
}

func (c *Catalog) fetch(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ps, err := c.fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	return ps, nil
}

func (c *Catalog) Snapshot() domain.CatalogSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.CatalogSnapshot{
		State:    c.state,
		Products: slices.Clone(c.products),
		Err:      c.err,
	}
}

func (c *Catalog) setState(
	state domain.CatalogState, ps []domain.Product, err error,
) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.products = ps
	c.err = err
}
