package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/port"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrUnknownVariant  = errors.New("unknown product variant")
	ErrCatalogNotReady = errors.New("catalog is loading")
)

var (
	_ port.ProductsQuerier = (*Service)(nil)
	_ port.CartManager     = (*Service)(nil)
)

// A Service is the storefront seen by the JSON surface: the catalog and
// the session carts.
//
// The cart store never validates what is added, so Service does it on
// behalf of the caller.
type Service struct {
	catalog  port.CatalogReader
	sessions *Sessions
}

func New(catalog port.CatalogReader, sessions *Sessions) Service {
	return Service{catalog, sessions}
}

// Products returns the catalog projected by c.
func (s Service) Products(
	ctx context.Context, c domain.Criteria,
) ([]domain.Product, error) {
	const op = "Service.Products"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap, err := s.loadedCatalog()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return FilterProducts(snap.Products, c), nil
}

func (s Service) Categories(ctx context.Context) ([]string, error) {
	const op = "Service.Categories"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap, err := s.loadedCatalog()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return Categories(snap.Products), nil
}

func (s Service) Cart(
	ctx context.Context, cartID string,
) (domain.CartSnapshot, error) {
	const op = "Service.Cart"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return s.existingSnapshot(cartID), nil
}

// AddToCart adds one unit of the product variant. An empty variant
// selects the product's default variant.
func (s Service) AddToCart(
	ctx context.Context,
	cartID string,
	productID domain.ProductID,
	variant string,
) (domain.CartSnapshot, error) {
	const op = "Service.AddToCart"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	snap, err := s.loadedCatalog()
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	p, ok := snap.Lookup(productID)
	if !ok {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}

	if !p.InStock {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, ErrOutOfStock)
	}

	if variant == "" {
		variant = p.DefaultVariant()
	}
	if !p.HasVariant(variant) {
		return domain.CartSnapshot{}, fmt.Errorf(
			"%s: %w: %q", op, ErrUnknownVariant, variant,
		)
	}

	cart := s.sessions.Cart(cartID)
	cart.Add(p, variant)
	return cart.Snapshot(), nil
}

func (s Service) RemoveFromCart(
	ctx context.Context,
	cartID string,
	productID domain.ProductID,
	variant string,
) (domain.CartSnapshot, error) {
	const op = "Service.RemoveFromCart"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, ok := s.sessions.Lookup(cartID)
	if !ok {
		return s.existingSnapshot(cartID), nil
	}
	cart.Remove(productID, variant)
	return cart.Snapshot(), nil
}

func (s Service) ClearCart(
	ctx context.Context, cartID string,
) (domain.CartSnapshot, error) {
	const op = "Service.ClearCart"

	if err := ctx.Err(); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, ok := s.sessions.Lookup(cartID)
	if !ok {
		return s.existingSnapshot(cartID), nil
	}
	cart.Clear()
	return cart.Snapshot(), nil
}

// existingSnapshot reads a cart without opening a session for it. An
// unknown cart reads as empty.
func (s Service) existingSnapshot(cartID string) domain.CartSnapshot {
	if cart, ok := s.sessions.Lookup(cartID); ok {
		return cart.Snapshot()
	}
	return domain.NewCartSnapshot(normalizeCartID(cartID), nil)
}

func (s Service) loadedCatalog() (domain.CatalogSnapshot, error) {
	snap := s.catalog.Snapshot()
	switch snap.State {
	case domain.CatalogLoaded:
		return snap, nil
	case domain.CatalogFailed:
		return snap, snap.Err
	default:
		return snap, ErrCatalogNotReady
	}
}
