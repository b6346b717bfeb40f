package port

import (
	"context"
	"sync"

	"github.com/niksmo/shopfront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

type ProductsFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

type RemoteCart interface {
	Cart(ctx context.Context, cartID string) (domain.CartSnapshot, error)
	AddToCart(
		ctx context.Context,
		cartID string,
		productID domain.ProductID,
		variant string,
	) (domain.CartSnapshot, error)
}

type ProductsQuerier interface {
	Products(context.Context, domain.Criteria) ([]domain.Product, error)
	Categories(context.Context) ([]string, error)
}

type CartManager interface {
	RemoteCart
	RemoveFromCart(
		ctx context.Context,
		cartID string,
		productID domain.ProductID,
		variant string,
	) (domain.CartSnapshot, error)
	ClearCart(ctx context.Context, cartID string) (domain.CartSnapshot, error)
}

type CatalogReader interface {
	Snapshot() domain.CatalogSnapshot
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
}

type CartEventsForwarder interface {
	Run(context.Context, *sync.WaitGroup)
	Close(context.Context)
	Forward(domain.CartEvent)
}

type CartStatsReader interface {
	CartStats(ctx context.Context, cartID string) (domain.CartStats, error)
}

type CartStatsProcessor interface {
	runnerContextWg
	closer
}
