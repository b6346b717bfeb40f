package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductsFetcher struct {
	mock.Mock
}

func (f *MockProductsFetcher) FetchProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	args := f.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func TestCatalogLoad(t *testing.T) {
	t.Run("Loaded", func(t *testing.T) {
		fetcher := new(MockProductsFetcher)
		fetcher.On("FetchProducts", mock.Anything).Return(testCatalog(), nil).Once()

		catalog := service.NewCatalog(fetcher)
		assert.Equal(t, domain.CatalogIdle, catalog.Snapshot().State)

		ps, err := catalog.Load(t.Context())
		require.NoError(t, err)
		assert.Len(t, ps, 5)

		snap := catalog.Snapshot()
		assert.Equal(t, domain.CatalogLoaded, snap.State)
		assert.Equal(t, testCatalog(), snap.Products)
		assert.NoError(t, snap.Err)
		fetcher.AssertExpectations(t)
	})

	t.Run("NilListIsEmptyCatalog", func(t *testing.T) {
		fetcher := new(MockProductsFetcher)
		fetcher.On("FetchProducts", mock.Anything).Return(nil, nil)

		catalog := service.NewCatalog(fetcher)
		ps, err := catalog.Load(t.Context())
		require.NoError(t, err)
		assert.NotNil(t, ps)
		assert.Empty(t, ps)
		assert.Equal(t, domain.CatalogLoaded, catalog.Snapshot().State)
	})

	t.Run("FailureCollapsesToCatalogLoad", func(t *testing.T) {
		causes := []error{
			errors.New("dial tcp: connection refused"),
			errors.New("unexpected status: 500"),
			errors.New("invalid character '<' looking for beginning of value"),
		}
		for _, cause := range causes {
			fetcher := new(MockProductsFetcher)
			fetcher.On("FetchProducts", mock.Anything).Return(nil, cause)

			catalog := service.NewCatalog(fetcher)
			_, err := catalog.Load(t.Context())
			require.Error(t, err)
			assert.ErrorIs(t, err, service.ErrCatalogLoad)
			assert.ErrorIs(t, err, cause)

			snap := catalog.Snapshot()
			assert.Equal(t, domain.CatalogFailed, snap.State)
			assert.Empty(t, snap.Products)
			assert.ErrorIs(t, snap.Err, service.ErrCatalogLoad)
		}
	})

	t.Run("CanceledContext", func(t *testing.T) {
		fetcher := new(MockProductsFetcher)
		catalog := service.NewCatalog(fetcher)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		_, err := catalog.Load(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrCatalogLoad)
		fetcher.AssertNotCalled(t, "FetchProducts", mock.Anything)
	})

	t.Run("SnapshotIsCopy", func(t *testing.T) {
		fetcher := new(MockProductsFetcher)
		fetcher.On("FetchProducts", mock.Anything).Return(testCatalog(), nil)

		catalog := service.NewCatalog(fetcher)
		_, err := catalog.Load(t.Context())
		require.NoError(t, err)

		snap := catalog.Snapshot()
		snap.Products[0].Name = "changed"
		assert.Equal(t, "Red Mug", catalog.Snapshot().Products[0].Name)
	})
}
