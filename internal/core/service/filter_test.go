package service_test

import (
	"testing"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func testCatalog() []domain.Product {
	return []domain.Product{
		testProduct("1", "Red Mug", "Kitchen", "9.99"),
		testProduct("2", "Blue Mug", "Kitchen", "5.00"),
		testProduct("3", "Desk Lamp", "Office", "24.50"),
		testProduct("4", "Kitchen Towel", "", "3.20"),
		testProduct("5", "Notebook", "office", "4.00"),
	}
}

func TestFilterProducts(t *testing.T) {
	t.Run("DefaultCriteriaKeepsInput", func(t *testing.T) {
		ps := testCatalog()
		got := service.FilterProducts(ps, domain.DefaultCriteria())
		assert.Equal(t, ps, got)
	})

	t.Run("Scenario", func(t *testing.T) {
		ps := []domain.Product{
			testProduct("1", "Red Mug", "Kitchen", "9.99"),
			testProduct("2", "Blue Mug", "Kitchen", "5.00"),
		}
		got := service.FilterProducts(ps, domain.Criteria{
			Search:   "mug",
			Category: domain.CategoryAll,
			Sort:     domain.SortPriceAsc,
		})
		assert.Equal(t, []string{"Blue Mug", "Red Mug"}, names(got))
	})

	t.Run("SearchMatchesNameOrCategory", func(t *testing.T) {
		got := service.FilterProducts(testCatalog(), domain.Criteria{
			Search:   "KITCHEN",
			Category: domain.CategoryAll,
		})
		assert.Equal(t,
			[]string{"Red Mug", "Blue Mug", "Kitchen Towel"}, names(got))
	})

	t.Run("SearchKeepsSurroundingSpaces", func(t *testing.T) {
		ps := []domain.Product{
			testProduct("1", "Red Mug", "Kitchen", "9.99"),
			testProduct("2", "Mug Holder", "Kitchen", "3.00"),
		}
		got := service.FilterProducts(ps, domain.Criteria{
			Search:   "mug ",
			Category: domain.CategoryAll,
		})
		assert.Equal(t, []string{"Mug Holder"}, names(got))
	})

	t.Run("BlankSearchKeepsAll", func(t *testing.T) {
		got := service.FilterProducts(testCatalog(), domain.Criteria{
			Search:   "   ",
			Category: domain.CategoryAll,
		})
		assert.Len(t, got, len(testCatalog()))
	})

	t.Run("MissingCategoryDoesNotMatch", func(t *testing.T) {
		got := service.FilterProducts(testCatalog(), domain.Criteria{
			Search:   "towel",
			Category: "Kitchen",
		})
		assert.Empty(t, got)
	})

	t.Run("CategoryIsCaseSensitive", func(t *testing.T) {
		got := service.FilterProducts(testCatalog(), domain.Criteria{
			Category: "Office",
		})
		assert.Equal(t, []string{"Desk Lamp"}, names(got))
	})

	t.Run("BlankSearchIsIgnored", func(t *testing.T) {
		got := service.FilterProducts(testCatalog(), domain.Criteria{
			Search:   "   ",
			Category: domain.CategoryAll,
		})
		assert.Len(t, got, 5)
	})

	t.Run("StagesCommute", func(t *testing.T) {
		ps := testCatalog()
		both := service.FilterProducts(ps, domain.Criteria{
			Search: "mug", Category: "Kitchen",
		})
		searchFirst := service.FilterProducts(
			service.FilterProducts(ps, domain.Criteria{Search: "mug"}),
			domain.Criteria{Category: "Kitchen"},
		)
		categoryFirst := service.FilterProducts(
			service.FilterProducts(ps, domain.Criteria{Category: "Kitchen"}),
			domain.Criteria{Search: "mug"},
		)
		assert.Equal(t, both, searchFirst)
		assert.Equal(t, both, categoryFirst)
	})

	t.Run("SortsAreReversedWithoutTies", func(t *testing.T) {
		ps := testCatalog()
		asc := service.FilterProducts(ps, domain.Criteria{Sort: domain.SortPriceAsc})
		desc := service.FilterProducts(ps, domain.Criteria{Sort: domain.SortPriceDesc})

		require.Len(t, desc, len(asc))
		for i := range asc {
			assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
		}
		assert.Equal(t,
			[]string{"Kitchen Towel", "Notebook", "Blue Mug", "Red Mug", "Desk Lamp"},
			names(asc))
	})

	t.Run("TiesKeepInputOrder", func(t *testing.T) {
		ps := []domain.Product{
			testProduct("1", "A", "", "5"),
			testProduct("2", "B", "", "1"),
			testProduct("3", "C", "", "5.00"),
			testProduct("4", "D", "", "1.0"),
		}
		asc := service.FilterProducts(ps, domain.Criteria{Sort: domain.SortPriceAsc})
		desc := service.FilterProducts(ps, domain.Criteria{Sort: domain.SortPriceDesc})

		assert.Equal(t, []string{"B", "D", "A", "C"}, names(asc))
		assert.Equal(t, []string{"A", "C", "B", "D"}, names(desc))
	})

	t.Run("InputIsNotMutated", func(t *testing.T) {
		ps := testCatalog()
		orig := testCatalog()
		_ = service.FilterProducts(ps, domain.Criteria{Sort: domain.SortPriceDesc})
		assert.Equal(t, orig, ps)
	})
}

func TestCategories(t *testing.T) {
	got := service.Categories(testCatalog())
	assert.Equal(t, []string{"Kitchen", "Office", "office"}, got)

	assert.Empty(t, service.Categories(nil))
}
