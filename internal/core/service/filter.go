package service

import (
	"slices"
	"strings"

	"github.com/niksmo/shopfront/internal/core/domain"
)

// FilterProducts derives the displayed list from the full catalog.
//
// The search and category predicates commute. Price sorts are stable,
// relevance keeps the catalog order. The input slice is never modified.
func FilterProducts(ps []domain.Product, c domain.Criteria) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	searching := strings.TrimSpace(c.Search) != ""
	q := strings.ToLower(c.Search)
	for _, p := range ps {
		if searching && !matchesSearch(p, q) {
			continue
		}
		if !matchesCategory(p, c.Category) {
			continue
		}
		out = append(out, p)
	}

	switch c.Sort {
	case domain.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return b.Price.Cmp(a.Price)
		})
	}
	return out
}

// q must be lowercased. Surrounding spaces are part of the match.
func matchesSearch(p domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	return p.Category != "" && strings.Contains(strings.ToLower(p.Category), q)
}

func matchesCategory(p domain.Product, category string) bool {
	if category == "" || category == domain.CategoryAll {
		return true
	}
	return p.Category == category
}

// Categories returns the distinct non-empty categories in ascending order.
func Categories(ps []domain.Product) []string {
	var out []string
	for _, p := range ps {
		if p.Category == "" || slices.Contains(out, p.Category) {
			continue
		}
		out = append(out, p.Category)
	}
	slices.Sort(out)
	return out
}
