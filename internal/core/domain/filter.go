package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

const CategoryAll = "all"

type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// SortKeys lists the sort keys in selector order.
var SortKeys = []SortKey{SortRelevance, SortPriceAsc, SortPriceDesc}

// ParseSortKey accepts the wire names of sort keys. An empty string means
// relevance.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

func (k SortKey) Label() string {
	switch k {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	default:
		return "Sort by: Relevance"
	}
}

type Criteria struct {
	Search   string
	Category string
	Sort     SortKey
}

func DefaultCriteria() Criteria {
	return Criteria{Category: CategoryAll, Sort: SortRelevance}
}
