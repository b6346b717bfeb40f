package domain

import "github.com/shopspring/decimal"

// A ProductID is a stable product identifier.
//
// Catalogs may carry integer or string ids, both are kept in their
// canonical text form.
type ProductID string

func (id ProductID) String() string {
	return string(id)
}

type Product struct {
	ID       ProductID
	Name     string
	Category string
	Price    decimal.Decimal
	ImageURL string
	InStock  bool
	Variants []string
}

// DefaultVariant returns the variant preselected for the product.
func (p Product) DefaultVariant() string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0]
}

func (p Product) HasVariant(variant string) bool {
	for _, v := range p.Variants {
		if v == variant {
			return true
		}
	}
	return false
}
