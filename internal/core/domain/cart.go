package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// A LineKey identifies a cart line. A cart holds at most one line per key.
	LineKey struct {
		ProductID ProductID
		Variant   string
	}

	CartLine struct {
		Product  Product
		Variant  string
		Quantity int
	}

	OrderSummary struct {
		TotalItems int
		Subtotal   decimal.Decimal
		Total      decimal.Decimal
	}
)

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Variant: l.Variant}
}

// Total returns unit price multiplied by quantity.
func (l CartLine) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func TotalItems(lines []CartLine) (n int) {
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func Subtotal(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Summarize derives the order summary. Shipping and taxes are
// calculated at checkout, so the total equals the subtotal.
func Summarize(lines []CartLine) OrderSummary {
	subtotal := Subtotal(lines)
	return OrderSummary{
		TotalItems: TotalItems(lines),
		Subtotal:   subtotal,
		Total:      subtotal,
	}
}

type (
	CartSnapshot struct {
		CartID     string
		Items      []CartSnapshotItem
		TotalItems int
		Subtotal   decimal.Decimal
	}

	CartSnapshotItem struct {
		ProductID ProductID
		Name      string
		Category  string
		Variant   string
		Quantity  int
		UnitPrice decimal.Decimal
		LineTotal decimal.Decimal
	}
)

func NewCartSnapshot(cartID string, lines []CartLine) CartSnapshot {
	s := CartSnapshot{
		CartID:     cartID,
		Items:      make([]CartSnapshotItem, 0, len(lines)),
		TotalItems: TotalItems(lines),
		Subtotal:   Subtotal(lines),
	}
	for _, l := range lines {
		s.Items = append(s.Items, CartSnapshotItem{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Category:  l.Product.Category,
			Variant:   l.Variant,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.Price,
			LineTotal: l.Total(),
		})
	}
	return s
}

type CartEventKind string

const (
	CartEventAdded   CartEventKind = "added"
	CartEventRemoved CartEventKind = "removed"
	CartEventCleared CartEventKind = "cleared"
)

// A CartEvent describes a single cart state change.
//
// Quantity is the line quantity after an add and the removed quantity
// after a remove. Cleared events carry no line.
type CartEvent struct {
	ID         string
	CartID     string
	Kind       CartEventKind
	ProductID  ProductID
	Variant    string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalItems int
	OccurredAt time.Time
}

var ErrCartStatsNotFound = errors.New("cart stats not found")

// CartStats is the per cart aggregate folded from the cart events stream.
type CartStats struct {
	CartID     string
	TotalItems int
	LastKind   CartEventKind
	Events     int64
	UpdatedAt  time.Time
}
