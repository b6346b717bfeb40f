package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GET {base}/products        -> []Product
// GET {base}/cart            -> Cart, header x-cart-id
// POST {base}/cart/add       -> Cart, header x-cart-id, body AddToCartRequest

const CartIDHeader = "x-cart-id"

var ErrMalformedProduct = errors.New("malformed product")

// A ProductID holds an id that is either a JSON number or a JSON string.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return errors.New("product id is null")
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// MarshalJSON writes integer ids as JSON numbers and any other id as a
// JSON string.
func (id ProductID) MarshalJSON() ([]byte, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

type (
	Product struct {
		ID       ProductID   `json:"id"`
		Name     string      `json:"name"`
		Category string      `json:"category,omitempty"`
		Price    json.Number `json:"price"`
		ImageURL string      `json:"imageUrl"`
		InStock  bool        `json:"inStock"`
		Variants []string    `json:"variants"`
	}

	Cart struct {
		CartID     string      `json:"cartId"`
		Items      []CartItem  `json:"items"`
		TotalItems int         `json:"totalItems"`
		Subtotal   json.Number `json:"subtotal"`
	}

	CartItem struct {
		ProductID ProductID   `json:"productId"`
		Name      string      `json:"name"`
		Category  string      `json:"category,omitempty"`
		Variant   string      `json:"variant"`
		Quantity  int         `json:"quantity"`
		UnitPrice json.Number `json:"unitPrice"`
		LineTotal json.Number `json:"lineTotal"`
	}

	AddToCartRequest struct {
		ProductID ProductID `json:"productId"`
		Variant   string    `json:"variant,omitempty"`
	}

	RemoveFromCartRequest struct {
		ProductID ProductID `json:"productId"`
		Variant   string    `json:"variant"`
	}
)

func (p Product) ToDomain() (domain.Product, error) {
	const op = "Product.ToDomain"

	if p.ID == "" {
		return domain.Product{}, fmt.Errorf("%s: %w: empty id", op, ErrMalformedProduct)
	}

	price, err := decimal.NewFromString(p.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: id=%s: price: %w", op, ErrMalformedProduct, p.ID, err,
		)
	}
	if price.IsNegative() {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: id=%s: negative price", op, ErrMalformedProduct, p.ID,
		)
	}

	if len(p.Variants) == 0 {
		return domain.Product{}, fmt.Errorf(
			"%s: %w: id=%s: no variants", op, ErrMalformedProduct, p.ID,
		)
	}

	return domain.Product{
		ID:       domain.ProductID(p.ID),
		Name:     p.Name,
		Category: p.Category,
		Price:    price,
		ImageURL: p.ImageURL,
		InStock:  p.InStock,
		Variants: p.Variants,
	}, nil
}

func ProductFromDomain(p domain.Product) Product {
	return Product{
		ID:       ProductID(p.ID),
		Name:     p.Name,
		Category: p.Category,
		Price:    decimalNumber(p.Price),
		ImageURL: p.ImageURL,
		InStock:  p.InStock,
		Variants: p.Variants,
	}
}

func ProductsFromDomain(ps []domain.Product) []Product {
	out := make([]Product, len(ps))
	for i, p := range ps {
		out[i] = ProductFromDomain(p)
	}
	return out
}

func (c Cart) ToDomain() (domain.CartSnapshot, error) {
	const op = "Cart.ToDomain"

	subtotal, err := parseAmount(c.Subtotal)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("%s: subtotal: %w", op, err)
	}

	s := domain.CartSnapshot{
		CartID:     c.CartID,
		Items:      make([]domain.CartSnapshotItem, 0, len(c.Items)),
		TotalItems: c.TotalItems,
		Subtotal:   subtotal,
	}

	for _, it := range c.Items {
		unit, err := parseAmount(it.UnitPrice)
		if err != nil {
			return domain.CartSnapshot{}, fmt.Errorf("%s: unit price: %w", op, err)
		}
		total, err := parseAmount(it.LineTotal)
		if err != nil {
			return domain.CartSnapshot{}, fmt.Errorf("%s: line total: %w", op, err)
		}
		s.Items = append(s.Items, domain.CartSnapshotItem{
			ProductID: domain.ProductID(it.ProductID),
			Name:      it.Name,
			Category:  it.Category,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			LineTotal: total,
		})
	}
	return s, nil
}

func CartFromDomain(s domain.CartSnapshot) Cart {
	c := Cart{
		CartID:     s.CartID,
		Items:      make([]CartItem, 0, len(s.Items)),
		TotalItems: s.TotalItems,
		Subtotal:   decimalNumber(s.Subtotal),
	}
	for _, it := range s.Items {
		c.Items = append(c.Items, CartItem{
			ProductID: ProductID(it.ProductID),
			Name:      it.Name,
			Category:  it.Category,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
			UnitPrice: decimalNumber(it.UnitPrice),
			LineTotal: decimalNumber(it.LineTotal),
		})
	}
	return c
}

func decimalNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func parseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n.String())
}
