package domain

import "math"

type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Price       int64             `json:"price"`
	Image       string            `json:"image"`
	Description string            `json:"description"`
	InStock     bool              `json:"inStock"`
	Featured    bool              `json:"featured,omitempty"`
	Rating      *float64          `json:"rating,omitempty"`
	Reviews     *int              `json:"reviews,omitempty"`
	Specs       map[string]string `json:"specs,omitempty"`
}

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price multiplied by quantity, saturated at
// math.MaxInt64.
func (l CartLine) Subtotal() int64 {
	price, qty := l.Product.Price, int64(l.Quantity)
	if price <= 0 || qty <= 0 {
		return 0
	}
	if qty > math.MaxInt64/price {
		return math.MaxInt64
	}
	return price * qty
}

// AddQuantity increments the quantity by n, saturated at math.MaxInt.
func (l *CartLine) AddQuantity(n int) {
	if n > 0 && l.Quantity > math.MaxInt-n {
		l.Quantity = math.MaxInt
		return
	}
	l.Quantity += n
}

// A CartSnapshot is the cart lines with their count and total taken at
// one point in time.
type CartSnapshot struct {
	Lines []CartLine
	Count int
	Total int64
}

// NewCartSnapshot copies lines and sums them. Count and Total saturate
// instead of overflowing.
func NewCartSnapshot(lines []CartLine) CartSnapshot {
	s := CartSnapshot{Lines: make([]CartLine, len(lines))}
	copy(s.Lines, lines)
	for _, l := range lines {
		s.Count = saturatingAdd(s.Count, l.Quantity, math.MaxInt)
		s.Total = saturatingAdd(s.Total, l.Subtotal(), math.MaxInt64)
	}
	return s
}

func saturatingAdd[T int | int64](a, b, limit T) T {
	if b > 0 && a > limit-b {
		return limit
	}
	return a + b
}
