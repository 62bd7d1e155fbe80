package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/niksmo/fitstore/internal/core/domain"
)

// AddToCart increments the line for p by quantity, or appends a new line.
// A quantity below one is treated as one.
func (s *Store) AddToCart(ctx context.Context, p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	var n domain.Notification
	if i := s.cartIndex(p.ID); i >= 0 {
		s.cart[i].AddQuantity(quantity)
		n = s.notification(domain.CartUpdated, p.ID,
			fmt.Sprintf("Updated %s quantity in cart", p.Name))
	} else {
		s.cart = append(s.cart, domain.CartLine{Product: p, Quantity: quantity})
		n = s.notification(domain.CartAdded, p.ID,
			fmt.Sprintf("Added %s to cart", p.Name))
	}
	s.saveCart(ctx)
	s.mu.Unlock()

	s.notify(ctx, n)
}

// RemoveFromCart deletes the line for productID. Unknown ids are ignored.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	i := s.cartIndex(productID)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.cart[i].Product
	s.cart = slices.Delete(s.cart, i, i+1)
	s.saveCart(ctx)
	s.mu.Unlock()

	s.notify(ctx, s.notification(domain.CartRemoved, removed.ID,
		fmt.Sprintf("Removed %s from cart", removed.Name)))
}

// UpdateQuantity replaces the quantity of the line for productID.
//
// A quantity of zero or less removes the line. Ids that are not in the
// cart are ignored, the line is not created.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cartIndex(productID)
	if i < 0 {
		return
	}
	s.cart[i].Quantity = quantity
	s.saveCart(ctx)
}

func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.cart = nil
	s.saveCart(ctx)
	s.mu.Unlock()

	s.notify(ctx, s.notification(domain.CartCleared, "", "Cart cleared"))
}

func (s *Store) Cart() []domain.CartLine {
	return s.CartSnapshot().Lines
}

// CartSnapshot returns lines, count and total read under one lock, so
// they always agree with each other.
func (s *Store) CartSnapshot() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.NewCartSnapshot(s.cart)
}

// CartTotal saturates at math.MaxInt64 instead of overflowing.
func (s *Store) CartTotal() int64 {
	return s.CartSnapshot().Total
}

// CartCount returns the sum of quantities, not the number of lines.
func (s *Store) CartCount() int {
	return s.CartSnapshot().Count
}

// Summary prices the current cart with the store's shipping and tax policy.
func (s *Store) Summary() domain.OrderSummary {
	snap := s.CartSnapshot()
	return s.pricing.Summarize(snap.Total, snap.Count)
}

func (s *Store) cartIndex(productID string) int {
	return slices.IndexFunc(s.cart, func(l domain.CartLine) bool {
		return l.Product.ID == productID
	})
}
