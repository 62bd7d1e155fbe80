package service

import (
	"context"
	"fmt"

	"github.com/niksmo/fitstore/internal/core/domain"
)

// ToggleLike flips productID in the liked set and reports whether it is
// liked afterwards. Notifications are sent only for catalog products.
func (s *Store) ToggleLike(ctx context.Context, productID string) bool {
	if productID == "" {
		return false
	}

	s.mu.Lock()
	liked := s.liked.Toggle(productID)
	s.saveLiked(ctx)
	s.mu.Unlock()

	p, ok := s.ProductByID(productID)
	if !ok {
		return liked
	}

	n := s.notification(domain.LikedRemoved, p.ID,
		fmt.Sprintf("Removed %s from favorites", p.Name))
	if liked {
		n = s.notification(domain.LikedAdded, p.ID,
			fmt.Sprintf("Added %s to favorites", p.Name))
	}
	s.notify(ctx, n)

	return liked
}

func (s *Store) IsLiked(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked.Has(productID)
}

func (s *Store) LikedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked.Len()
}

// Liked returns the liked ids sorted ascending.
func (s *Store) Liked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked.IDs()
}

// LikedProducts returns liked catalog products in catalog order.
// Liked ids that are not in the catalog are skipped.
func (s *Store) LikedProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectProducts(func(p domain.Product) bool {
		return s.liked.Has(p.ID)
	})
}
