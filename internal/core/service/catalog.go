package service

import (
	"slices"
	"strings"

	"github.com/niksmo/fitstore/internal/core/domain"
)

// The catalog slice is never mutated after New, so lookups that do not
// read session state run without the lock.

func (s *Store) Products() []domain.Product {
	return slices.Clone(s.products)
}

func (s *Store) ProductByID(id string) (domain.Product, bool) {
	i := slices.IndexFunc(s.products, func(p domain.Product) bool {
		return p.ID == id
	})
	if i < 0 {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Store) ProductsByCategory(category string) []domain.Product {
	return s.selectProducts(func(p domain.Product) bool {
		return p.Category == category
	})
}

func (s *Store) FeaturedProducts() []domain.Product {
	return s.selectProducts(func(p domain.Product) bool {
		return p.Featured
	})
}

// FilteredProducts returns the catalog products matching the active
// filter criteria, in catalog order.
func (s *Store) FilteredProducts() []domain.Product {
	s.mu.Lock()
	criteria := s.filters
	s.mu.Unlock()

	return s.selectProducts(criteria.Match)
}

// Search matches query case-insensitively against product name,
// description and category. An empty query matches nothing.
func (s *Store) Search(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Product{}
	}
	return s.selectProducts(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q)
	})
}

func (s *Store) selectProducts(match func(domain.Product) bool) []domain.Product {
	ps := make([]domain.Product, 0)
	for _, p := range s.products {
		if match(p) {
			ps = append(ps, p)
		}
	}
	return ps
}
