package service

import "github.com/niksmo/fitstore/internal/core/domain"

func (s *Store) Filters() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// ApplyFilters merges the present fields of patch into the active criteria.
func (s *Store) ApplyFilters(patch domain.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Merge(patch)
}

func (s *Store) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = domain.FilterCriteria{}
}
