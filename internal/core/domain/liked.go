package domain

import "slices"

// A LikedSet holds favorite product ids.
//
// Membership is unordered; [LikedSet.IDs] returns ids sorted ascending
// so that the persisted form is stable.
type LikedSet struct {
	ids map[string]struct{}
}

func NewLikedSet(ids ...string) LikedSet {
	s := LikedSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
	}
	return s
}

func (s LikedSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle flips membership of id and reports whether it is now a member.
func (s *LikedSet) Toggle(id string) bool {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s LikedSet) Len() int {
	return len(s.ids)
}

func (s LikedSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
