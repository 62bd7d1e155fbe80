package domain

// FilterCriteria constrains the catalog view. A nil field does not
// constrain its dimension.
type FilterCriteria struct {
	Category *string `json:"category"`
	MinPrice *int64  `json:"minPrice"`
	MaxPrice *int64  `json:"maxPrice"`
	InStock  *bool   `json:"inStock"`
}

// Match reports whether p satisfies every set field of c.
func (c FilterCriteria) Match(p Product) bool {
	if c.Category != nil && *c.Category != "" && p.Category != *c.Category {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.InStock != nil && p.InStock != *c.InStock {
		return false
	}
	return true
}

// A Field is one entry of a [FilterPatch].
//
// Set marks the field as present. A present field with a nil Value
// clears the constraint.
type Field[T any] struct {
	Set   bool
	Value *T
}

func SetField[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

func ClearField[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f Field[T]) apply(dst **T) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}

type FilterPatch struct {
	Category Field[string]
	MinPrice Field[int64]
	MaxPrice Field[int64]
	InStock  Field[bool]
}

// Merge returns c with the present fields of p applied.
func (c FilterCriteria) Merge(p FilterPatch) FilterCriteria {
	p.Category.apply(&c.Category)
	p.MinPrice.apply(&c.MinPrice)
	p.MaxPrice.apply(&c.MaxPrice)
	p.InStock.apply(&c.InStock)
	return c
}

// Clone returns a copy of c that shares no pointers with it.
func (c FilterCriteria) Clone() FilterCriteria {
	return FilterCriteria{
		Category: clonePtr(c.Category),
		MinPrice: clonePtr(c.MinPrice),
		MaxPrice: clonePtr(c.MaxPrice),
		InStock:  clonePtr(c.InStock),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
