package port

import (
	"context"
	"errors"

	"github.com/niksmo/fitstore/internal/core/domain"
)

var ErrNotFound = errors.New("not found")

// LocalStorage is durable key-value storage for session state.
//
// Get returns an error wrapping [ErrNotFound] when key is absent.
type LocalStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Notifier interface {
	Notify(context.Context, domain.Notification) error
}

type CatalogReader interface {
	Products() []domain.Product
	ProductByID(id string) (domain.Product, bool)
	ProductsByCategory(category string) []domain.Product
	FeaturedProducts() []domain.Product
	FilteredProducts() []domain.Product
	Search(query string) []domain.Product
}

type FilterSetter interface {
	Filters() domain.FilterCriteria
	ApplyFilters(domain.FilterPatch)
	ResetFilters()
}

type CartManager interface {
	Cart() []domain.CartLine
	CartSnapshot() domain.CartSnapshot
	AddToCart(ctx context.Context, p domain.Product, quantity int)
	RemoveFromCart(ctx context.Context, productID string)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	ClearCart(ctx context.Context)
	CartTotal() int64
	CartCount() int
	Summary() domain.OrderSummary
}

type LikedManager interface {
	Liked() []string
	LikedProducts() []domain.Product
	ToggleLike(ctx context.Context, productID string) bool
	IsLiked(productID string) bool
	LikedCount() int
}
