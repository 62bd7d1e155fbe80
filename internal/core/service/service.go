package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/fitstore/internal/core/domain"
	"github.com/niksmo/fitstore/internal/core/port"
	"github.com/niksmo/fitstore/pkg/retry"
)

var (
	_ port.CatalogReader = (*Store)(nil)
	_ port.FilterSetter  = (*Store)(nil)
	_ port.CartManager   = (*Store)(nil)
	_ port.LikedManager  = (*Store)(nil)
)

const (
	DefaultCartKey  = "cart"
	DefaultLikedKey = "liked"
)

// A Config used for setup [Store].
//
// Products and Storage are required.
type Config struct {
	Products []domain.Product
	Storage  port.LocalStorage
	Notifier port.Notifier
	CartKey  string
	LikedKey string
	Pricing  domain.Pricing
	Retry    retry.RetryConfig
}

// A Store is the catalog, cart, favorites and filter state of one
// storefront session.
//
// Cart and liked set are written to [port.LocalStorage] after every
// mutation. Storage and notification failures are logged, never returned.
type Store struct {
	mu sync.Mutex

	products []domain.Product
	cart     []domain.CartLine
	liked    domain.LikedSet
	filters  domain.FilterCriteria

	storage  port.LocalStorage
	notifier port.Notifier
	cartKey  string
	likedKey string
	pricing  domain.Pricing
	retry    retry.RetryConfig
	now      func() time.Time
}

// New creates the store and restores cart and liked set from storage.
func New(ctx context.Context, cfg Config) *Store {
	const op = "service.New"

	if cfg.Storage == nil {
		panic(op + ": storage is nil") // develop mistake
	}

	s := &Store{
		products: slices.Clone(cfg.Products),
		liked:    domain.NewLikedSet(),
		storage:  cfg.Storage,
		notifier: cfg.Notifier,
		cartKey:  cfg.CartKey,
		likedKey: cfg.LikedKey,
		pricing:  cfg.Pricing,
		retry:    cfg.Retry,
		now:      time.Now,
	}

	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.cartKey == "" {
		s.cartKey = DefaultCartKey
	}
	if s.likedKey == "" {
		s.likedKey = DefaultLikedKey
	}

	s.load(ctx)

	slog.Info("store is ready", "op", op,
		"nProducts", len(s.products),
		"nCartLines", len(s.cart),
		"nLiked", s.liked.Len(),
	)
	return s
}

func (s *Store) notify(ctx context.Context, n domain.Notification) {
	const op = "Store.notify"

	if n.Kind == "" {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.Warn("failed to deliver notification", "op", op,
			"kind", n.Kind, "err", err)
	}
}

func (s *Store) notification(
	kind domain.NotificationKind, productID, msg string,
) domain.Notification {
	return domain.Notification{
		Kind:      kind,
		ProductID: productID,
		Message:   msg,
		Time:      s.now(),
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Notification) error {
	return nil
}
