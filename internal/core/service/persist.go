package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/fitstore/internal/core/domain"
	"github.com/niksmo/fitstore/internal/core/port"
	"github.com/niksmo/fitstore/pkg/retry"
)

// persistTimeout bounds a storage call detached from the caller's context.
const persistTimeout = 5 * time.Second

func (s *Store) load(ctx context.Context) {
	const op = "Store.load"
	log := slog.With("op", op)

	if data, ok := s.read(ctx, s.cartKey); ok {
		cart, err := decodeCart(data)
		if err != nil {
			log.Error("failed to parse saved cart", "err", err)
		} else {
			s.cart = cart
		}
	}

	if data, ok := s.read(ctx, s.likedKey); ok {
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			log.Error("failed to parse saved liked items", "err", err)
		} else {
			s.liked = domain.NewLikedSet(ids...)
		}
	}
}

func (s *Store) read(ctx context.Context, key string) ([]byte, bool) {
	const op = "Store.read"

	c := s.retry
	c.ShouldRetry = func(err error) bool {
		return !errors.Is(err, port.ErrNotFound)
	}

	data, err := retry.DoWithResult(ctx, c, func() ([]byte, error) {
		return s.storage.Get(ctx, key)
	})
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			slog.Error("failed to read storage", "op", op,
				"key", key, "err", err)
		}
		return nil, false
	}
	return data, true
}

// decodeCart parses a saved cart. Lines without a product id or with
// a non-positive quantity are dropped, repeated ids are merged.
func decodeCart(data []byte) ([]domain.CartLine, error) {
	const op = "decodeCart"

	var raw []domain.CartLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cart []domain.CartLine
	index := make(map[string]int, len(raw))
	for _, line := range raw {
		if line.Product.ID == "" || line.Quantity <= 0 {
			continue
		}
		if i, ok := index[line.Product.ID]; ok {
			cart[i].AddQuantity(line.Quantity)
			continue
		}
		index[line.Product.ID] = len(cart)
		cart = append(cart, line)
	}
	return cart, nil
}

// saveCart must be called with s.mu held.
func (s *Store) saveCart(ctx context.Context) {
	lines := s.cart
	if lines == nil {
		lines = []domain.CartLine{}
	}
	s.write(ctx, s.cartKey, lines)
}

// saveLiked must be called with s.mu held.
func (s *Store) saveLiked(ctx context.Context) {
	s.write(ctx, s.likedKey, s.liked.IDs())
}

// write stores v under key. The in-memory state has already changed, so
// the write outlives cancellation of ctx.
func (s *Store) write(ctx context.Context, key string, v any) {
	const op = "Store.write"
	log := slog.With("op", op, "key", key)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	data, err := json.Marshal(v)
	if err != nil {
		log.Error("failed to encode", "err", err)
		return
	}

	err = retry.Do(ctx, s.retry, func() error {
		return s.storage.Set(ctx, key, data)
	})
	if err != nil {
		log.Error("failed to save", "err", err)
	}
}
