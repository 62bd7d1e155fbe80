package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/fitstore/internal/core/port"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

var _ port.LocalStorage = (*LevelDBStorage)(nil)

// A LevelDBStorage is the on-disk local storage of a single session.
type LevelDBStorage struct {
	db *leveldb.DB
}

// NewLevelDBStorage opens or creates the database in dir.
func NewLevelDBStorage(dir string) (LevelDBStorage, error) {
	const op = "NewLevelDBStorage"

	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return LevelDBStorage{}, fmt.Errorf("%s: %w", op, err)
	}
	slog.Info("local storage is opened", "op", op, "dir", dir)
	return LevelDBStorage{db}, nil
}

// NewMemLevelDBStorage returns a storage that lives in memory only.
func NewMemLevelDBStorage() (LevelDBStorage, error) {
	const op = "NewMemLevelDBStorage"

	db, err := leveldb.Open(lvlstorage.NewMemStorage(), nil)
	if err != nil {
		return LevelDBStorage{}, fmt.Errorf("%s: %w", op, err)
	}
	return LevelDBStorage{db}, nil
}

func (s LevelDBStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "LevelDBStorage.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	value, err := s.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, fmt.Errorf("%s: %q: %w", op, key, port.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

// Set overwrites key and syncs the write to disk.
func (s LevelDBStorage) Set(ctx context.Context, key string, value []byte) error {
	const op = "LevelDBStorage.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err := s.db.Put([]byte(key), value, &opt.WriteOptions{Sync: true})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s LevelDBStorage) Close() {
	const op = "LevelDBStorage.Close"
	log := slog.With("op", op)

	log.Info("closing local storage...")
	if err := s.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("local storage is closed")
}
