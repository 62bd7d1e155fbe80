package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niksmo/fitstore/internal/core/port"
)

var _ port.LocalStorage = (*SQLStorage)(nil)

// A SQLStorage keeps values in the local_storage table created by
// cmd/migrator.
type SQLStorage struct {
	sqldb sqldb
}

func NewSQLStorage(db sqldb) SQLStorage {
	return SQLStorage{db}
}

func (s SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "SQLStorage.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT value FROM local_storage WHERE key = $1;`

	var value []byte
	err := s.sqldb.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %q: %w", op, key, port.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return value, nil
}

func (s SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	const op = "SQLStorage.Set"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO local_storage (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := s.sqldb.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}
