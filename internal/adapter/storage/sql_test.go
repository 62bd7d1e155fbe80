package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSQLDB struct {
	mock.Mock
}

func (m *MockSQLDB) ExecContext(
	ctx context.Context, query string, args ...any,
) (sql.Result, error) {
	callArgs := m.Called(ctx, query, args)
	res, _ := callArgs.Get(0).(sql.Result)
	return res, callArgs.Error(1)
}

func (m *MockSQLDB) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSQLDB) QueryRowContext(
	ctx context.Context, query string, args ...any,
) *sql.Row {
	return m.Called(ctx, query, args).Get(0).(*sql.Row)
}

func TestSQLStorageSet(t *testing.T) {
	t.Run("Upsert", func(t *testing.T) {
		db := new(MockSQLDB)
		db.On("ExecContext", mock.Anything, mock.Anything,
			[]any{"cart", []byte(`[]`)}).
			Return(driver.RowsAffected(1), nil).Once()

		err := NewSQLStorage(db).Set(t.Context(), "cart", []byte(`[]`))
		require.NoError(t, err)
		db.AssertExpectations(t)
	})

	t.Run("ExecFails", func(t *testing.T) {
		errConn := errors.New("connection reset")
		db := new(MockSQLDB)
		db.On("ExecContext", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errConn)

		err := NewSQLStorage(db).Set(t.Context(), "liked", []byte(`["a"]`))
		require.ErrorIs(t, err, errConn)
	})
}

func TestSQLStorageCanceledContext(t *testing.T) {
	db := new(MockSQLDB)
	s := NewSQLStorage(db)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := s.Get(ctx, "cart")
	assert.ErrorIs(t, err, context.Canceled)

	err = s.Set(ctx, "cart", nil)
	assert.ErrorIs(t, err, context.Canceled)

	db.AssertNotCalled(t, "ExecContext", mock.Anything, mock.Anything, mock.Anything)
	db.AssertNotCalled(t, "QueryRowContext", mock.Anything, mock.Anything, mock.Anything)
}
