package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("BuiltIn", func(t *testing.T) {
		ps, err := Load("")
		require.NoError(t, err)
		require.Len(t, ps, 12)

		assert.Equal(t, "barbell-olympic", ps[0].ID)
		assert.Equal(t, int64(1649900), ps[0].Price)
		assert.True(t, ps[0].Featured)
		require.NotNil(t, ps[0].Rating)
		assert.InDelta(t, 4.8, *ps[0].Rating, 1e-9)
		assert.Equal(t, "20kg", ps[0].Specs["Weight"])

		var outOfStock []string
		for _, p := range ps {
			if !p.InStock {
				outOfStock = append(outOfStock, p.ID)
			}
		}
		assert.Equal(t, []string{"weight-plates"}, outOfStock)
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		data := `[{"id":"a","name":"A","category":"strength","price":100,"inStock":true}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		ps, err := Load(path)
		require.NoError(t, err)
		require.Len(t, ps, 1)
		assert.Equal(t, "A", ps[0].Name)
		assert.Nil(t, ps[0].Rating)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"EmptyID", `[{"id":"","price":1}]`},
		{"DuplicateID", `[{"id":"a","price":1},{"id":"a","price":2}]`},
		{"NegativePrice", `[{"id":"a","price":-1}]`},
		{"RatingOutOfRange", `[{"id":"a","price":1,"rating":5.5}]`},
		{"NegativeReviews", `[{"id":"a","price":1,"reviews":-3}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}

	t.Run("InvalidJSON", func(t *testing.T) {
		_, err := Parse([]byte(`{`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCatalog)
	})
}
