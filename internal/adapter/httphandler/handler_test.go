package httphandler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/niksmo/fitstore/internal/adapter/storage"
	"github.com/niksmo/fitstore/internal/core/domain"
	"github.com/niksmo/fitstore/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProducts = []domain.Product{
	{ID: "barbell", Name: "Barbell", Category: "strength", Price: 1649900, InStock: true, Featured: true},
	{ID: "mat", Name: "Yoga Mat", Category: "accessories", Price: 4000, InStock: true},
	{ID: "plates", Name: "Plates", Category: "strength", Price: 25000, InStock: false},
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := storage.NewMemLevelDBStorage()
	require.NoError(t, err)
	t.Cleanup(st.Close)

	s := service.New(t.Context(), service.Config{
		Products: testProducts,
		Storage:  st,
		Pricing: domain.Pricing{
			FreeShippingThreshold: 1000000,
			ShippingFee:           49900,
			TaxRateBasisPoints:    800,
		},
	})

	mux := http.NewServeMux()
	RegisterCatalog(mux, s)
	RegisterFilters(mux, s)
	RegisterCart(mux, s, s, 99)
	RegisterLiked(mux, s)

	srv := httptest.NewServer(AllowJSON(mux))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	var req *http.Request
	var err error
	if body == "" {
		req, err = http.NewRequestWithContext(t.Context(), method, srv.URL+path, nil)
	} else {
		req, err = http.NewRequestWithContext(t.Context(), method, srv.URL+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	require.NoError(t, err)

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func productIDs(ps []domain.Product) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestCatalogHandler(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"All", "/v1/products", []string{"barbell", "mat", "plates"}},
		{"Featured", "/v1/products/featured", []string{"barbell"}},
		{"Filtered", "/v1/products/filtered", []string{"barbell", "mat", "plates"}},
		{"Category", "/v1/categories/strength/products", []string{"barbell", "plates"}},
		{"UnknownCategory", "/v1/categories/nutrition/products", []string{}},
		{"Search", "/v1/search?q=YOGA", []string{"mat"}},
		{"EmptySearch", "/v1/search?q=", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := do(t, srv, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
			assert.Equal(t, tt.want, productIDs(decode[[]domain.Product](t, res)))
		})
	}

	t.Run("ProductByID", func(t *testing.T) {
		res := do(t, srv, http.MethodGet, "/v1/products/mat", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, testProducts[1], decode[domain.Product](t, res))

		res = do(t, srv, http.MethodGet, "/v1/products/nope", "")
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

func TestFiltersHandler(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPatch, "/v1/filters", `{"category":"strength","inStock":true}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	f := decode[domain.FilterCriteria](t, res)
	require.NotNil(t, f.Category)
	assert.Equal(t, "strength", *f.Category)

	res = do(t, srv, http.MethodGet, "/v1/products/filtered", "")
	assert.Equal(t, []string{"barbell"}, productIDs(decode[[]domain.Product](t, res)))

	t.Run("NullClears", func(t *testing.T) {
		res := do(t, srv, http.MethodPatch, "/v1/filters", `{"inStock":null}`)
		require.Equal(t, http.StatusOK, res.StatusCode)
		f := decode[domain.FilterCriteria](t, res)
		assert.Nil(t, f.InStock)
		assert.NotNil(t, f.Category)

		res = do(t, srv, http.MethodGet, "/v1/products/filtered", "")
		assert.Equal(t, []string{"barbell", "plates"}, productIDs(decode[[]domain.Product](t, res)))
	})

	t.Run("BadRequest", func(t *testing.T) {
		for _, body := range []string{`{"color":"red"}`, `{"minPrice":"cheap"}`, `[`} {
			res := do(t, srv, http.MethodPatch, "/v1/filters", body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
		}
	})

	t.Run("Reset", func(t *testing.T) {
		res := do(t, srv, http.MethodDelete, "/v1/filters", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, domain.FilterCriteria{}, decode[domain.FilterCriteria](t, res))
	})

	t.Run("UnsupportedMediaType", func(t *testing.T) {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodPatch,
			srv.URL+"/v1/filters", strings.NewReader(`{}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "text/plain")
		res, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	})
}

func TestCartHandler(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/v1/cart/items", `{"productId":"mat","quantity":1}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = do(t, srv, http.MethodPost, "/v1/cart/items", `{"productId":"mat","quantity":2}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	cart := decode[CartResponse](t, res)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.Count)
	assert.Equal(t, int64(12000), cart.Total)
	assert.Equal(t, "₹120", cart.TotalFormatted)

	t.Run("AddValidation", func(t *testing.T) {
		res := do(t, srv, http.MethodPost, "/v1/cart/items", `{"quantity":1}`)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		res = do(t, srv, http.MethodPost, "/v1/cart/items", `{"productId":"nope"}`)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("AddClampsQuantity", func(t *testing.T) {
		res := do(t, srv, http.MethodPost, "/v1/cart/items", `{"productId":"plates","quantity":1000}`)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, 3+99, decode[CartResponse](t, res).Count)

		res = do(t, srv, http.MethodPost, "/v1/cart/items", `{"productId":"plates","quantity":0}`)
		assert.Equal(t, 3+100, decode[CartResponse](t, res).Count)
	})

	t.Run("Update", func(t *testing.T) {
		res := do(t, srv, http.MethodPut, "/v1/cart/items/plates", `{"quantity":2}`)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, 5, decode[CartResponse](t, res).Count)

		res = do(t, srv, http.MethodPut, "/v1/cart/items/plates", `{}`)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)

		res = do(t, srv, http.MethodPut, "/v1/cart/items/plates", `{"quantity":0}`)
		cart := decode[CartResponse](t, res)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "mat", cart.Items[0].Product.ID)
	})

	t.Run("Summary", func(t *testing.T) {
		res := do(t, srv, http.MethodGet, "/v1/cart/summary", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, SummaryResponse{
			ItemCount:         3,
			Subtotal:          12000,
			Shipping:          49900,
			Tax:               960,
			Total:             62860,
			SubtotalFormatted: "₹120",
			ShippingFormatted: "₹499",
			TaxFormatted:      "₹10",
			TotalFormatted:    "₹629",
		}, decode[SummaryResponse](t, res))
	})

	t.Run("RemoveAndClear", func(t *testing.T) {
		res := do(t, srv, http.MethodDelete, "/v1/cart/items/mat", "")
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Empty(t, decode[CartResponse](t, res).Items)

		do(t, srv, http.MethodPost, "/v1/cart/items", `{"productId":"barbell"}`)
		res = do(t, srv, http.MethodDelete, "/v1/cart", "")
		cart := decode[CartResponse](t, res)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.Total)
		assert.Equal(t, "₹0", cart.TotalFormatted)
	})
}

func TestLikedHandler(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/v1/liked/mat/toggle", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, LikedStatusResponse{ProductID: "mat", Liked: true},
		decode[LikedStatusResponse](t, res))

	do(t, srv, http.MethodPost, "/v1/liked/barbell/toggle", "")

	res = do(t, srv, http.MethodGet, "/v1/liked", "")
	assert.Equal(t, LikedResponse{IDs: []string{"barbell", "mat"}, Count: 2},
		decode[LikedResponse](t, res))

	res = do(t, srv, http.MethodGet, "/v1/liked/products", "")
	assert.Equal(t, []string{"barbell", "mat"}, productIDs(decode[[]domain.Product](t, res)))

	res = do(t, srv, http.MethodPost, "/v1/liked/mat/toggle", "")
	assert.False(t, decode[LikedStatusResponse](t, res).Liked)

	res = do(t, srv, http.MethodGet, "/v1/liked/mat", "")
	assert.False(t, decode[LikedStatusResponse](t, res).Liked)
	res = do(t, srv, http.MethodGet, "/v1/liked/barbell", "")
	assert.True(t, decode[LikedStatusResponse](t, res).Liked)
}

func TestResponseKeysAreCamelCase(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/v1/cart/items", `{"productId":"mat","quantity":2}`)

	keys := func(res *http.Response) []string {
		m := decode[map[string]json.RawMessage](t, res)
		ks := make([]string, 0, len(m))
		for k := range m {
			ks = append(ks, k)
		}
		return ks
	}

	res := do(t, srv, http.MethodGet, "/v1/cart", "")
	assert.ElementsMatch(t, []string{"items", "count", "total", "totalFormatted"}, keys(res))

	res = do(t, srv, http.MethodGet, "/v1/cart/summary", "")
	assert.ElementsMatch(t, []string{
		"itemCount", "subtotal", "shipping", "tax", "total",
		"subtotalFormatted", "shippingFormatted", "taxFormatted", "totalFormatted",
	}, keys(res))

	res = do(t, srv, http.MethodPost, "/v1/liked/mat/toggle", "")
	assert.ElementsMatch(t, []string{"productId", "liked"}, keys(res))

	res = do(t, srv, http.MethodPost, "/v1/cart/items", `{"product_id":"mat"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
