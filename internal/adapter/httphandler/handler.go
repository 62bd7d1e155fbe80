package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/niksmo/fitstore/internal/core/port"
)

const maxBodyBytes = 1 << 20

// GET v1/products (200 OK)
// GET v1/products/featured (200 OK)
// GET v1/products/filtered (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/categories/{category}/products (200 OK)
// GET v1/search?q=query (200 OK)

type CatalogHandler struct {
	catalog port.CatalogReader
}

func RegisterCatalog(mux *http.ServeMux, catalog port.CatalogReader) {
	h := CatalogHandler{catalog}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/products/featured", h.GetFeatured)
	mux.HandleFunc("GET /v1/products/filtered", h.GetFiltered)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories/{category}/products", h.GetByCategory)
	mux.HandleFunc("GET /v1/search", h.Search)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	writeJSON(w, http.StatusOK, h.catalog.Products(), op)
}

func (h CatalogHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetFeatured"
	writeJSON(w, http.StatusOK, h.catalog.FeaturedProducts(), op)
}

func (h CatalogHandler) GetFiltered(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetFiltered"
	writeJSON(w, http.StatusOK, h.catalog.FilteredProducts(), op)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"

	p, ok := h.catalog.ProductByID(r.PathValue("id"))
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p, op)
}

func (h CatalogHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetByCategory"
	ps := h.catalog.ProductsByCategory(r.PathValue("category"))
	writeJSON(w, http.StatusOK, ps, op)
}

func (h CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.Search"
	ps := h.catalog.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, ps, op)
}

// GET v1/filters (200 OK)
// PATCH v1/filters JSON {"category", "minPrice", "maxPrice", "inStock"}, null clears (200 OK, 400 Bad request)
// DELETE v1/filters (200 OK)

type FiltersHandler struct {
	filters port.FilterSetter
}

func RegisterFilters(mux *http.ServeMux, filters port.FilterSetter) {
	h := FiltersHandler{filters}
	mux.HandleFunc("GET /v1/filters", h.GetFilters)
	mux.HandleFunc("PATCH /v1/filters", h.PatchFilters)
	mux.HandleFunc("DELETE /v1/filters", h.ResetFilters)
}

func (h FiltersHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	const op = "FiltersHandler.GetFilters"
	writeJSON(w, http.StatusOK, h.filters.Filters(), op)
}

func (h FiltersHandler) PatchFilters(w http.ResponseWriter, r *http.Request) {
	const op = "FiltersHandler.PatchFilters"
	log := slog.With("op", op)

	var req FilterPatchRequest
	if !readJSON(w, r, &req, op) {
		return
	}

	patch, err := req.toDomain()
	if err != nil {
		http.Error(w, "invalid filter: "+err.Error(), http.StatusBadRequest)
		log.Warn("invalid filter patch", "err", err)
		return
	}

	h.filters.ApplyFilters(patch)
	writeJSON(w, http.StatusOK, h.filters.Filters(), op)
}

func (h FiltersHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	const op = "FiltersHandler.ResetFilters"
	h.filters.ResetFilters()
	writeJSON(w, http.StatusOK, h.filters.Filters(), op)
}

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"productId" string, "quantity" int} (200 OK, 400 Bad request, 404 Not found)
// PUT v1/cart/items/{id} JSON {"quantity" int} (200 OK, 400 Bad request)
// DELETE v1/cart/items/{id} (200 OK)
// DELETE v1/cart (200 OK)
// GET v1/cart/summary (200 OK)

type CartHandler struct {
	cart        port.CartManager
	catalog     port.CatalogReader
	maxQuantity int
}

// RegisterCart serves the cart. Requested quantities above maxQuantity
// are lowered to it; maxQuantity <= 0 disables the bound.
func RegisterCart(
	mux *http.ServeMux,
	cart port.CartManager,
	catalog port.CatalogReader,
	maxQuantity int,
) {
	h := CartHandler{cart, catalog, maxQuantity}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
	mux.HandleFunc("GET /v1/cart/summary", h.GetSummary)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PUT /v1/cart/items/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.RemoveItem)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	h.writeCart(w, op)
}

func (h CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetSummary"
	writeJSON(w, http.StatusOK, newSummaryResponse(h.cart.Summary()), op)
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req CartItemRequest
	if !readJSON(w, r, &req, op) {
		return
	}

	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	p, ok := h.catalog.ProductByID(req.ProductID)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	quantity := max(h.clamp(req.Quantity), 1)
	h.cart.AddToCart(r.Context(), p, quantity)
	log.Info("added to cart", "productID", p.ID, "quantity", quantity)

	h.writeCart(w, op)
}

func (h CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.UpdateItem"

	var req QuantityRequest
	if !readJSON(w, r, &req, op) {
		return
	}
	if req.Quantity == nil {
		http.Error(w, "quantity is required", http.StatusBadRequest)
		return
	}

	h.cart.UpdateQuantity(r.Context(), r.PathValue("id"), h.clamp(*req.Quantity))
	h.writeCart(w, op)
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	h.cart.RemoveFromCart(r.Context(), r.PathValue("id"))
	h.writeCart(w, op)
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	h.cart.ClearCart(r.Context())
	h.writeCart(w, op)
}

func (h CartHandler) clamp(quantity int) int {
	if h.maxQuantity > 0 && quantity > h.maxQuantity {
		return h.maxQuantity
	}
	return quantity
}

func (h CartHandler) writeCart(w http.ResponseWriter, op string) {
	writeJSON(w, http.StatusOK, newCartResponse(h.cart.CartSnapshot()), op)
}

// GET v1/liked (200 OK)
// GET v1/liked/products (200 OK)
// GET v1/liked/{id} (200 OK)
// POST v1/liked/{id}/toggle (200 OK)

type LikedHandler struct {
	liked port.LikedManager
}

func RegisterLiked(mux *http.ServeMux, liked port.LikedManager) {
	h := LikedHandler{liked}
	mux.HandleFunc("GET /v1/liked", h.GetLiked)
	mux.HandleFunc("GET /v1/liked/products", h.GetLikedProducts)
	mux.HandleFunc("GET /v1/liked/{id}", h.GetStatus)
	mux.HandleFunc("POST /v1/liked/{id}/toggle", h.Toggle)
}

func (h LikedHandler) GetLiked(w http.ResponseWriter, r *http.Request) {
	const op = "LikedHandler.GetLiked"
	ids := h.liked.Liked()
	res := LikedResponse{IDs: ids, Count: len(ids)}
	writeJSON(w, http.StatusOK, res, op)
}

func (h LikedHandler) GetLikedProducts(w http.ResponseWriter, r *http.Request) {
	const op = "LikedHandler.GetLikedProducts"
	writeJSON(w, http.StatusOK, h.liked.LikedProducts(), op)
}

func (h LikedHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "LikedHandler.GetStatus"
	id := r.PathValue("id")
	res := LikedStatusResponse{ProductID: id, Liked: h.liked.IsLiked(id)}
	writeJSON(w, http.StatusOK, res, op)
}

func (h LikedHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	const op = "LikedHandler.Toggle"
	log := slog.With("op", op)

	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		http.Error(w, "product id is required", http.StatusBadRequest)
		return
	}

	liked := h.liked.ToggleLike(r.Context(), id)
	log.Info("like toggled", "productID", id, "liked", liked)

	writeJSON(w, http.StatusOK, LikedStatusResponse{ProductID: id, Liked: liked}, op)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		slog.Warn("failed to parse JSON", "op", op, "err", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any, op string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
