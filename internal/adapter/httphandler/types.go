package httphandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/fitstore/internal/core/domain"
)

var errUnknownField = errors.New("unknown field")

type (
	CartItemRequest struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}

	QuantityRequest struct {
		Quantity *int `json:"quantity"`
	}

	// FilterPatchRequest keeps raw values so that an explicit null can be
	// told apart from an absent field.
	FilterPatchRequest map[string]json.RawMessage
)

type (
	CartResponse struct {
		Items          []domain.CartLine `json:"items"`
		Count          int               `json:"count"`
		Total          int64             `json:"total"`
		TotalFormatted string            `json:"totalFormatted"`
	}

	SummaryResponse struct {
		ItemCount         int    `json:"itemCount"`
		Subtotal          int64  `json:"subtotal"`
		Shipping          int64  `json:"shipping"`
		Tax               int64  `json:"tax"`
		Total             int64  `json:"total"`
		SubtotalFormatted string `json:"subtotalFormatted"`
		ShippingFormatted string `json:"shippingFormatted"`
		TaxFormatted      string `json:"taxFormatted"`
		TotalFormatted    string `json:"totalFormatted"`
	}

	LikedResponse struct {
		IDs   []string `json:"ids"`
		Count int      `json:"count"`
	}

	LikedStatusResponse struct {
		ProductID string `json:"productId"`
		Liked     bool   `json:"liked"`
	}
)

func newCartResponse(snap domain.CartSnapshot) CartResponse {
	return CartResponse{
		Items:          snap.Lines,
		Count:          snap.Count,
		Total:          snap.Total,
		TotalFormatted: domain.FormatRupees(snap.Total),
	}
}

func newSummaryResponse(s domain.OrderSummary) SummaryResponse {
	return SummaryResponse{
		ItemCount:         s.ItemCount,
		Subtotal:          s.Subtotal,
		Shipping:          s.Shipping,
		Tax:               s.Tax,
		Total:             s.Total,
		SubtotalFormatted: domain.FormatRupees(s.Subtotal),
		ShippingFormatted: domain.FormatRupees(s.Shipping),
		TaxFormatted:      domain.FormatRupees(s.Tax),
		TotalFormatted:    domain.FormatRupees(s.Total),
	}
}

func (r FilterPatchRequest) toDomain() (domain.FilterPatch, error) {
	var (
		p   domain.FilterPatch
		err error
	)
	for name, raw := range r {
		switch name {
		case "category":
			p.Category, err = decodeField[string](raw)
		case "minPrice":
			p.MinPrice, err = decodeField[int64](raw)
		case "maxPrice":
			p.MaxPrice, err = decodeField[int64](raw)
		case "inStock":
			p.InStock, err = decodeField[bool](raw)
		default:
			err = errUnknownField
		}
		if err != nil {
			return domain.FilterPatch{}, fmt.Errorf("%q: %w", name, err)
		}
	}
	return p, nil
}

func decodeField[T any](raw json.RawMessage) (domain.Field[T], error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return domain.ClearField[T](), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.Field[T]{}, err
	}
	return domain.SetField(v), nil
}
