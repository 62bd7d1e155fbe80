package domain

import (
	"math"
	"strconv"
	"strings"
)

type Pricing struct {
	FreeShippingThreshold int64
	ShippingFee           int64
	TaxRateBasisPoints    int64
}

type OrderSummary struct {
	ItemCount int   `json:"itemCount"`
	Subtotal  int64 `json:"subtotal"`
	Shipping  int64 `json:"shipping"`
	Tax       int64 `json:"tax"`
	Total     int64 `json:"total"`
}

// Summarize prices a cart subtotal. Shipping is free for an empty cart
// and for subtotals at or above the threshold.
func (p Pricing) Summarize(subtotal int64, itemCount int) OrderSummary {
	s := OrderSummary{ItemCount: itemCount, Subtotal: subtotal}
	if subtotal > 0 && subtotal < p.FreeShippingThreshold {
		s.Shipping = p.ShippingFee
	}
	s.Tax = p.tax(subtotal)
	s.Total = saturatingAdd(saturatingAdd(s.Subtotal, s.Shipping, math.MaxInt64),
		s.Tax, math.MaxInt64)
	return s
}

// tax rounds half up to the paisa. The subtotal is split at 10000 so a
// saturated subtotal does not overflow the multiplication.
func (p Pricing) tax(subtotal int64) int64 {
	whole, rest := subtotal/10000, subtotal%10000
	return whole*p.TaxRateBasisPoints + (rest*p.TaxRateBasisPoints+5000)/10000
}

// FormatRupees renders an amount in paise as whole rupees with Indian
// digit grouping, e.g. 16499000 -> "₹1,64,990".
func FormatRupees(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	rupees := paise / 100
	if paise%100 >= 50 {
		rupees++
	}

	digits := strconv.FormatInt(rupees, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}
