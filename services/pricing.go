package services

import (
	"math"
	"time"
)

// PriceQuote is the result of pricing a stay. Total and
// PerNightAfterDiscount are floored to whole currency units.
type PriceQuote struct {
	Nights                int     `json:"nights"`
	BasePrice             float64 `json:"base_price"`
	TotalBeforeDiscount   float64 `json:"total_price_before_discount"`
	DiscountRate          float64 `json:"discount_rate"`
	Total                 int64   `json:"total_price"`
	PerNightAfterDiscount int64   `json:"price_per_night_after_discount"`
}

// Quote prices a stay of [checkIn, checkOut) at the given nightly rate.
// Length-of-stay discount: 7+ nights 10%, 3-6 nights 5%. The 7-night
// bracket is checked first so both boundaries are inclusive lower bounds.
// Pure: no clock, no I/O.
func Quote(basePrice float64, checkIn, checkOut time.Time) (PriceQuote, error) {
	if !checkOut.After(checkIn) {
		return PriceQuote{}, ErrInvalidDateRange
	}

	nights := int(checkOut.Sub(checkIn) / (24 * time.Hour))
	if nights < 1 {
		nights = 1
	}

	raw := basePrice * float64(nights)

	multiplier := 1.0
	switch {
	case nights >= 7:
		multiplier = 0.90
	case nights >= 3:
		multiplier = 0.95
	}

	total := int64(math.Floor(raw * multiplier))

	return PriceQuote{
		Nights:                nights,
		BasePrice:             basePrice,
		TotalBeforeDiscount:   raw,
		DiscountRate:          1 - multiplier,
		Total:                 total,
		PerNightAfterDiscount: total / int64(nights),
	}, nil
}
