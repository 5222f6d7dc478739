package market

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrRateUnavailable means no usable market rate exists for a conversion.
// Callers should offer manual rate entry instead of computing with zero.
var ErrRateUnavailable = errors.New("market rate unavailable")

// RateSource returns the current quote for a catalog instrument.
type RateSource interface {
	Rate(ctx context.Context, instrumentID string) (float64, error)
}

// ValidRate reports whether r can be used as a conversion rate.
func ValidRate(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}

// QuoteToAccountRate returns the multiplier that converts one unit of the
// instrument's quote currency into the JPY account currency.
//
// JPY-quoted instruments and instruments whose PipValue is already expressed
// in account currency need no conversion. USD-quoted forex needs USD/JPY,
// which comes from manual (when valid) or from prices.
func QuoteToAccountRate(ctx context.Context, inst Instrument, manual float64, prices RateSource) (float64, error) {
	if inst.IsJPYPair || inst.Type != Forex {
		return 1.0, nil
	}
	if ValidRate(manual) {
		return manual, nil
	}
	if prices == nil {
		return 0, fmt.Errorf("%s: no USD/JPY rate: %w", inst.ID, ErrRateUnavailable)
	}

	px, err := prices.Rate(ctx, "USDJPY")
	if err != nil {
		if errors.Is(err, ErrRateUnavailable) {
			return 0, err
		}
		return 0, fmt.Errorf("%s: %v: %w", inst.ID, err, ErrRateUnavailable)
	}
	if !ValidRate(px) {
		return 0, fmt.Errorf("%s: invalid USD/JPY rate %v: %w", inst.ID, px, ErrRateUnavailable)
	}
	return px, nil
}
