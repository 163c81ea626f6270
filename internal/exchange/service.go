// Package exchange fetches the GHS to USD conversion rate.
package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSource provides the current GHS->USD conversion rate.
type RateSource interface {
	CurrentRate(ctx context.Context) (decimal.Decimal, error)
}
