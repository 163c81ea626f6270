package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/kofiasante/diligent-bot/internal/logger"
)

// LastKnown wraps a RateSource and serves the most recent successful
// rate when a fetch fails. With no successful fetch behind it the error
// propagates unchanged.
type LastKnown struct {
	inner RateSource

	mu        sync.Mutex
	rate      decimal.Decimal
	fetchedAt time.Time
	haveRate  bool
}

// NewLastKnown wraps a RateSource with last-known-rate fallback.
func NewLastKnown(inner RateSource) *LastKnown {
	return &LastKnown{inner: inner}
}

// CurrentRate fetches a fresh rate, remembering it on success.
func (s *LastKnown) CurrentRate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := s.inner.CurrentRate(ctx)
	if err == nil {
		s.mu.Lock()
		s.rate, s.fetchedAt, s.haveRate = rate, time.Now(), true
		s.mu.Unlock()
		return rate, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.haveRate {
		return decimal.Zero, err
	}

	logger.Log.Warn().
		Err(err).
		Time("fetched_at", s.fetchedAt).
		Str("rate", s.rate.String()).
		Msg("Rate fetch failed, using last known rate")
	return s.rate, nil
}
