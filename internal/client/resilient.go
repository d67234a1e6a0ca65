package client

import (
	"context"
	"errors"
	"time"

	"chartview/internal/model"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// ResilientClient wraps a MarketData client with bounded retries and a
// circuit breaker, so a dead upstream fails fast for a whole page instead
// of timing out symbol by symbol. ErrNoData is never retried and never
// trips the breaker: an empty answer is an answer.
type ResilientClient struct {
	inner      MarketData
	maxRetries uint64
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewResilientClient creates a new resilient market-data decorator.
func NewResilientClient(inner MarketData, maxRetries int, logger *zap.Logger) *ResilientClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	settings := gobreaker.Settings{
		Name:    "market-data",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoData)
		},
	}
	return &ResilientClient{
		inner:      inner,
		maxRetries: uint64(maxRetries),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
	}
}

// FetchDailySeries delegates to the wrapped client through the breaker,
// retrying transient failures with exponential backoff.
func (c *ResilientClient) FetchDailySeries(ctx context.Context, symbol string, window WindowPolicy) ([]model.Bar, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		var bars []model.Bar
		op := func() error {
			var fetchErr error
			bars, fetchErr = c.inner.FetchDailySeries(ctx, symbol, window)
			if errors.Is(fetchErr, ErrNoData) {
				return backoff.Permanent(fetchErr)
			}
			return fetchErr
		}
		b := backoff.WithContext(backoff.WithMaxRetries(newExponentialBackOff(), c.maxRetries), ctx)
		if err := backoff.Retry(op, b); err != nil {
			return nil, err
		}
		return bars, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			c.logger.Warn("Market data circuit open, failing fast",
				zap.String("symbol", symbol))
		}
		return nil, err
	}
	return result.([]model.Bar), nil
}

func newExponentialBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 20 * time.Second
	return b
}
