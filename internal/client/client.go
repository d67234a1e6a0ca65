package client

import (
	"context"
	"errors"

	"chartview/internal/model"
)

// ErrNoData signals that the upstream has no usable bars for a symbol.
// Callers treat it as an expected per-symbol condition, not a fault.
var ErrNoData = errors.New("no market data")

// WindowPolicy names the lookback window for a daily-series fetch, in the
// range vocabulary of the Yahoo chart API ("ytd", "6mo", "1y", ...).
type WindowPolicy string

const (
	WindowYearToDate  WindowPolicy = "ytd"
	WindowThreeMonths WindowPolicy = "3mo"
	WindowSixMonths   WindowPolicy = "6mo"
	WindowOneYear     WindowPolicy = "1y"
)

// MarketData fetches raw daily bars for a ticker over a lookback window.
// Implementations return bars ascending by date, one per trading day.
type MarketData interface {
	FetchDailySeries(ctx context.Context, symbol string, window WindowPolicy) ([]model.Bar, error)
}
