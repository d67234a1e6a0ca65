package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"chartview/internal/calculator"
	"chartview/internal/client"
	"chartview/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeMarket serves canned bars per symbol and can fail selected symbols.
type fakeMarket struct {
	bars    map[string][]model.Bar
	failing map[string]error
	delay   map[string]time.Duration
	calls   int64
}

func (f *fakeMarket) FetchDailySeries(ctx context.Context, symbol string, _ client.WindowPolicy) ([]model.Bar, error) {
	atomic.AddInt64(&f.calls, 1)
	if d, ok := f.delay[symbol]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.failing[symbol]; ok {
		return nil, err
	}
	bars, ok := f.bars[symbol]
	if !ok || len(bars) == 0 {
		return nil, client.ErrNoData
	}
	return bars, nil
}

func dayBar(date string, open, high, low, close float64) model.Bar {
	ts, _ := time.Parse("2006-01-02", date)
	return model.Bar{Time: ts, Open: open, High: high, Low: low, Close: close, Volume: 500_000}
}

func fixedNow(date string) func() time.Time {
	ts, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return ts }
}

func newTestService(market client.MarketData, nowDate string) *ChartService {
	s := NewChartService(market, client.WindowYearToDate, 4, zap.NewNop())
	s.now = fixedNow(nowDate)
	return s
}

func TestBuildChartBundle_PreviousMonthPartition(t *testing.T) {
	bars := []model.Bar{
		dayBar("2024-01-31", 95, 96, 94, 95),     // prior-prior month, excluded
		dayBar("2024-02-01", 100, 104, 99, 102),  // February subset starts
		dayBar("2024-02-15", 102, 110, 101, 108),
		dayBar("2024-02-29", 108, 109, 100, 105), // last February bar
		dayBar("2024-03-01", 105, 107, 104, 106), // current month, excluded
		dayBar("2024-03-08", 106, 108, 105, 107),
	}
	market := &fakeMarket{bars: map[string][]model.Bar{"TCS": bars}}
	s := newTestService(market, "2024-03-10")

	bundle, err := s.BuildChartBundle(context.Background(), "TCS")
	require.NoError(t, err)
	require.NotNil(t, bundle.Pivots)

	// February only: high 110, low 99, close 105.
	want := calculator.CalculatePivots(110, 99, 105)
	assert.Equal(t, want, *bundle.Pivots)

	assert.Len(t, bundle.Series, len(bars))
	assert.Equal(t, 107.0, bundle.LatestPrice)
	assert.InDelta(t, (107.0-106.0)/106.0*100, bundle.PercentChange, 1e-9)
}

func TestBuildChartBundle_YearRollover(t *testing.T) {
	bars := []model.Bar{
		dayBar("2023-12-15", 100, 105, 98, 104),
		dayBar("2023-12-29", 104, 106, 103, 105),
		dayBar("2024-01-05", 105, 107, 104, 106),
	}
	market := &fakeMarket{bars: map[string][]model.Bar{"TCS": bars}}
	s := newTestService(market, "2024-01-10")

	bundle, err := s.BuildChartBundle(context.Background(), "TCS")
	require.NoError(t, err)
	require.NotNil(t, bundle.Pivots)

	want := calculator.CalculatePivots(106, 98, 105)
	assert.Equal(t, want, *bundle.Pivots)
}

func TestBuildChartBundle_NoPriorMonth(t *testing.T) {
	bars := []model.Bar{
		dayBar("2024-03-04", 100, 102, 99, 101),
		dayBar("2024-03-05", 101, 103, 100, 102),
	}
	market := &fakeMarket{bars: map[string][]model.Bar{"TCS": bars}}
	s := newTestService(market, "2024-03-10")

	bundle, err := s.BuildChartBundle(context.Background(), "TCS")
	require.NoError(t, err)

	assert.Nil(t, bundle.Pivots)
	assert.Len(t, bundle.Series, 2)
	assert.Equal(t, 102.0, bundle.LatestPrice)
	assert.NotZero(t, bundle.PercentChange)
}

func TestBuildChartBundle_FetchFailuresBecomeNoData(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"upstream empty", client.ErrNoData},
		{"transport error", errors.New("connection refused")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			market := &fakeMarket{failing: map[string]error{"TCS": tc.err}}
			s := newTestService(market, "2024-03-10")

			_, err := s.BuildChartBundle(context.Background(), "TCS")
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestBuildChartBundle_ShortSeriesIsNoData(t *testing.T) {
	market := &fakeMarket{bars: map[string][]model.Bar{
		"TCS": {dayBar("2024-03-08", 100, 102, 99, 101)},
	}}
	s := newTestService(market, "2024-03-10")

	_, err := s.BuildChartBundle(context.Background(), "TCS")
	assert.ErrorIs(t, err, ErrNoData)
}

func pageSymbols(n int) []model.Symbol {
	symbols := make([]model.Symbol, n)
	for i := range symbols {
		symbols[i] = model.Symbol{
			Symbol: fmt.Sprintf("SYM%02d", i),
			Name:   fmt.Sprintf("Company %02d", i),
		}
	}
	return symbols
}

func TestBuildPage_GracefulDegradation(t *testing.T) {
	symbols := pageSymbols(12)
	market := &fakeMarket{
		bars:    map[string][]model.Bar{},
		failing: map[string]error{"SYM05": errors.New("rate limited")},
	}
	for _, sym := range symbols {
		market.bars[sym.Symbol] = []model.Bar{
			dayBar("2024-02-15", 100, 102, 99, 101),
			dayBar("2024-03-08", 101, 103, 100, 102),
		}
	}
	s := newTestService(market, "2024-03-10")

	slots := s.BuildPage(context.Background(), symbols)
	require.Len(t, slots, 12)

	built := 0
	for i, slot := range slots {
		assert.Equal(t, symbols[i], slot.Symbol, "slot order must match input order")
		if slot.Bundle != nil {
			built++
		} else {
			assert.Equal(t, "SYM05", slot.Symbol.Symbol)
		}
	}
	assert.Equal(t, 11, built)
}

func TestBuildPage_OrderStableUnderConcurrency(t *testing.T) {
	symbols := pageSymbols(8)
	market := &fakeMarket{
		bars:  map[string][]model.Bar{},
		delay: map[string]time.Duration{},
	}
	// Earlier slots finish last.
	for i, sym := range symbols {
		market.bars[sym.Symbol] = []model.Bar{
			dayBar("2024-03-07", 100, 102, 99, float64(100+i)),
			dayBar("2024-03-08", 101, 103, 100, float64(101+i)),
		}
		market.delay[sym.Symbol] = time.Duration(len(symbols)-i) * 2 * time.Millisecond
	}
	s := newTestService(market, "2024-03-10")

	slots := s.BuildPage(context.Background(), symbols)
	require.Len(t, slots, len(symbols))
	for i, slot := range slots {
		assert.Equal(t, symbols[i].Symbol, slot.Symbol.Symbol)
		require.NotNil(t, slot.Bundle)
		assert.Equal(t, float64(101+i), slot.Bundle.LatestPrice)
	}
}

func TestBuildPage_CancelledContext(t *testing.T) {
	symbols := pageSymbols(6)
	market := &fakeMarket{bars: map[string][]model.Bar{}}
	for _, sym := range symbols {
		market.bars[sym.Symbol] = []model.Bar{
			dayBar("2024-03-07", 100, 102, 99, 101),
			dayBar("2024-03-08", 101, 103, 100, 102),
		}
	}
	s := newTestService(market, "2024-03-10")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slots := s.BuildPage(ctx, symbols)
	require.Len(t, slots, len(symbols))
	for _, slot := range slots {
		assert.Nil(t, slot.Bundle, "no results from a superseded page may surface")
	}
}
