package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"chartview/internal/calculator"
	"chartview/internal/client"
	"chartview/internal/metrics"
	"chartview/internal/model"

	"go.uber.org/zap"
)

// ErrNoData signals that a symbol's chart cannot be built. Callers skip
// the slot; the condition never aborts a page.
var ErrNoData = errors.New("no chart data")

// ChartService assembles chart bundles from raw market data.
type ChartService struct {
	market      client.MarketData
	window      client.WindowPolicy
	concurrency int
	logger      *zap.Logger
	now         func() time.Time
}

// NewChartService creates a new chart service. concurrency bounds how
// many symbols are fetched at once during page assembly.
func NewChartService(market client.MarketData, window client.WindowPolicy, concurrency int, logger *zap.Logger) *ChartService {
	if concurrency < 1 {
		concurrency = 1
	}
	if window == "" {
		window = client.WindowYearToDate
	}
	return &ChartService{
		market:      market,
		window:      window,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

// BuildChartBundle fetches the symbol's daily history and derives the
// chart series, summary statistics and prior-month pivot levels. Every
// failure mode at the market-data boundary, and any series too short to
// chart, maps to ErrNoData.
func (s *ChartService) BuildChartBundle(ctx context.Context, symbol string) (*model.ChartBundle, error) {
	bars, err := s.market.FetchDailySeries(ctx, symbol, s.window)
	if err != nil {
		if errors.Is(err, client.ErrNoData) {
			metrics.FetchOutcome("no_data")
		} else {
			metrics.FetchOutcome("error")
			s.logger.Warn("Market data fetch failed",
				zap.String("symbol", symbol),
				zap.Error(err))
		}
		return nil, ErrNoData
	}
	metrics.FetchOutcome("ok")

	return s.assemble(bars)
}

// assemble is the pure stage of the pipeline: it never touches the
// network, so it is testable with fixture bars alone.
func (s *ChartService) assemble(bars []model.Bar) (*model.ChartBundle, error) {
	summary, err := calculator.NormalizeSeries(bars)
	if err != nil {
		return nil, ErrNoData
	}

	bundle := &model.ChartBundle{
		Series:        summary.Series,
		LatestPrice:   summary.LatestPrice,
		LatestVolume:  summary.LatestVolume,
		PercentChange: summary.PercentChange,
	}

	if subset := previousMonthBars(bars, s.now()); len(subset) > 0 {
		high := subset[0].High
		low := subset[0].Low
		for _, b := range subset[1:] {
			if b.High > high {
				high = b.High
			}
			if b.Low < low {
				low = b.Low
			}
		}
		pivots := calculator.CalculatePivots(high, low, subset[len(subset)-1].Close)
		bundle.Pivots = &pivots
	}

	return bundle, nil
}

// previousMonthBars returns the bars dated in the calendar month before
// now's month, handling the January to December rollover.
func previousMonthBars(bars []model.Bar, now time.Time) []model.Bar {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prev := firstOfMonth.AddDate(0, -1, 0)

	var subset []model.Bar
	for _, b := range bars {
		if b.Time.Year() == prev.Year() && b.Time.Month() == prev.Month() {
			subset = append(subset, b)
		}
	}
	return subset
}

// ChartSlot pairs a symbol with its assembled bundle. Bundle is nil when
// the symbol degraded to "no data".
type ChartSlot struct {
	Symbol model.Symbol
	Bundle *model.ChartBundle
}

// BuildPage assembles bundles for one page of symbols with bounded
// concurrency. Slots come back in input order regardless of completion
// order; a failed symbol leaves a nil bundle in its slot. A cancelled
// context stops scheduling and leaves the remaining slots empty.
func (s *ChartService) BuildPage(ctx context.Context, symbols []model.Symbol) []ChartSlot {
	start := time.Now()

	slots := make([]ChartSlot, len(symbols))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, sym := range symbols {
		slots[i].Symbol = sym
		if ctx.Err() != nil {
			continue
		}

		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			bundle, err := s.BuildChartBundle(ctx, symbol)
			if err != nil {
				return
			}
			slots[i].Bundle = bundle
		}(i, sym.Symbol)
	}
	wg.Wait()

	metrics.ObservePageAssembly(time.Since(start))
	return slots
}
