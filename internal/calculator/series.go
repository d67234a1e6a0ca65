package calculator

import (
	"errors"

	"chartview/internal/model"
)

var (
	// ErrEmptySeries is returned when the input has no bars at all.
	ErrEmptySeries = errors.New("empty price series")
	// ErrInsufficientData is returned when fewer than two bars are
	// present; the day-over-day change is undefined.
	ErrInsufficientData = errors.New("insufficient price data")
)

// NormalizeSeries converts raw daily bars into chart-ready points and
// extracts the scalar summary: latest close, latest volume, and percent
// change between the last two closes. The two closes are used as-is even
// when the trading days are not contiguous.
func NormalizeSeries(bars []model.Bar) (*model.SeriesSummary, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}
	if len(bars) < 2 {
		return nil, ErrInsufficientData
	}

	points := make([]model.ChartPoint, len(bars))
	for i, b := range bars {
		points[i] = model.ChartPoint{
			Time:   b.Time.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}

	last := bars[len(bars)-1]
	prev := bars[len(bars)-2]

	return &model.SeriesSummary{
		Series:        points,
		LatestPrice:   last.Close,
		LatestVolume:  last.Volume,
		PercentChange: (last.Close - prev.Close) / prev.Close * 100,
	}, nil
}
