package model

import (
	"time"
)

// Bar represents one trading day of raw OHLCV data as supplied by the
// market-data source. Bars arrive ascending by date with gaps on
// non-trading days.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// ChartPoint is the chart-ready form of a Bar: the timestamp collapses to
// the plain "YYYY-MM-DD" date string the rendering widget keys on.
type ChartPoint struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// SeriesSummary is the normalizer output: the full chart series plus the
// scalar summary derived from the last two bars.
type SeriesSummary struct {
	Series        []ChartPoint `json:"series"`
	LatestPrice   float64      `json:"latest_price"`
	LatestVolume  int64        `json:"latest_volume"`
	PercentChange float64      `json:"percent_change"`
}
