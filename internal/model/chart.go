package model

// PivotLevels holds the classic floor-trader pivot point and its three
// resistance and support levels, each rounded to 2 decimal places.
type PivotLevels struct {
	P  float64 `json:"p"`
	R1 float64 `json:"r1"`
	R2 float64 `json:"r2"`
	R3 float64 `json:"r3"`
	S1 float64 `json:"s1"`
	S2 float64 `json:"s2"`
	S3 float64 `json:"s3"`
}

// ChartBundle is the assembled payload for one symbol's chart. Pivots is
// nil when the fetched window contains no prior-month bars.
type ChartBundle struct {
	Series        []ChartPoint `json:"series"`
	LatestPrice   float64      `json:"latest_price"`
	LatestVolume  int64        `json:"latest_volume"`
	PercentChange float64      `json:"percent_change"`
	Pivots        *PivotLevels `json:"pivots,omitempty"`
}

// ChartStyle is the fixed color configuration passed through to the
// renderer. Not user-configurable at runtime.
type ChartStyle struct {
	UpColor         string `json:"up_color"`
	DownColor       string `json:"down_color"`
	PivotColor      string `json:"pivot_color"`
	ResistanceColor string `json:"resistance_color"`
	SupportColor    string `json:"support_color"`
}

// Draw instruction kinds understood by the rendering widget.
const (
	DrawSeries = "series"
	DrawLevel  = "level"
	DrawHeader = "header"
)

// DrawInstruction is one directive for the rendering widget. Exactly one
// of the payload fields is set, matching Kind.
type DrawInstruction struct {
	Kind   string      `json:"kind"`
	Series *SeriesDraw `json:"series,omitempty"`
	Level  *LevelDraw  `json:"level,omitempty"`
	Header *HeaderDraw `json:"header,omitempty"`
}

// SeriesDraw plots the candlestick and volume series.
type SeriesDraw struct {
	Points    []ChartPoint `json:"points"`
	UpColor   string       `json:"up_color"`
	DownColor string       `json:"down_color"`
}

// LevelDraw draws one horizontal reference line.
type LevelDraw struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Style string  `json:"style"`
	Width int     `json:"width"`
}

// HeaderDraw renders the symbol header: name, latest price, signed change
// with glyph and color, latest volume.
type HeaderDraw struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	LatestPrice   float64 `json:"latest_price"`
	PercentChange float64 `json:"percent_change"`
	Glyph         string  `json:"glyph"`
	ChangeColor   string  `json:"change_color"`
	LatestVolume  int64   `json:"latest_volume"`
}
