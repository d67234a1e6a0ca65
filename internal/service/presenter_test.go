package service

import (
	"testing"

	"chartview/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStyle = model.ChartStyle{
	UpColor:         "#00ff55",
	DownColor:       "#ed4807",
	PivotColor:      "#227cf4",
	ResistanceColor: "#ed4807",
	SupportColor:    "#00ff55",
}

func testBundle(pivots *model.PivotLevels, pctChange float64) *model.ChartBundle {
	return &model.ChartBundle{
		Series: []model.ChartPoint{
			{Time: "2024-03-07", Open: 100, High: 102, Low: 99, Close: 101, Volume: 1000},
			{Time: "2024-03-08", Open: 101, High: 103, Low: 100, Close: 102, Volume: 1200},
		},
		LatestPrice:   102,
		LatestVolume:  1200,
		PercentChange: pctChange,
		Pivots:        pivots,
	}
}

func TestRender_NilBundleSkipsSlot(t *testing.T) {
	p := NewPresenter(testStyle)
	assert.Nil(t, p.Render(nil, model.Symbol{Symbol: "TCS"}))
}

func TestRender_WithPivots(t *testing.T) {
	p := NewPresenter(testStyle)
	pv := &model.PivotLevels{P: 105, R1: 110, R2: 115, R3: 120, S1: 100, S2: 95, S3: 90}

	out := p.Render(testBundle(pv, 0.99), model.Symbol{Symbol: "TCS", Name: "Tata Consultancy Services"})
	require.Len(t, out, 9)

	assert.Equal(t, model.DrawSeries, out[0].Kind)
	require.NotNil(t, out[0].Series)
	assert.Len(t, out[0].Series.Points, 2)
	assert.Equal(t, testStyle.UpColor, out[0].Series.UpColor)

	wantLevels := []struct {
		label string
		value float64
		color string
		style string
	}{
		{"P", 105, testStyle.PivotColor, "solid"},
		{"R1", 110, testStyle.ResistanceColor, "dashed"},
		{"R2", 115, testStyle.ResistanceColor, "dashed"},
		{"R3", 120, testStyle.ResistanceColor, "dashed"},
		{"S1", 100, testStyle.SupportColor, "dashed"},
		{"S2", 95, testStyle.SupportColor, "dashed"},
		{"S3", 90, testStyle.SupportColor, "dashed"},
	}
	for i, want := range wantLevels {
		ins := out[i+1]
		assert.Equal(t, model.DrawLevel, ins.Kind)
		require.NotNil(t, ins.Level)
		assert.Equal(t, want.label, ins.Level.Label)
		assert.Equal(t, want.value, ins.Level.Value)
		assert.Equal(t, want.color, ins.Level.Color)
		assert.Equal(t, want.style, ins.Level.Style)
	}

	header := out[8]
	assert.Equal(t, model.DrawHeader, header.Kind)
	require.NotNil(t, header.Header)
	assert.Equal(t, "Tata Consultancy Services", header.Header.Name)
	assert.Equal(t, 102.0, header.Header.LatestPrice)
	assert.Equal(t, int64(1200), header.Header.LatestVolume)
}

func TestRender_WithoutPivots(t *testing.T) {
	p := NewPresenter(testStyle)

	out := p.Render(testBundle(nil, -1.5), model.Symbol{Symbol: "TCS"})
	require.Len(t, out, 2)
	assert.Equal(t, model.DrawSeries, out[0].Kind)
	assert.Equal(t, model.DrawHeader, out[1].Kind)
}

func TestRender_HeaderGlyphFollowsSign(t *testing.T) {
	p := NewPresenter(testStyle)
	sym := model.Symbol{Symbol: "TCS"}

	up := p.Render(testBundle(nil, 2.1), sym)
	header := up[len(up)-1].Header
	assert.Equal(t, "▲", header.Glyph)
	assert.Equal(t, testStyle.UpColor, header.ChangeColor)

	flat := p.Render(testBundle(nil, 0), sym)
	header = flat[len(flat)-1].Header
	assert.Equal(t, "▲", header.Glyph, "zero change renders as up")

	down := p.Render(testBundle(nil, -0.3), sym)
	header = down[len(down)-1].Header
	assert.Equal(t, "▼", header.Glyph)
	assert.Equal(t, testStyle.DownColor, header.ChangeColor)
}
