package service

import (
	"chartview/internal/model"
)

// Presenter turns chart bundles into draw instructions for the external
// rendering widget. It holds only the fixed style configuration.
type Presenter struct {
	style model.ChartStyle
}

// NewPresenter creates a new presenter with the given style.
func NewPresenter(style model.ChartStyle) *Presenter {
	return &Presenter{style: style}
}

// Render emits the draw instructions for one chart slot: the candlestick
// and volume series, one horizontal line per pivot level when pivots are
// present, and the header line. A nil bundle yields no instructions and
// the slot is skipped.
func (p *Presenter) Render(bundle *model.ChartBundle, sym model.Symbol) []model.DrawInstruction {
	if bundle == nil {
		return nil
	}

	out := make([]model.DrawInstruction, 0, 9)
	out = append(out, model.DrawInstruction{
		Kind: model.DrawSeries,
		Series: &model.SeriesDraw{
			Points:    bundle.Series,
			UpColor:   p.style.UpColor,
			DownColor: p.style.DownColor,
		},
	})

	if pv := bundle.Pivots; pv != nil {
		levels := []struct {
			label string
			value float64
			color string
			style string
		}{
			{"P", pv.P, p.style.PivotColor, "solid"},
			{"R1", pv.R1, p.style.ResistanceColor, "dashed"},
			{"R2", pv.R2, p.style.ResistanceColor, "dashed"},
			{"R3", pv.R3, p.style.ResistanceColor, "dashed"},
			{"S1", pv.S1, p.style.SupportColor, "dashed"},
			{"S2", pv.S2, p.style.SupportColor, "dashed"},
			{"S3", pv.S3, p.style.SupportColor, "dashed"},
		}
		for _, l := range levels {
			out = append(out, model.DrawInstruction{
				Kind: model.DrawLevel,
				Level: &model.LevelDraw{
					Label: l.label,
					Value: l.value,
					Color: l.color,
					Style: l.style,
					Width: 1,
				},
			})
		}
	}

	glyph, changeColor := "▲", p.style.UpColor
	if bundle.PercentChange < 0 {
		glyph, changeColor = "▼", p.style.DownColor
	}
	out = append(out, model.DrawInstruction{
		Kind: model.DrawHeader,
		Header: &model.HeaderDraw{
			Symbol:        sym.Symbol,
			Name:          sym.Name,
			LatestPrice:   bundle.LatestPrice,
			PercentChange: bundle.PercentChange,
			Glyph:         glyph,
			ChangeColor:   changeColor,
			LatestVolume:  bundle.LatestVolume,
		},
	})

	return out
}
