// Package visualize renders cleaned bar series and an aligned indicator
// into a chart image and a textual summary. It is a pure consumer of the
// read path and never writes back to storage.
package visualize

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"market_backend/internal/feature/bars/domain/entity"
)

// ErrNoData is returned when there is nothing to render.
var ErrNoData = errors.New("visualize: no data to render")

// RenderChart は終値とSMAを重ねた折れ線チャートをPNGとして書き出します。
// sma はバーと同じ長さで整列済みであること（未定義の先頭区間は描画されない）。
func RenderChart(bars []entity.Bar, sma []decimal.NullDecimal, ticker, indicatorName, outPath string) error {
	if len(bars) < 2 {
		return ErrNoData
	}
	if len(sma) != len(bars) {
		return fmt.Errorf("visualize: indicator length %d does not match %d bars", len(sma), len(bars))
	}

	xs := make([]time.Time, 0, len(bars))
	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		xs = append(xs, b.Date)
		closes = append(closes, b.Close.InexactFloat64())
	}

	smaXs := make([]time.Time, 0, len(sma))
	smaYs := make([]float64, 0, len(sma))
	for i, v := range sma {
		if !v.Valid {
			continue
		}
		smaXs = append(smaXs, bars[i].Date)
		smaYs = append(smaYs, v.Decimal.InexactFloat64())
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "close",
			XValues: xs,
			YValues: closes,
		},
	}
	if len(smaXs) >= 2 {
		series = append(series, chart.TimeSeries{
			Name:    indicatorName,
			XValues: smaXs,
			YValues: smaYs,
			Style: chart.Style{
				StrokeColor: drawing.ColorBlue,
			},
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s daily close with %s", ticker, indicatorName),
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Price",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("visualize: create %s: %w", outPath, err)
	}
	defer func() { _ = f.Close() }()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("visualize: render %s: %w", outPath, err)
	}
	return nil
}
