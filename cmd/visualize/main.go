// cmd/visualize は保存済みの日足バーからSMA付きチャートPNGを生成するCLIです。
//
// 使い方:
//
//	visualize [-days 180] [-window 20] [-start YYYY-MM-DD] [-end YYYY-MM-DD] TICKER
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"market_backend/internal/config"
	"market_backend/internal/feature/bars/adapters"
	"market_backend/internal/feature/bars/usecase"
	"market_backend/internal/feature/visualize"
	"market_backend/internal/platform/db"
	"market_backend/internal/shared/indicator"
)

const dateLayout = "2006-01-02"

func main() {
	days := flag.Int("days", 180, "number of days to look back when -start is not given")
	window := flag.Int("window", 0, "SMA window (defaults to SMA_WINDOW)")
	startStr := flag.String("start", "", "range start (YYYY-MM-DD)")
	endStr := flag.String("end", "", "range end (YYYY-MM-DD)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: visualize [flags] TICKER")
		flag.PrintDefaults()
		os.Exit(2)
	}
	ticker := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *window <= 0 {
		*window = cfg.SMAWindow
	}

	start, end, err := resolveRange(*startStr, *endStr, *days)
	if err != nil {
		log.Fatal(err)
	}

	handle, err := db.Open(cfg.DatabaseURI)
	if err != nil {
		log.Fatal(err)
	}

	barRepo := adapters.NewBarRepository(handle)
	barsUC := usecase.NewBarsUsecase(barRepo)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	bars, err := barsUC.GetBars(ctx, ticker, start, end)
	if err != nil {
		log.Fatal(err)
	}
	if len(bars) == 0 {
		log.Fatalf("no stored bars for %s in %s..%s; run ingest first",
			ticker, start.Format(dateLayout), end.Format(dateLayout))
	}

	closes := make([]decimal.Decimal, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	indicatorName := fmt.Sprintf("SMA_%d", *window)
	sma := indicator.SMA(closes, *window)

	if err := os.MkdirAll(cfg.PlotOutputDir, 0o755); err != nil {
		log.Fatal(err)
	}
	outPath := filepath.Join(cfg.PlotOutputDir, fmt.Sprintf("%s_%s_%s_to_%s.png",
		bars[0].Ticker,
		indicatorName,
		bars[0].Date.Format(dateLayout),
		bars[len(bars)-1].Date.Format(dateLayout),
	))

	if err := visualize.RenderChart(bars, sma, bars[0].Ticker, indicatorName, outPath); err != nil {
		log.Fatal(err)
	}
	if err := visualize.PrintSummary(os.Stdout, bars, sma, bars[0].Ticker, indicatorName); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("chart written to %s\n", outPath)
}

// resolveRange はフラグから照会範囲を組み立てます。
// -start 省略時は -end（省略時は今日）から days 日遡ります。
func resolveRange(startStr, endStr string, days int) (time.Time, time.Time, error) {
	end := time.Now().UTC()
	if endStr != "" {
		var err error
		end, err = time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -end: %w", err)
		}
	}

	var start time.Time
	if startStr != "" {
		var err error
		start, err = time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -start: %w", err)
		}
	} else {
		start = end.AddDate(0, 0, -days)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("range start %s is after end %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return start, end, nil
}
