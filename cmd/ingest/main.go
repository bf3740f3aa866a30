package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"market_backend/internal/config"
	"market_backend/internal/feature/bars/adapters"
	"market_backend/internal/feature/bars/adapters/yahoo"
	"market_backend/internal/feature/bars/usecase"
	"market_backend/internal/platform/db"
	"market_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	handle, err := db.Open(cfg.DatabaseURI)
	if err != nil {
		log.Fatal(err)
	}

	barRepo := adapters.NewBarRepository(handle)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// スキーマが無ければ取り込みは続行できない
	if err := barRepo.EnsureSchema(ctx); err != nil {
		log.Fatal("failed to ensure schema:", err)
	}

	marketRepo := yahoo.NewMarket(yahoo.LoadConfig())
	limiter := ratelimiter.New(cfg.RateLimit, cfg.RateInterval)
	uc := usecase.NewIngestUsecase(marketRepo, barRepo, limiter)

	// 直近 FetchDays 日分を取り込む
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -cfg.FetchDays)

	sum := uc.IngestAll(ctx, cfg.Tickers, start, end)

	// 個別銘柄の失敗は取り込み全体の失敗ではないので終了コードは0のまま
	slog.Info("ingest finished",
		"processed", sum.Processed, "succeeded", sum.Succeeded, "failed", sum.Failed)
}
