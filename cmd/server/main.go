package main

import (
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/router"
	"market_backend/internal/config"
	"market_backend/internal/feature/bars/adapters"
	barshandler "market_backend/internal/feature/bars/transport/handler"
	"market_backend/internal/feature/bars/usecase"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/db"
	platformredis "market_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	handle, err := db.Open(cfg.DatabaseURI)
	if err != nil {
		log.Fatal(err)
	}

	// Redis（任意。落ちていてもキャッシュなしで動く）
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := platformredis.NewClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("Redis unavailable, running without cache", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	barRepo := adapters.NewBarRepository(handle)

	// Redisキャッシュでラップ（rdbがnilなら素通し）
	cachedBarRepo := cache.NewCachingBarRepository(rdb, 0, barRepo, "bars")

	// Usecase
	barsUC := usecase.NewBarsUsecase(cachedBarRepo)

	// Handler
	barsH := barshandler.NewBarsHandler(barsUC)

	// ルータ生成
	r := router.NewRouter(barsH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
