// Package config は起動時に一度だけ読み込まれるアプリケーション設定を提供します。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// デフォルト値。環境変数で上書きできます。
const (
	DefaultSMAWindow     = 20
	DefaultFetchDays     = 10
	DefaultPlotOutputDir = "output_plots"
	DefaultRateLimit     = 8 // 1分あたりのプロバイダ呼び出し上限
)

// DefaultTickers は取り込み対象のデフォルト銘柄リストです。
var DefaultTickers = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "SPY", "BTC-USD"}

// Config はプロセス全体の設定を保持します。起動時に一度構築し、
// 必要なコンポーネントへ明示的に渡します。
type Config struct {
	DatabaseURI   string        // PostgreSQL接続文字列（必須）
	Tickers       []string      // 取り込み対象ティッカー
	SMAWindow     int           // SMAのデフォルトウィンドウ
	FetchDays     int           // 取り込み時に遡る日数
	PlotOutputDir string        // チャート画像の出力先
	RateLimit     int           // RateInterval あたりのプロバイダ呼び出し上限
	RateInterval  time.Duration // レートリミットのリセット間隔

	RedisAddr     string // 空ならキャッシュなしで動作
	RedisPassword string
}

// Load は.envと環境変数から設定を読み込みます。
// DATABASE_URI が無い場合はエラーです。
func Load() (Config, error) {
	// .envはあれば読む。無くてもシステム環境変数で動く。
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := Config{
		DatabaseURI:   os.Getenv("DATABASE_URI"),
		Tickers:       DefaultTickers,
		SMAWindow:     DefaultSMAWindow,
		FetchDays:     DefaultFetchDays,
		PlotOutputDir: DefaultPlotOutputDir,
		RateLimit:     DefaultRateLimit,
		RateInterval:  time.Minute,
		RedisAddr:     redisAddr(),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.DatabaseURI == "" {
		return Config{}, fmt.Errorf("config: DATABASE_URI not set; create .env or export it")
	}

	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Tickers = splitTickers(v)
	}
	if v := os.Getenv("SMA_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: invalid SMA_WINDOW %q", v)
		}
		cfg.SMAWindow = n
	}
	if v := os.Getenv("FETCH_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: invalid FETCH_DAYS %q", v)
		}
		cfg.FetchDays = n
	}
	if v := os.Getenv("PLOT_OUTPUT_DIR"); v != "" {
		cfg.PlotOutputDir = v
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: invalid RATE_LIMIT %q", v)
		}
		cfg.RateLimit = n
	}

	return cfg, nil
}

func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}

func splitTickers(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
