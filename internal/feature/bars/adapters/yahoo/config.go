// Package yahoo はYahoo Financeチャート APIから日足OHLCVを取得するクライアントを提供します。
package yahoo

import (
	"os"
	"time"
)

// DefaultBaseURL is the public Yahoo Finance chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Config はYahoo Financeクライアントの設定を保持します。
type Config struct {
	BaseURL   string        // APIのベースURL（テストではhttptestサーバーに差し替える）
	UserAgent string        // Yahooはデフォルトの Go UA を拒否することがある
	Timeout   time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からYahoo Financeの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("YAHOO_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL:   base,
		UserAgent: "Mozilla/5.0",
		Timeout:   30 * time.Second,
	}
}
