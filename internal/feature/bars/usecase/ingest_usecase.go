package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"market_backend/internal/feature/bars/cleaner"
	"market_backend/internal/shared/ratelimiter"
)

// MarketRepository は外部プロバイダから生のOHLCVテーブルを取得する
// リポジトリのインターフェイスです。外部APIの実装を抽象化します。
type MarketRepository interface {
	// GetDailyBars は [start, end] の日足データを生テーブルとして返します。
	// プロバイダ側の失敗は握りつぶさず、エラーとして返します。
	GetDailyBars(ctx context.Context, ticker string, start, end time.Time) (cleaner.RawTable, error)
}

// Summary は1回の取り込み実行の結果を集計したものです。
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
}

// IngestUsecase は外部APIからデータを取得・クリーニングし、
// データベースへ冪等に永続化するユースケースを定義します。
type IngestUsecase struct {
	market      MarketRepository
	bars        BarRepository
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, bars BarRepository, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, bars: bars, rateLimiter: rateLimiter}
}

// ingestOne は1ティッカー分の fetch→clean→store を実行します。
// どの段階の失敗もエラーとして呼び出し元へ返します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, ticker string, start, end time.Time) error {
	raw, err := iu.market.GetDailyBars(ctx, ticker, start, end)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", ticker, err)
	}

	bars, rep, err := cleaner.Clean(raw, ticker)
	if err != nil {
		return fmt.Errorf("clean %s: %w", ticker, err)
	}
	slog.Info("cleaned bars",
		"ticker", ticker, "in", rep.RowsIn, "out", rep.RowsOut, "dropped", rep.RowsDropped)

	if err := iu.bars.UpsertBatch(ctx, bars); err != nil {
		return fmt.Errorf("store %s: %w", ticker, err)
	}
	return nil
}

// IngestAll は全ティッカーを逐次処理します。プロバイダのレートリミットを守り、
// 失敗の帰属を明確にするため、並列化はしません。
// 1ティッカーの失敗は記録して次へ進みます（isolate-and-continue）。
func (iu *IngestUsecase) IngestAll(ctx context.Context, tickers []string, start, end time.Time) Summary {
	var sum Summary
	for _, ticker := range tickers {
		sum.Processed++
		iu.rateLimiter.WaitIfNeeded()

		if err := iu.ingestOne(ctx, ticker, start, end); err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			slog.Error("failed to ingest ticker", "ticker", ticker, "error", err)
			sum.Failed++
			continue
		}
		sum.Succeeded++
	}
	return sum
}
