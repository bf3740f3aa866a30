// Package usecase はOHLCVバーの取り込みと参照のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"market_backend/internal/feature/bars/domain/entity"
)

// ErrEmptyTicker is returned by the read path when no ticker was given.
var ErrEmptyTicker = errors.New("ticker must not be empty")

// BarRepository はOHLCVバーの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type BarRepository interface {
	// UpsertBatch は1トランザクションでバーを挿入または更新します。
	// 既存の (ticker, date) キーはOHLCVフィールドが上書きされます。
	UpsertBatch(ctx context.Context, bars []entity.Bar) error
	// FindRange は閉区間 [start, end] のバーを日付昇順で返します。
	// ゼロ値のstart/endはその側が無制限であることを意味します。
	FindRange(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error)
}

// barsUsecase はバー参照のユースケースを定義します。
type barsUsecase struct {
	bars BarRepository
}

// NewBarsUsecase はbarsUsecaseの新しいインスタンスを生成します。
func NewBarsUsecase(bars BarRepository) *barsUsecase {
	return &barsUsecase{bars: bars}
}

// GetBars は指定されたティッカーと日付範囲のバーを日付昇順で取得します。
// 該当なしの場合は空スライスを返します（エラーではない）。
func (bu *barsUsecase) GetBars(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, ErrEmptyTicker
	}
	return bu.bars.FindRange(ctx, ticker, start, end)
}
