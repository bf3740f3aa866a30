// Package adapters はbarsフィーチャーの永続化実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"market_backend/internal/feature/bars/domain/entity"
	"market_backend/internal/feature/bars/usecase"
)

type barPostgres struct {
	db *gorm.DB
}

var _ usecase.BarRepository = (*barPostgres)(nil)

// NewBarRepository は指定されたDBハンドルでバーのリポジトリを生成します。
func NewBarRepository(db *gorm.DB) *barPostgres {
	return &barPostgres{db: db}
}

// BarModel is the storage schema for one daily OHLCV row. The composite
// primary key (ticker, date) enforces at most one row per ticker per day;
// the secondary index mirrors the original layout for range scans.
// Price columns are nullable numerics: absence means unknown, never zero.
type BarModel struct {
	Ticker string    `gorm:"primaryKey;size:15;not null;index:idx_ohlcv_bars_ticker_date,priority:1"`
	Date   time.Time `gorm:"primaryKey;type:date;not null;index:idx_ohlcv_bars_ticker_date,priority:2"`

	Open   decimal.NullDecimal `gorm:"type:numeric(19,8)"`
	High   decimal.NullDecimal `gorm:"type:numeric(19,8)"`
	Low    decimal.NullDecimal `gorm:"type:numeric(19,8)"`
	Close  decimal.NullDecimal `gorm:"type:numeric(19,8)"`
	Volume decimal.NullDecimal `gorm:"type:numeric(25,4)"`
}

func (BarModel) TableName() string {
	return "ohlcv_bars"
}

func toModel(e entity.Bar) BarModel {
	return BarModel{
		Ticker: e.Ticker,
		Date:   entity.Day(e.Date),
		Open:   decimal.NullDecimal{Decimal: e.Open, Valid: true},
		High:   decimal.NullDecimal{Decimal: e.High, Valid: true},
		Low:    decimal.NullDecimal{Decimal: e.Low, Valid: true},
		Close:  decimal.NullDecimal{Decimal: e.Close, Valid: true},
		Volume: decimal.NullDecimal{Decimal: e.Volume, Valid: true},
	}
}

func toEntity(m BarModel) entity.Bar {
	return entity.Bar{
		Ticker: m.Ticker,
		Date:   entity.Day(m.Date),
		Open:   m.Open.Decimal,
		High:   m.High.Decimal,
		Low:    m.Low.Decimal,
		Close:  m.Close.Decimal,
		Volume: m.Volume.Decimal,
	}
}

// EnsureSchema はテーブル・主キー・インデックスを冪等に作成します。
// プロセス起動のたびに呼んで問題ありません。
func (r *barPostgres) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&BarModel{}); err != nil {
		return fmt.Errorf("ensure schema for %s: %w", BarModel{}.TableName(), err)
	}
	return nil
}

// UpsertBatch は1トランザクションでバーを挿入または更新します。
// 既存キーはOHLCVフィールドのみ上書きされ、重複行は決して作られません。
// 0件の呼び出しはno-opです。バッチは全件成功か全件ロールバックです。
func (r *barPostgres) UpsertBatch(ctx context.Context, bars []entity.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]BarModel, 0, len(bars))
	for _, e := range bars {
		ms = append(ms, toModel(e))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
		}).Create(&ms).Error
	})
	if err != nil {
		return fmt.Errorf("upsert %d bars for %s: %w", len(bars), bars[0].Ticker, err)
	}
	return nil
}

// FindRange は閉区間 [start, end] のバーを日付昇順で返します。
// ゼロ値の境界は無制限を意味します。該当なしは空スライスです。
func (r *barPostgres) FindRange(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error) {
	var rows []BarModel
	q := r.db.WithContext(ctx).Where("ticker = ?", ticker)
	if !start.IsZero() {
		q = q.Where("date >= ?", entity.Day(start))
	}
	if !end.IsZero() {
		q = q.Where("date <= ?", entity.Day(end))
	}
	if err := q.Order("date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find bars for %s: %w", ticker, err)
	}
	out := make([]entity.Bar, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
