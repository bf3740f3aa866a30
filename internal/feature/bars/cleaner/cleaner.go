// Package cleaner はプロバイダから取得した生のOHLCVテーブルを検証・正規化し、
// 保存可能なカノニカルな形に変換します。
package cleaner

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"market_backend/internal/feature/bars/domain/entity"
)

// RequiredColumns はカノニカルなOHLCV列の集合です（小文字・大小区別あり）。
var RequiredColumns = []string{"open", "high", "low", "close", "volume"}

var (
	// ErrMissingColumns is returned when the raw table does not declare all
	// five OHLCV columns. The input is unusable; nothing is emitted.
	ErrMissingColumns = errors.New("cleaner: missing required columns")
	// ErrNoDateKey is returned when no row of the table yields a resolvable
	// calendar date (no date index, no date column, no date-like raw index).
	ErrNoDateKey = errors.New("cleaner: no resolvable date key")
	// ErrNoValidRows is returned when the table was structurally valid but
	// every row was dropped by the completeness filter. Distinct from the
	// two errors above, though callers treat all three as "nothing to store".
	ErrNoValidRows = errors.New("cleaner: no valid rows after filtering")
)

// Report は1回のクリーニングで観測された件数をまとめたものです。
// 異常値（高値<安値など）は報告のみで、出力からは除外しません。
type Report struct {
	RowsIn      int // rows received
	RowsDropped int // rows removed by the completeness filter
	Duplicates  int // rows superseded by a later row with the same date
	RowsOut     int // rows emitted

	HighBelowLow    int  // rows where high < low
	PriceOutOfRange int  // rows where open or close lies outside [low, high]
	ZeroVolume      int  // rows with zero volume
	NegativeValues  bool // any negative OHLCV value seen
}

// Anomalous reports whether any advisory anomaly was observed.
func (r Report) Anomalous() bool {
	return r.HighBelowLow > 0 || r.PriceOutOfRange > 0 || r.ZeroVolume > 0 || r.NegativeValues
}

// Clean は生テーブルを検証し、カノニカルなBarのスライスへ変換します。
//
// 各ステップは契約です:
//  1. スキーマ検査（5列すべて必須）
//  2. 行ごとの日付正規化（日付インデックス → dateセル → 生インデックスの順）
//  3. 数値化（パース不能セルは「欠損」扱い、エラーにはしない）
//  4. 完全性フィルタ（欠損を含む行は丸ごと除外し、件数を報告）
//  5. 空チェック（残り0行なら ErrNoValidRows）
//  6. 異常値検出（報告のみ。行は除外しないのが意図的なポリシー）
//  7. ticker付与と日付の切り詰め
//
// 同一日付の行が複数ある場合は後勝ちで1行に解決されます。
func Clean(raw RawTable, ticker string) ([]entity.Bar, Report, error) {
	rep := Report{RowsIn: len(raw.Rows)}

	for _, col := range RequiredColumns {
		if !raw.HasColumn(col) {
			return nil, rep, fmt.Errorf("%w: %s (ticker=%s)", ErrMissingColumns, col, ticker)
		}
	}
	if raw.Empty() {
		return nil, rep, fmt.Errorf("%w (ticker=%s)", ErrNoValidRows, ticker)
	}

	dateResolved := false
	byDate := make(map[time.Time]int, len(raw.Rows)) // date -> index in bars (last write wins)
	bars := make([]entity.Bar, 0, len(raw.Rows))

	for _, row := range raw.Rows {
		day, ok := resolveDate(row)
		if !ok {
			rep.RowsDropped++
			continue
		}
		dateResolved = true

		open, okO := toDecimal(row.Cells["open"])
		high, okH := toDecimal(row.Cells["high"])
		low, okL := toDecimal(row.Cells["low"])
		cls, okC := toDecimal(row.Cells["close"])
		vol, okV := toDecimal(row.Cells["volume"])
		if !okO || !okH || !okL || !okC || !okV {
			// 部分的なレコードは作らない
			rep.RowsDropped++
			continue
		}

		bar := entity.Bar{
			Ticker: ticker,
			Date:   day,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  cls,
			Volume: vol,
		}
		if i, dup := byDate[day]; dup {
			bars[i] = bar
			rep.Duplicates++
			continue
		}
		byDate[day] = len(bars)
		bars = append(bars, bar)
	}

	if !dateResolved {
		return nil, rep, fmt.Errorf("%w (ticker=%s)", ErrNoDateKey, ticker)
	}
	if len(bars) == 0 {
		return nil, rep, fmt.Errorf("%w (ticker=%s)", ErrNoValidRows, ticker)
	}

	inspect(bars, &rep)
	rep.RowsOut = len(bars)

	if rep.RowsDropped > 0 {
		slog.Info("cleaner dropped incomplete rows", "ticker", ticker, "dropped", rep.RowsDropped)
	}
	if rep.Anomalous() {
		// 異常値は保存をブロックしない。監視向けの警告のみ。
		slog.Warn("cleaner found anomalous rows, keeping them",
			"ticker", ticker,
			"high_below_low", rep.HighBelowLow,
			"price_out_of_range", rep.PriceOutOfRange,
			"zero_volume", rep.ZeroVolume,
			"negative_values", rep.NegativeValues,
		)
	}
	return bars, rep, nil
}

// inspect は異常値の件数を数えます。行の内容には一切手を加えません。
func inspect(bars []entity.Bar, rep *Report) {
	for _, b := range bars {
		if b.High.LessThan(b.Low) {
			rep.HighBelowLow++
		}
		if outOfRange(b.Close, b.Low, b.High) || outOfRange(b.Open, b.Low, b.High) {
			rep.PriceOutOfRange++
		}
		if b.Volume.IsZero() {
			rep.ZeroVolume++
		}
		if b.Open.IsNegative() || b.High.IsNegative() || b.Low.IsNegative() ||
			b.Close.IsNegative() || b.Volume.IsNegative() {
			rep.NegativeValues = true
		}
	}
}

func outOfRange(v, low, high decimal.Decimal) bool {
	return v.LessThan(low) || v.GreaterThan(high)
}

// dateLayouts は日付セル・インデックス文字列として受理する形式です。
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// resolveDate は1行分の日付キーを解決します。
func resolveDate(row RawRow) (time.Time, bool) {
	if !row.Time.IsZero() {
		return entity.Day(row.Time), true
	}
	if v, ok := row.Cells["date"]; ok {
		if d, ok := coerceDate(v); ok {
			return d, true
		}
	}
	if row.Index != "" {
		if d, ok := parseDate(row.Index); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

func coerceDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return entity.Day(d), true
	case string:
		return parseDate(d)
	default:
		return time.Time{}, false
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.Day(t), true
		}
	}
	return time.Time{}, false
}

// toDecimal は生セルを正確な10進数へ変換します。変換できないセルは
// 欠損（ゼロではない）として扱い、完全性フィルタに委ねます。
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return n, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(n), true
	case float32:
		return toDecimal(float64(n))
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Decimal{}, false
	}
}
