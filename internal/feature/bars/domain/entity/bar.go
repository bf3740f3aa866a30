// Package entity defines the domain models for the bars feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar represents one day of OHLCV (Open, High, Low, Close, Volume) data
// for a single ticker. Prices are exact decimals; float64 is avoided so
// that stored values round-trip without precision drift.
//
// The pair (Ticker, Date) is the identity of a bar: storage holds at most
// one row per ticker per calendar day.
type Bar struct {
	Ticker string          // Short uppercase instrument identifier (e.g., "AAPL", "BTC-USD")
	Date   time.Time       // Calendar date, UTC midnight, no time-of-day component
	Open   decimal.Decimal // Opening price
	High   decimal.Decimal // Highest price of the day
	Low    decimal.Decimal // Lowest price of the day
	Close  decimal.Decimal // Closing price
	Volume decimal.Decimal // Trading volume, non-negative
}

// Day は時刻情報を落としてUTCの0時に切り詰めた日付を返します。
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
