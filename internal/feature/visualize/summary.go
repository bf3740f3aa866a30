package visualize

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"market_backend/internal/feature/bars/domain/entity"
)

// PrintSummary は最新バーの概要を書き出します。
// バーは日付昇順で、sma はバーと整列済みであることが前提です。
func PrintSummary(w io.Writer, bars []entity.Bar, sma []decimal.NullDecimal, ticker, indicatorName string) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	last := bars[len(bars)-1]

	lastIndicator := "N/A"
	if len(sma) == len(bars) && sma[len(sma)-1].Valid {
		lastIndicator = sma[len(sma)-1].Decimal.StringFixed(2)
	}

	fmt.Fprintf(w, "--- Summary for %s (as of %s) ---\n", ticker, last.Date.Format("2006-01-02"))
	fmt.Fprintf(w, "  Last Close:  %s\n", last.Close.StringFixed(2))
	fmt.Fprintf(w, "  Last Volume: %s\n", last.Volume.StringFixed(0))
	fmt.Fprintf(w, "  Last %s: %s\n", indicatorName, lastIndicator)
	fmt.Fprintln(w, "------------------------------------")
	return nil
}
