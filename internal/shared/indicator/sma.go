// Package indicator はクリーニング済みの数値系列に対する純粋なインジケータ関数を提供します。
package indicator

import "github.com/shopspring/decimal"

// SMA は単純移動平均（Simple Moving Average）を計算します。
//
// 返り値は入力と同じ長さで、先頭 window-1 件は未定義（Valid=false）です。
// window <= 0 または window が系列長を超える場合はすべて未定義の系列を返します。
// 副作用も内部状態もありません。
func SMA(values []decimal.Decimal, window int) []decimal.NullDecimal {
	out := make([]decimal.NullDecimal, len(values))
	if window <= 0 || window > len(values) {
		return out
	}

	div := decimal.NewFromInt(int64(window))
	sum := decimal.Zero
	for i, v := range values {
		sum = sum.Add(v)
		if i >= window {
			sum = sum.Sub(values[i-window])
		}
		if i >= window-1 {
			out[i] = decimal.NullDecimal{Decimal: sum.DivRound(div, 16), Valid: true}
		}
	}
	return out
}
