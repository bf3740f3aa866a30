package indicator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(vals ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(vals))
	for _, v := range vals {
		out = append(out, decimal.NewFromInt(v))
	}
	return out
}

func TestSMA_TrailingMean(t *testing.T) {
	t.Parallel()

	in := series(100, 102, 104, 106, 108)
	got := SMA(in, 3)

	require.Len(t, got, len(in), "output length must equal input length")

	// 先頭 window-1 件は未定義
	assert.False(t, got[0].Valid)
	assert.False(t, got[1].Valid)

	// out[i] = mean(in[i-2 .. i])
	require.True(t, got[2].Valid)
	assert.True(t, got[2].Decimal.Equal(decimal.NewFromInt(102)), "got %s", got[2].Decimal)
	require.True(t, got[3].Valid)
	assert.True(t, got[3].Decimal.Equal(decimal.NewFromInt(104)), "got %s", got[3].Decimal)
	require.True(t, got[4].Valid)
	assert.True(t, got[4].Decimal.Equal(decimal.NewFromInt(106)), "got %s", got[4].Decimal)
}

func TestSMA_ExactDecimalMean(t *testing.T) {
	t.Parallel()

	in := []decimal.Decimal{
		decimal.RequireFromString("0.1"),
		decimal.RequireFromString("0.2"),
	}
	got := SMA(in, 2)

	require.True(t, got[1].Valid)
	// 浮動小数点なら 0.15000000000000002 になりがちな値も正確に出る
	assert.True(t, got[1].Decimal.Equal(decimal.RequireFromString("0.15")), "got %s", got[1].Decimal)
}

func TestSMA_NonTerminatingDivision(t *testing.T) {
	t.Parallel()

	// 1/3 は循環小数。16桁で丸めた値に確定すること。
	in := series(0, 0, 1)
	got := SMA(in, 3)

	require.True(t, got[2].Valid)
	assert.True(t, got[2].Decimal.Equal(decimal.RequireFromString("0.3333333333333333")), "got %s", got[2].Decimal)
}

func TestSMA_WindowOne(t *testing.T) {
	t.Parallel()

	in := series(5, 7, 9)
	got := SMA(in, 1)

	for i := range in {
		require.True(t, got[i].Valid)
		assert.True(t, got[i].Decimal.Equal(in[i]))
	}
}

func TestSMA_InvalidWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		window int
	}{
		{"zero window", 0},
		{"negative window", -3},
		{"window exceeds length", 4},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SMA(series(1, 2, 3), tt.window)
			require.Len(t, got, 3)
			for i, v := range got {
				assert.False(t, v.Valid, "entry %d should be undefined", i)
			}
		})
	}
}

func TestSMA_EmptyInput(t *testing.T) {
	t.Parallel()

	got := SMA(nil, 3)
	assert.Empty(t, got)
}
