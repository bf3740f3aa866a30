package yahoo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"market_backend/internal/feature/bars/cleaner"
	"market_backend/internal/feature/bars/usecase"
)

// Market はYahoo Financeのチャートエンドポイントから日足OHLCVを取得する
// MarketRepository実装です。列名をカノニカルな小文字セットに正規化し、
// タイムゾーンのない日付インデックス付きの生テーブルを返します。
type Market struct {
	cfg    Config
	client *resty.Client
}

// MarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket は指定された設定でMarketの新しいインスタンスを生成します。
func NewMarket(cfg Config) *Market {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent)
	return &Market{cfg: cfg, client: client}
}

// chartResponse is the relevant subset of the Yahoo v8 chart payload.
// Null entries in the quote arrays mark days without data (holidays etc.);
// they are surfaced as missing cells so the cleaner can drop them.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetDailyBars は [start, end] の日足データを生テーブルとして返します。
// プロバイダ側の失敗（ネットワーク、無効なティッカー、レートリミット）は
// エラーとして返し、呼び出し元のオーケストレーターが失敗種別を判断します。
func (m *Market) GetDailyBars(ctx context.Context, ticker string, start, end time.Time) (cleaner.RawTable, error) {
	var body chartResponse
	// period2 は排他的なので1日足して end を含める
	res, err := m.client.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"period1":  strconv.FormatInt(start.UTC().Unix(), 10),
			"period2":  strconv.FormatInt(end.UTC().AddDate(0, 0, 1).Unix(), 10),
		}).
		SetResult(&body).
		Get("/v8/finance/chart/{ticker}")
	if err != nil {
		return cleaner.RawTable{}, fmt.Errorf("yahoo fetch %s: %w", ticker, err)
	}
	if res.IsError() {
		return cleaner.RawTable{}, fmt.Errorf("yahoo http %d for %s", res.StatusCode(), ticker)
	}
	if body.Chart.Error != nil {
		return cleaner.RawTable{}, fmt.Errorf("yahoo api error for %s: %s", ticker, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return cleaner.RawTable{}, fmt.Errorf("yahoo: no data returned for %s", ticker)
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	table := cleaner.RawTable{
		Columns: []string{"open", "high", "low", "close", "volume"},
		Rows:    make([]cleaner.RawRow, 0, len(result.Timestamp)),
	}
	for i, ts := range result.Timestamp {
		cells := map[string]any{
			"open":   cell(quote.Open, i),
			"high":   cell(quote.High, i),
			"low":    cell(quote.Low, i),
			"close":  cell(quote.Close, i),
			"volume": cell(quote.Volume, i),
		}
		table.Rows = append(table.Rows, cleaner.RawRow{
			// 取引所のローカル時刻情報は落とし、UTCの暦日だけを残す
			Time:  time.Unix(ts, 0).UTC(),
			Cells: cells,
		})
	}
	return table, nil
}

// cell は quote 配列の i 番目を返します。範囲外・null は欠損（nil）です。
func cell(vals []*float64, i int) any {
	if i >= len(vals) || vals[i] == nil {
		return nil
	}
	return *vals[i]
}
