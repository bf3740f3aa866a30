package dto

// BarResponse は日足バーのレスポンスDTOです。
// 価格と出来高は精度を落とさないよう10進文字列で返します。
type BarResponse struct {
	Ticker string `json:"ticker"` // ティッカーシンボル
	Date   string `json:"date"`   // 取引日 (YYYY-MM-DD)
	Open   string `json:"open"`   // 始値
	High   string `json:"high"`   // 高値
	Low    string `json:"low"`    // 安値
	Close  string `json:"close"`  // 終値
	Volume string `json:"volume"` // 出来高
}

// ErrorResponse はエラーレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
