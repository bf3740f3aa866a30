// Package handler はbarsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"market_backend/internal/feature/bars/domain/entity"
	"market_backend/internal/feature/bars/transport/http/dto"
	"market_backend/internal/feature/bars/usecase"
)

// dateLayout はクエリパラメータの日付形式です。
const dateLayout = "2006-01-02"

// BarsUsecase は日足バー参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type BarsUsecase interface {
	GetBars(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error)
}

// BarsHandler は日足バーのHTTPリクエストを処理します。
type BarsHandler struct {
	uc BarsUsecase
}

// NewBarsHandler は指定されたusecaseでBarsHandlerの新しいインスタンスを生成します。
func NewBarsHandler(uc BarsUsecase) *BarsHandler {
	return &BarsHandler{uc: uc}
}

// GetBarsHandler はティッカーと日付範囲を受け取り、日足バーをJSONで返します。
//
// エンドポイント例:
// GET /bars/:ticker?start=2024-01-01&end=2024-06-30
// start/end は省略可能で、省略された側は無制限として扱います。
func (h *BarsHandler) GetBarsHandler(c *gin.Context) {
	ticker := c.Param("ticker")

	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid end date, expected YYYY-MM-DD"})
		return
	}

	bars, err := h.uc.GetBars(c.Request.Context(), ticker, start, end)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyTicker) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}

	// データをフォーマット
	out := make([]dto.BarResponse, 0, len(bars))
	for _, b := range bars {
		out = append(out, dto.BarResponse{
			Ticker: b.Ticker,
			Date:   b.Date.UTC().Format(dateLayout),
			Open:   b.Open.String(),
			High:   b.High.String(),
			Low:    b.Low.String(),
			Close:  b.Close.String(),
			Volume: b.Volume.String(),
		})
	}

	c.JSON(http.StatusOK, out)
}

// parseDate は空文字列をゼロ値（無制限）として解釈します。
func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, v)
}
