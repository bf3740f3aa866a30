// Package router はHTTPルーティングを構成します。
package router

import (
	"github.com/gin-gonic/gin"

	barshandler "market_backend/internal/feature/bars/transport/handler"
	"market_backend/internal/platform/http/handler"
)

// NewRouter は全エンドポイントを登録したginエンジンを返します。
func NewRouter(bars *barshandler.BarsHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	// 保存済み日足バーの参照
	r.GET("/bars/:ticker", bars.GetBarsHandler)

	return r
}
