// Package handler はフィーチャーに属さないプラットフォームエンドポイントを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health は死活監視用の /healthz を処理します。
// 認証なしで、メソッドに応じた最小のレスポンスを返します。
func Health(c *gin.Context) {
	// 監視側に古い結果を使わせない
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
