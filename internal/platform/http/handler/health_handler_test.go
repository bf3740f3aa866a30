package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"market_backend/internal/platform/http/handler"
)

// TestHealth は /healthz のメソッド別レスポンスとキャッシュ抑止ヘッダをテストします。
func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/healthz", handler.Health)
	router.HEAD("/healthz", handler.Health)
	router.OPTIONS("/healthz", handler.Health)

	tests := []struct {
		method         string
		expectedStatus int
		expectedBody   string // 空文字列はボディなしを期待
	}{
		{http.MethodGet, http.StatusOK, `{"status":"ok"}`},
		{http.MethodHead, http.StatusOK, ""},
		{http.MethodOptions, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			// どのメソッドでもキャッシュさせない
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.expectedBody == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
