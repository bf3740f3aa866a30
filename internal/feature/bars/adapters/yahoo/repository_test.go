package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		UserAgent: "test-agent",
		Timeout:   5 * time.Second,
	}
}

func TestNewMarket(t *testing.T) {
	t.Parallel()

	market := NewMarket(testConfig("https://example.com"))

	if market == nil {
		t.Fatal("expected non-nil market")
	}
	if market.cfg.BaseURL != "https://example.com" {
		t.Errorf("expected base URL to be kept, got %q", market.cfg.BaseURL)
	}
}

func TestMarket_GetDailyBars_Success(t *testing.T) {
	t.Parallel()

	// 2024-01-02 and 2024-01-03, UTC midnight
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/AAPL") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("expected interval 1d, got %s", r.URL.Query().Get("interval"))
		}
		if r.URL.Query().Get("period1") == "" || r.URL.Query().Get("period2") == "" {
			t.Error("expected period1/period2 to be set")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1704153600, 1704240000],
					"indicators": {
						"quote": [{
							"open":   [185.5, 186.0],
							"high":   [186.9, 187.2],
							"low":    [183.4, 184.1],
							"close":  [185.6, 184.2],
							"volume": [82000000, 58000000]
						}]
					}
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	market := NewMarket(testConfig(server.URL))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	table, err := market.GetDailyBars(context.Background(), "AAPL", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	for _, col := range []string{"open", "high", "low", "close", "volume"} {
		if !table.HasColumn(col) {
			t.Errorf("expected canonical column %q to be declared", col)
		}
	}

	first := table.Rows[0]
	if first.Time.IsZero() {
		t.Fatal("expected date-typed index on each row")
	}
	if got := first.Time.UTC().Format("2006-01-02"); got != "2024-01-02" {
		t.Errorf("expected first row date 2024-01-02, got %s", got)
	}
	if v, ok := first.Cells["close"].(float64); !ok || v != 185.6 {
		t.Errorf("expected close 185.6, got %v", first.Cells["close"])
	}
}

// Null quote entries (holidays) must surface as missing cells, not zeros.
func TestMarket_GetDailyBars_NullBars(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1704153600, 1704240000],
					"indicators": {
						"quote": [{
							"open":   [185.5, null],
							"high":   [186.9, null],
							"low":    [183.4, null],
							"close":  [185.6, null],
							"volume": [82000000, null]
						}]
					}
				}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	market := NewMarket(testConfig(server.URL))

	table, err := market.GetDailyBars(context.Background(), "AAPL", time.Time{}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1].Cells["close"] != nil {
		t.Errorf("expected null bar to yield a missing cell, got %v", table.Rows[1].Cells["close"])
	}
}

func TestMarket_GetDailyBars_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"not found", http.StatusNotFound},
		{"rate limited", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			market := NewMarket(testConfig(server.URL))

			_, err := market.GetDailyBars(context.Background(), "AAPL", time.Time{}, time.Now())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "yahoo http") {
				t.Errorf("expected HTTP error message, got %v", err)
			}
		})
	}
}

func TestMarket_GetDailyBars_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"chart": {
				"result": null,
				"error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
			}
		}`))
	}))
	defer server.Close()

	market := NewMarket(testConfig(server.URL))

	_, err := market.GetDailyBars(context.Background(), "NOPE", time.Time{}, time.Now())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "delisted") {
		t.Errorf("expected provider description in error, got %v", err)
	}
}

func TestMarket_GetDailyBars_EmptyResult(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"chart": {"result": [], "error": null}}`))
	}))
	defer server.Close()

	market := NewMarket(testConfig(server.URL))

	_, err := market.GetDailyBars(context.Background(), "AAPL", time.Time{}, time.Now())
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
