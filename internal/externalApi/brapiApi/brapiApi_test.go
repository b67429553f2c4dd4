package brapiApi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/internal/externalApi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApi(t *testing.T, token string, handler http.HandlerFunc) *BrapiApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.BrapiApi.Url = srv.URL
	cfg.API.BrapiApi.Token = token

	return New(cfg)
}

func TestGetQuote(t *testing.T) {
	body := `{
		"results": [{
			"symbol": "VALE3",
			"longName": "Vale S.A.",
			"regularMarketPrice": 68.9,
			"regularMarketOpen": 68.0,
			"regularMarketChangePercent": 1.32
		}]
	}`
	api := newTestApi(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quote/VALE3", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		_, _ = w.Write([]byte(body))
	})

	quote, err := api.GetQuote(context.Background(), "VALE3")
	require.NoError(t, err)

	assert.Equal(t, "VALE3", quote.Ticker)
	assert.Equal(t, "Vale S.A.", quote.Name)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("68.9")))
	assert.True(t, quote.Open.Equal(decimal.RequireFromString("68")))
	assert.True(t, quote.DayChangePercent.Equal(decimal.RequireFromString("1.32")))
}

func TestGetQuoteOmitsEmptyToken(t *testing.T) {
	api := newTestApi(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("token"))
		_, _ = w.Write([]byte(`{"results": [{"symbol": "VALE3", "regularMarketPrice": 68.9}]}`))
	})

	_, err := api.GetQuote(context.Background(), "VALE3")
	require.NoError(t, err)
}

func TestGetQuoteNoResults(t *testing.T) {
	api := newTestApi(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [], "error": true, "message": "not found"}`))
	})

	_, err := api.GetQuote(context.Background(), "VALE3")
	require.ErrorIs(t, err, externalApi.ErrNoData)
}

func TestGetQuoteNilPrice(t *testing.T) {
	api := newTestApi(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"symbol": "VALE3"}]}`))
	})

	_, err := api.GetQuote(context.Background(), "VALE3")
	require.ErrorIs(t, err, externalApi.ErrNoData)
}

func TestGetQuoteErrorStatus(t *testing.T) {
	api := newTestApi(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.GetQuote(context.Background(), "VALE3")
	require.Error(t, err)
}
