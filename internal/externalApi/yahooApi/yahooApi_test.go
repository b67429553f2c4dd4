package yahooApi

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

func newTestApi(t *testing.T, handler http.HandlerFunc) *YahooApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.YahooApi.Url = srv.URL

	return New(cfg)
}

const chartBody = `{
	"chart": {
		"result": [{
			"indicators": {
				"quote": [{
					"open":  [99.5, null, 101.0],
					"close": [100.0, null, 102.5]
				}]
			},
			"events": {
				"dividends": {
					"1717718400": {"amount": 0.12, "date": 1717718400},
					"1715040000": {"amount": 0.10, "date": 1715040000}
				}
			}
		}]
	}
}`

func TestGetHistoryParsesBarsAndDividends(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/MXRF11.SA", r.URL.Path)
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "div", r.URL.Query().Get("events"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartBody))
	})

	history, err := api.GetHistory(context.Background(), "MXRF11.SA")
	require.NoError(t, err)

	// null close rows are dropped, the last two surviving bars remain
	require.Len(t, history.Bars, 2)
	assert.True(t, history.Bars[0].Open.Equal(decimal.RequireFromString("99.5")))
	assert.True(t, history.Bars[0].Close.Equal(decimal.RequireFromString("100")))
	assert.True(t, history.Bars[1].Close.Equal(decimal.RequireFromString("102.5")))

	require.Len(t, history.Dividends, 2)
	assert.True(t, history.Dividends[0].Date.Before(history.Dividends[1].Date), "dividends must be sorted ascending by date")
	assert.True(t, history.Dividends[0].Amount.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, history.Dividends[1].Amount.Equal(decimal.RequireFromString("0.12")))
}

func TestGetHistoryNoData(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": []}}`))
	})

	_, err := api.GetHistory(context.Background(), "MXRF11.SA")
	require.ErrorIs(t, err, externalApi.ErrNoData)
}

func TestGetHistoryAllClosesNull(t *testing.T) {
	body := `{"chart": {"result": [{"indicators": {"quote": [{"open": [null], "close": [null]}]}}]}}`
	api := newTestApi(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	_, err := api.GetHistory(context.Background(), "MXRF11.SA")
	require.ErrorIs(t, err, externalApi.ErrNoData)
}

func TestGetHistoryErrorStatus(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := api.GetHistory(context.Background(), "MXRF11.SA")
	require.Error(t, err)
}

func TestGetProfile(t *testing.T) {
	body := `{
		"quoteSummary": {
			"result": [{
				"assetProfile": {"sector": "Real Estate"},
				"price": {"longName": "Maxi Renda FII", "shortName": "MAXI RENDA"}
			}]
		}
	}`
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/MXRF11.SA", r.URL.Path)
		assert.Equal(t, "assetProfile,price", r.URL.Query().Get("modules"))
		_, _ = w.Write([]byte(body))
	})

	profile, err := api.GetProfile(context.Background(), "MXRF11.SA")
	require.NoError(t, err)

	assert.Equal(t, "Maxi Renda FII", profile.Name)
	assert.Equal(t, "Real Estate", profile.Sector)
}

func TestGetProfileFallsBackToShortName(t *testing.T) {
	body := `{"quoteSummary": {"result": [{"price": {"shortName": "MAXI RENDA"}}]}}`
	api := newTestApi(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	profile, err := api.GetProfile(context.Background(), "MXRF11.SA")
	require.NoError(t, err)

	assert.Equal(t, "MAXI RENDA", profile.Name)
}

func TestGetProfileNotFound(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"quoteSummary": {"result": []}}`))
	})

	_, err := api.GetProfile(context.Background(), "MXRF11.SA")
	require.ErrorIs(t, err, externalApi.ErrNotFound)
}
