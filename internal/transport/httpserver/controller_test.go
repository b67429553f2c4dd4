package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	snapshot   model.Snapshot
	summary    model.Summary
	collectErr error
	reportErr  error
}

func (s *stubService) Collect(context.Context) (model.Snapshot, error) {
	if s.collectErr != nil {
		return nil, s.collectErr
	}
	return s.snapshot, nil
}

func (s *stubService) Snapshot(_ context.Context, filter model.Category) (model.Snapshot, model.Summary, error) {
	filtered := make(model.Snapshot, 0, len(s.snapshot))
	for _, quote := range s.snapshot {
		if filter == model.CategoryAll || quote.Category == filter {
			filtered = append(filtered, quote)
		}
	}
	return filtered, s.summary, nil
}

func (s *stubService) Report(context.Context) ([]byte, string, error) {
	if s.reportErr != nil {
		return nil, "", s.reportErr
	}
	return []byte("spreadsheet-bytes"), ".xlsx", nil
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		{
			Symbol:           "MXRF11",
			Name:             "Maxi Renda FII",
			Category:         model.CategoryFund,
			Price:            decimal.RequireFromString("10.25"),
			DividendYield:    decimal.RequireFromString("12.5"),
			LastDividend:     decimal.RequireFromString("0.10"),
			PaymentFrequency: "monthly",
			Sector:           "Real Estate",
			DayChange:        decimal.RequireFromString("-0.5"),
			UpdatedAt:        time.Now(),
		},
		{
			Symbol:           "VALE3",
			Name:             "Vale SA",
			Category:         model.CategoryEquity,
			Price:            decimal.RequireFromString("68.90"),
			DividendYield:    decimal.RequireFromString("8.2"),
			PaymentFrequency: "quarterly/semiannual",
			Sector:           "Basic Materials",
			UpdatedAt:        time.Now(),
		},
	}
}

func testRouter(srv Service) http.Handler {
	return NewRouter(NewController(&config.Config{}, srv))
}

func TestQuotesEndpoint(t *testing.T) {
	router := testRouter(&stubService{snapshot: testSnapshot(), summary: model.Summary{Instruments: 2}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Quotes  []model.Quote `json:"quotes"`
		Summary model.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Quotes, 2)
	assert.Equal(t, "MXRF11", body.Quotes[0].Symbol)
	assert.Equal(t, 2, body.Summary.Instruments)
}

func TestQuotesEndpointCategoryFilter(t *testing.T) {
	router := testRouter(&stubService{snapshot: testSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quotes?category=EQUITY", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Quotes []model.Quote `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Quotes, 1)
	assert.Equal(t, "VALE3", body.Quotes[0].Symbol)
}

func TestQuotesEndpointUnknownCategoryMeansAll(t *testing.T) {
	router := testRouter(&stubService{snapshot: testSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quotes?category=bogus", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Quotes []model.Quote `json:"quotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Quotes, 2)
}

func TestRefreshEndpoint(t *testing.T) {
	router := testRouter(&stubService{snapshot: testSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body["collected"])
}

func TestRefreshEndpointConflictWhileRunning(t *testing.T) {
	router := testRouter(&stubService{collectErr: service.ErrCollectionInProgress})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRefreshEndpointStoreFailure(t *testing.T) {
	router := testRouter(&stubService{collectErr: errors.New("disk full")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReportEndpoint(t *testing.T) {
	router := testRouter(&stubService{snapshot: testSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report.xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "snapshot.xlsx")
	assert.Equal(t, "spreadsheet-bytes", rec.Body.String())
}

func TestDashboardRendersQuotes(t *testing.T) {
	router := testRouter(&stubService{snapshot: testSnapshot(), summary: model.Summary{
		Instruments:  2,
		MonthlyFunds: 1,
		AvgYield:     decimal.RequireFromString("10.35"),
		BestYield:    decimal.RequireFromString("12.5"),
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	html := rec.Body.String()
	assert.Contains(t, html, "MXRF11")
	assert.Contains(t, html, "Maxi Renda FII")
	assert.Contains(t, html, "monthly")
}

func TestDashboardEmptyState(t *testing.T) {
	router := testRouter(&stubService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data yet")
}

func TestChartEndpointsWithEmptySnapshot(t *testing.T) {
	router := testRouter(&stubService{})

	for _, path := range []string{"/charts/yield", "/charts/distribution"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equalf(t, http.StatusOK, rec.Code, "path %s", path)
		assert.NotEmpty(t, rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(&stubService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
