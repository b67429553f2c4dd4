package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/utils"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"
)

var chartCategories = []model.Category{model.CategoryFund, model.CategoryETF, model.CategoryEquity}

// YieldChart handles GET /charts/yield: average dividend yield per category.
func (c *Controller) YieldChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	snapshot, _, err := c.service.Snapshot(ctx, model.CategoryAll)
	if err != nil {
		slog.Error("yield chart snapshot load failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		snapshot = nil
	}

	sums := make(map[model.Category]decimal.Decimal)
	counts := make(map[model.Category]int)
	for _, quote := range snapshot {
		sums[quote.Category] = sums[quote.Category].Add(quote.DividendYield)
		counts[quote.Category]++
	}

	names := make([]string, 0, len(chartCategories))
	values := make([]opts.BarData, 0, len(chartCategories))
	for _, cat := range chartCategories {
		names = append(names, string(cat))
		avg := decimal.Zero
		if counts[cat] > 0 {
			avg = sums[cat].Div(decimal.NewFromInt(int64(counts[cat]))).Round(2)
		}
		values = append(values, opts.BarData{Value: avg.InexactFloat64()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Dividend yield by category"}))
	bar.SetXAxis(names).AddSeries("avg yield %", values)

	if err := bar.Render(w); err != nil {
		slog.Error("yield chart render failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
}

// DistributionChart handles GET /charts/distribution: instruments per category.
func (c *Controller) DistributionChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	snapshot, _, err := c.service.Snapshot(ctx, model.CategoryAll)
	if err != nil {
		slog.Error("distribution chart snapshot load failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		snapshot = nil
	}

	counts := make(map[model.Category]int)
	for _, quote := range snapshot {
		counts[quote.Category]++
	}

	values := make([]opts.PieData, 0, len(chartCategories))
	for _, cat := range chartCategories {
		if counts[cat] == 0 {
			continue
		}
		values = append(values, opts.PieData{Name: string(cat), Value: counts[cat]})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Instruments by category"}))
	pie.AddSeries("instruments", values)

	if err := pie.Render(w); err != nil {
		slog.Error("distribution chart render failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
}
