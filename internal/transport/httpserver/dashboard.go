package httpserver

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/utils"
)

type dashboardRow struct {
	Symbol        string
	Name          string
	Category      string
	Price         string
	DividendYield string
	LastDividend  string
	Frequency     string
	DayChange     string
	Negative      bool
}

type dashboardView struct {
	Filter       string
	Rows         []dashboardRow
	AvgYield     string
	BestYield    string
	Instruments  int
	MonthlyFunds int
	HasData      bool
}

// Dashboard handles GET /?category=
func (c *Controller) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	filter := parseCategory(r.URL.Query().Get("category"))

	snapshot, summary, err := c.service.Snapshot(ctx, filter)
	if err != nil {
		// render the empty state instead of failing the page
		slog.Error("dashboard snapshot load failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
		snapshot, summary = nil, model.Summary{}
	}

	view := dashboardView{
		Filter:       string(filter),
		AvgYield:     fmt.Sprintf("%s%%", summary.AvgYield.StringFixed(2)),
		BestYield:    fmt.Sprintf("%s%%", summary.BestYield.StringFixed(2)),
		Instruments:  summary.Instruments,
		MonthlyFunds: summary.MonthlyFunds,
		HasData:      len(snapshot) > 0,
	}

	for _, quote := range snapshot {
		lastDividend := "N/A"
		if quote.LastDividend.IsPositive() {
			lastDividend = fmt.Sprintf("R$ %s", quote.LastDividend.StringFixed(2))
		}

		sign := "+"
		if quote.DayChange.IsNegative() {
			sign = ""
		}

		view.Rows = append(view.Rows, dashboardRow{
			Symbol:        quote.Symbol,
			Name:          quote.Name,
			Category:      string(quote.Category),
			Price:         fmt.Sprintf("R$ %s", quote.Price.StringFixed(2)),
			DividendYield: fmt.Sprintf("%s%%", quote.DividendYield.StringFixed(2)),
			LastDividend:  lastDividend,
			Frequency:     quote.PaymentFrequency,
			DayChange:     fmt.Sprintf("%s%s%%", sign, quote.DayChange.StringFixed(2)),
			Negative:      quote.DayChange.IsNegative(),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, view); err != nil {
		slog.Error("dashboard template render failed", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Bolsa Monitor - Dividends</title>
<style>
body { background: #1e1e1e; color: #eee; font-family: sans-serif; margin: 0; padding: 1.5rem; }
h1 { color: #00ff00; text-align: center; }
.cards { display: flex; gap: 1rem; margin: 1rem 0; }
.card { background: #323232; border-radius: 6px; padding: 1rem; flex: 1; text-align: center; }
.card h2 { margin: 0.25rem 0 0; }
table { width: 100%; border-collapse: collapse; background: #323232; }
th, td { padding: 10px; text-align: left; font-size: 14px; }
th { background: #1e1e1e; font-size: 16px; }
td.yield { color: #00ff00; font-weight: bold; }
td.up { color: #4caf50; font-weight: bold; }
td.down { color: #f44336; font-weight: bold; }
.controls { margin: 1rem 0; }
.controls select, .controls button { padding: 0.5rem; }
.charts { display: flex; gap: 1rem; margin-top: 1rem; }
.charts iframe { flex: 1; height: 420px; border: 0; background: #323232; }
.empty { text-align: center; padding: 3rem; background: #323232; }
</style>
</head>
<body>
<h1>Bolsa Monitor - Dividend Dashboard</h1>
<div class="controls">
<select id="category" onchange="applyFilter()">
<option value="ALL"{{if eq .Filter "ALL"}} selected{{end}}>All</option>
<option value="FUND"{{if eq .Filter "FUND"}} selected{{end}}>Funds</option>
<option value="ETF"{{if eq .Filter "ETF"}} selected{{end}}>ETFs</option>
<option value="EQUITY"{{if eq .Filter "EQUITY"}} selected{{end}}>Equities</option>
</select>
<button id="refresh" onclick="refreshData()">Refresh data</button>
</div>
<div class="cards">
<div class="card">Avg yield<h2>{{.AvgYield}}</h2></div>
<div class="card">Instruments<h2>{{.Instruments}}</h2></div>
<div class="card">Monthly funds<h2>{{.MonthlyFunds}}</h2></div>
<div class="card">Best yield<h2>{{.BestYield}}</h2></div>
</div>
{{if .HasData}}
<table>
<tr><th>Symbol</th><th>Name</th><th>Category</th><th>Price</th><th>Dividend yield</th><th>Last dividend</th><th>Frequency</th><th>Day change</th></tr>
{{range .Rows}}
<tr>
<td>{{.Symbol}}</td>
<td>{{.Name}}</td>
<td>{{.Category}}</td>
<td>{{.Price}}</td>
<td class="yield">{{.DividendYield}}</td>
<td>{{.LastDividend}}</td>
<td>{{.Frequency}}</td>
<td class="{{if .Negative}}down{{else}}up{{end}}">{{.DayChange}}</td>
</tr>
{{end}}
</table>
<div class="charts">
<iframe src="/charts/yield"></iframe>
<iframe src="/charts/distribution"></iframe>
</div>
{{else}}
<div class="empty">No data yet. Click "Refresh data" to run a collection cycle.</div>
{{end}}
<script>
function applyFilter() {
	const category = document.getElementById('category').value;
	window.location = '/?category=' + category;
}
function refreshData() {
	const btn = document.getElementById('refresh');
	btn.disabled = true;
	btn.textContent = 'Collecting...';
	fetch('/api/v1/refresh', {method: 'POST'}).finally(() => window.location.reload());
}
setInterval(refreshData, 5 * 60 * 1000);
</script>
</body>
</html>
`))
