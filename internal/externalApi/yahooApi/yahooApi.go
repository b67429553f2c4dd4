package yahooApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/internal/externalApi"
	"github.com/gfranco93/bolsa-monitor/internal/model/yahooModel"
	"github.com/gfranco93/bolsa-monitor/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// Yahoo blocks default Go user agents, send a browser one.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

type YahooApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *YahooApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.YahooApi.Url).
		SetHeader("User-Agent", userAgent)
	return &YahooApi{client: client}
}

// GetHistory requests daily bars plus dividend events for the symbol via
// the v8 chart endpoint. A one-year window is needed to cover the trailing
// dividend payments; only the last two bars are kept for the price window.
func (a *YahooApi) GetHistory(ctx context.Context, symbol string) (yahooModel.History, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	url := fmt.Sprintf("/v8/finance/chart/%s", symbol)
	params := map[string]string{
		"range":    "1y",
		"interval": "1d",
		"events":   "div",
	}

	slog.Debug("start YahooApi.GetHistory request", slog.String("rqID", rqID), slog.String("symbol", symbol))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(url)

	if err != nil {
		slog.Error("error while dialing YahooApi", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.History{}, err
	}

	if resp.IsError() {
		slog.Error("YahooApi chart returned error status", slog.Int("status", resp.StatusCode()), slog.String("rqID", rqID))
		return yahooModel.History{}, fmt.Errorf("yahoo chart status %d", resp.StatusCode())
	}

	rawChart := yahooModel.RawChart{}
	err = json.Unmarshal(resp.Body(), &rawChart)
	if err != nil {
		slog.Error("can't unmarshall response into yahooModel.RawChart", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.History{}, err
	}

	history, err := a.parseRawChart(rawChart)
	if err != nil {
		slog.Error("can't parse raw chart data", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.History{}, err
	}

	slog.Debug("YahooApi.GetHistory request complete", slog.String("rqID", rqID), slog.String("symbol", symbol))

	return history, nil
}

// GetProfile fetches descriptive metadata (name, sector) via quoteSummary.
// Callers treat a failure here as non-fatal.
func (a *YahooApi) GetProfile(ctx context.Context, symbol string) (yahooModel.Profile, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	url := fmt.Sprintf("/v10/finance/quoteSummary/%s", symbol)
	params := map[string]string{
		"modules": "assetProfile,price",
	}

	slog.Debug("start YahooApi.GetProfile request", slog.String("rqID", rqID), slog.String("symbol", symbol))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(url)

	if err != nil {
		slog.Error("error while dialing YahooApi", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.Profile{}, err
	}

	if resp.IsError() {
		return yahooModel.Profile{}, fmt.Errorf("yahoo quoteSummary status %d", resp.StatusCode())
	}

	rawSummary := yahooModel.RawQuoteSummary{}
	err = json.Unmarshal(resp.Body(), &rawSummary)
	if err != nil {
		slog.Error("can't unmarshall response into yahooModel.RawQuoteSummary", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return yahooModel.Profile{}, err
	}

	if len(rawSummary.QuoteSummary.Result) == 0 {
		return yahooModel.Profile{}, externalApi.ErrNotFound
	}

	result := rawSummary.QuoteSummary.Result[0]
	profile := yahooModel.Profile{
		Name:   result.Price.LongName,
		Sector: result.AssetProfile.Sector,
	}
	if profile.Name == "" {
		profile.Name = result.Price.ShortName
	}

	slog.Debug("YahooApi.GetProfile request complete", slog.String("rqID", rqID), slog.String("symbol", symbol))

	return profile, nil
}

func (a *YahooApi) parseRawChart(rawChart yahooModel.RawChart) (yahooModel.History, error) {
	if len(rawChart.Chart.Result) == 0 {
		return yahooModel.History{}, externalApi.ErrNoData
	}

	result := rawChart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return yahooModel.History{}, externalApi.ErrNoData
	}

	quote := result.Indicators.Quote[0]
	history := yahooModel.History{}

	for i := 0; i < len(quote.Close); i++ {
		if quote.Close[i] == nil {
			continue
		}

		bar := yahooModel.Bar{Close: decimal.NewFromFloat(*quote.Close[i])}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = decimal.NewFromFloat(*quote.Open[i])
		} else {
			bar.Open = bar.Close
		}
		history.Bars = append(history.Bars, bar)
	}

	if len(history.Bars) == 0 {
		return yahooModel.History{}, externalApi.ErrNoData
	}

	if len(history.Bars) > 2 {
		history.Bars = history.Bars[len(history.Bars)-2:]
	}

	for _, div := range result.Events.Dividends {
		history.Dividends = append(history.Dividends, yahooModel.Dividend{
			Date:   time.Unix(div.Date, 0),
			Amount: decimal.NewFromFloat(div.Amount),
		})
	}

	sort.Slice(history.Dividends, func(i, j int) bool {
		return history.Dividends[i].Date.Before(history.Dividends[j].Date)
	})

	return history, nil
}
