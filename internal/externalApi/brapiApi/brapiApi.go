package brapiApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/internal/externalApi"
	"github.com/gfranco93/bolsa-monitor/internal/model/brapiModel"
	"github.com/gfranco93/bolsa-monitor/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type BrapiApi struct {
	client *resty.Client
	token  string
}

func New(cfg *config.Config) *BrapiApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.BrapiApi.Url)
	return &BrapiApi{client: client, token: cfg.API.BrapiApi.Token}
}

// GetQuote fetches the regular market quote for one ticker. brapi uses the
// bare B3 ticker, without the exchange suffix.
func (a *BrapiApi) GetQuote(ctx context.Context, ticker string) (brapiModel.Quote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	url := fmt.Sprintf("/api/quote/%s", ticker)

	slog.Debug("start BrapiApi.GetQuote request", slog.String("rqID", rqID), slog.String("ticker", ticker))

	req := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")

	if a.token != "" {
		req.SetQueryParam("token", a.token)
	}

	resp, err := req.Get(url)
	if err != nil {
		slog.Error("error while dialing BrapiApi", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return brapiModel.Quote{}, err
	}

	if resp.IsError() {
		slog.Error("BrapiApi returned error status", slog.Int("status", resp.StatusCode()), slog.String("rqID", rqID))
		return brapiModel.Quote{}, fmt.Errorf("brapi status %d", resp.StatusCode())
	}

	rawQuote := brapiModel.RawQuote{}
	err = json.Unmarshal(resp.Body(), &rawQuote)
	if err != nil {
		slog.Error("can't unmarshall response into brapiModel.RawQuote", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return brapiModel.Quote{}, err
	}

	quote, err := a.parseRawQuote(rawQuote)
	if err != nil {
		slog.Error("can't parse raw quote", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return brapiModel.Quote{}, err
	}

	slog.Debug("BrapiApi.GetQuote request complete", slog.String("rqID", rqID), slog.String("ticker", ticker))

	return quote, nil
}

func (a *BrapiApi) parseRawQuote(rawQuote brapiModel.RawQuote) (brapiModel.Quote, error) {
	if rawQuote.Error || len(rawQuote.Results) == 0 {
		return brapiModel.Quote{}, externalApi.ErrNoData
	}

	result := rawQuote.Results[0]
	if result.RegularMarketPrice == nil {
		return brapiModel.Quote{}, externalApi.ErrNoData
	}

	quote := brapiModel.Quote{
		Ticker: result.Symbol,
		Name:   result.LongName,
		Price:  decimal.NewFromFloat(*result.RegularMarketPrice),
	}

	if quote.Name == "" {
		quote.Name = result.ShortName
	}

	if result.RegularMarketOpen != nil {
		quote.Open = decimal.NewFromFloat(*result.RegularMarketOpen)
	}

	if result.RegularMarketChangePercent != nil {
		quote.DayChangePercent = decimal.NewFromFloat(*result.RegularMarketChangePercent)
	}

	return quote, nil
}
