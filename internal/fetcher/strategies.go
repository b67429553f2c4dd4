package fetcher

import (
	"context"
	"time"

	"github.com/gfranco93/bolsa-monitor/internal/externalApi"
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/internal/model/brapiModel"
	"github.com/gfranco93/bolsa-monitor/internal/model/yahooModel"
	"github.com/gfranco93/bolsa-monitor/internal/registry"
	"github.com/shopspring/decimal"
)

const sectorUnknown = "unknown"

// Placeholder dividend figures for strategies without payment history.
var (
	placeholderYield        = decimal.NewFromFloat(6.5)
	placeholderLastDividend = decimal.NewFromFloat(0.5)
)

type YahooApi interface {
	GetHistory(ctx context.Context, symbol string) (yahooModel.History, error)
	GetProfile(ctx context.Context, symbol string) (yahooModel.Profile, error)
}

type BrapiApi interface {
	GetQuote(ctx context.Context, ticker string) (brapiModel.Quote, error)
}

// YahooStrategy is the primary acquisition path: trailing daily bars plus
// dividend history, with best-effort descriptive metadata.
type YahooStrategy struct {
	api YahooApi
	reg registry.Registry
}

func NewYahooStrategy(api YahooApi, reg registry.Registry) *YahooStrategy {
	return &YahooStrategy{api: api, reg: reg}
}

func (s *YahooStrategy) Name() string { return "yahoo" }

func (s *YahooStrategy) Fetch(ctx context.Context, instrument registry.Instrument) (model.Quote, error) {
	history, err := s.api.GetHistory(ctx, instrument.Symbol)
	if err != nil {
		return model.Quote{}, err
	}

	if len(history.Bars) == 0 {
		return model.Quote{}, externalApi.ErrNoData
	}

	last := history.Bars[len(history.Bars)-1]
	current := last.Close
	prior := history.Bars[0].Close
	if len(history.Bars) > 1 {
		prior = last.Open
	}

	// Metadata lookup failing is not enough to abort the whole fetch.
	name := s.reg.FallbackName(instrument.Symbol)
	sector := sectorUnknown
	if profile, perr := s.api.GetProfile(ctx, instrument.Symbol); perr == nil {
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.Sector != "" {
			sector = profile.Sector
		}
	}

	amounts := make([]decimal.Decimal, 0, len(history.Dividends))
	for _, div := range history.Dividends {
		amounts = append(amounts, div.Amount)
	}

	return model.Quote{
		Symbol:           registry.DisplaySymbol(instrument.Symbol),
		Name:             name,
		Category:         instrument.Category,
		Price:            current.Round(2),
		DividendYield:    estimateDividendYield(amounts, current),
		LastDividend:     lastDividend(amounts),
		PaymentFrequency: paymentFrequency(instrument.Category),
		Sector:           sector,
		DayChange:        dayChange(current, prior),
		UpdatedAt:        time.Now(),
	}, nil
}

// BrapiStrategy is the alternate live path. brapi has no dividend history on
// the quote endpoint, so the dividend figures fall back to the placeholders.
type BrapiStrategy struct {
	api BrapiApi
	reg registry.Registry
}

func NewBrapiStrategy(api BrapiApi, reg registry.Registry) *BrapiStrategy {
	return &BrapiStrategy{api: api, reg: reg}
}

func (s *BrapiStrategy) Name() string { return "brapi" }

func (s *BrapiStrategy) Fetch(ctx context.Context, instrument registry.Instrument) (model.Quote, error) {
	quote, err := s.api.GetQuote(ctx, registry.DisplaySymbol(instrument.Symbol))
	if err != nil {
		return model.Quote{}, err
	}

	change := quote.DayChangePercent
	if change.IsZero() && quote.Open.IsPositive() {
		change = dayChange(quote.Price, quote.Open)
	}

	name := quote.Name
	if name == "" {
		name = s.reg.FallbackName(instrument.Symbol)
	}

	return model.Quote{
		Symbol:           registry.DisplaySymbol(instrument.Symbol),
		Name:             name,
		Category:         instrument.Category,
		Price:            quote.Price.Round(2),
		DividendYield:    placeholderYield,
		LastDividend:     placeholderLastDividend,
		PaymentFrequency: paymentFrequency(instrument.Category),
		Sector:           sectorUnknown,
		DayChange:        change.Round(2),
		UpdatedAt:        time.Now(),
	}, nil
}

// MockStrategy terminates the chain with a deterministic record built from
// the static fallback tables. It never fails.
type MockStrategy struct {
	reg registry.Registry
}

func NewMockStrategy(reg registry.Registry) *MockStrategy {
	return &MockStrategy{reg: reg}
}

func (s *MockStrategy) Name() string { return "mock" }

func (s *MockStrategy) Fetch(_ context.Context, instrument registry.Instrument) (model.Quote, error) {
	return model.Quote{
		Symbol:           registry.DisplaySymbol(instrument.Symbol),
		Name:             s.reg.FallbackName(instrument.Symbol),
		Category:         instrument.Category,
		Price:            s.reg.MockPrice(instrument.Symbol).Round(2),
		DividendYield:    placeholderYield,
		LastDividend:     placeholderLastDividend,
		PaymentFrequency: paymentFrequency(instrument.Category),
		Sector:           sectorUnknown,
		DayChange:        decimal.Zero,
		UpdatedAt:        time.Now(),
	}, nil
}
