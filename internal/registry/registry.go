package registry

import (
	"strings"

	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/shopspring/decimal"
)

// Instrument is one (category, symbol) pair from the monitored universe.
// Symbol carries the B3 exchange suffix used by the upstream feeds.
type Instrument struct {
	Symbol   string
	Category model.Category
}

// Registry is the immutable monitored-instrument universe plus the static
// fallback tables. Build it once in main and pass it down explicitly.
type Registry struct {
	instruments []Instrument
	categoryOf  map[string]model.Category
	names       map[string]string
	mockPrices  map[string]decimal.Decimal
}

func New(symbols map[model.Category][]string, names map[string]string, mockPrices map[string]float64) Registry {
	// fixed category order so iteration is deterministic
	order := []model.Category{model.CategoryFund, model.CategoryETF, model.CategoryEquity}

	r := Registry{
		categoryOf: make(map[string]model.Category),
		names:      names,
		mockPrices: make(map[string]decimal.Decimal, len(mockPrices)),
	}

	for _, cat := range order {
		for _, sym := range symbols[cat] {
			if _, ok := r.categoryOf[sym]; ok {
				continue // a symbol belongs to exactly one category, first wins
			}
			r.instruments = append(r.instruments, Instrument{Symbol: sym, Category: cat})
			r.categoryOf[sym] = cat
		}
	}

	for sym, price := range mockPrices {
		r.mockPrices[sym] = decimal.NewFromFloat(price)
	}

	return r
}

// Default returns the monitored B3 universe.
func Default() Registry {
	return New(
		map[model.Category][]string{
			model.CategoryFund:   {"MXRF11.SA", "HGLG11.SA", "KNRI11.SA", "VISC11.SA", "RBRP11.SA", "SDIL11.SA"},
			model.CategoryETF:    {"BOVA11.SA", "DIVO11.SA", "SMAL11.SA", "IVVB11.SA"},
			model.CategoryEquity: {"VALE3.SA", "PETR4.SA", "BBAS3.SA", "ITUB4.SA", "TAEE11.SA"},
		},
		map[string]string{
			"VALE3.SA":  "Vale SA",
			"PETR4.SA":  "Petrobras",
			"BBAS3.SA":  "Banco do Brasil",
			"ITUB4.SA":  "Itaú Unibanco",
			"TAEE11.SA": "Taesa",
			"MXRF11.SA": "Maxi Renda FII",
			"HGLG11.SA": "CSHG Logística",
			"KNRI11.SA": "Kinea Renda Imobiliária",
			"VISC11.SA": "Vinci Shopping Centers",
			"RBRP11.SA": "RBR Properties",
			"SDIL11.SA": "SDI Dividendos",
			"BOVA11.SA": "ETF Ibovespa",
			"DIVO11.SA": "ETF Dividendos",
			"SMAL11.SA": "ETF Small Caps",
			"IVVB11.SA": "ETF S&P 500",
		},
		map[string]float64{
			"VALE3.SA": 68.90, "PETR4.SA": 37.50, "BBAS3.SA": 57.80,
			"ITUB4.SA": 33.45, "TAEE11.SA": 41.20, "MXRF11.SA": 10.25,
			"HGLG11.SA": 158.30, "KNRI11.SA": 134.50, "VISC11.SA": 94.80,
			"RBRP11.SA": 86.90, "SDIL11.SA": 106.75, "BOVA11.SA": 115.40,
			"DIVO11.SA": 98.60, "SMAL11.SA": 52.30, "IVVB11.SA": 245.80,
		},
	)
}

// Instruments returns every monitored instrument in registry insertion order.
func (r Registry) Instruments() []Instrument {
	return r.instruments
}

// CategoryOf reports the category owning the symbol, if any.
func (r Registry) CategoryOf(symbol string) (model.Category, bool) {
	cat, ok := r.categoryOf[symbol]
	return cat, ok
}

// FallbackName returns the static display name for the symbol, or the
// display form of the symbol itself when no fallback exists.
func (r Registry) FallbackName(symbol string) string {
	if name, ok := r.names[symbol]; ok {
		return name
	}
	return DisplaySymbol(symbol)
}

// MockPrice returns the static demo price for the symbol, 10.0 when absent.
func (r Registry) MockPrice(symbol string) decimal.Decimal {
	if price, ok := r.mockPrices[symbol]; ok {
		return price
	}
	return decimal.NewFromInt(10)
}

// DisplaySymbol strips the B3 exchange suffix.
func DisplaySymbol(symbol string) string {
	return strings.TrimSuffix(symbol, ".SA")
}
