package yahooModel

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawChart mirrors the v8 chart endpoint response. Open/close arrays may
// contain nulls for sessions without trades, hence the pointer slices.
type RawChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
			Events struct {
				Dividends map[string]RawDividend `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

type RawDividend struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// RawQuoteSummary mirrors the v10 quoteSummary endpoint response for the
// assetProfile and price modules.
type RawQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
			Price struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"price"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"quoteSummary"`
}

type Bar struct {
	Open  decimal.Decimal
	Close decimal.Decimal
}

type Dividend struct {
	Date   time.Time
	Amount decimal.Decimal
}

// History is the parsed chart payload: bars in chronological order plus
// the dividend payments sorted by date ascending.
type History struct {
	Bars      []Bar
	Dividends []Dividend
}

type Profile struct {
	Name   string
	Sector string
}
