package brapiModel

import "github.com/shopspring/decimal"

type RawQuote struct {
	Results []struct {
		Symbol                     string   `json:"symbol"`
		LongName                   string   `json:"longName"`
		ShortName                  string   `json:"shortName"`
		RegularMarketPrice         *float64 `json:"regularMarketPrice"`
		RegularMarketOpen          *float64 `json:"regularMarketOpen"`
		RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	} `json:"results"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type Quote struct {
	Ticker           string
	Name             string
	Price            decimal.Decimal
	Open             decimal.Decimal
	DayChangePercent decimal.Decimal
}
