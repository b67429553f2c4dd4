package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryFund   Category = "FUND"
	CategoryETF    Category = "ETF"
	CategoryEquity Category = "EQUITY"

	// CategoryAll is only a presentation filter value, never stored.
	CategoryAll Category = "ALL"
)

// Quote is one instrument observation produced by a collection cycle.
// It is either fully populated from a live source or fully populated
// from the static fallback tables.
type Quote struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Category         Category        `json:"category"`
	Price            decimal.Decimal `json:"price"`
	DividendYield    decimal.Decimal `json:"dividendYield"`
	LastDividend     decimal.Decimal `json:"lastDividend"`
	PaymentFrequency string          `json:"paymentFrequency"`
	Sector           string          `json:"sector"`
	DayChange        decimal.Decimal `json:"dayChange"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// Snapshot is the full set of quotes produced by one collection cycle.
// Symbols that failed to fetch are simply absent.
type Snapshot []Quote

// Summary holds the dashboard header metrics for a (filtered) snapshot.
type Summary struct {
	AvgYield     decimal.Decimal `json:"avgYield"`
	BestYield    decimal.Decimal `json:"bestYield"`
	Instruments  int             `json:"instruments"`
	MonthlyFunds int             `json:"monthlyFunds"`
}
