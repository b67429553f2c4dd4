package dbModel

import (
	"time"

	"github.com/shopspring/decimal"
)

type Quote struct {
	Symbol           string          `db:"symbol"`
	Name             string          `db:"name"`
	Category         string          `db:"category"`
	Price            decimal.Decimal `db:"price"`
	DividendYield    decimal.Decimal `db:"dividend_yield"`
	LastDividend     decimal.Decimal `db:"last_dividend"`
	PaymentFrequency string          `db:"payment_frequency"`
	Sector           string          `db:"sector"`
	DayChange        decimal.Decimal `db:"day_change"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

type PricePoint struct {
	Symbol     string          `db:"symbol"`
	CapturedAt time.Time       `db:"captured_at"`
	Price      decimal.Decimal `db:"price"`
}
