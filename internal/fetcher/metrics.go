package fetcher

import (
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/shopspring/decimal"
)

const trailingDividends = 4

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// estimateDividendYield annualizes the average of the trailing dividend
// payments assuming a monthly cadence, as a percentage of the price.
// Zero when there is no history or the price is not positive.
func estimateDividendYield(dividends []decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	if len(dividends) == 0 || !price.IsPositive() {
		return decimal.Zero
	}

	recent := dividends
	if len(recent) > trailingDividends {
		recent = recent[len(recent)-trailingDividends:]
	}

	sum := decimal.Zero
	for _, d := range recent {
		sum = sum.Add(d)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(recent))))

	return avg.Mul(twelve).Div(price).Mul(hundred).Round(2)
}

// lastDividend returns the most recent payment, zero when there is none.
func lastDividend(dividends []decimal.Decimal) decimal.Decimal {
	if len(dividends) == 0 {
		return decimal.Zero
	}
	return dividends[len(dividends)-1].Round(2)
}

// dayChange returns (current - prior) / prior * 100. Zero when prior is not
// positive, so a single-bar session reports no movement.
func dayChange(current, prior decimal.Decimal) decimal.Decimal {
	if !prior.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(prior).Div(prior).Mul(hundred).Round(2)
}

// paymentFrequency is a static per-category label, not derived from actual
// payment dates.
func paymentFrequency(category model.Category) string {
	switch category {
	case model.CategoryFund:
		return "monthly"
	case model.CategoryETF:
		return "quarterly"
	case model.CategoryEquity:
		return "quarterly/semiannual"
	default:
		return "unknown"
	}
}
