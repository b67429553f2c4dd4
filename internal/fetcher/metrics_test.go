package fetcher

import (
	"testing"

	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decs(t *testing.T, values ...string) []decimal.Decimal {
	t.Helper()
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, dec(t, v))
	}
	return out
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(t, want)), "want %s, got %s", want, got)
}

func TestEstimateDividendYield(t *testing.T) {
	// avg(1) * 12 / 102 * 100 = 11.7647... -> 11.76
	got := estimateDividendYield(decs(t, "1", "1", "1", "1"), dec(t, "102"))
	assertDecimal(t, "11.76", got)
}

func TestEstimateDividendYieldUsesTrailingFourPayments(t *testing.T) {
	// only the last four count: avg(1,1,1,1), the 99 is outside the window
	got := estimateDividendYield(decs(t, "99", "1", "1", "1", "1"), dec(t, "100"))
	assertDecimal(t, "12", got)
}

func TestEstimateDividendYieldShortHistory(t *testing.T) {
	// avg(0.5) * 12 / 100 * 100 = 6
	got := estimateDividendYield(decs(t, "0.5"), dec(t, "100"))
	assertDecimal(t, "6", got)
}

func TestEstimateDividendYieldZeroCases(t *testing.T) {
	assertDecimal(t, "0", estimateDividendYield(nil, dec(t, "100")))
	assertDecimal(t, "0", estimateDividendYield(decs(t, "1"), decimal.Zero))
	assertDecimal(t, "0", estimateDividendYield(decs(t, "1"), dec(t, "-10")))
}

func TestLastDividend(t *testing.T) {
	assertDecimal(t, "0.75", lastDividend(decs(t, "0.5", "0.6", "0.75")))
	assertDecimal(t, "0", lastDividend(nil))
}

func TestDayChange(t *testing.T) {
	assertDecimal(t, "2", dayChange(dec(t, "102"), dec(t, "100")))
	assertDecimal(t, "-2.5", dayChange(dec(t, "97.5"), dec(t, "100")))
	assertDecimal(t, "0", dayChange(dec(t, "100"), dec(t, "100")))
	assertDecimal(t, "0", dayChange(dec(t, "100"), decimal.Zero))
}

func TestPaymentFrequency(t *testing.T) {
	assert.Equal(t, "monthly", paymentFrequency(model.CategoryFund))
	assert.Equal(t, "quarterly", paymentFrequency(model.CategoryETF))
	assert.Equal(t, "quarterly/semiannual", paymentFrequency(model.CategoryEquity))
	assert.Equal(t, "unknown", paymentFrequency(model.Category("OTHER")))
}
