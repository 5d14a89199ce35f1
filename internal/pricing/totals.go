package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Totals holds display figures in the base currency. The backend stays authoritative for charges.
type Totals struct {
	TotalCost float64
	Profit    float64
}

// ComputeTotals multiplies rate by quantity and derives the reseller's profit.
// resalePrice is in the display currency and is converted back with currencyRate.
// Negative profit is returned as is.
func ComputeTotals(rate float64, quantity int, resalePrice string, currencyRate float64) Totals {
	totalCost := round2(rate * float64(quantity))

	totals := Totals{TotalCost: totalCost.InexactFloat64()}
	if strings.TrimSpace(resalePrice) == "" {
		return totals
	}

	if currencyRate <= 0 {
		currencyRate = 1
	}

	resale := toDecimal(ParseDecimal(resalePrice)).Div(decimal.NewFromFloat(currencyRate))
	totals.Profit = resale.Sub(totalCost).Round(2).InexactFloat64()

	return totals
}

// ParseDecimal reads a decimal typed by the user, accepting a comma separator.
// Unparseable input yields 0.
func ParseDecimal(raw string) float64 {
	v, ok := parseLeadingFloat(strings.Replace(strings.TrimSpace(raw), ",", ".", 1))
	if !ok {
		return 0
	}
	return v
}
