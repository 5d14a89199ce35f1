package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "eur"

// Currency converts base-currency amounts for display.
type Currency struct {
	Code   string
	Symbol string
	Rate   float64
}

var currencies = map[string]Currency{
	"eur": {Code: "eur", Symbol: "€", Rate: 1},
	"usd": {Code: "usd", Symbol: "$", Rate: 1.08},
	"mad": {Code: "mad", Symbol: "MAD", Rate: 10.9},
}

// LookupCurrency returns the currency for a code, falling back to euro.
func LookupCurrency(code string) Currency {
	if c, ok := currencies[strings.ToLower(strings.TrimSpace(code))]; ok {
		return c
	}
	return currencies[DefaultCurrency]
}

// Format converts a base amount and prints it the fr-FR way: "1 234,50 MAD" or "€ 12,00".
func (c Currency) Format(amount float64) string {
	converted := round2(amount * c.Rate)
	text := frenchNumber(converted)

	if c.Code == "mad" {
		return text + " " + c.Symbol
	}
	return c.Symbol + " " + text
}

// fr-FR groups thousands with a narrow no-break space.
const thousandsSeparator = "\u202f"

func frenchNumber(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSeparator)
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "," + fracPart
}

// round2 rounds half away from zero to cents.
func round2(v float64) decimal.Decimal {
	return toDecimal(v).Round(2)
}

// toDecimal maps non-finite input to zero; decimal.NewFromFloat panics on it.
func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
