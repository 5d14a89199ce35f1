package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/Renal37/smm-storefront/internal/models"
)

const (
	// DefaultNumericUnit applies to numeric prices that come without a unit.
	DefaultNumericUnit = "1000"
	// DefaultCompositeUnit applies to price strings without a "/" part.
	DefaultCompositeUnit = "1"
)

// exemptUnits are priced per item (month, pack, review, day, audit) rather than per N units.
var exemptUnits = map[string]struct{}{
	"mois":  {},
	"pack":  {},
	"avis":  {},
	"j":     {},
	"audit": {},
}

// Rate is the cost of a single ordered unit plus its human-readable form.
type Rate struct {
	Value   float64
	Display string
}

// NewPrice builds a price from the numeric representation.
func NewPrice(amount float64, unit string) models.Price {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultNumericUnit
	}
	return models.Price{Amount: amount, Unit: unit}
}

// ParsePrice reads the legacy "<amount> <currency> / <unit>" representation.
func ParsePrice(raw string) models.Price {
	parts := strings.Split(raw, "/")

	unit := ""
	if len(parts) > 1 {
		unit = strings.TrimSpace(parts[1])
	}
	if unit == "" {
		unit = DefaultCompositeUnit
	}

	return models.Price{Amount: ParseAmount(parts[0]), Unit: unit}
}

// UnitDivisor returns how many ordered units the price covers.
func UnitDivisor(unit string) float64 {
	u := strings.ToLower(strings.TrimSpace(unit))
	if _, ok := exemptUnits[u]; ok {
		return 1
	}

	n, ok := parseLeadingInt(u)
	if !ok || n <= 0 {
		return 1
	}
	return float64(n)
}

// NormalizeRate derives the per-unit rate of a price. The display string is informational.
func NormalizeRate(p models.Price, c Currency) Rate {
	value := p.Amount / UnitDivisor(p.Unit)
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	return Rate{Value: value, Display: FormatRate(p, c)}
}

func FormatRate(p models.Price, c Currency) string {
	unit := p.Unit
	if unit == "" {
		unit = DefaultNumericUnit
	}
	return c.Format(p.Amount) + " / " + unit
}

// AmountLabel renders the ordered amount as "<quantity> <unit>".
func AmountLabel(quantity int, p models.Price) string {
	unit := strings.TrimSpace(p.Unit)
	if unit == "" {
		unit = "Units"
	}
	return strconv.Itoa(quantity) + " " + unit
}
