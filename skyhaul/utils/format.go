package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a currency value as $1,234,567.89.
func FormatMoney(amount decimal.Decimal) string {
	s := amount.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	var out strings.Builder
	if neg {
		out.WriteString("-")
	}
	out.WriteString("$")

	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out.WriteString(",")
		}
		out.WriteRune(digit)
	}
	out.WriteString(".")
	out.WriteString(fracPart)
	return out.String()
}

// FormatKm renders a distance with a thousands separator and unit.
func FormatKm(km float64) string {
	d := decimal.NewFromFloat(km).Round(0)
	s := FormatMoney(d)
	// strip the currency dressing, keep the grouping
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, ".00")
	return s + " km"
}
