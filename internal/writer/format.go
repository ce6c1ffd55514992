package writer

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats value in Spanish notation with a euro suffix, e.g.
// "1.234.567 EUR" or "1.234,57 EUR".
func FormatCurrency(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0 EUR"
	}
	return formatSpanish(value, decimals, true) + " EUR"
}

// FormatPercentage formats a value that is already a percentage, e.g. "15,5%".
func FormatPercentage(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0%"
	}
	return formatSpanish(value, decimals, false) + "%"
}

// FormatVariation formats a percentage change with an explicit sign for
// non-negative values, e.g. "+3,2%" or "-1,0%".
func FormatVariation(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0%"
	}
	s := formatSpanish(value, decimals, false) + "%"
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}

// FormatRatio formats a plain ratio with two decimals, e.g. "1,85".
func FormatRatio(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "0,00"
	}
	return formatSpanish(value, 2, false)
}

// formatSpanish rounds value to decimals places and writes it with a
// decimal comma, optionally grouping thousands with dots.
func formatSpanish(value float64, decimals int, group bool) string {
	s := decimal.NewFromFloat(value).StringFixed(int32(decimals))

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	if group && len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + "," + fracPart
}
