package loader

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// yearPattern matches a fiscal year header in the range 1900-2099.
var yearPattern = regexp.MustCompile(`^(20\d{2}|19\d{2})$`)

// NumberStyle says how the numeric cells of a sheet are written.
type NumberStyle int

const (
	// RawNumbers are machine-formatted cell values read from xlsx and xls
	// workbooks, such as "1234.5" or "-2E5". Formatted text cells are still
	// accepted.
	RawNumbers NumberStyle = iota
	// LocaleNumbers are amounts typed as Spanish text, as found in CSV
	// exports, where "-200.000" is minus two hundred thousand.
	LocaleNumbers
)

// parseAmount converts a cell such as "1234.5", "1.234.567,89", "(2.500)" or
// "-15.000 €" to a float64. The second result is false when the cell is not
// a number.
func parseAmount(s string, style NumberStyle) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if style == RawNumbers {
		if d, err := decimal.NewFromString(s); err == nil {
			return d.InexactFloat64(), true
		}
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "€", "")
	s = strings.TrimSuffix(strings.TrimSpace(s), "EUR")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "") // non-breaking space
	s = strings.ReplaceAll(s, "\u202F", "") // narrow no-break space
	switch {
	case strings.HasPrefix(s, "-"):
		negative = !negative
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasSuffix(s, "-"):
		negative = !negative
		s = s[:len(s)-1]
	}
	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(normalizeSeparators(s))
	if err != nil {
		return 0, false
	}
	if negative {
		d = d.Neg()
	}
	return d.InexactFloat64(), true
}

// normalizeSeparators rewrites grouped numbers to a plain dotted decimal.
// It only sees formatted text, so Spanish conventions apply: the separator
// that appears last is the decimal one, a lone comma is decimal and a lone
// dot followed by three digits groups thousands.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}
		return strings.Replace(s, ",", ".", 1)
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			return strings.ReplaceAll(s, ".", "")
		}
	}
	return s
}

// coerce returns the numeric value of a cell, 0 when it is empty or text.
func coerce(s string, style NumberStyle) float64 {
	v, _ := parseAmount(s, style)
	return v
}

// isLabelText reports whether a cell looks like a concept name rather than
// a number or a short code.
func isLabelText(s string) bool {
	if _, ok := parseAmount(s, LocaleNumbers); ok {
		return false
	}
	return utf8.RuneCountInString(s) > 5
}

// cell returns the trimmed value at index i, or "" past the end of row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func maxWidth(rows [][]string) int {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return width
}
