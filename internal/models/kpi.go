package models

import "math"

// Series maps a fiscal year to a value.
type Series map[string]float64

// KPIMap maps a concept name to its yearly values.
type KPIMap map[string]Series

// DetailMap maps a sub-item label to its yearly values.
type DetailMap map[string]Series

// RatioMap maps a fiscal year to named ratios for that year.
type RatioMap map[string]map[string]float64

// IndicatorMap has the same shape as RatioMap and holds derived P&L indicators.
type IndicatorMap map[string]map[string]float64

// Get returns the value of concept for year, 0 when either is absent.
func (k KPIMap) Get(concept, year string) float64 {
	return k[concept][year]
}

// Has reports whether concept was populated.
func (k KPIMap) Has(concept string) bool {
	_, ok := k[concept]
	return ok
}

// NewSeries builds a series for years, using value(year) for each entry.
func NewSeries(years []string, value func(year string) float64) Series {
	s := make(Series, len(years))
	for _, y := range years {
		s[y] = value(y)
	}
	return s
}

// Abs returns a copy of s with every value replaced by its magnitude.
func (s Series) Abs() Series {
	out := make(Series, len(s))
	for y, v := range s {
		out[y] = math.Abs(v)
	}
	return out
}
