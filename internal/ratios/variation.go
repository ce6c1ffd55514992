package ratios

import (
	"math"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
)

// Variation returns the percentage change from previous to current. From a
// zero base it is 0 when nothing changed and ±100 otherwise.
func Variation(current, previous float64) float64 {
	if previous == 0 {
		switch {
		case current > 0:
			return 100
		case current < 0:
			return -100
		default:
			return 0
		}
	}
	return finite((current - previous) / math.Abs(previous) * 100)
}

// YearOverYear computes, for every concept, the variation of each year
// against the next older one. years must be sorted newest first; the oldest
// year has no entry.
func YearOverYear(kpis models.KPIMap, years []string) map[string]models.Series {
	out := make(map[string]models.Series, len(kpis))
	for name, values := range kpis {
		s := make(models.Series, len(years))
		for i := 0; i+1 < len(years); i++ {
			s[years[i]] = Variation(values[years[i]], values[years[i+1]])
		}
		out[name] = s
	}
	return out
}
