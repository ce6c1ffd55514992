package ratios

import "github.com/insightdelivered/statement-kpi-extractor/internal/models"

// Indicator names in a models.IndicatorMap. The net margin shares the
// NetMargin name.
const (
	EBIT           = "ebit"
	EBITDA         = "ebitda"
	GrossMargin    = "margen_bruto"
	EBITDAMargin   = "margen_ebitda"
	EBITMargin     = "margen_ebit"
	PersonnelRatio = "ratio_personal"
	CostPerEuro    = "coste_por_euro"
)

// Indicators derives operating indicators from P&L values. The extracted
// operating result is the EBIT; EBITDA adds back depreciation. Margins are
// percentages of revenue and are 0 when revenue is not positive.
func Indicators(pnl models.KPIMap, years []string) models.IndicatorMap {
	out := make(models.IndicatorMap, len(years))
	for _, year := range years {
		var (
			revenue      = pnl.Get("ingresos", year)
			ebit         = pnl.Get("ebitda", year)
			netIncome    = pnl.Get("resultado_neto", year)
			personnel    = pnl.Get("gastos_personal", year)
			procurement  = pnl.Get("aprovisionamientos", year)
			depreciation = pnl.Get("amortizacion", year)
		)
		ebitda := ebit + depreciation

		out[year] = map[string]float64{
			EBIT:           ebit,
			EBITDA:         ebitda,
			GrossMargin:    divideByPositive(revenue-procurement, revenue) * 100,
			EBITDAMargin:   divideByPositive(ebitda, revenue) * 100,
			EBITMargin:     divideByPositive(ebit, revenue) * 100,
			NetMargin:      divideByPositive(netIncome, revenue) * 100,
			PersonnelRatio: divideByPositive(personnel, revenue) * 100,
			CostPerEuro:    divideByPositive(procurement+personnel, revenue),
		}
	}
	return out
}
