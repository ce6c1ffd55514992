// Package ratios derives financial ratios and indicators from extracted
// statement values.
package ratios

import (
	"math"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
)

// Ratio names in a models.RatioMap.
const (
	Liquidity             = "ratio_liquidez"
	AcidTest              = "ratio_acid_test"
	CashRatio             = "ratio_tesoreria"
	DebtRatio             = "ratio_endeudamiento"
	EquityRatio           = "ratio_autonomia"
	Leverage              = "ratio_apalancamiento"
	ROE                   = "roe"
	ROA                   = "roa"
	AssetTurnover         = "rotacion_activos"
	NetMargin             = "margen_neto"
	Solvency              = "ratio_solvencia"
	WorkingCapital        = "fondo_maniobra"
	WorkingCapitalToAsset = "capital_circulante_ratio"
)

// Compute combines balance and P&L values into per-year ratios. A ratio whose
// denominator is zero, or not positive for equity based ratios, is 0. Values
// missing from either map count as 0.
func Compute(balance, pnl models.KPIMap, years []string) models.RatioMap {
	out := make(models.RatioMap, len(years))
	for _, year := range years {
		var (
			totalAssets        = balance.Get("total_activo", year)
			currentAssets      = balance.Get("activo_corriente", year)
			currentLiabilities = balance.Get("pasivo_corriente", year)
			longLiabilities    = balance.Get("pasivo_no_corriente", year)
			equity             = balance.Get("patrimonio_neto", year)
			inventory          = balance.Get("existencias", year)
			cash               = balance.Get("efectivo", year)

			netIncome = pnl.Get("resultado_neto", year)
			revenue   = pnl.Get("ingresos", year)
		)
		totalLiabilities := currentLiabilities + longLiabilities
		workingCapital := currentAssets - currentLiabilities

		out[year] = map[string]float64{
			Liquidity:             divide(currentAssets, currentLiabilities),
			AcidTest:              divide(currentAssets-inventory, currentLiabilities),
			CashRatio:             divide(cash, currentLiabilities),
			DebtRatio:             divide(totalLiabilities, totalAssets),
			EquityRatio:           divide(equity, totalAssets),
			Leverage:              divideByPositive(totalLiabilities, equity),
			ROE:                   divideByPositive(netIncome, equity) * 100,
			ROA:                   divide(netIncome, totalAssets) * 100,
			AssetTurnover:         divide(revenue, totalAssets),
			NetMargin:             divide(netIncome, revenue) * 100,
			Solvency:              divide(totalAssets, totalLiabilities),
			WorkingCapital:        finite(workingCapital),
			WorkingCapitalToAsset: divide(workingCapital, totalAssets),
		}
	}
	return out
}

// divide returns num/den, or 0 when den is zero or the result is not finite.
func divide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(num / den)
}

// divideByPositive is divide restricted to positive denominators.
func divideByPositive(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return finite(num / den)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
