package parser

import (
	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/insightdelivered/statement-kpi-extractor/internal/registry"
	"github.com/ternarybob/arbor"
)

// BalanceParser extracts balance sheet totals and account breakdowns. Values
// keep the sign they have in the sheet.
type BalanceParser struct {
	registry *registry.Registry
	logger   arbor.ILogger
}

func NewBalanceParser(reg *registry.Registry, logger arbor.ILogger) *BalanceParser {
	return &BalanceParser{registry: reg, logger: logger}
}

func (p *BalanceParser) Kind() models.StatementKind {
	return models.StatementBalance
}

func (p *BalanceParser) Parse(grid *models.Grid) (*models.StatementInfo, error) {
	kpis := p.ExtractAll(grid)

	info := &models.StatementInfo{
		Kind:    models.StatementBalance,
		Years:   grid.Years,
		KPIs:    kpis,
		Details: make(map[string]models.DetailMap, len(p.registry.Balance.Details)),
		Rows:    len(grid.Rows),
	}
	for _, c := range p.registry.Balance.Concepts {
		if kpis.Has(c.Name) {
			info.Found = append(info.Found, c.Name)
		} else {
			info.Missing = append(info.Missing, c.Name)
		}
	}
	for i := range p.registry.Balance.Details {
		d := &p.registry.Balance.Details[i]
		info.Details[d.Name] = ExtractBalanceDetail(grid, d)
	}

	if len(info.Missing) > 0 {
		p.logger.Debug().Strs("missing", info.Missing).Msg("Balance concepts not found")
	}
	return info, nil
}

// ExtractAll assigns each row to at most one balance concept, the first
// whose marker fits. A later row replaces an earlier one for the same
// concept unless the concept keeps its first row.
func (p *BalanceParser) ExtractAll(grid *models.Grid) models.KPIMap {
	kpis := make(models.KPIMap)
	bal := &p.registry.Balance

	for _, r := range grid.Rows {
		text := registry.Normalize(grid.TextOf(r, bal.Columns...))
		if text == "" {
			continue
		}
		for i := range bal.Concepts {
			c := &bal.Concepts[i]
			if !c.Match(text) {
				continue
			}
			if !c.KeepFirst || !kpis.Has(c.Name) {
				kpis[c.Name] = models.NewSeries(grid.Years, r.Value)
			}
			break
		}
	}
	return kpis
}

// ExtractBalanceDetail reads one account breakdown. The first matching
// category of a row wins and later rows replace earlier ones.
func ExtractBalanceDetail(grid *models.Grid, d *registry.BalanceDetail) models.DetailMap {
	out := make(models.DetailMap)
	for _, r := range grid.Rows {
		text := grid.TextOf(r, d.Columns...)
		if text == "" {
			continue
		}
		if name := d.Category(text); name != "" {
			out[name] = models.NewSeries(grid.Years, r.Value)
		}
	}
	return out
}
