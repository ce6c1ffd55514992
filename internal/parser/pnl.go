package parser

import (
	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/insightdelivered/statement-kpi-extractor/internal/registry"
	"github.com/ternarybob/arbor"
)

// PnLParser extracts line items and detail breakdowns from a Profit & Loss
// grid.
type PnLParser struct {
	registry *registry.Registry
	logger   arbor.ILogger
}

func NewPnLParser(reg *registry.Registry, logger arbor.ILogger) *PnLParser {
	return &PnLParser{registry: reg, logger: logger}
}

func (p *PnLParser) Kind() models.StatementKind {
	return models.StatementPnL
}

func (p *PnLParser) Parse(grid *models.Grid) (*models.StatementInfo, error) {
	kpis, found, missing := p.ExtractAll(grid)

	info := &models.StatementInfo{
		Kind:    models.StatementPnL,
		Years:   grid.Years,
		KPIs:    kpis,
		Details: make(map[string]models.DetailMap, len(p.registry.Details)),
		Found:   found,
		Missing: missing,
		Rows:    len(grid.Rows),
	}
	for i := range p.registry.Details {
		d := &p.registry.Details[i]
		info.Details[d.Name] = ExtractDetail(grid, d)
	}
	return info, nil
}

// ExtractAll looks up every registry concept in order. Required concepts
// with no matching row are left out of the map and listed in missing;
// optional ones get their default for every year.
func (p *PnLParser) ExtractAll(grid *models.Grid) (kpis models.KPIMap, found, missing []string) {
	kpis = make(models.KPIMap, len(p.registry.Concepts))

	for i := range p.registry.Concepts {
		c := &p.registry.Concepts[i]
		if values, row, ok := findConcept(grid, c); ok {
			kpis[c.Name] = values
			found = append(found, c.Name)
			p.logger.Debug().Str("concept", c.Name).Int("row", row).Msg("Concept found")
			continue
		}
		if c.Required {
			missing = append(missing, c.Name)
			p.logger.Warn().Str("concept", c.Name).Msg("Required concept not found")
			continue
		}
		def := c.Default
		kpis[c.Name] = models.NewSeries(grid.Years, func(string) float64 { return def })
	}

	if len(missing) > 0 {
		p.logger.Warn().Strs("missing", missing).Msg("Concepts not found")
	}
	return kpis, found, missing
}

// findConcept returns the values of the first row whose label text matches c.
func findConcept(grid *models.Grid, c *registry.Concept) (models.Series, int, bool) {
	for _, r := range grid.Rows {
		if !c.Match(grid.Text(r)) {
			continue
		}
		values := models.NewSeries(grid.Years, r.Value)
		if c.Sign < 0 {
			values = values.Abs()
		}
		return values, r.Index, true
	}
	return nil, -1, false
}
