package loader

import (
	"fmt"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/ternarybob/arbor"
)

// Loader turns the raw rows of a sheet into a normalized Grid.
type Loader interface {
	// Load consumes the first row as the header row. It fails with
	// models.ErrValidation when the sheet structure cannot be used.
	Load(rows [][]string) (*models.Grid, error)
}

// New returns the loader for the given statement kind. numbers says how the
// amounts of the sheet are written.
func New(kind models.StatementKind, numbers NumberStyle, logger arbor.ILogger) (Loader, error) {
	switch kind {
	case models.StatementPnL:
		return NewPnLLoader(numbers, logger), nil
	case models.StatementBalance:
		return NewBalanceLoader(numbers, logger), nil
	default:
		return nil, fmt.Errorf("unsupported statement kind: %q", kind)
	}
}

// column binds a logical column name to its position in the raw sheet.
type column struct {
	name  string
	index int
}

// buildGrid keeps only the given label and year columns of each data row,
// coercing every year cell to a number.
func buildGrid(data [][]string, labels []column, primary string, years []column, numbers NumberStyle) *models.Grid {
	g := &models.Grid{
		LabelColumns: make([]string, 0, len(labels)),
		Primary:      primary,
		Years:        make([]string, 0, len(years)),
		Rows:         make([]models.Row, 0, len(data)),
	}
	for _, c := range labels {
		g.LabelColumns = append(g.LabelColumns, c.name)
	}
	for _, c := range years {
		g.Years = append(g.Years, c.name)
	}

	for i, raw := range data {
		row := models.Row{
			Index:  i,
			Labels: make(map[string]string, len(labels)),
			Values: make(map[string]float64, len(years)),
		}
		for _, c := range labels {
			if v := cell(raw, c.index); v != "" {
				row.Labels[c.name] = v
			}
		}
		for _, c := range years {
			row.Values[c.name] = coerce(cell(raw, c.index), numbers)
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// validate rejects grids that carry no usable data.
func validate(g *models.Grid) error {
	if len(g.Rows) == 0 {
		return fmt.Errorf("%w: the file is empty or has no data rows", models.ErrValidation)
	}
	if len(g.Years) == 0 {
		return fmt.Errorf("%w: no year columns found in the file", models.ErrValidation)
	}

	nonzero := 0
	for _, r := range g.Rows {
		for _, y := range g.Years {
			if r.Values[y] != 0 {
				nonzero++
			}
		}
	}
	if nonzero == 0 {
		return fmt.Errorf("%w: the file has no numeric values; check that the year columns (%v) contain data",
			models.ErrValidation, g.Years)
	}
	return nil
}
