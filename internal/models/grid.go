package models

import (
	"strings"
)

// Logical column names used by the loaders.
const (
	ColConcept = "Concepto"
)

// Row is one spreadsheet row after cleaning: its text cells, addressed by
// logical column name, and its numeric year cells.
type Row struct {
	Index  int                // 0-based position among the data rows of the sheet
	Labels map[string]string  // label column name -> trimmed cell text
	Values map[string]float64 // year -> value; every grid year is present
}

// Label returns the text of one label column, or "" if absent.
func (r Row) Label(col string) string {
	return r.Labels[col]
}

// Value returns the value for year, 0 if the year is not a grid column.
func (r Row) Value(year string) float64 {
	return r.Values[year]
}

// Grid is a normalized sheet: label columns in their original order, year
// columns tagged with a 4-digit fiscal year, rows in sheet order.
type Grid struct {
	LabelColumns []string // logical names of the text columns, sheet order
	Primary      string   // label column holding the concept name
	Years        []string // descending, duplicate-free
	Rows         []Row
}

// Text concatenates the non-empty label cells of r in column order.
func (g *Grid) Text(r Row) string {
	return g.TextOf(r, g.LabelColumns...)
}

// TextOf concatenates the non-empty cells of the given label columns.
func (g *Grid) TextOf(r Row, cols ...string) string {
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		if v := r.Labels[col]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// PrimaryLabel returns the concept-name cell of r.
func (g *Grid) PrimaryLabel(r Row) string {
	return r.Labels[g.Primary]
}
