package parser

import (
	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/insightdelivered/statement-kpi-extractor/internal/registry"
)

// sectionState is the position of a bounded-section scan.
type sectionState int

const (
	outside sectionState = iota
	inside
)

// sectionAction is what a bounded-section scan does with one row.
type sectionAction int

const (
	skipRow sectionAction = iota
	captureRow
)

// step applies one row label to a bounded-section scan. A parent row opens
// the section (or keeps it open) without being captured; a stop row closes
// it; item rows are captured only while the section is open.
func step(state sectionState, d *registry.Detail, label string) (sectionState, sectionAction) {
	switch state {
	case outside:
		if d.OpensSection(label) {
			return inside, skipRow
		}
		return outside, skipRow
	case inside:
		if d.OpensSection(label) {
			return inside, skipRow
		}
		if d.ClosesSection(label) {
			return outside, skipRow
		}
		if _, ok := d.ItemName(label); ok {
			return inside, captureRow
		}
		return inside, skipRow
	}
	return state, skipRow
}

// ExtractDetail reads one detail breakdown from the concept column of grid.
// Values are stored as magnitudes. When two rows yield the same name the
// later row wins.
func ExtractDetail(grid *models.Grid, d *registry.Detail) models.DetailMap {
	out := make(models.DetailMap)
	state := outside

	for _, r := range grid.Rows {
		label := grid.PrimaryLabel(r)
		if label == "" {
			continue
		}

		switch d.Mode {
		case registry.ModeSection:
			var action sectionAction
			state, action = step(state, d, label)
			if action == captureRow {
				name, _ := d.ItemName(label)
				out[name] = models.NewSeries(grid.Years, r.Value).Abs()
			}
		case registry.ModeDirect:
			if name, ok := d.ItemName(label); ok {
				out[name] = models.NewSeries(grid.Years, r.Value).Abs()
			}
		case registry.ModeCategories:
			if name := d.Category(label); name != "" {
				out[name] = models.NewSeries(grid.Years, r.Value).Abs()
			}
		}
	}
	return out
}
