package loader

import (
	"fmt"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/ternarybob/arbor"
)

// Fixed balance sheet layout:
// [Col1, Col2, Concepto, Col4, Col5, Col6, 2025, 2024, 2023, 2022].
var (
	balanceLabels = []column{
		{"Col1", 0}, {"Col2", 1}, {models.ColConcept, 2},
		{"Col4", 3}, {"Col5", 4}, {"Col6", 5},
	}
	balanceYears = []column{
		{"2025", 6}, {"2024", 7}, {"2023", 8}, {"2022", 9},
	}
)

// BalanceLoader loads balance sheets, which always use the fixed layout.
// Columns beyond the tenth are ignored.
type BalanceLoader struct {
	numbers NumberStyle
	logger  arbor.ILogger
}

func NewBalanceLoader(numbers NumberStyle, logger arbor.ILogger) *BalanceLoader {
	return &BalanceLoader{numbers: numbers, logger: logger}
}

func (l *BalanceLoader) Load(rows [][]string) (*models.Grid, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: the balance sheet is empty or has no data rows", models.ErrValidation)
	}
	want := len(balanceLabels) + len(balanceYears)
	if width := maxWidth(rows); width < want {
		return nil, fmt.Errorf("%w: the balance sheet has %d columns, expected %d", models.ErrValidation, width, want)
	}

	grid := buildGrid(rows[1:], balanceLabels, models.ColConcept, balanceYears, l.numbers)
	l.logger.Info().Int("rows", len(grid.Rows)).Strs("years", grid.Years).Msg("Balance sheet loaded")
	return grid, nil
}
