package loader

import (
	"fmt"
	"sort"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/ternarybob/arbor"
)

const (
	// headerScanRows is how many data rows are searched for year tokens
	// when the header row has none.
	headerScanRows = 5
	// labelSampleSize is how many non-empty cells are sampled per column
	// when looking for the concept column.
	labelSampleSize = 20
)

// Legacy export layout assumed when no year can be found: ten columns, the
// concept in the second one and four fiscal years in the last four.
var (
	legacyLabels = []column{
		{"Col1", 0}, {models.ColConcept, 1}, {"Col3", 2},
		{"Col4", 3}, {"Col5", 4}, {"Col6", 5},
	}
	legacyYears = []column{
		{"2025", 6}, {"2024", 7}, {"2023", 8}, {"2022", 9},
	}
)

// PnLLoader loads Profit & Loss sheets, whose year and concept columns are
// found by inspecting the content.
type PnLLoader struct {
	numbers NumberStyle
	logger  arbor.ILogger
}

func NewPnLLoader(numbers NumberStyle, logger arbor.ILogger) *PnLLoader {
	return &PnLLoader{numbers: numbers, logger: logger}
}

func (l *PnLLoader) Load(rows [][]string) (*models.Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: the file is empty or has no data rows", models.ErrValidation)
	}
	header, data := rows[0], rows[1:]
	width := maxWidth(rows)

	var grid *models.Grid
	if years := detectYearColumns(header, data); len(years) > 0 {
		isYear := make(map[int]bool, len(years))
		for _, c := range years {
			isYear[c.index] = true
		}
		concept := detectConceptColumn(data, width, isYear)
		grid = buildGrid(data, []column{{models.ColConcept, concept}}, models.ColConcept, years, l.numbers)
	} else {
		if width < len(legacyLabels)+len(legacyYears) {
			return nil, fmt.Errorf("%w: could not detect the file structure; the sheet must have year columns (e.g. 2022, 2023, 2024, 2025)",
				models.ErrValidation)
		}
		l.logger.Warn().Int("columns", width).Msg("No year columns detected, assuming legacy positional layout")
		grid = buildGrid(data, legacyLabels, models.ColConcept, legacyYears, l.numbers)
	}

	if err := validate(grid); err != nil {
		return nil, err
	}
	l.logger.Info().Int("rows", len(grid.Rows)).Strs("years", grid.Years).Msg("Profit and loss sheet loaded")
	return grid, nil
}

// detectYearColumns finds year tokens in the header row, or failing that in
// the first data rows. The result is sorted by year, newest first; when a
// year appears in several places the last occurrence scanned wins.
func detectYearColumns(header []string, data [][]string) []column {
	byYear := make(map[string]int)
	for i := range header {
		if v := cell(header, i); yearPattern.MatchString(v) {
			byYear[v] = i
		}
	}
	if len(byYear) == 0 {
		for r := 0; r < len(data) && r < headerScanRows; r++ {
			for i := range data[r] {
				if v := cell(data[r], i); yearPattern.MatchString(v) {
					byYear[v] = i
				}
			}
		}
	}

	cols := make([]column, 0, len(byYear))
	for year, idx := range byYear {
		cols = append(cols, column{name: year, index: idx})
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].name > cols[j].name })
	return cols
}

// detectConceptColumn returns the first non-year column where most sampled
// cells are descriptive text. It falls back to the second column, or the
// first when the sheet has only one.
func detectConceptColumn(data [][]string, width int, isYear map[int]bool) int {
	for i := 0; i < width; i++ {
		if isYear[i] {
			continue
		}
		sampled, text := 0, 0
		for _, row := range data {
			v := cell(row, i)
			if v == "" {
				continue
			}
			sampled++
			if isLabelText(v) {
				text++
			}
			if sampled == labelSampleSize {
				break
			}
		}
		if sampled > 0 && text*2 > sampled {
			return i
		}
	}
	if width > 1 {
		return 1
	}
	return 0
}
