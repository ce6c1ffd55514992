// Package analyzer runs the extraction pipeline for one P&L document and an
// optional balance sheet.
package analyzer

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/insightdelivered/statement-kpi-extractor/internal/extractor"
	"github.com/insightdelivered/statement-kpi-extractor/internal/loader"
	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/insightdelivered/statement-kpi-extractor/internal/parser"
	"github.com/insightdelivered/statement-kpi-extractor/internal/ratios"
	"github.com/insightdelivered/statement-kpi-extractor/internal/registry"
	"github.com/ternarybob/arbor"
)

// Document is an uploaded workbook.
type Document struct {
	Name string
	Data []byte
}

// Analyzer is stateless apart from its read-only registry and can serve
// concurrent requests.
type Analyzer struct {
	registry *registry.Registry
	reader   *extractor.Reader
	logger   arbor.ILogger
}

// New returns an Analyzer. A nil reader uses the default workbook reader.
func New(reg *registry.Registry, reader *extractor.Reader, logger arbor.ILogger) *Analyzer {
	if reader == nil {
		reader, _ = extractor.NewReader("")
	}
	return &Analyzer{registry: reg, reader: reader, logger: logger}
}

// Analyze extracts the P&L document and, when given, the balance sheet.
// Failures on the P&L document are returned as errors wrapping
// models.ErrLoad, models.ErrValidation or models.ErrInternal. Failures on the
// balance sheet never abort: the result is P&L only, with a warning.
func (a *Analyzer) Analyze(pyg Document, balance *Document) (*models.Analysis, error) {
	id := uuid.NewString()

	pnl, err := a.process(id, models.StatementPnL, pyg)
	if err != nil {
		return nil, err
	}

	result := &models.Analysis{
		ID:         id,
		Years:      pnl.Years,
		PnL:        pnl,
		Indicators: ratios.Indicators(pnl.KPIs, pnl.Years),
		Variations: ratios.YearOverYear(pnl.KPIs, pnl.Years),
	}
	for _, name := range pnl.Missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("required concept not found: %s", name))
	}

	if balance == nil {
		return result, nil
	}
	bal, err := a.process(id, models.StatementBalance, *balance)
	if err != nil {
		a.logger.Warn().Err(err).Str("id", id).Str("file", balance.Name).Msg("Balance sheet unusable, continuing with profit and loss only")
		result.Warnings = append(result.Warnings, fmt.Sprintf("balance sheet ignored: %v", err))
		return result, nil
	}
	result.Balance = bal
	result.HasBalance = true
	result.Ratios = ratios.Compute(bal.KPIs, pnl.KPIs, pnl.Years)
	return result, nil
}

// Classify reads a document and guesses which statement it holds.
func (a *Analyzer) Classify(doc Document) (models.StatementKind, error) {
	rows, err := a.reader.ExtractRows(doc.Data, doc.Name)
	if err != nil {
		return "", err
	}
	return parser.AutoDetect(rows)
}

// process runs one document through extraction, loading and parsing. Panics
// and unclassified errors come back as models.ErrInternal.
func (a *Analyzer) process(id string, kind models.StatementKind, doc Document) (info *models.StatementInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info, err = nil, fmt.Errorf("%w: processing %s: %v", models.ErrInternal, doc.Name, r)
		}
		if err != nil && !errors.Is(err, models.ErrLoad) && !errors.Is(err, models.ErrValidation) {
			if !errors.Is(err, models.ErrInternal) {
				err = fmt.Errorf("%w: processing %s: %w", models.ErrInternal, doc.Name, err)
			}
			a.logger.Error().Err(err).Str("id", id).Str("file", doc.Name).Str("kind", string(kind)).Msg("Unexpected failure during extraction")
		}
	}()

	rows, err := a.reader.ExtractRows(doc.Data, doc.Name)
	if err != nil {
		return nil, err
	}
	l, err := loader.New(kind, numberStyle(doc), a.logger)
	if err != nil {
		return nil, err
	}
	grid, err := l.Load(rows)
	if err != nil {
		return nil, err
	}
	p, err := parser.New(kind, a.registry, a.logger)
	if err != nil {
		return nil, err
	}
	info, err = p.Parse(grid)
	if err != nil {
		return nil, err
	}

	a.logger.Info().Str("id", id).Str("file", doc.Name).Str("kind", string(kind)).
		Int("found", len(info.Found)).Int("missing", len(info.Missing)).Msg("Statement extracted")
	return info, nil
}

// numberStyle tells the loader whether amounts are typed Spanish text (CSV
// exports) or raw workbook cell values.
func numberStyle(doc Document) loader.NumberStyle {
	if extractor.DetectFormat(doc.Data, doc.Name) == extractor.FormatCSV {
		return loader.LocaleNumbers
	}
	return loader.RawNumbers
}
