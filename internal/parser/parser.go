package parser

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/insightdelivered/statement-kpi-extractor/internal/registry"
	"github.com/ternarybob/arbor"
)

// Parser defines the interface for statement extractors.
type Parser interface {
	// Parse extracts concepts and detail breakdowns from a loaded grid.
	// Concepts that cannot be found are reported, never returned as errors.
	Parse(grid *models.Grid) (*models.StatementInfo, error)
	// Kind returns the statement kind the parser handles.
	Kind() models.StatementKind
}

// New returns the appropriate parser for the given statement kind.
func New(kind models.StatementKind, reg *registry.Registry, logger arbor.ILogger) (Parser, error) {
	switch kind {
	case models.StatementPnL:
		return NewPnLParser(reg, logger), nil
	case models.StatementBalance:
		return NewBalanceParser(reg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported statement kind: %q", kind)
	}
}

// Identifiers that only appear in one kind of statement. Balance markers are
// checked first because a balance sheet also carries the year's result.
var (
	balanceMarkers = []string{"total activo", "patrimonio neto y pasivo", "activo no corriente", "pasivo corriente"}
	pnlMarkers     = []string{"cifra de negocios", "resultado de explotación", "resultado de explotacion", "aprovisionamientos", "gastos de personal", "resultado del ejercicio"}
)

// AutoDetect tries to identify the statement kind from the raw sheet content.
func AutoDetect(rows [][]string) (models.StatementKind, error) {
	var b strings.Builder
	for _, row := range rows {
		for _, c := range row {
			b.WriteString(c)
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	combined := registry.Normalize(b.String())

	if containsAny(combined, balanceMarkers) {
		return models.StatementBalance, nil
	}
	if containsAny(combined, pnlMarkers) {
		return models.StatementPnL, nil
	}

	return "", fmt.Errorf("could not auto-detect the statement kind from the sheet content; please pass the balance sheet with -balance")
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
