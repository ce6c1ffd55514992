package models

import "errors"

// StatementKind identifies the accounting statement carried by a workbook.
type StatementKind string

const (
	StatementPnL     StatementKind = "pyg"
	StatementBalance StatementKind = "balance"
)

// Error classes surfaced by loading and analysis. Callers test with errors.Is.
var (
	// ErrLoad means the bytes could not be read as a tabular workbook.
	ErrLoad = errors.New("load failure")
	// ErrValidation means the sheet was read but its structure is unusable.
	ErrValidation = errors.New("validation failure")
	// ErrInternal wraps unexpected failures during extraction.
	ErrInternal = errors.New("internal failure")
)

// StatementInfo holds everything extracted from one statement document.
type StatementInfo struct {
	Kind    StatementKind        `json:"kind"`
	Years   []string             `json:"years"`
	KPIs    KPIMap               `json:"kpis"`
	Details map[string]DetailMap `json:"details"`
	Found   []string             `json:"found,omitempty"`
	Missing []string             `json:"missing,omitempty"`
	Rows    int                  `json:"rows"`
}

// Analysis is the combined result of one P&L document and an optional
// balance document. It is never modified after the analyzer returns it.
type Analysis struct {
	ID         string            `json:"id"`
	Years      []string          `json:"years"`
	PnL        *StatementInfo    `json:"pyg"`
	Balance    *StatementInfo    `json:"balance,omitempty"`
	Ratios     RatioMap          `json:"ratios,omitempty"`
	Indicators IndicatorMap      `json:"indicators"`
	Variations map[string]Series `json:"variations"`
	HasBalance bool              `json:"hasBalance"`
	Warnings   []string          `json:"warnings,omitempty"`
}
