// Package writer renders an analysis as JSON or as a text summary.
package writer

import (
	"fmt"
	"io"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
)

// Writer renders an analysis to a stream or a file.
type Writer interface {
	Write(out io.Writer, a *models.Analysis) error
	WriteToFile(path string, a *models.Analysis) error
}

// New returns the writer for format, "text" or "json". details adds the
// detail breakdowns to the text summary.
func New(format string, details bool) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{Details: details}, nil
	case "json":
		return &JSONWriter{Indent: true}, nil
	default:
		return nil, fmt.Errorf("unknown format %q, supported: text, json", format)
	}
}
