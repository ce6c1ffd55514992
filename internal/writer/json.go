package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
)

// JSONWriter writes an analysis snapshot as JSON.
type JSONWriter struct {
	Indent bool
}

// WriteToFile writes the analysis to a JSON file at the given path.
func (w *JSONWriter) WriteToFile(path string, a *models.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, a)
}

// Write writes the analysis as JSON to the given writer.
func (w *JSONWriter) Write(out io.Writer, a *models.Analysis) error {
	enc := json.NewEncoder(out)
	if w.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
