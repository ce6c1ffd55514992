package extractor

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Format is a supported workbook encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat decides how data should be read. Magic bytes win over the
// file extension, which is only consulted for text content.
func DetectFormat(data []byte, filename string) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	}
	return FormatCSV
}

// Reader reads workbooks. The zero value is not usable; use NewReader.
type Reader struct {
	fallback encoding.Encoding
}

// NewReader returns a Reader that decodes CSV files that are not valid UTF-8
// with the named IANA charset, windows-1252 when the name is empty.
func NewReader(fallbackCharset string) (*Reader, error) {
	if fallbackCharset == "" {
		return &Reader{fallback: charmap.Windows1252}, nil
	}
	enc, err := ianaindex.IANA.Encoding(fallbackCharset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", fallbackCharset, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", fallbackCharset)
	}
	return &Reader{fallback: enc}, nil
}

var defaultReader = &Reader{fallback: charmap.Windows1252}

// ExtractRows reads data with the default Reader.
func ExtractRows(data []byte, filename string) ([][]string, error) {
	return defaultReader.ExtractRows(data, filename)
}

// ExtractRows reads the first sheet of a workbook into a row-major grid of
// raw cell strings. The first row is the sheet's header row. Rows may have
// different lengths. Any failure to read the bytes is reported as
// models.ErrLoad.
func (r *Reader) ExtractRows(data []byte, filename string) ([][]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file %q is empty", models.ErrLoad, filename)
	}

	var (
		rows [][]string
		err  error
	)
	format := DetectFormat(data, filename)
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(data)
	case FormatXLS:
		rows, err = readXLS(data)
	default:
		rows, err = readCSV(data, r.fallback)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %q as %s. Make sure the file is a valid Excel workbook (.xlsx or .xls) or CSV: %v",
			models.ErrLoad, filename, format, err)
	}
	return rows, nil
}
