package extractor

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// readCSV parses delimited text exports. Spanish accounting tools usually
// write ';'-separated Windows-1252 files, so both are handled.
func readCSV(data []byte, fallback encoding.Encoding) ([][]string, error) {
	text, err := decodeText(data, fallback)
	if err != nil {
		return nil, err
	}
	if !isReadableText(text) {
		return nil, fmt.Errorf("content is binary or not a recognizable workbook")
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// decodeText returns data as UTF-8, decoding with fallback when the bytes
// are not valid UTF-8. A UTF-8 byte order mark is dropped.
func decodeText(data []byte, fallback encoding.Encoding) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, _, err := transform.Bytes(fallback.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("decoding fallback charset: %w", err)
	}
	return string(out), nil
}

// sniffDelimiter picks ';', '\t' or ',' by frequency in the first line.
func sniffDelimiter(text string) rune {
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}
	best, bestCount := ',', strings.Count(first, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(first, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// isReadableText rejects content with NUL bytes or a high share of control
// characters, which is what a corrupt or non-workbook upload looks like.
func isReadableText(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	total, control := 0, 0
	for _, r := range text {
		total++
		if r == 0 || r == utf8.RuneError {
			return false
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			control++
		}
	}
	return float64(control)/float64(total) < 0.05
}
