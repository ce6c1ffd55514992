package extractor

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the first sheet's rows with raw (unformatted) cell values,
// so numbers arrive without locale grouping or currency symbols.
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

// readXLS reads the first sheet of a legacy BIFF workbook. The decoder
// panics on some malformed files, so panics are turned into errors.
func readXLS(data []byte) (rows [][]string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			rows, err = nil, fmt.Errorf("malformed xls workbook: %v", rec)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	sheet := book.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
