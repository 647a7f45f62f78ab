package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"
)

// ReadCSV reads a delimited file with a header row into Rows for the
// mapper. Short records are padded per-header; extra cells are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}

		row := make(Row, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadXLSX reads the first sheet of an Excel workbook into Rows. Cell
// values are taken raw so numeric date cells keep their serial form for
// the mapper to decode.
func ReadXLSX(path string) ([]Row, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := wb.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, nil
	}

	header := make([]string, 0, len(sheet.Rows[0].Cells))
	for _, cell := range sheet.Rows[0].Cells {
		header = append(header, strings.TrimSpace(cell.Value))
	}

	var rows []Row
	for _, sheetRow := range sheet.Rows[1:] {
		row := make(Row, len(header))
		for i, cell := range sheetRow.Cells {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = cell.Value
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
