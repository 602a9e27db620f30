package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheet is the decoded first worksheet of a report: a header row plus the
// data rows below it. Groww reports prefix the table with boilerplate and
// disclaimer rows, so the header sits at a fixed non-zero offset.
type sheet struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// decodeSheet parses xlsx bytes and locates the header at headerRow
// (0-based). Everything above the header is skipped.
func decodeSheet(data []byte, headerRow int) (*sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Reason: "not a valid xlsx workbook", Err: err}
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, &DecodeError{Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, &DecodeError{Reason: "cannot read sheet rows", Err: err}
	}
	if len(rows) <= headerRow {
		return nil, &DecodeError{Reason: fmt.Sprintf("header row %d not found (sheet has %d rows)", headerRow+1, len(rows))}
	}

	s := &sheet{index: map[string]int{}}
	for i, cell := range rows[headerRow] {
		col := strings.TrimSpace(cell)
		s.columns = append(s.columns, col)
		if col != "" {
			if _, dup := s.index[col]; !dup {
				s.index[col] = i
			}
		}
	}
	s.rows = rows[headerRow+1:]
	return s, nil
}

// requireColumns rejects the file when any required column is absent from
// the header. All missing names are reported at once.
func (s *sheet) requireColumns(required []string) error {
	var missing []string
	for _, col := range required {
		if _, ok := s.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// row gives column-name access to one data row. excelize drops trailing
// empty cells, so out-of-range reads count as blank.
type row struct {
	sheet *sheet
	cells []string
}

func (s *sheet) row(i int) row {
	return row{sheet: s, cells: s.rows[i]}
}

func (r row) cell(column string) string {
	i, ok := r.sheet.index[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
