package ingest

import (
	"strings"

	"github.com/shopspring/decimal"
)

// report is the shared pipeline both holding types run through: decode the
// workbook at a fixed header offset, validate the column set, then convert
// each data row. convert may drop a row by returning keep=false; any error
// it returns aborts the whole file.
type report[T any] struct {
	headerRow int
	columns   []string
	convert   func(n int, r row) (rec T, keep bool, err error)
}

func (rp report[T]) parse(data []byte) ([]T, error) {
	s, err := decodeSheet(data, rp.headerRow)
	if err != nil {
		return nil, err
	}
	if err := s.requireColumns(rp.columns); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(s.rows))
	for i := range s.rows {
		rec, keep, err := rp.convert(i+1, s.row(i))
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out, nil
}

// parseDecimal coerces a cell to a decimal, tolerating the thousands
// separators excelize surfaces from formatted number cells.
func parseDecimal(cell string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(cell, ",", ""))
}
