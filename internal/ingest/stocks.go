package ingest

import "github.com/shopspring/decimal"

// StockHeaderRow is the 0-based header offset of Groww stock reports; the
// ten rows above it are provider boilerplate.
const StockHeaderRow = 10

var stockColumns = []string{
	"Stock Name",
	"ISIN",
	"Quantity",
	"Average buy price",
	"Buy value",
	"Closing price",
	"Closing value",
	"Unrealised P&L",
}

// StockRow is one normalized stock line from the report, before enrichment
// and storage.
type StockRow struct {
	Name          string
	ISIN          string
	Quantity      decimal.Decimal
	AvgBuyPrice   decimal.Decimal
	BuyValue      decimal.Decimal
	ClosingPrice  decimal.Decimal
	ClosingValue  decimal.Decimal
	UnrealizedPnL decimal.Decimal
}

// ParseStockReport decodes and normalizes a Groww stock holdings report.
// Stock reports are expected complete: any numeric cell that does not parse
// fails the entire file, and no rows are dropped.
func ParseStockReport(data []byte) ([]StockRow, error) {
	rp := report[StockRow]{
		headerRow: StockHeaderRow,
		columns:   stockColumns,
		convert:   convertStockRow,
	}
	return rp.parse(data)
}

func convertStockRow(n int, r row) (StockRow, bool, error) {
	rec := StockRow{
		Name: r.cell("Stock Name"),
		ISIN: r.cell("ISIN"),
	}
	numeric := []struct {
		column string
		dst    *decimal.Decimal
	}{
		{"Quantity", &rec.Quantity},
		{"Average buy price", &rec.AvgBuyPrice},
		{"Buy value", &rec.BuyValue},
		{"Closing price", &rec.ClosingPrice},
		{"Closing value", &rec.ClosingValue},
		{"Unrealised P&L", &rec.UnrealizedPnL},
	}
	for _, f := range numeric {
		cell := r.cell(f.column)
		d, err := parseDecimal(cell)
		if err != nil {
			return StockRow{}, false, &RowConversionError{Row: n, Column: f.column, Cell: cell, Err: err}
		}
		*f.dst = d
	}
	return rec, true, nil
}
