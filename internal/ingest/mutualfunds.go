package ingest

import "github.com/shopspring/decimal"

// MutualFundHeaderRow is the 0-based header offset of Groww mutual fund
// reports; twenty boilerplate rows precede it.
const MutualFundHeaderRow = 20

var mutualFundColumns = []string{
	"Scheme Name",
	"AMC",
	"Category",
	"Sub-category",
	"Folio No.",
	"Source",
	"Units",
	"Invested Value",
	"Current Value",
	"Returns",
	"XIRR",
}

// MutualFundRow is one normalized scheme line from the report.
type MutualFundRow struct {
	SchemeName    string
	AMC           string
	Category      string
	SubCategory   string
	FolioNo       string
	Source        string
	Units         decimal.Decimal
	InvestedValue decimal.Decimal
	CurrentValue  decimal.Decimal
	Returns       decimal.Decimal
	XIRR          string
}

// ParseMutualFundReport decodes and normalizes a Groww mutual fund report.
// Unlike stock reports these commonly have sparse trailing rows, so blank
// rows and rows without a scheme name are dropped, and blank numeric cells
// default to zero instead of failing the file.
func ParseMutualFundReport(data []byte) ([]MutualFundRow, error) {
	rp := report[MutualFundRow]{
		headerRow: MutualFundHeaderRow,
		columns:   mutualFundColumns,
		convert:   convertMutualFundRow,
	}
	return rp.parse(data)
}

func convertMutualFundRow(n int, r row) (MutualFundRow, bool, error) {
	if r.blank() {
		return MutualFundRow{}, false, nil
	}
	scheme := r.cell("Scheme Name")
	if scheme == "" {
		// Rows with no scheme identity are not holdings.
		return MutualFundRow{}, false, nil
	}
	rec := MutualFundRow{
		SchemeName:  scheme,
		AMC:         r.cell("AMC"),
		Category:    r.cell("Category"),
		SubCategory: r.cell("Sub-category"),
		FolioNo:     r.cell("Folio No."),
		Source:      r.cell("Source"),
		XIRR:        r.cell("XIRR"),
	}
	numeric := []struct {
		column string
		dst    *decimal.Decimal
	}{
		{"Units", &rec.Units},
		{"Invested Value", &rec.InvestedValue},
		{"Current Value", &rec.CurrentValue},
		{"Returns", &rec.Returns},
	}
	for _, f := range numeric {
		cell := r.cell(f.column)
		if cell == "" {
			*f.dst = decimal.Zero
			continue
		}
		d, err := parseDecimal(cell)
		if err != nil {
			return MutualFundRow{}, false, &RowConversionError{Row: n, Column: f.column, Cell: cell, Err: err}
		}
		*f.dst = d
	}
	return rec, true, nil
}
