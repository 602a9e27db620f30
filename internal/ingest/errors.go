package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileType is returned before any parsing when the uploaded filename does
// not carry the expected extension.
var ErrFileType = errors.New("only .xlsx files are allowed")

// DecodeError means the byte buffer is not a readable xlsx workbook, or the
// expected header row does not exist in it.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode spreadsheet: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot decode spreadsheet: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SchemaError means one or more required columns are missing from the header
// row. The whole file is rejected; there is no partial acceptance.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("file must contain all required columns; missing: %s", strings.Join(e.Missing, ", "))
}

// RowConversionError means a cell that must be numeric could not be coerced.
// Row is the 1-based data row number below the header.
type RowConversionError struct {
	Row    int
	Column string
	Cell   string
	Err    error
}

func (e *RowConversionError) Error() string {
	return fmt.Sprintf("row %d: cannot convert %q in column %q to a number: %v", e.Row, e.Cell, e.Column, e.Err)
}

func (e *RowConversionError) Unwrap() error { return e.Err }

// CheckFileType rejects anything that is not an .xlsx upload. It runs on the
// filename alone, before the file body is read.
func CheckFileType(filename string) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return ErrFileType
	}
	return nil
}
