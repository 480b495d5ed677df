// =============================================================================
// Invoice Automator - Customer Master Import
// =============================================================================
//
// This file parses the external customer master spreadsheet used to feed
// the directory. The source is an xlsx workbook; only the first sheet is
// read. The name and code columns are located by fuzzy header match, so
// the exact header wording ("Customer Name", "Name", "CUSTOMER CODE", ...)
// does not matter.
//
// FAILURE POLICY:
//   Import failures surface as a SchemaError for that import action only.
//   The caller leaves the existing directory untouched on error; there is
//   no partial merge after a column-detection failure.
//
// =============================================================================

package directory

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// =============================================================================
// SCHEMA ERROR
// =============================================================================

// SchemaError reports an import source whose layout cannot be understood:
// required columns missing, or no header row at all.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "customer master schema error: " + e.Reason
}

// =============================================================================
// IMPORT
// =============================================================================

// ParseWorkbook reads customer entries from xlsx bytes.
//
// The first sheet must have a header row plus at least one further row.
// The name column is the first header containing "customer name" or
// "name" (case-insensitive); the code column likewise for "customer code"
// or "code". Rows with an empty name or code after trimming are skipped
// silently, so a sheet with only blank data rows yields zero entries.
func ParseWorkbook(data []byte) ([]types.CustomerMasterEntry, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("unreadable workbook: %v", err)}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &SchemaError{Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("failed to read rows: %v", err)}
	}

	if len(rows) < 2 {
		return nil, &SchemaError{Reason: "file appears to be empty or missing headers"}
	}

	nameIdx := findColumn(rows[0], "customer name", "name")
	codeIdx := findColumn(rows[0], "customer code", "code")
	if nameIdx < 0 || codeIdx < 0 {
		return nil, &SchemaError{Reason: "could not locate 'Customer Name' and 'Customer Code' columns"}
	}

	var entries []types.CustomerMasterEntry
	for _, row := range rows[1:] {
		name := cell(row, nameIdx)
		code := cell(row, codeIdx)
		if name == "" || code == "" {
			continue
		}
		entries = append(entries, types.CustomerMasterEntry{
			CustomerName: name,
			CustomerCode: code,
		})
	}

	return entries, nil
}

// findColumn returns the index of the first header cell containing any of
// the given substrings, case-insensitive. Returns -1 when none match.
func findColumn(headers []string, substrings ...string) int {
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, sub := range substrings {
			if strings.Contains(h, sub) {
				return i
			}
		}
	}
	return -1
}

// cell safely reads a trimmed cell value from a possibly short row.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
