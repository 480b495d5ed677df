// =============================================================================
// Invoice Automator - Export Engine
// =============================================================================
//
// This module flattens normalized invoices into spreadsheet rows per the
// mapping schema and packages the result for download.
//
// FLATTENING:
//   One output row per (invoice, line item) pair: an invoice with K line
//   items produces K rows, each repeating the invoice-level fields. Cell
//   values resolve through the mapping package's accessors. Duplicate
//   headers in the schema silently last-write-win within a row; that is
//   an accepted schema-authoring responsibility, not validated here.
//
// PACKAGING:
//   A single invoice becomes one xlsx workbook named after its sanitized
//   reference number. A batch becomes one workbook per invoice, bundled
//   into a zip archive named with the current date. Invoices without a
//   usable reference number get an indexed placeholder; name collisions
//   within a batch get a counter suffix.
//
// The engine is a read-only consumer of invoice records.
//
// =============================================================================

package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/mapping"
	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

const (
	sheetName         = "Sheet1"
	workbookExt       = ".xlsx"
	fallbackBase      = "invoice"
	archiveNameFormat = "invoices_archive_%s.zip"
)

// unsafeFilenameChars matches every character that may not appear in an
// output filename.
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_ -]`)

// =============================================================================
// FLATTENING
// =============================================================================

// Flatten expands invoices into output rows per the schema.
//
// RETURNS:
//   - headers: the output column order, schema order with duplicate
//     headers collapsed onto their first position.
//   - rows: one header→value map per (invoice, line item) pair, in
//     invoice order then document row order.
func Flatten(invoices []types.InvoiceData, schema []types.MappingField) (headers []string, rows []map[string]string) {
	seen := make(map[string]bool, len(schema))
	for _, field := range schema {
		if !seen[field.Header] {
			seen[field.Header] = true
			headers = append(headers, field.Header)
		}
	}

	for i := range invoices {
		inv := &invoices[i]
		for j := range inv.LineItems {
			item := &inv.LineItems[j]

			row := make(map[string]string, len(headers))
			for _, field := range schema {
				row[field.Header] = mapping.Resolve(field, inv, item)
			}
			rows = append(rows, row)
		}
	}

	return headers, rows
}

// =============================================================================
// WORKBOOK SERIALIZATION
// =============================================================================

// Workbook serializes the given invoices into one xlsx byte stream: a
// single sheet with one header row followed by the flattened data rows.
func Workbook(invoices []types.InvoiceData, schema []types.MappingField) ([]byte, error) {
	headers, rows := Flatten(invoices, schema)

	f := excelize.NewFile()
	defer f.Close()

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for r, row := range rows {
		for col, header := range headers {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address data cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, row[header]); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// DOWNLOAD PACKAGING
// =============================================================================

// Download is one packaged byte stream ready to be written out.
type Download struct {
	// Filename is the suggested output file name, extension included.
	Filename string

	// Data is the xlsx or zip byte stream.
	Data []byte

	// Archive is true when Data is a zip bundle of per-invoice workbooks.
	Archive bool

	// Entries lists the per-invoice workbook names inside an archive.
	// Empty for a single-workbook download.
	Entries []string
}

// BuildDownload packages the invoices for download at the given time.
//
// One invoice yields a single workbook named after its reference number.
// Several invoices yield one workbook each (the schema is applied per
// invoice, not across the batch), bundled into a date-stamped zip.
func BuildDownload(invoices []types.InvoiceData, schema []types.MappingField, now time.Time) (*Download, error) {
	if len(invoices) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}

	if len(invoices) == 1 {
		data, err := Workbook(invoices, schema)
		if err != nil {
			return nil, err
		}

		base := SanitizeFilename(invoices[0].ReferenceNo)
		if base == "" {
			base = fallbackBase
		}
		return &Download{Filename: base + workbookExt, Data: data}, nil
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	used := make(map[string]bool, len(invoices))
	entries := make([]string, 0, len(invoices))

	for i := range invoices {
		data, err := Workbook(invoices[i:i+1], schema)
		if err != nil {
			return nil, fmt.Errorf("invoice %d: %w", i+1, err)
		}

		base := SanitizeFilename(invoices[i].ReferenceNo)
		if base == "" {
			// Keep placeholder names distinct when several invoices lack
			// a reference number.
			base = fmt.Sprintf("%s_%d", fallbackBase, i+1)
		}

		name := base + workbookExt
		for counter := 1; used[name]; counter++ {
			name = fmt.Sprintf("%s_%d%s", base, counter, workbookExt)
		}
		used[name] = true
		entries = append(entries, name)

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s into archive: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return &Download{
		Filename: fmt.Sprintf(archiveNameFormat, now.Format("2006-01-02")),
		Data:     buf.Bytes(),
		Archive:  true,
		Entries:  entries,
	}, nil
}

// SanitizeFilename replaces every character outside [a-z0-9_ -]
// (case-insensitive) with an underscore.
func SanitizeFilename(s string) string {
	return unsafeFilenameChars.ReplaceAllString(s, "_")
}
