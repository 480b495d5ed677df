// =============================================================================
// Invoice Automator - Column Mapping Schema
// =============================================================================
//
// This module owns the user-editable output column schema: an ordered list
// of column definitions, each bound to an invoice field, a line-item
// field, or a static literal. The export engine walks this list in order
// to build each output row.
//
// FIELD ADDRESSING:
//   Columns address invoice/item fields by string key ("referenceNo",
//   "sku", ...). Go has no safe reflective property access for this, so
//   resolution goes through an explicit closed set of addressable field
//   names mapped by accessor functions. A key outside the set resolves to
//   the empty string at export time; the schema editor is the authoring
//   surface, the engine stays permissive.
//
// PERSISTENCE:
//   The schema is one of the two persisted configuration blobs, stored as
//   YAML in the data directory. An absent file yields the built-in
//   default schema.
//
// =============================================================================

package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// =============================================================================
// FIELD ACCESSORS
// =============================================================================

// invoiceFields is the closed set of addressable invoice-level keys.
var invoiceFields = map[string]func(*types.InvoiceData) string{
	"referenceNo":  func(inv *types.InvoiceData) string { return inv.ReferenceNo },
	"customerName": func(inv *types.InvoiceData) string { return inv.CustomerName },
	"customerCode": func(inv *types.InvoiceData) string { return inv.CustomerCode },
	"date":         func(inv *types.InvoiceData) string { return inv.Date },
}

// itemFields is the closed set of addressable line-item keys.
var itemFields = map[string]func(*types.LineItem) string{
	"sku":         func(it *types.LineItem) string { return it.SKU },
	"description": func(it *types.LineItem) string { return it.Description },
	"batchId":     func(it *types.LineItem) string { return it.BatchID },
	"quantity":    func(it *types.LineItem) string { return formatNumber(it.Quantity) },
	"unitPrice":   func(it *types.LineItem) string { return formatNumber(it.UnitPrice) },
	"total":       func(it *types.LineItem) string { return formatNumber(it.Total) },
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// InvoiceFieldKeys returns the addressable invoice-level keys, for
// editor/help output.
func InvoiceFieldKeys() []string {
	return []string{"referenceNo", "customerName", "customerCode", "date"}
}

// ItemFieldKeys returns the addressable line-item keys.
func ItemFieldKeys() []string {
	return []string{"sku", "description", "batchId", "quantity", "unitPrice", "total"}
}

// Resolve produces the cell value for one column definition against the
// given invoice and line item.
//
//   - SourceInvoice: the invoice field named by Value, "" if unknown.
//   - SourceItem: the line-item field named by Value, "" if unknown.
//   - SourceStatic: the literal Value string as-is.
//
// Any other source resolves to "".
func Resolve(field types.MappingField, inv *types.InvoiceData, item *types.LineItem) string {
	switch field.Source {
	case types.SourceInvoice:
		if get, ok := invoiceFields[field.Value]; ok && inv != nil {
			return get(inv)
		}
		return ""
	case types.SourceItem:
		if get, ok := itemFields[field.Value]; ok && item != nil {
			return get(item)
		}
		return ""
	case types.SourceStatic:
		return field.Value
	default:
		return ""
	}
}

// =============================================================================
// DEFAULT SCHEMA
// =============================================================================

// Default returns the built-in 12-column schema matching the bulk-upload
// layout the exports feed into. Quantity and Export Price are fixed
// literals in that layout; the real extracted quantity lands in the
// trailing Quantity2 column.
func Default() []types.MappingField {
	fields := []types.MappingField{
		{Header: "Order no", Source: types.SourceInvoice, Value: "referenceNo"},
		{Header: "Code", Source: types.SourceItem, Value: "sku"},
		{Header: "Customer Code", Source: types.SourceInvoice, Value: "customerCode"},
		{Header: "Quantity", Source: types.SourceStatic, Value: "0"},
		{Header: "Export Price", Source: types.SourceStatic, Value: "1"},
		{Header: "Currency code", Source: types.SourceStatic, Value: "LKR"},
		{Header: "Site code", Source: types.SourceStatic, Value: ""},
		{Header: "Location from", Source: types.SourceStatic, Value: ""},
		{Header: "Location to", Source: types.SourceStatic, Value: ""},
		{Header: "Doc.ref", Source: types.SourceStatic, Value: ""},
		{Header: "Lot no.", Source: types.SourceItem, Value: "batchId"},
		{Header: "Quantity2", Source: types.SourceItem, Value: "quantity"},
	}

	for i := range fields {
		fields[i].ID = uuid.New().String()
	}
	return fields
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// schemaFile is the on-disk YAML shape.
type schemaFile struct {
	Fields []types.MappingField `yaml:"fields"`
}

// Load reads a persisted schema from path. A missing file is not an
// error; it yields the default schema.
func Load(path string) ([]types.MappingField, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read mapping schema: %w", err)
	}

	var file schemaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mapping schema: %w", err)
	}

	// A persisted but empty field list is treated as unconfigured.
	if len(file.Fields) == 0 {
		return Default(), nil
	}

	// Backfill ids for hand-edited files.
	for i := range file.Fields {
		if file.Fields[i].ID == "" {
			file.Fields[i].ID = uuid.New().String()
		}
	}

	return file.Fields, nil
}

// Save writes the schema to path via temp file and rename.
func Save(path string, fields []types.MappingField) error {
	data, err := yaml.Marshal(schemaFile{Fields: fields})
	if err != nil {
		return fmt.Errorf("failed to encode mapping schema: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping schema: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace mapping schema: %w", err)
	}

	return nil
}
