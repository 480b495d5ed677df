// =============================================================================
// Invoice Automator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - sanitize / reconcile / normalize
//   - directory / mapping / export
//   - extractor / pipeline
//
// =============================================================================

package types

// =============================================================================
// CUSTOMER PROFILES
// =============================================================================

// CustomerProfile selects the extraction prompt and the sanitization rules
// for a customer's invoice layout. The set of profiles is closed; adding a
// new customer format means adding a new constant here plus its rules in
// the sanitize and extractor packages.
type CustomerProfile string

const (
	// ProfileStandard is the default profile. SKU and batch number are
	// printed in separate columns on the invoice.
	ProfileStandard CustomerProfile = "standard"

	// ProfileCombined covers invoices where SKU and batch number are
	// transmitted as one combined stock field, e.g. "CODE*LOT".
	ProfileCombined CustomerProfile = "combined"
)

// ParseProfile maps a configuration string onto a known profile.
// Unknown values fall back to ProfileStandard.
func ParseProfile(s string) CustomerProfile {
	if CustomerProfile(s) == ProfileCombined {
		return ProfileCombined
	}
	return ProfileStandard
}

// =============================================================================
// INVOICE RECORDS
// =============================================================================

// LineItem is one purchasable unit on an invoice, after normalization.
type LineItem struct {
	// SKU is the canonical item code, post-sanitization.
	SKU string `json:"sku" yaml:"sku"`

	// Description is the free-text item description from the document.
	Description string `json:"description" yaml:"description"`

	// BatchID is the lot/batch number, post-sanitization. May be empty.
	BatchID string `json:"batchId" yaml:"batch_id"`

	// Quantity is the (possibly repaired) item count.
	Quantity float64 `json:"quantity" yaml:"quantity"`

	// UnitPrice is the per-unit price as a plain decimal.
	UnitPrice float64 `json:"unitPrice" yaml:"unit_price"`

	// Total is the line total as read from the document. Quantity is
	// reconciled against UnitPrice and Total; the other two are trusted.
	Total float64 `json:"total" yaml:"total"`
}

// InvoiceData is one document's extracted and normalized content.
// Line item order is preserved from extraction; it represents the row
// order on the original document.
type InvoiceData struct {
	ReferenceNo  string     `json:"referenceNo" yaml:"reference_no"`
	CustomerName string     `json:"customerName" yaml:"customer_name"`
	CustomerCode string     `json:"customerCode" yaml:"customer_code"`
	Date         string     `json:"date" yaml:"date"`
	LineItems    []LineItem `json:"lineItems" yaml:"line_items"`
}

// =============================================================================
// RAW EXTRACTION SHAPES
// =============================================================================

// RawLineItem is a line item as returned by the extraction collaborator.
// All fields are best-effort; missing values decode to zero values and are
// coerced downstream by the normalizer.
type RawLineItem struct {
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	BatchID     string  `json:"batchId"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// RawInvoice is the loosely-typed record produced by the extraction
// collaborator before normalization.
type RawInvoice struct {
	ReferenceNo  string        `json:"referenceNo"`
	CustomerName string        `json:"customerName"`
	CustomerCode string        `json:"customerCode"`
	Date         string        `json:"date"`
	LineItems    []RawLineItem `json:"lineItems"`
}

// =============================================================================
// CUSTOMER DIRECTORY
// =============================================================================

// CustomerMasterEntry is one customer-name-to-code mapping. Names are
// matched case-insensitively after trimming; the directory holds at most
// one active code per distinct name.
type CustomerMasterEntry struct {
	CustomerName string `json:"customerName" yaml:"customer_name"`
	CustomerCode string `json:"customerCode" yaml:"customer_code"`
}

// =============================================================================
// MAPPING SCHEMA
// =============================================================================

// MappingSource identifies where a mapped column's value comes from.
type MappingSource string

const (
	// SourceInvoice reads the value from an invoice-level field.
	SourceInvoice MappingSource = "invoice"

	// SourceItem reads the value from the current line item.
	SourceItem MappingSource = "item"

	// SourceStatic emits the literal Value string as-is.
	SourceStatic MappingSource = "static"
)

// MappingField is one output-column definition. The ordered field list
// defines the output column order.
type MappingField struct {
	// ID is a stable identity used for reordering and editing.
	ID string `json:"id" yaml:"id"`

	// Header is the output column name.
	Header string `json:"header" yaml:"header"`

	// Source is one of invoice, item or static.
	Source MappingSource `json:"source" yaml:"source"`

	// Value is a field key into InvoiceData/LineItem, or a literal string
	// when Source is static. An unknown key resolves to the empty string
	// at export time.
	Value string `json:"value" yaml:"value"`
}

// =============================================================================
// DOCUMENT PROCESSING STATUS
// =============================================================================

// ProcessStatus is the lifecycle state of one submitted document.
type ProcessStatus string

const (
	StatusPending    ProcessStatus = "pending"
	StatusProcessing ProcessStatus = "processing"
	StatusCompleted  ProcessStatus = "completed"
	StatusError      ProcessStatus = "error"
)

// FileStatus records the outcome of processing one document. Failures are
// surfaced per document and never abort sibling documents.
type FileStatus struct {
	ID      string        `yaml:"id"`
	Name    string        `yaml:"name"`
	Status  ProcessStatus `yaml:"status"`
	Message string        `yaml:"message,omitempty"`
	Result  *InvoiceData  `yaml:"result,omitempty"`
}
