// =============================================================================
// Invoice Automator - Review Checks
// =============================================================================
//
// This module runs the non-fatal checks shown alongside a normalized
// invoice during review. Findings are collected, never thrown: a finding
// flags a value for the user but does not mutate it and never blocks
// normalization or export.
//
// =============================================================================

package validate

import (
	"fmt"
	"unicode"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// Severity of a finding. Only warnings exist today; the field is kept so
// callers do not need restructuring if a fatal class ever appears.
const SeverityWarning = "warning"

// Finding flags one suspicious value on a line item.
type Finding struct {
	// Severity is the finding class, currently always SeverityWarning.
	Severity string

	// Item is the 1-based line item index on the invoice.
	Item int

	// Field is the flagged field name.
	Field string

	// Value is the flagged value.
	Value string

	// Message is the human-readable explanation.
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] item %d, field %s: %s (value: %q)",
		f.Severity, f.Item, f.Field, f.Message, f.Value)
}

// Invoice checks every line item on the invoice and returns the collected
// findings. An empty result means nothing to flag.
func Invoice(inv *types.InvoiceData) []Finding {
	var findings []Finding

	for i, item := range inv.LineItems {
		// Batch ids are expected to be plain alphanumeric codes. Anything
		// else is flagged for a second look but left untouched.
		if item.BatchID != "" && !alphanumeric(item.BatchID) {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Item:     i + 1,
				Field:    "batchId",
				Value:    item.BatchID,
				Message:  "batch id is not alphanumeric",
			})
		}
	}

	return findings
}

func alphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
