// =============================================================================
// Invoice Automator - Field Sanitizer
// =============================================================================
//
// This module cleans up the SKU and batch strings produced by the document
// extraction collaborator. Extraction is best-effort, so item codes arrive
// with layout noise attached: packaging suffixes ("THC010-X"), free-text
// remarks ("THC010 - SPECIAL"), stray whitespace, and for some customers a
// combined stock field carrying SKU and batch in one cell ("CODE*LOT").
//
// RULE ORDER (per profile):
//   1. Trim both inputs.
//   2. ProfileCombined only: split a combined "SKU*BATCH" stock value.
//   3. Strip a trailing single-letter suffix ("- X", " - S", "-X").
//   4. Strip a trailing " - <anything>" remark.
//   5. Safety net: strip a literal trailing "-X", then remove all
//      remaining internal whitespace from the SKU.
//   6. Remove all internal whitespace from the batch id.
//
// Sanitization is a pure function: no I/O, no failure path, always returns
// a value (possibly empty strings). Character-class enforcement on the
// batch id is a display-level check (see the validate package); it flags
// but never mutates.
//
// =============================================================================

package sanitize

import (
	"regexp"
	"strings"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

// =============================================================================
// CLEANUP RULES
// =============================================================================

var (
	// trailingLetter matches a hyphenated single-letter suffix at the end
	// of a SKU: "THC010-X", "THC010 - S", "THC010 -A".
	trailingLetter = regexp.MustCompile(`\s*-\s*[a-zA-Z]$`)

	// trailingRemark matches a " - <anything>" remark appended after the
	// code: "THC010 - SPECIAL OFFER".
	trailingRemark = regexp.MustCompile(`\s+-\s+.*$`)

	// trailingX is an idempotent safety net for the legacy "-X" marker in
	// case the earlier passes left one behind.
	trailingX = regexp.MustCompile(`(?i)\s*-\s*X$`)

	// whitespace matches any run of whitespace inside a value.
	whitespace = regexp.MustCompile(`\s+`)
)

// Result holds the sanitized pair of item identifiers.
type Result struct {
	SKU     string
	BatchID string
}

// =============================================================================
// SANITIZER
// =============================================================================

// Clean sanitizes a raw SKU/batch pair according to the customer profile.
//
// PARAMETERS:
//   - rawSKU: The item code as extracted from the document.
//   - rawBatch: The batch/lot number as extracted, possibly empty.
//   - profile: The customer profile whose layout rules apply.
//
// RETURNS:
//   - A Result with the cleaned SKU and batch id. Never fails; inputs that
//     clean down to nothing come back as empty strings.
func Clean(rawSKU, rawBatch string, profile types.CustomerProfile) Result {
	sku := strings.TrimSpace(rawSKU)
	batch := strings.TrimSpace(rawBatch)

	// Combined stock column: the extractor is instructed to carry the full
	// "SKU*BATCH" string through in the SKU field. Split it here. A batch
	// transmitted this way overrides a separately extracted one.
	if profile == types.ProfileCombined && strings.Contains(sku, "*") {
		parts := strings.Split(sku, "*")
		sku = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			batch = strings.TrimSpace(parts[1])
		}
	}

	// Both known profiles print packaging/remark suffixes after the code.
	sku = trailingLetter.ReplaceAllString(sku, "")
	sku = trailingRemark.ReplaceAllString(sku, "")

	// Final unconditional pass.
	sku = trailingX.ReplaceAllString(sku, "")
	sku = whitespace.ReplaceAllString(sku, "")

	batch = whitespace.ReplaceAllString(batch, "")

	return Result{SKU: sku, BatchID: batch}
}
