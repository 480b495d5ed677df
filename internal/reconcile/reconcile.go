// =============================================================================
// Invoice Automator - Reconciliation Engine
// =============================================================================
//
// This module repairs the quantity on a line item when the extracted
// quantity/unit-price/total triple is internally inconsistent.
//
// WORKING ASSUMPTION:
//   Unit price and total are more reliably read from a document than
//   quantity. The total is usually the boldest figure on the row and the
//   unit price is standard, while quantity is prone to decimal placement
//   misreads. So when quantity * unitPrice disagrees with total, quantity
//   is the field that gets recomputed; the other two are trusted.
//
// The repair is a deterministic heuristic, not a recovery guarantee: it
// makes the triple consistent, nothing more.
//
// =============================================================================

package reconcile

import (
	"math"

	"github.com/shopspring/decimal"
)

// tolerance absorbs rounding noise between the printed total and the
// product of quantity and unit price. Discrepancies at or below it are
// left alone.
var tolerance = decimal.NewFromFloat(0.1)

// quantityPlaces is the precision a repaired quantity is rounded to.
// Four places is enough to keep fractional quantities intact.
const quantityPlaces = 4

// Quantity returns the reconciled quantity for a line item.
//
// If unitPrice is zero, or any input is NaN or infinite, no repair is
// possible and the quantity comes back unchanged. Otherwise, when
// |quantity*unitPrice - total| exceeds the tolerance, the quantity is
// recomputed as round(total/unitPrice, 4).
func Quantity(quantity, unitPrice, total float64) float64 {
	if unitPrice == 0 || !finite(quantity) || !finite(unitPrice) || !finite(total) {
		return quantity
	}

	q := decimal.NewFromFloat(quantity)
	p := decimal.NewFromFloat(unitPrice)
	t := decimal.NewFromFloat(total)

	diff := q.Mul(p).Sub(t).Abs()
	if diff.GreaterThan(tolerance) {
		repaired, _ := t.Div(p).Round(quantityPlaces).Float64()
		return repaired
	}

	return quantity
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
