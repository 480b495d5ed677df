package reconcile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantityConsistentTripleUnchanged(t *testing.T) {
	// total == quantity * unitPrice exactly.
	assert.Equal(t, 3.0, Quantity(3, 10, 30))
	assert.Equal(t, 2.5, Quantity(2.5, 4, 10))
	assert.Equal(t, 0.0, Quantity(0, 10, 0))
}

func TestQuantityWithinToleranceUnchanged(t *testing.T) {
	// Off by exactly the tolerance: not repaired.
	assert.Equal(t, 3.0, Quantity(3, 10, 30.1))
	assert.Equal(t, 3.0, Quantity(3, 10, 29.95))
}

func TestQuantityRepairedFromTotal(t *testing.T) {
	// 5 * 10 = 50, printed total 1000: quantity was misread.
	assert.Equal(t, 100.0, Quantity(5, 10, 1000))
}

func TestQuantityRepairRoundsToFourPlaces(t *testing.T) {
	// 10 / 3 = 3.3333...
	assert.Equal(t, 3.3333, Quantity(1, 3, 10))
}

func TestQuantityZeroUnitPriceNoRepair(t *testing.T) {
	assert.Equal(t, 7.0, Quantity(7, 0, 1000))
}

func TestQuantityNonFiniteInputsNoRepair(t *testing.T) {
	assert.Equal(t, 5.0, Quantity(5, 10, math.NaN()))
	assert.True(t, math.IsNaN(Quantity(math.NaN(), 10, 100)))
	assert.Equal(t, 5.0, Quantity(5, math.Inf(1), 100))
}

func TestQuantityFractionalRepair(t *testing.T) {
	// 12.5 units at 8.40 should total 105; the extractor read 1.25.
	assert.Equal(t, 12.5, Quantity(1.25, 8.40, 105))
}
