package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nadungimhanalk/invoice2csv-automator-V2/internal/types"
)

func TestCleanStripsSingleLetterSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"THC010-X", "THC010"},
		{"THC010 - X", "THC010"},
		{"THC010 -S", "THC010"},
		{"THC010- a", "THC010"},
		{"THC010", "THC010"},
	}

	for _, tc := range cases {
		got := Clean(tc.in, "", types.ProfileStandard)
		assert.Equal(t, tc.want, got.SKU, "input %q", tc.in)
	}
}

func TestCleanStripsRemarkSuffix(t *testing.T) {
	got := Clean("THC010 - SPECIAL OFFER", "", types.ProfileStandard)
	assert.Equal(t, "THC010", got.SKU)
}

func TestCleanRemovesInternalWhitespace(t *testing.T) {
	got := Clean("TH C 010", "b 1", types.ProfileStandard)
	assert.Equal(t, "THC010", got.SKU)
	assert.Equal(t, "b1", got.BatchID)
}

func TestCleanCombinedProfileSplitsStockField(t *testing.T) {
	got := Clean("ABC123*LOT9", "", types.ProfileCombined)
	assert.Equal(t, "ABC123", got.SKU)
	assert.Equal(t, "LOT9", got.BatchID)
}

func TestCleanCombinedProfileOverridesExtractedBatch(t *testing.T) {
	got := Clean("ABC123*LOT9", "OLDLOT", types.ProfileCombined)
	assert.Equal(t, "LOT9", got.BatchID)
}

func TestCleanStandardProfileLeavesAsteriskAlone(t *testing.T) {
	got := Clean("ABC*9", "LOT1", types.ProfileStandard)
	assert.Equal(t, "ABC*9", got.SKU)
	assert.Equal(t, "LOT1", got.BatchID)
}

func TestCleanCombinedThenSuffixCleanup(t *testing.T) {
	// The left half of a combined stock value still goes through the
	// suffix rules.
	got := Clean("THC010-X*LOT4", "", types.ProfileCombined)
	assert.Equal(t, "THC010", got.SKU)
	assert.Equal(t, "LOT4", got.BatchID)
}

func TestCleanEmptyInputs(t *testing.T) {
	got := Clean("", "", types.ProfileStandard)
	assert.Equal(t, "", got.SKU)
	assert.Equal(t, "", got.BatchID)

	got = Clean("   ", "  ", types.ProfileCombined)
	assert.Equal(t, "", got.SKU)
	assert.Equal(t, "", got.BatchID)
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"THC010-X",
		"THC010 - SPECIAL",
		"ABC123*LOT9",
		"TH C 010 - X",
		"PLAIN001",
		"",
	}

	for _, profile := range []types.CustomerProfile{types.ProfileStandard, types.ProfileCombined} {
		for _, in := range inputs {
			once := Clean(in, "", profile)
			twice := Clean(once.SKU, once.BatchID, profile)
			assert.Equal(t, once, twice, "profile %s input %q", profile, in)
		}
	}
}
