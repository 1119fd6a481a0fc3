package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `DESCRIPTION: A relaxed weekend outfit built around layered basics.

STYLE_CATEGORY: Casual

SUITABLE_OCCASIONS: Casual Outing, Date Night

IDENTIFIED_ITEMS: black leather jacket, white t-shirt, blue jeans

COLOR_PALETTE: black, white, blue

DETAILED_RECOMMENDATIONS:
To achieve a look suitable for Date Night, within $300 budget, here's a complete outfit breakdown:

1. Outerwear (Budget: $100-150):
- Black leather jacket with minimal hardware
- Suggested brands: AllSaints, Schott

2. Top/Shirt (Budget: $20-40):
- White crew neck t-shirt in heavy cotton

3. Bottom (Budget: $60-90):
- Slim blue jeans, mid wash

4. Shoes (Budget: $80-120):
- White leather sneakers

ADDITIONAL_RECOMMENDATIONS:
- Add a silver chain necklace
- Keep accessories minimal
`

func TestParseAnalysisFullReply(t *testing.T) {
	result := ParseAnalysis(sampleReply)

	assert.Equal(t, "A relaxed weekend outfit built around layered basics.", result.Description)
	assert.Equal(t, "Casual", result.StyleCategory)
	assert.Equal(t, []string{"Casual Outing", "Date Night"}, result.SuitableOccasions)
	assert.Equal(t, []string{"black leather jacket", "white t-shirt", "blue jeans"}, result.IdentifiedItems)
	assert.Equal(t, []string{"black", "white", "blue"}, result.ColorPalette)

	outerwear := result.DetailedRecommendations[SlotOuterwear]
	// The slot heading line is consumed by the slot match, so the budget on
	// it is not captured; only a standalone Budget line is.
	assert.Empty(t, outerwear.Budget)
	assert.Contains(t, outerwear.Details, "- Black leather jacket with minimal hardware\n")
	assert.Contains(t, outerwear.Details, "- Suggested brands: AllSaints, Schott\n")

	shoes := result.DetailedRecommendations[SlotShoes]
	assert.Contains(t, shoes.Details, "- White leather sneakers\n")

	assert.Equal(t, []string{"Add a silver chain necklace", "Keep accessories minimal"}, result.AdditionalRecommendations)
}

func TestParseAnalysisEmptyInput(t *testing.T) {
	result := ParseAnalysis("")

	assert.Empty(t, result.Description)
	assert.Empty(t, result.StyleCategory)
	assert.Empty(t, result.SuitableOccasions)
	assert.Empty(t, result.IdentifiedItems)
	assert.Empty(t, result.ColorPalette)
	assert.Empty(t, result.AdditionalRecommendations)

	// All four slots are present even with nothing to parse.
	require.Len(t, result.DetailedRecommendations, 4)
	for _, slot := range Slots {
		rec, ok := result.DetailedRecommendations[slot]
		require.True(t, ok)
		assert.Empty(t, rec.Budget)
		assert.Empty(t, rec.Details)
	}
}

func TestParseAnalysisFreeTextContinuation(t *testing.T) {
	raw := "DESCRIPTION: First sentence.\nSecond sentence continues.\n\nSTYLE_CATEGORY: Smart\nCasual"

	result := ParseAnalysis(raw)

	assert.Equal(t, "First sentence. Second sentence continues.", result.Description)
	assert.Equal(t, "Smart Casual", result.StyleCategory)
}

func TestParseAnalysisTrailingCommaKeepsEmptyEntry(t *testing.T) {
	result := ParseAnalysis("IDENTIFIED_ITEMS: jacket, jeans,")

	assert.Equal(t, []string{"jacket", "jeans", ""}, result.IdentifiedItems)
}

func TestParseAnalysisIgnoresDetailsBeforeFirstSlot(t *testing.T) {
	raw := `DETAILED_RECOMMENDATIONS:
- this line precedes any slot and is dropped
1. Outerwear:
- wool coat`

	result := ParseAnalysis(raw)

	outerwear := result.DetailedRecommendations[SlotOuterwear]
	assert.Equal(t, "- wool coat\n", outerwear.Details)
	assert.Empty(t, outerwear.Budget)
}

func TestParseAnalysisStandaloneBudgetLine(t *testing.T) {
	raw := `DETAILED_RECOMMENDATIONS:
1. Outerwear:
Budget: $100-150
- wool coat
2. Top/Shirt:
Approximate Budget: $30`

	result := ParseAnalysis(raw)

	assert.Equal(t, "$100-150", result.DetailedRecommendations[SlotOuterwear].Budget)
	assert.Equal(t, "$30", result.DetailedRecommendations[SlotTop].Budget)
}

func TestParseAnalysisSectionOrderIndependent(t *testing.T) {
	raw := "STYLE_CATEGORY: Formal\nDESCRIPTION: Evening wear."

	result := ParseAnalysis(raw)

	assert.Equal(t, "Formal", result.StyleCategory)
	assert.Equal(t, "Evening wear.", result.Description)
}

func TestParseAnalysisIdempotentOnMarkers(t *testing.T) {
	// A later marker of the same kind overwrites the earlier value.
	raw := "DESCRIPTION: first\nDESCRIPTION: second"

	result := ParseAnalysis(raw)

	assert.Equal(t, "second", result.Description)
}
