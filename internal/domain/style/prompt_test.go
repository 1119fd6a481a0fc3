package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPromptWithPreferences(t *testing.T) {
	prompt := BuildAnalysisPrompt(PreferenceContext{
		Occasion:     "Date Night",
		Budget:       "$300",
		Colors:       []string{"Black", "White"},
		Brands:       "AllSaints",
		Requirements: "No heels",
	}, nil)

	assert.Contains(t, prompt, "- Occasion: Date Night")
	assert.Contains(t, prompt, "- Budget range: $300")
	assert.Contains(t, prompt, "- Preferred colors: Black, White")
	assert.Contains(t, prompt, "- Preferred brands: AllSaints")
	assert.Contains(t, prompt, "- Special requirements: No heels")
	assert.Contains(t, prompt, "To achieve a look suitable for Date Night, within $300 budget")
}

func TestBuildAnalysisPromptDefaults(t *testing.T) {
	prompt := BuildAnalysisPrompt(PreferenceContext{}, nil)

	assert.Contains(t, prompt, "- Occasion: Any")
	assert.Contains(t, prompt, "- Budget range: Any")
	assert.Contains(t, prompt, "- Preferred colors: Any")
	assert.Contains(t, prompt, "- Preferred brands: Any")
	assert.Contains(t, prompt, "- Special requirements: None")
}

func TestBuildAnalysisPromptRequestsAllMarkers(t *testing.T) {
	prompt := BuildAnalysisPrompt(PreferenceContext{}, nil)

	for _, marker := range []string{
		"DESCRIPTION:", "STYLE_CATEGORY:", "SUITABLE_OCCASIONS:",
		"IDENTIFIED_ITEMS:", "COLOR_PALETTE:", "DETAILED_RECOMMENDATIONS:",
		"ADDITIONAL_RECOMMENDATIONS:",
	} {
		assert.Contains(t, prompt, marker)
	}
	for _, slot := range []string{"1. Outerwear", "2. Top/Shirt", "3. Bottom", "4. Shoes"} {
		assert.Contains(t, prompt, slot)
	}
}

func TestBuildAnalysisPromptWithHints(t *testing.T) {
	hints := &StyleHints{
		Interests:        []string{"streetwear", "vintage"},
		ColorPreferences: []string{"black"},
		RecentRemarks:    []string{"loves sneakers", "wears layers", "likes denim", "a fourth remark"},
	}

	prompt := BuildAnalysisPrompt(PreferenceContext{}, hints)

	assert.Contains(t, prompt, "Consider the user's personal style preferences based on their social profile: ")
	assert.Contains(t, prompt, "User is interested in these fashion styles: streetwear, vintage.")
	assert.Contains(t, prompt, "User tends to prefer these colors: black.")
	assert.Contains(t, prompt, "loves sneakers | wears layers | likes denim")
	assert.NotContains(t, prompt, "a fourth remark")
}

func TestBuildAnalysisPromptEmptyHintsAddNothing(t *testing.T) {
	base := BuildAnalysisPrompt(PreferenceContext{}, nil)
	withEmpty := BuildAnalysisPrompt(PreferenceContext{}, &StyleHints{})

	assert.Equal(t, base, withEmpty)
	assert.False(t, strings.Contains(base, "social profile"))
}

func TestBuildExtractionPromptEmbedsAnalysis(t *testing.T) {
	prompt := BuildExtractionPrompt("some analysis text")

	assert.Contains(t, prompt, "RECOMMENDATION TEXT:\nsome analysis text")
	assert.True(t, strings.HasSuffix(prompt, "ITEMS:"))
}
