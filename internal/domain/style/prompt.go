package style

import (
	"fmt"
	"strings"
)

// maxRemarks caps how many recent social remarks are folded into the prompt.
const maxRemarks = 3

// BuildAnalysisPrompt produces the instruction sent alongside the image to
// the vision model. The response format it requests is the exact section
// grammar ParseAnalysis understands, so the two must evolve together.
func BuildAnalysisPrompt(prefs PreferenceContext, hints *StyleHints) string {
	occasion := prefs.Occasion
	if occasion == "" {
		occasion = "Any"
	}
	budget := prefs.Budget
	if budget == "" {
		budget = "Any"
	}
	colors := "Any"
	if len(prefs.Colors) > 0 {
		colors = strings.Join(prefs.Colors, ", ")
	}
	brands := prefs.Brands
	if brands == "" {
		brands = "Any"
	}
	requirements := prefs.Requirements
	if requirements == "" {
		requirements = "None"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Analyze this fashion image and provide recommendations considering these preferences:
- Occasion: %s
- Budget range: %s
- Preferred colors: %s
- Preferred brands: %s
- Special requirements: %s

Please provide a detailed analysis in the following format:

DESCRIPTION: [Detailed outfit description]

STYLE_CATEGORY: [Formal/Casual/Business/etc.]

SUITABLE_OCCASIONS: [Comma-separated list]

IDENTIFIED_ITEMS: [Comma-separated list of specific items]

COLOR_PALETTE: [Main colors used]

DETAILED_RECOMMENDATIONS:
To achieve a look suitable for %s, within %s budget, here's a complete outfit breakdown:

1. Outerwear (Budget: $[range]):
- Specific type (e.g., blazer, jacket)
- Recommended colors and materials
- Suggested brands and styles

2. Top/Shirt (Budget: $[range]):
- Specific type (e.g., button-down, blouse)
- Recommended colors and materials
- Suggested brands and styles

3. Bottom (Budget: $[range]):
- Specific type (e.g., trousers, skirt)
- Recommended colors and materials
- Suggested brands and styles

4. Shoes (Budget: $[range]):
- Specific type (e.g., heels, flats)
- Recommended colors and materials
- Suggested brands and styles

ADDITIONAL_RECOMMENDATIONS:
- Accessories suggestions
- Styling tips
- Additional considerations

Format each section clearly and provide specific, actionable recommendations that match the preferences and budget constraints.`,
		occasion, budget, colors, brands, requirements, occasion, budget)

	if context := hintSentences(hints); context != "" {
		b.WriteString("\n\nConsider the user's personal style preferences based on their social profile: ")
		b.WriteString(context)
	}

	return b.String()
}

// hintSentences renders the optional style hints as one sentence group.
// Each of the three sub-facts is emitted only when non-empty; the pieces
// are joined with single spaces.
func hintSentences(hints *StyleHints) string {
	if hints.IsEmpty() {
		return ""
	}

	var parts []string
	if len(hints.Interests) > 0 {
		parts = append(parts, fmt.Sprintf("User is interested in these fashion styles: %s.",
			strings.Join(hints.Interests, ", ")))
	}
	if len(hints.ColorPreferences) > 0 {
		parts = append(parts, fmt.Sprintf("User tends to prefer these colors: %s.",
			strings.Join(hints.ColorPreferences, ", ")))
	}
	if len(hints.RecentRemarks) > 0 {
		remarks := hints.RecentRemarks
		if len(remarks) > maxRemarks {
			remarks = remarks[:maxRemarks]
		}
		parts = append(parts, "Based on recent posts, the user has mentioned: "+strings.Join(remarks, " | "))
	}

	return strings.Join(parts, " ")
}

// BuildExtractionPrompt produces the text-only instruction used to pull
// concrete fashion items out of an analysis for catalog search.
func BuildExtractionPrompt(analysisText string) string {
	return fmt.Sprintf(`Extract only the main fashion items mentioned in this outfit recommendation.
Format as a comma-separated list of specific search terms.
Focus on individual items (like "black leather jacket" or "white sneakers"),
not styles or outfit concepts.

RECOMMENDATION TEXT:
%s

ITEMS:`, analysisText)
}
