package style

import "strings"

// Section markers emitted by the vision model. The parser only reacts to
// these fixed, line-initial prefixes; everything else is free text.
const (
	markerDescription       = "DESCRIPTION:"
	markerStyleCategory     = "STYLE_CATEGORY:"
	markerSuitableOccasions = "SUITABLE_OCCASIONS:"
	markerIdentifiedItems   = "IDENTIFIED_ITEMS:"
	markerColorPalette      = "COLOR_PALETTE:"
	markerDetailedRecs      = "DETAILED_RECOMMENDATIONS:"
	markerAdditionalRecs    = "ADDITIONAL_RECOMMENDATIONS:"
)

// Slot cursor prefixes inside the detailed recommendations section. The
// match is literal and case-sensitive.
var slotPrefixes = []struct {
	prefix string
	slot   Slot
}{
	{"1. Outerwear", SlotOuterwear},
	{"2. Top/Shirt", SlotTop},
	{"3. Bottom", SlotBottom},
	{"4. Shoes", SlotShoes},
}

type section int

const (
	sectionNone section = iota
	sectionDescription
	sectionStyleCategory
	sectionSuitableOccasions
	sectionIdentifiedItems
	sectionColorPalette
	sectionDetailedRecs
	sectionAdditionalRecs
)

// ParseAnalysis converts the model's raw reply into a StyleAnalysis using a
// line-oriented section grammar. It never fails: unmatched or missing
// sections leave the corresponding field at its default, so absence of data
// is encoded in the result rather than signaled as an error.
func ParseAnalysis(raw string) StyleAnalysis {
	result := NewStyleAnalysis()

	current := sectionNone
	var slot Slot
	haveSlot := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, markerDescription):
			current = sectionDescription
			result.Description = strings.TrimSpace(strings.TrimPrefix(line, markerDescription))

		case strings.HasPrefix(line, markerStyleCategory):
			current = sectionStyleCategory
			result.StyleCategory = strings.TrimSpace(strings.TrimPrefix(line, markerStyleCategory))

		case strings.HasPrefix(line, markerSuitableOccasions):
			current = sectionSuitableOccasions
			result.SuitableOccasions = splitList(strings.TrimPrefix(line, markerSuitableOccasions))

		case strings.HasPrefix(line, markerIdentifiedItems):
			current = sectionIdentifiedItems
			result.IdentifiedItems = splitList(strings.TrimPrefix(line, markerIdentifiedItems))

		case strings.HasPrefix(line, markerColorPalette):
			current = sectionColorPalette
			result.ColorPalette = splitList(strings.TrimPrefix(line, markerColorPalette))

		case strings.HasPrefix(line, markerDetailedRecs):
			current = sectionDetailedRecs
			haveSlot = false

		case strings.HasPrefix(line, markerAdditionalRecs):
			current = sectionAdditionalRecs

		case current == sectionDetailedRecs:
			if next, ok := matchSlot(line); ok {
				slot = next
				haveSlot = true
				break
			}
			if !haveSlot {
				break
			}
			if strings.HasPrefix(line, "- ") {
				rec := result.DetailedRecommendations[slot]
				rec.Details += line + "\n"
				result.DetailedRecommendations[slot] = rec
			} else if idx := strings.Index(line, "Budget:"); idx >= 0 {
				rec := result.DetailedRecommendations[slot]
				rec.Budget = strings.TrimSpace(line[idx+len("Budget:"):])
				result.DetailedRecommendations[slot] = rec
			}

		case current == sectionAdditionalRecs && strings.HasPrefix(line, "- "):
			result.AdditionalRecommendations = append(result.AdditionalRecommendations,
				strings.TrimSpace(strings.TrimPrefix(line, "- ")))

		// Free text before the next marker continues the description or
		// style category.
		case line != "" && current == sectionDescription:
			result.Description += " " + line

		case line != "" && current == sectionStyleCategory:
			result.StyleCategory += " " + line
		}
	}

	return result
}

func matchSlot(line string) (Slot, bool) {
	for _, sp := range slotPrefixes {
		if strings.HasPrefix(line, sp.prefix) {
			return sp.slot, true
		}
	}
	return "", false
}

// splitList splits a comma list and trims each piece. Empty pieces from
// trailing or doubled commas are kept; callers must tolerate empty-string
// entries.
func splitList(s string) []string {
	parts := strings.Split(strings.TrimSpace(s), ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
