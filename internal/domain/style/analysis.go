package style

// Slot identifies one of the four fixed garment categories tracked in the
// detailed recommendations.
type Slot string

const (
	SlotOuterwear Slot = "outerwear"
	SlotTop       Slot = "top"
	SlotBottom    Slot = "bottom"
	SlotShoes     Slot = "shoes"
)

// Slots lists the four slots in presentation order.
var Slots = []Slot{SlotOuterwear, SlotTop, SlotBottom, SlotShoes}

// SlotRecommendation holds the budget and free-text details parsed for one
// garment slot.
type SlotRecommendation struct {
	Budget  string `json:"budget"`
	Details string `json:"details"`
}

// StyleAnalysis is the structured result of parsing the vision model's
// free-text reply. Absent data is represented as empty strings and slices,
// never as missing keys: all four recommendation slots are always present.
// The record is built once by ParseAnalysis and read-only afterward.
type StyleAnalysis struct {
	Description               string                      `json:"description"`
	StyleCategory             string                      `json:"style_category"`
	SuitableOccasions         []string                    `json:"suitable_occasions"`
	IdentifiedItems           []string                    `json:"identified_items"`
	ColorPalette              []string                    `json:"color_palette"`
	DetailedRecommendations   map[Slot]SlotRecommendation `json:"detailed_recommendations"`
	AdditionalRecommendations []string                    `json:"additional_recommendations"`
}

// NewStyleAnalysis returns an analysis with every field at its default:
// empty strings and slices, and all four slots zero-filled.
func NewStyleAnalysis() StyleAnalysis {
	recs := make(map[Slot]SlotRecommendation, len(Slots))
	for _, slot := range Slots {
		recs[slot] = SlotRecommendation{}
	}
	return StyleAnalysis{
		SuitableOccasions:         []string{},
		IdentifiedItems:           []string{},
		ColorPalette:              []string{},
		DetailedRecommendations:   recs,
		AdditionalRecommendations: []string{},
	}
}
