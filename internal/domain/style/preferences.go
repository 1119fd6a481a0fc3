// Package style contains the core domain logic for fashion style analysis.
// Everything in this package is pure: prompt construction, response parsing
// and item extraction perform no I/O.
package style

// Occasions is the fixed set of occasions a user can pick from.
var Occasions = []string{
	"Business Meeting",
	"Casual Outing",
	"Date Night",
	"Formal Event",
	"Workout",
	"Other",
}

// ColorPalette is the fixed set of preferred colors offered to the user.
var ColorPalette = []string{
	"Black", "White", "Blue", "Red", "Green",
	"Yellow", "Purple", "Pink", "Brown", "Gray",
}

// BudgetMin, BudgetMax and BudgetStep bound the per-outfit budget selection.
const (
	BudgetMin  = 50
	BudgetMax  = 1000
	BudgetStep = 50
)

// PreferenceContext holds the user-chosen constraints for one analysis
// request. It is immutable once built.
type PreferenceContext struct {
	Occasion     string
	Budget       string // display-formatted, e.g. "$300"
	Colors       []string
	Brands       string
	Requirements string
}

// StyleHints carries optional social-profile-derived preferences. They only
// enrich the analysis prompt and never alter parsing or matching.
type StyleHints struct {
	Interests        []string
	ColorPreferences []string
	RecentRemarks    []string
}

// IsEmpty reports whether the hints carry nothing worth mentioning.
func (h *StyleHints) IsEmpty() bool {
	return h == nil || (len(h.Interests) == 0 && len(h.ColorPreferences) == 0 && len(h.RecentRemarks) == 0)
}

// ValidOccasion reports whether occasion is one of the fixed choices.
func ValidOccasion(occasion string) bool {
	for _, o := range Occasions {
		if o == occasion {
			return true
		}
	}
	return false
}

// ValidColor reports whether color belongs to the fixed palette.
func ValidColor(color string) bool {
	for _, c := range ColorPalette {
		if c == color {
			return true
		}
	}
	return false
}
