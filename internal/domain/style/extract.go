package style

import (
	"fmt"
	"regexp"
	"strings"
)

// The extraction vocabulary is data, not control flow: extending it means
// adding a word here, never touching the matcher.

// garmentNouns is the closed set of garment nouns a fallback search term
// must end with.
var garmentNouns = []string{
	"jacket", "shirt", "pants", "shoes", "dress", "hat", "sweater",
	"jeans", "boots", "sneakers", "coat", "blazer", "flats", "heels",
}

// garmentQualifiers are the color, material and fit adjectives allowed to
// precede a garment noun.
var garmentQualifiers = []string{
	// colors
	"black", "white", "blue", "red", "green", "yellow", "purple", "pink",
	"brown", "gray", "grey", "navy", "beige", "cream", "tan",
	// materials
	"leather", "denim", "cotton", "wool", "suede", "silk", "linen", "knit",
	// fit and cut
	"slim", "skinny", "fitted", "oversized", "relaxed", "tailored",
	"cropped", "classic", "casual",
}

// itemRules is the fixed, ordered rule table used by the deterministic
// fallback: one pattern per garment noun, each accepting up to three
// qualifiers in front.
var itemRules = buildItemRules()

func buildItemRules() []*regexp.Regexp {
	qualifier := strings.Join(garmentQualifiers, "|")
	rules := make([]*regexp.Regexp, 0, len(garmentNouns))
	for _, noun := range garmentNouns {
		rules = append(rules, regexp.MustCompile(
			fmt.Sprintf(`\b(?:(?:%s)\s+){0,3}%s\b`, qualifier, noun)))
	}
	return rules
}

// ExtractItems runs the fallback rule table over text and returns the
// matched item phrases. Matches are deduplicated across rules, and only
// phrases longer than 5 characters after trimming are kept. The result
// order is stable: rule order first, then match position.
func ExtractItems(text string) []string {
	lowered := strings.ToLower(text)

	seen := make(map[string]struct{})
	var items []string
	for _, rule := range itemRules {
		for _, match := range rule.FindAllString(lowered, -1) {
			match = strings.TrimSpace(match)
			if len(match) <= 5 {
				continue
			}
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			items = append(items, match)
		}
	}
	return items
}
