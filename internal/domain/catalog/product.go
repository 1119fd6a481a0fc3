// Package catalog contains the product domain model and the term-matching
// rules shared by every catalog implementation.
package catalog

import "strings"

// Price is a display price in a single currency. Amount stays a string
// because catalogs hand it to the UI verbatim.
type Price struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Product is one catalog entry. Products are loaded once at catalog
// construction and read-only thereafter.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Handle      string   `json:"handle"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
	Price       *Price   `json:"price,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	URL         string   `json:"url"`
}

// ProductURL derives the storefront URL for a handle.
func ProductURL(baseURL, handle string) string {
	return strings.TrimRight(baseURL, "/") + "/products/" + handle
}

// QueryTokens splits a search term into lower-cased tokens. An empty or
// whitespace-only term yields no tokens, which MatchesTerm treats as
// match-everything for "browse all" use.
func QueryTokens(term string) []string {
	return strings.Fields(strings.ToLower(term))
}

// MatchesTerm reports whether the product matches the query tokens. A
// product matches when every token is a substring of the title, OR every
// token is a substring of the description, OR every token is contained in
// some tag (tokens may match different tags, looser than the title and
// description conditions).
func (p *Product) MatchesTerm(tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}

	title := strings.ToLower(p.Title)
	if containsAll(title, tokens) {
		return true
	}

	description := strings.ToLower(p.Description)
	if containsAll(description, tokens) {
		return true
	}

	return p.tagsCoverAll(tokens)
}

// RelatedTo reports whether the product should be recommended alongside
// src: same category, or at least one shared tag.
func (p *Product) RelatedTo(src *Product) bool {
	if p.Category != "" && p.Category == src.Category {
		return true
	}
	for _, tag := range p.Tags {
		for _, other := range src.Tags {
			if tag == other {
				return true
			}
		}
	}
	return false
}

func containsAll(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

func (p *Product) tagsCoverAll(tokens []string) bool {
	if len(p.Tags) == 0 {
		return false
	}
	for _, token := range tokens {
		found := false
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
