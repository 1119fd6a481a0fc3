// Package inbound defines the interfaces for inbound ports (primary,
// driving adapters) and the command/result types they exchange.
package inbound

import (
	"context"

	"github.com/stylelens/v1/internal/domain/catalog"
	"github.com/stylelens/v1/internal/domain/style"
)

// AnalyzeCommand carries one analysis request through the pipeline. The
// preference fields are request-scoped; nothing is kept between requests.
type AnalyzeCommand struct {
	Image          []byte
	ImageMIMEType  string
	Occasion       string
	Budget         string
	Colors         []string
	Brands         string
	Requirements   string
	SocialUsername string
}

// TermResult holds the catalog matches for one derived search term. A term
// that yielded nothing after cross-term deduplication is still present,
// with an empty Products slice, so the caller can render "no results".
type TermResult struct {
	Term     string            `json:"term"`
	Products []catalog.Product `json:"products"`
}

// Recommendations is the assembled shopping result: per-term matches in
// derivation order plus a flat, cross-term deduplicated product list.
type Recommendations struct {
	Results  []TermResult      `json:"results"`
	Products []catalog.Product `json:"products"`
}

// AnalysisResult is the full outcome of one analyze request. AnalysisID is
// minted per request, also when the model reply came from the cache.
type AnalysisResult struct {
	AnalysisID      string              `json:"analysis_id"`
	Analysis        style.StyleAnalysis `json:"analysis"`
	SearchTerms     []string            `json:"search_terms"`
	Recommendations Recommendations     `json:"recommendations"`
	FromCache       bool                `json:"from_cache"`
}

// StylistService drives the analysis pipeline.
type StylistService interface {
	// Analyze runs the full pipeline: prompt, vision call, parse, term
	// derivation and catalog assembly.
	Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalysisResult, error)

	// SearchProducts is the manual catalog search.
	SearchProducts(ctx context.Context, term string, limit int) ([]catalog.Product, error)

	// RelatedProducts returns products related to one catalog entry.
	RelatedProducts(ctx context.Context, productID string, limit int) ([]catalog.Product, error)

	// StyleHints fetches the social style hints for a username.
	StyleHints(ctx context.Context, username string) (*style.StyleHints, error)
}
