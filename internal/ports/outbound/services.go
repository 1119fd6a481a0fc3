// Package outbound defines the interfaces for outbound ports (secondary,
// driven adapters). These are the interfaces the application uses to reach
// external systems: the vision model, product catalogs, caches and the
// social style source.
package outbound

import (
	"context"
	"time"

	"github.com/stylelens/v1/internal/domain/catalog"
	"github.com/stylelens/v1/internal/domain/style"
)

// ImagePayload carries one uploaded image for vision analysis.
type ImagePayload struct {
	Data     []byte
	MIMEType string
}

// VisionService defines the language-model boundary. Two request shapes are
// used: a vision+text analysis request and a text-only extraction request.
// Both return the model's raw text; structure is recovered by the domain
// parser, never by the adapter.
type VisionService interface {
	// AnalyzeImage sends the prompt plus one image and returns the raw
	// reply. Failures here surface to the caller: the primary analysis has
	// no fallback.
	AnalyzeImage(ctx context.Context, prompt string, image ImagePayload) (string, error)

	// ExtractText sends a text-only prompt and returns the raw reply.
	// Callers treat failures as a signal to use a deterministic fallback.
	ExtractText(ctx context.Context, prompt string) (string, error)
}

// ProductCatalog defines the catalog boundary, satisfied by the bundled
// fixture and by the Shopify-backed store alike.
type ProductCatalog interface {
	// SearchProducts returns up to limit products matching term, in catalog
	// order. An empty term matches every product.
	SearchProducts(ctx context.Context, term string, limit int) ([]catalog.Product, error)

	// Recommendations returns up to limit products related to the given
	// product. An unknown ID yields an empty slice, not an error.
	Recommendations(ctx context.Context, productID string, limit int) ([]catalog.Product, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// StyleSource provides optional social-profile style hints used to enrich
// the analysis prompt.
type StyleSource interface {
	StyleHints(ctx context.Context, username string) (*style.StyleHints, error)
}
