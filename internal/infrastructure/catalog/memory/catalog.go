// Package memory provides the embedded fixture catalog used when no Shopify
// store is configured. It serves the demo dataset from process memory and
// shares the matching rules with the remote catalog through the domain
// package.
package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/stylelens/v1/internal/domain/catalog"
	"go.uber.org/zap"
)

//go:embed products.json
var productsJSON []byte

// Catalog is an in-memory ProductCatalog backed by the embedded fixture.
type Catalog struct {
	products []catalog.Product
	byID     map[string]*catalog.Product
	logger   *zap.Logger
}

// NewCatalog loads the embedded fixture. baseURL overrides the storefront
// base used for product links; empty keeps the fixture's own URLs.
func NewCatalog(baseURL string, logger *zap.Logger) (*Catalog, error) {
	var products []catalog.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("failed to load product fixture: %w", err)
	}

	byID := make(map[string]*catalog.Product, len(products))
	for i := range products {
		p := &products[i]
		if baseURL != "" && p.Handle != "" {
			p.URL = catalog.ProductURL(baseURL, p.Handle)
		}
		byID[p.ID] = p
	}

	logger.Info("Fixture catalog loaded", zap.Int("products", len(products)))

	return &Catalog{
		products: products,
		byID:     byID,
		logger:   logger.Named("memory-catalog"),
	}, nil
}

// SearchProducts returns up to limit products matching the term in fixture
// order. An empty term matches everything.
func (c *Catalog) SearchProducts(ctx context.Context, term string, limit int) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens := catalog.QueryTokens(term)
	matches := make([]catalog.Product, 0, limit)
	for i := range c.products {
		if !c.products[i].MatchesTerm(tokens) {
			continue
		}
		matches = append(matches, c.products[i])
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// Recommendations returns up to limit products related to the given product.
// An unknown product ID yields an empty result, not an error.
func (c *Catalog) Recommendations(ctx context.Context, productID string, limit int) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, ok := c.byID[productID]
	if !ok {
		return []catalog.Product{}, nil
	}

	related := make([]catalog.Product, 0, limit)
	for i := range c.products {
		p := &c.products[i]
		if p.ID == src.ID || !p.RelatedTo(src) {
			continue
		}
		related = append(related, *p)
		if limit > 0 && len(related) >= limit {
			break
		}
	}
	return related, nil
}

// Products returns the full fixture, used by the seed tool.
func (c *Catalog) Products() []catalog.Product {
	return c.products
}
