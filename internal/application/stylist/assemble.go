package stylist

import (
	"context"

	"github.com/stylelens/v1/internal/domain/catalog"
	"github.com/stylelens/v1/internal/ports/inbound"
	"github.com/stylelens/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// assembleRecommendations queries the catalog for each derived term in
// order and deduplicates products across terms. A product seen under an
// earlier term is skipped later, so it stays attributed to the first term
// that produced it. Terms that end up with zero products are kept with an
// empty slice rather than dropped. Catalog failures degrade to "no results
// for this term" and never abort the assembly.
func assembleRecommendations(
	ctx context.Context,
	terms []string,
	products outbound.ProductCatalog,
	perTermLimit int,
	logger *zap.Logger,
) inbound.Recommendations {
	recs := inbound.Recommendations{
		Results:  make([]inbound.TermResult, 0, len(terms)),
		Products: []catalog.Product{},
	}

	seen := make(map[string]struct{})
	for _, term := range terms {
		catalogSearchesTotal.Inc()

		matches, err := products.SearchProducts(ctx, term, perTermLimit)
		if err != nil {
			logger.Warn("Catalog search failed",
				zap.String("term", term),
				zap.Error(err),
			)
			matches = nil
		}

		kept := make([]catalog.Product, 0, len(matches))
		for _, product := range matches {
			if _, dup := seen[product.ID]; dup {
				continue
			}
			seen[product.ID] = struct{}{}
			kept = append(kept, product)
			recs.Products = append(recs.Products, product)
		}

		recs.Results = append(recs.Results, inbound.TermResult{
			Term:     term,
			Products: kept,
		})
	}

	return recs
}
