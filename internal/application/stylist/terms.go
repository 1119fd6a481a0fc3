package stylist

import (
	"context"
	"strings"

	"github.com/stylelens/v1/internal/domain/style"
	"github.com/stylelens/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// TermDeriver turns an analysis text into catalog search phrases. The model
// assisted strategy is best effort and quota-limited; the rule-table
// fallback guarantees the pipeline always produces some terms, trading
// precision for availability.
type TermDeriver struct {
	vision outbound.VisionService
	logger *zap.Logger
}

// NewTermDeriver creates a term deriver. vision may be nil, in which case
// only the deterministic strategy is used.
func NewTermDeriver(vision outbound.VisionService, logger *zap.Logger) *TermDeriver {
	return &TermDeriver{
		vision: vision,
		logger: logger.Named("term-deriver"),
	}
}

// Derive returns an ordered list of non-empty search terms. The model
// assisted extraction is attempted first; on failure or an empty reply the
// deterministic rule table takes over. Duplicate terms are left in place;
// cross-term deduplication happens during assembly, not here.
func (d *TermDeriver) Derive(ctx context.Context, analysisText string) []string {
	if d.vision != nil {
		terms, err := d.deriveWithModel(ctx, analysisText)
		if err != nil {
			d.logger.Warn("Model-assisted term extraction failed, using fallback", zap.Error(err))
		} else if len(terms) > 0 {
			return terms
		}
	}

	termFallbacksTotal.Inc()
	return style.ExtractItems(analysisText)
}

func (d *TermDeriver) deriveWithModel(ctx context.Context, analysisText string) ([]string, error) {
	reply, err := d.vision.ExtractText(ctx, style.BuildExtractionPrompt(analysisText))
	if err != nil {
		return nil, err
	}

	var terms []string
	for _, piece := range strings.Split(reply, ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			terms = append(terms, piece)
		}
	}
	return terms, nil
}
