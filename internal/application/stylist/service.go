// Package stylist provides the application layer for the fashion analysis
// pipeline: prompt construction, vision call, parsing, term derivation and
// catalog assembly, executed sequentially per request.
package stylist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stylelens/v1/internal/domain/catalog"
	"github.com/stylelens/v1/internal/domain/style"
	"github.com/stylelens/v1/internal/ports/inbound"
	"github.com/stylelens/v1/internal/ports/outbound"
	"github.com/stylelens/v1/pkg/errors"
	"go.uber.org/zap"
)

// Options bound the assembly step and control analysis caching.
type Options struct {
	// PerTermLimit caps catalog results per search term.
	PerTermLimit int
	// MaxTerms caps how many derived terms are queried.
	MaxTerms int
	// CacheTTL bounds cached model replies; zero disables caching.
	CacheTTL time.Duration
}

// StylistService implements the analysis pipeline use cases.
type StylistService struct {
	vision  outbound.VisionService
	catalog outbound.ProductCatalog
	cache   outbound.CacheRepository
	social  outbound.StyleSource
	deriver *TermDeriver
	opts    Options
	logger  *zap.Logger
}

// NewStylistService creates the stylist service. vision and social may be
// nil when the corresponding features are disabled by configuration; the
// catalog is always present (the fixture backs it at minimum).
func NewStylistService(
	vision outbound.VisionService,
	productCatalog outbound.ProductCatalog,
	cache outbound.CacheRepository,
	social outbound.StyleSource,
	opts Options,
	logger *zap.Logger,
) inbound.StylistService {
	if opts.PerTermLimit <= 0 {
		opts.PerTermLimit = 3
	}
	if opts.MaxTerms <= 0 {
		opts.MaxTerms = 3
	}
	return &StylistService{
		vision:  vision,
		catalog: productCatalog,
		cache:   cache,
		social:  social,
		deriver: NewTermDeriver(vision, logger),
		opts:    opts,
		logger:  logger.Named("stylist-service"),
	}
}

// Analyze runs the full pipeline for one uploaded image.
func (s *StylistService) Analyze(ctx context.Context, cmd inbound.AnalyzeCommand) (*inbound.AnalysisResult, error) {
	if s.vision == nil {
		return nil, errors.NewVisionDisabledError()
	}

	prefs := style.PreferenceContext{
		Occasion:     cmd.Occasion,
		Budget:       cmd.Budget,
		Colors:       cmd.Colors,
		Brands:       cmd.Brands,
		Requirements: cmd.Requirements,
	}

	hints := s.lookupHints(ctx, cmd.SocialUsername)
	prompt := style.BuildAnalysisPrompt(prefs, hints)

	key := s.cacheKey(cmd.Image, prompt)
	raw, fromCache := s.cachedReply(ctx, key)
	if !fromCache {
		var err error
		raw, err = s.vision.AnalyzeImage(ctx, prompt, outbound.ImagePayload{
			Data:     cmd.Image,
			MIMEType: cmd.ImageMIMEType,
		})
		if err != nil {
			analysesTotal.WithLabelValues("error").Inc()
			s.logger.Error("Vision analysis failed", zap.Error(err))
			return nil, errors.NewAnalysisFailedError(err)
		}
		s.storeReply(ctx, key, raw)
	}

	analysis := style.ParseAnalysis(raw)

	terms := s.deriver.Derive(ctx, raw)
	if len(terms) > s.opts.MaxTerms {
		terms = terms[:s.opts.MaxTerms]
	}

	recs := assembleRecommendations(ctx, terms, s.catalog, s.opts.PerTermLimit, s.logger)

	analysesTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Analysis completed",
		zap.String("style_category", analysis.StyleCategory),
		zap.Int("terms", len(terms)),
		zap.Int("products", len(recs.Products)),
		zap.Bool("from_cache", fromCache),
	)

	return &inbound.AnalysisResult{
		AnalysisID:      uuid.New().String(),
		Analysis:        analysis,
		SearchTerms:     terms,
		Recommendations: recs,
		FromCache:       fromCache,
	}, nil
}

// SearchProducts is the manual catalog search. Failures surface as an empty
// result, not an error.
func (s *StylistService) SearchProducts(ctx context.Context, term string, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = s.opts.PerTermLimit
	}
	products, err := s.catalog.SearchProducts(ctx, term, limit)
	if err != nil {
		s.logger.Warn("Product search failed", zap.String("term", term), zap.Error(err))
		return []catalog.Product{}, nil
	}
	return products, nil
}

// RelatedProducts returns products related to one catalog entry.
func (s *StylistService) RelatedProducts(ctx context.Context, productID string, limit int) ([]catalog.Product, error) {
	if limit <= 0 {
		limit = s.opts.PerTermLimit
	}
	products, err := s.catalog.Recommendations(ctx, productID, limit)
	if err != nil {
		return nil, errors.NewExternalServiceError("product catalog", err)
	}
	return products, nil
}

// StyleHints fetches the social style hints for a username.
func (s *StylistService) StyleHints(ctx context.Context, username string) (*style.StyleHints, error) {
	if s.social == nil {
		return nil, errors.New(errors.CodeServiceUnavailable, "Social style hints are disabled", "")
	}
	hints, err := s.social.StyleHints(ctx, username)
	if err != nil {
		return nil, errors.NewExternalServiceError("social style source", err)
	}
	return hints, nil
}

// lookupHints resolves the optional social hints; failures only cost the
// enrichment, never the analysis.
func (s *StylistService) lookupHints(ctx context.Context, username string) *style.StyleHints {
	if s.social == nil || username == "" {
		return nil
	}
	hints, err := s.social.StyleHints(ctx, username)
	if err != nil {
		s.logger.Warn("Style hint lookup failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil
	}
	return hints
}

// cacheKey fingerprints the image bytes together with the rendered prompt,
// so changed preferences or hints miss the cache.
func (s *StylistService) cacheKey(image []byte, prompt string) string {
	h := sha256.New()
	h.Write(image)
	h.Write([]byte(prompt))
	return "analysis:" + hex.EncodeToString(h.Sum(nil))
}

func (s *StylistService) cachedReply(ctx context.Context, key string) (string, bool) {
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return "", false
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil || len(value) == 0 {
		return "", false
	}
	analysisCacheHitsTotal.Inc()
	return string(value), true
}

func (s *StylistService) storeReply(ctx context.Context, key, raw string) {
	if s.cache == nil || s.opts.CacheTTL <= 0 || strings.TrimSpace(raw) == "" {
		return
	}
	if err := s.cache.Set(ctx, key, []byte(raw), s.opts.CacheTTL); err != nil {
		s.logger.Debug("Analysis cache write failed", zap.Error(err))
	}
}
