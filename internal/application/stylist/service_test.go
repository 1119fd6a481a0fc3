package stylist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylelens/v1/internal/domain/catalog"
	"github.com/stylelens/v1/internal/ports/inbound"
	"github.com/stylelens/v1/internal/ports/outbound"
	apperrors "github.com/stylelens/v1/pkg/errors"
	"go.uber.org/zap"
)

// stubVision replies with canned text and records calls.
type stubVision struct {
	analyzeReply string
	analyzeErr   error
	analyzeCalls int
	lastPrompt   string

	extractReply string
	extractErr   error
}

func (s *stubVision) AnalyzeImage(ctx context.Context, prompt string, image outbound.ImagePayload) (string, error) {
	s.analyzeCalls++
	s.lastPrompt = prompt
	return s.analyzeReply, s.analyzeErr
}

func (s *stubVision) ExtractText(ctx context.Context, prompt string) (string, error) {
	return s.extractReply, s.extractErr
}

// stubCatalog serves a fixed term-to-products table.
type stubCatalog struct {
	results map[string][]catalog.Product
	related []catalog.Product
	err     error
}

func (s *stubCatalog) SearchProducts(ctx context.Context, term string, limit int) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	products := s.results[term]
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (s *stubCatalog) Recommendations(ctx context.Context, productID string, limit int) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.related, nil
}

// stubCache is a map-backed cache repository.
type stubCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]byte)}
}

func (s *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return value, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *stubCache) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *stubCache) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok, nil
}

const stubReply = `DESCRIPTION: Layered casual look.
STYLE_CATEGORY: Casual
SUITABLE_OCCASIONS: Casual Outing, Date Night
IDENTIFIED_ITEMS: black leather jacket, white sneakers
COLOR_PALETTE: black, white
DETAILED_RECOMMENDATIONS:
1. Outerwear:
- black leather jacket
ADDITIONAL_RECOMMENDATIONS:
- keep accessories minimal`

func product(id, title string) catalog.Product {
	return catalog.Product{ID: id, Title: title}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	vision := &stubVision{
		analyzeReply: stubReply,
		extractReply: "black leather jacket, white sneakers",
	}
	products := &stubCatalog{results: map[string][]catalog.Product{
		"black leather jacket": {product("p1", "Black Leather Jacket")},
		"white sneakers":       {product("p2", "Classic White Sneakers")},
	}}

	svc := NewStylistService(vision, products, nil, nil, Options{}, zap.NewNop())

	result, err := svc.Analyze(context.Background(), inbound.AnalyzeCommand{
		Image:    []byte("fake-image"),
		Occasion: "Date Night",
		Budget:   "$300",
		Colors:   []string{"Black"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.AnalysisID)
	assert.Equal(t, "Casual", result.Analysis.StyleCategory)
	assert.Equal(t, []string{"Casual Outing", "Date Night"}, result.Analysis.SuitableOccasions)
	assert.Equal(t, []string{"black leather jacket", "white sneakers"}, result.SearchTerms)
	assert.False(t, result.FromCache)

	require.Len(t, result.Recommendations.Results, 2)
	assert.Len(t, result.Recommendations.Products, 2)

	assert.Contains(t, vision.lastPrompt, "- Occasion: Date Night")
	assert.Contains(t, vision.lastPrompt, "- Budget range: $300")
	assert.Contains(t, vision.lastPrompt, "- Preferred colors: Black")
}

func TestAnalyzeVisionDisabled(t *testing.T) {
	svc := NewStylistService(nil, &stubCatalog{}, nil, nil, Options{}, zap.NewNop())

	_, err := svc.Analyze(context.Background(), inbound.AnalyzeCommand{Image: []byte("x")})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeVisionDisabled))
}

func TestAnalyzeVisionFailure(t *testing.T) {
	vision := &stubVision{analyzeErr: errors.New("quota exceeded")}
	svc := NewStylistService(vision, &stubCatalog{}, nil, nil, Options{}, zap.NewNop())

	_, err := svc.Analyze(context.Background(), inbound.AnalyzeCommand{Image: []byte("x")})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeAnalysisFailed))
}

func TestAnalyzeFallsBackToRuleTable(t *testing.T) {
	vision := &stubVision{
		analyzeReply: stubReply,
		extractErr:   errors.New("model unavailable"),
	}
	svc := NewStylistService(vision, &stubCatalog{}, nil, nil, Options{}, zap.NewNop())

	result, err := svc.Analyze(context.Background(), inbound.AnalyzeCommand{Image: []byte("x")})
	require.NoError(t, err)

	// The reply text itself mentions both items, so the rule table finds them.
	assert.Contains(t, result.SearchTerms, "black leather jacket")
	assert.Contains(t, result.SearchTerms, "white sneakers")
}

func TestAnalyzeMaxTermsCap(t *testing.T) {
	vision := &stubVision{
		analyzeReply: stubReply,
		extractReply: "a, b, c, d, e",
	}
	svc := NewStylistService(vision, &stubCatalog{}, nil, nil, Options{MaxTerms: 2}, zap.NewNop())

	result, err := svc.Analyze(context.Background(), inbound.AnalyzeCommand{Image: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result.SearchTerms)
}

func TestAnalyzeCachesModelReply(t *testing.T) {
	vision := &stubVision{
		analyzeReply: stubReply,
		extractReply: "black leather jacket",
	}
	cache := newStubCache()
	svc := NewStylistService(vision, &stubCatalog{}, cache, nil, Options{CacheTTL: time.Hour}, zap.NewNop())

	cmd := inbound.AnalyzeCommand{Image: []byte("same-image"), Occasion: "Date Night"}

	first, err := svc.Analyze(context.Background(), cmd)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := svc.Analyze(context.Background(), cmd)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, 1, vision.analyzeCalls)

	// The parsed analysis is identical either way.
	assert.Equal(t, first.Analysis, second.Analysis)
}

func TestAnalyzeCacheKeyedOnPreferences(t *testing.T) {
	vision := &stubVision{
		analyzeReply: stubReply,
		extractReply: "black leather jacket",
	}
	cache := newStubCache()
	svc := NewStylistService(vision, &stubCatalog{}, cache, nil, Options{CacheTTL: time.Hour}, zap.NewNop())

	_, err := svc.Analyze(context.Background(), inbound.AnalyzeCommand{Image: []byte("img"), Occasion: "Date Night"})
	require.NoError(t, err)

	// Same image but different preferences must miss the cache.
	result, err := svc.Analyze(context.Background(), inbound.AnalyzeCommand{Image: []byte("img"), Occasion: "Workout"})
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 2, vision.analyzeCalls)
}

func TestSearchProductsSwallowsCatalogErrors(t *testing.T) {
	svc := NewStylistService(nil, &stubCatalog{err: errors.New("down")}, nil, nil, Options{}, zap.NewNop())

	products, err := svc.SearchProducts(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestRelatedProductsSurfacesErrors(t *testing.T) {
	svc := NewStylistService(nil, &stubCatalog{err: errors.New("down")}, nil, nil, Options{}, zap.NewNop())

	_, err := svc.RelatedProducts(context.Background(), "p1", 3)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeExternalServiceError))
}

func TestStyleHintsDisabled(t *testing.T) {
	svc := NewStylistService(nil, &stubCatalog{}, nil, nil, Options{}, zap.NewNop())

	_, err := svc.StyleHints(context.Background(), "someone")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeServiceUnavailable))
}
