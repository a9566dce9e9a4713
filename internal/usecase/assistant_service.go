package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/cafeassist/backend/internal/domain"
	log "github.com/sirupsen/logrus"
)

// catalogCacheKey is the cache key for the catalog snapshot
const catalogCacheKey = "catalog:products"

// AssistantServiceConfig holds configuration for the assistant service
type AssistantServiceConfig struct {
	CatalogCacheTTL time.Duration
}

// AssistantService answers free-text requests with product recommendations.
// Flow: load catalog (cache, then store) -> extract intent -> filter
type AssistantService struct {
	catalog   domain.ProductRepository
	cache     domain.CacheRepository
	extractor *IntentExtractor
	filter    *RecommendationFilter
	cacheTTL  time.Duration
}

// NewAssistantService creates a new assistant service with dependencies.
// cache may be nil to always read the catalog from the store.
func NewAssistantService(
	catalog domain.ProductRepository,
	cache domain.CacheRepository,
	extractor *IntentExtractor,
	config AssistantServiceConfig,
) *AssistantService {
	cacheTTL := config.CatalogCacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Minute
	}

	return &AssistantService{
		catalog:   catalog,
		cache:     cache,
		extractor: extractor,
		filter:    NewRecommendationFilter(),
		cacheTTL:  cacheTTL,
	}
}

// Recommend interprets the message and returns matching products.
// An empty message is valid and yields the default intent.
func (s *AssistantService) Recommend(
	ctx context.Context,
	request *domain.AssistantRequest,
) (*domain.AssistantResponse, error) {
	if request == nil {
		return nil, domain.ErrInvalidRequest
	}

	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	intent := s.extractor.Extract(request.Message)
	recommendations := s.filter.Filter(intent, products)

	log.WithFields(log.Fields{
		"catalog": len(products),
		"matched": len(recommendations),
	}).Infof("[ASSISTANT] %q", request.Message)

	return &domain.AssistantResponse{
		Intent:          intent,
		Recommendations: recommendations,
	}, nil
}

// Products returns the full catalog, served from cache when possible
func (s *AssistantService) Products(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := s.getFromCache(ctx); ok {
		return cached, nil
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, products, s.cacheTTL); err != nil {
			// Log but don't fail if caching fails
			log.Warnf("[ASSISTANT] failed to cache catalog: %v", err)
		}
	}

	return products, nil
}

// InvalidateCatalog drops the cached catalog snapshot
func (s *AssistantService) InvalidateCatalog(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, catalogCacheKey)
}

// getFromCache retrieves the catalog snapshot from cache
func (s *AssistantService) getFromCache(ctx context.Context) ([]domain.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	value, err := s.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		return nil, false
	}

	products, ok := value.([]domain.Product)
	return products, ok
}
