package usecase

import (
	"context"
	"strings"

	"github.com/cafeassist/backend/internal/domain"
	log "github.com/sirupsen/logrus"
)

// CatalogService manages products and labels for the admin panel.
// Every successful write drops the assistant's catalog snapshot.
type CatalogService struct {
	catalog   domain.ProductRepository
	assistant *AssistantService
}

// NewCatalogService creates a catalog service. assistant may be nil when
// no snapshot needs invalidating.
func NewCatalogService(catalog domain.ProductRepository, assistant *AssistantService) *CatalogService {
	return &CatalogService{
		catalog:   catalog,
		assistant: assistant,
	}
}

// GetProduct returns a single product
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrProductNotFound
	}
	return s.catalog.GetProduct(ctx, id)
}

// CreateProduct adds a product and returns it with its new id
func (s *CatalogService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	product := input.Product(0)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if _, err := s.catalog.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	log.Infof("[CATALOG] Created product %d %q", product.ID, product.Name)
	s.invalidate(ctx)
	return &product, nil
}

// UpdateProduct replaces a product's fields and labels
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, input domain.ProductInput) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrProductNotFound
	}
	product := input.Product(id)
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.catalog.UpdateProduct(ctx, &product); err != nil {
		return nil, err
	}

	log.Infof("[CATALOG] Updated product %d", id)
	s.invalidate(ctx)
	return &product, nil
}

// DeleteProduct removes a product
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrProductNotFound
	}
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}

	log.Infof("[CATALOG] Deleted product %d", id)
	s.invalidate(ctx)
	return nil
}

// AddLabel registers a label name
func (s *CatalogService) AddLabel(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidRequest
	}
	if err := s.catalog.AddLabel(ctx, name); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Labels returns every registered label name
func (s *CatalogService) Labels(ctx context.Context) ([]string, error) {
	return s.catalog.Labels(ctx)
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.assistant == nil {
		return
	}
	if err := s.assistant.InvalidateCatalog(ctx); err != nil {
		// The snapshot expires on its own TTL
		log.Warnf("[CATALOG] failed to invalidate catalog cache: %v", err)
	}
}

func validateProduct(p domain.Product) error {
	if p.Name == "" || p.Price < 0 {
		return domain.ErrInvalidRequest
	}
	return nil
}
