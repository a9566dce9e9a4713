package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cafeassist/backend/internal/domain"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MenuFile is the YAML layout of a menu seed file
type MenuFile struct {
	Products []domain.Product `yaml:"products"`
}

// LoadMenuFile reads a menu seed file
func LoadMenuFile(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}
	return ParseMenu(data)
}

// ParseMenu decodes menu YAML. Every product needs a name.
func ParseMenu(data []byte) ([]domain.Product, error) {
	var menu MenuFile
	if err := yaml.Unmarshal(data, &menu); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}

	for i, p := range menu.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: menu product %d has no name", domain.ErrInvalidRequest, i)
		}
	}
	return menu.Products, nil
}

// Seed inserts products when the catalog is empty and returns how many were added
func Seed(ctx context.Context, store *Store, products []domain.Product) (int, error) {
	count, err := store.CountProducts(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Infof("[CATALOG] Catalog already has %d products, skipping seed", count)
		return 0, nil
	}

	for i := range products {
		p := products[i]
		p.ID = 0
		if _, err := store.CreateProduct(ctx, &p); err != nil {
			return i, fmt.Errorf("failed to seed %q: %w", p.Name, err)
		}
	}

	log.Infof("[CATALOG] Seeded %d products", len(products))
	return len(products), nil
}
