package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cafeassist/backend/config"
	"github.com/cafeassist/backend/internal/domain"
	"github.com/cafeassist/backend/internal/infrastructure/cache"
	"github.com/cafeassist/backend/internal/infrastructure/catalog"
	"github.com/cafeassist/backend/internal/infrastructure/classifier"
	"github.com/cafeassist/backend/internal/usecase"
	log "github.com/sirupsen/logrus"
)

// app bundles the wired dependencies shared by the commands
type app struct {
	cfg           *config.Config
	store         *catalog.Store
	cache         *cache.MemoryCache
	assistant     *usecase.AssistantService
	catalog       *usecase.CatalogService
	notifications *usecase.NotificationService
}

// loadConfig reads configuration and applies the logging settings
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	config.ConfigureLogging(cfg.Logging)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

// openCatalog opens and migrates the catalog store
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Store, error) {
	store, err := catalog.Open(cfg.Catalog.DSN)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// seedCatalog loads the menu file into an empty catalog
func seedCatalog(ctx context.Context, store *catalog.Store, path string) (int, error) {
	products, err := catalog.LoadMenuFile(path)
	if err != nil {
		return 0, err
	}
	return catalog.Seed(ctx, store, products)
}

// newApp loads configuration and wires the assistant service.
// The classifier is loaded once here; a missing artifact means rule-only mode.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := openCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Catalog.AutoSeed && cfg.Catalog.SeedFile != "" {
		if _, err := seedCatalog(ctx, store, cfg.Catalog.SeedFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				store.Close()
				return nil, fmt.Errorf("failed to seed catalog: %w", err)
			}
			log.Warnf("[CATALOG] Seed file %s not found, starting with the existing catalog", cfg.Catalog.SeedFile)
		}
	}

	var intentClassifier domain.IntentClassifier
	if cfg.Classifier.Enabled {
		intentClassifier = classifier.LoadOrNil(classifier.Locate(cfg.Classifier.ModelPath))
	} else {
		log.Infof("[CLASSIFIER] Disabled, using keyword rules only")
	}

	memoryCache := cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL+time.Minute)

	extractor := usecase.NewIntentExtractor(intentClassifier, usecase.IntentExtractorConfig{
		EnableDebugLogging: verbose || cfg.Server.Environment == "development",
	})

	assistant := usecase.NewAssistantService(store, memoryCache, extractor, usecase.AssistantServiceConfig{
		CatalogCacheTTL: cfg.Cache.TTL,
	})

	return &app{
		cfg:           cfg,
		store:         store,
		cache:         memoryCache,
		assistant:     assistant,
		catalog:       usecase.NewCatalogService(store, assistant),
		notifications: usecase.NewNotificationService(store),
	}, nil
}

// Close releases the catalog store
func (a *app) Close() error {
	return a.store.Close()
}
