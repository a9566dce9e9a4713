package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductRepository defines the interface for the product catalog store
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) (int64, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id int64) error
	AddLabel(ctx context.Context, name string) error
	Labels(ctx context.Context) ([]string, error)
}

// NotificationRepository defines the interface for customer contact messages
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *Notification) (int64, error)
	ListNotifications(ctx context.Context) ([]Notification, error)
	DeleteNotification(ctx context.Context, id int64) error
}

// IntentClassifier is the optional statistical voter used by the intent extractor.
// Implementations must be safe for concurrent use.
type IntentClassifier interface {
	Predict(text string) (ClassifierLabel, error)
}
