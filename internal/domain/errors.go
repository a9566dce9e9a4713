package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product does not exist in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrNotificationNotFound is returned when a contact message does not exist
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrCatalogUnavailable is returned when the product catalog cannot be read
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrModelNotFound is returned when the classifier artifact does not exist
	ErrModelNotFound = errors.New("classifier model not found")

	// ErrModelCorrupt is returned when the classifier artifact cannot be decoded
	ErrModelCorrupt = errors.New("classifier model is corrupt")

	// ErrClassifierFailure is returned when a single prediction fails
	ErrClassifierFailure = errors.New("classifier prediction failed")
)
