package storage

import (
	"context"
	"errors"
)

// Storage keys owned by the catalog core. Values are UTF-8 JSON.
const (
	KeyCustomMerchants  = "custom_merchants"
	KeyCustomCategories = "custom_categories"
	KeyCustomProducts   = "custom_products"
	KeySheetSync        = "sheet_sync_settings"
)

// ErrKeyNotFound is returned by Get when the key has never been written or was removed
var ErrKeyNotFound = errors.New("storage key not found")

// Store defines the interface for the persistent string-keyed store backing
// the registries and the catalog
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
