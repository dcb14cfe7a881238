package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"scanbook/internal/domain"
	"scanbook/internal/storage"

	"go.uber.org/zap"
)

// CategoryRegistry defines the interface for category management. Categories
// are global across the app, not merchant-scoped.
type CategoryRegistry interface {
	// LoadCustom returns the persisted custom mapping; storage faults yield
	// an empty mapping and a logged diagnostic, never an error.
	LoadCustom(ctx context.Context) map[string]string
	// Save inserts a custom category. It returns (false, nil) when the code
	// already exists in the built-in or custom mapping, and (false, err) on a
	// storage fault.
	Save(ctx context.Context, code, name string) (bool, error)
	// All returns the built-in mapping merged with the custom mapping
	All(ctx context.Context) map[string]string
}

type categoryRegistry struct {
	store  storage.Store
	logger *zap.Logger
}

// NewCategoryRegistry creates a new instance of CategoryRegistry
func NewCategoryRegistry(store storage.Store, logger *zap.Logger) CategoryRegistry {
	return &categoryRegistry{store: store, logger: logger}
}

func (r *categoryRegistry) loadCustom(ctx context.Context) (map[string]string, error) {
	raw, err := r.store.Get(ctx, storage.KeyCustomCategories)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to load custom categories: %w", err)
	}

	custom := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		return nil, fmt.Errorf("failed to decode custom categories: %w", err)
	}
	return custom, nil
}

func (r *categoryRegistry) LoadCustom(ctx context.Context) map[string]string {
	custom, err := r.loadCustom(ctx)
	if err != nil {
		r.logger.Error("Falling back to empty custom categories", zap.Error(err))
		return map[string]string{}
	}
	return custom
}

func (r *categoryRegistry) Save(ctx context.Context, code, name string) (bool, error) {
	if _, exists := domain.BuiltinCategories()[code]; exists {
		return false, nil
	}

	custom, err := r.loadCustom(ctx)
	if err != nil {
		return false, err
	}
	if _, exists := custom[code]; exists {
		return false, nil
	}

	custom[code] = name
	data, err := json.Marshal(custom)
	if err != nil {
		return false, fmt.Errorf("failed to encode custom categories: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyCustomCategories, string(data)); err != nil {
		return false, fmt.Errorf("failed to persist custom categories: %w", err)
	}

	r.logger.Info("Category saved", zap.String("code", code), zap.String("name", name))
	return true, nil
}

// All merges built-in and custom categories. Save rejects collisions, so the
// custom-wins overlay here is defensive only.
func (r *categoryRegistry) All(ctx context.Context) map[string]string {
	merged := domain.BuiltinCategories()
	for code, name := range r.LoadCustom(ctx) {
		merged[code] = name
	}
	return merged
}
