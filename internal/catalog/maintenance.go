package catalog

import (
	"context"
	"errors"

	"scanbook/internal/storage"

	"go.uber.org/zap"
)

// Fixed user-facing messages for the bulk clear operation
const (
	clearAllSuccessMessage = "all custom categories and products cleared"
	clearAllPartialMessage = "some custom data could not be cleared"
)

// ClearResult reports the outcome of a bulk clear
type ClearResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Details map[string]bool `json:"details"`
}

// Maintenance defines the bulk clear operations over custom catalog data
type Maintenance interface {
	ClearCategories(ctx context.Context) bool
	ClearProducts(ctx context.Context) bool
	ClearAll(ctx context.Context) ClearResult
	// VerifyClearIsolation is a diagnostic self-test: it asserts that a full
	// clear leaves unrelated storage keys untouched.
	VerifyClearIsolation(ctx context.Context) bool
}

type maintenance struct {
	store  storage.Store
	logger *zap.Logger
}

// NewMaintenance creates a new instance of Maintenance
func NewMaintenance(store storage.Store, logger *zap.Logger) Maintenance {
	return &maintenance{store: store, logger: logger}
}

// ClearCategories removes all custom categories. Storage faults are logged
// and reported as false, never raised.
func (m *maintenance) ClearCategories(ctx context.Context) bool {
	if err := m.store.Remove(ctx, storage.KeyCustomCategories); err != nil {
		m.logger.Error("Failed to clear custom categories", zap.Error(err))
		return false
	}
	m.logger.Info("Custom categories cleared")
	return true
}

// ClearProducts removes all custom products with the same contract as ClearCategories
func (m *maintenance) ClearProducts(ctx context.Context) bool {
	if err := m.store.Remove(ctx, storage.KeyCustomProducts); err != nil {
		m.logger.Error("Failed to clear custom products", zap.Error(err))
		return false
	}
	m.logger.Info("Custom products cleared")
	return true
}

// ClearAll runs both clears unconditionally; a failed category clear does not
// short-circuit the product clear. There is no rollback.
func (m *maintenance) ClearAll(ctx context.Context) ClearResult {
	categoriesCleared := m.ClearCategories(ctx)
	productsCleared := m.ClearProducts(ctx)

	result := ClearResult{
		Success: categoriesCleared && productsCleared,
		Details: map[string]bool{
			"categories": categoriesCleared,
			"products":   productsCleared,
		},
	}
	if result.Success {
		result.Message = clearAllSuccessMessage
	} else {
		result.Message = clearAllPartialMessage
	}
	return result
}

// VerifyClearIsolation snapshots the spreadsheet-sync settings key, runs a
// full clear, and asserts the snapshot is unchanged byte for byte. Clearing
// catalog data must never touch any other storage key.
func (m *maintenance) VerifyClearIsolation(ctx context.Context) bool {
	before, beforeErr := m.store.Get(ctx, storage.KeySheetSync)
	if beforeErr != nil && !errors.Is(beforeErr, storage.ErrKeyNotFound) {
		m.logger.Error("Isolation check aborted: cannot snapshot sync settings", zap.Error(beforeErr))
		return false
	}

	m.ClearAll(ctx)

	after, afterErr := m.store.Get(ctx, storage.KeySheetSync)
	if afterErr != nil && !errors.Is(afterErr, storage.ErrKeyNotFound) {
		m.logger.Error("Isolation check aborted: cannot re-read sync settings", zap.Error(afterErr))
		return false
	}

	beforeMissing := errors.Is(beforeErr, storage.ErrKeyNotFound)
	afterMissing := errors.Is(afterErr, storage.ErrKeyNotFound)
	if beforeMissing != afterMissing || before != after {
		m.logger.Error("Isolation check failed: clear touched unrelated storage",
			zap.Bool("before_missing", beforeMissing),
			zap.Bool("after_missing", afterMissing),
		)
		return false
	}

	m.logger.Info("Isolation check passed: sync settings untouched by clear")
	return true
}
