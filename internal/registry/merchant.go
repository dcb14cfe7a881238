package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scanbook/internal/domain"
	"scanbook/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrMerchantNotFound = errors.New("merchant not found")
	ErrDuplicateCode    = errors.New("merchant with this code already exists")
	ErrBuiltinProtected = errors.New("built-in merchant cannot be modified")
)

// MerchantRegistry defines the interface for merchant management
type MerchantRegistry interface {
	// LoadAll returns built-in merchants unioned with persisted custom
	// merchants. It never fails the caller; on storage faults the built-in
	// set alone is returned.
	LoadAll(ctx context.Context) []*domain.Merchant
	Add(ctx context.Context, name, code, description string) (*domain.Merchant, error)
	Update(ctx context.Context, id string, update domain.MerchantUpdate) (*domain.Merchant, error)
	Delete(ctx context.Context, id string) error
	// GetByID and GetByCode return nil when no merchant matches; they never fail
	GetByID(ctx context.Context, id string) *domain.Merchant
	GetByCode(ctx context.Context, code string) *domain.Merchant
}

type merchantRegistry struct {
	store  storage.Store
	logger *zap.Logger
}

// NewMerchantRegistry creates a new instance of MerchantRegistry
func NewMerchantRegistry(store storage.Store, logger *zap.Logger) MerchantRegistry {
	return &merchantRegistry{store: store, logger: logger}
}

// loadCustom reads the persisted custom merchant set. found is false when the
// key has never been written.
func (r *merchantRegistry) loadCustom(ctx context.Context) (customs []*domain.Merchant, found bool, err error) {
	raw, err := r.store.Get(ctx, storage.KeyCustomMerchants)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load custom merchants: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &customs); err != nil {
		return nil, false, fmt.Errorf("failed to decode custom merchants: %w", err)
	}
	return customs, true, nil
}

func (r *merchantRegistry) persist(ctx context.Context, customs []*domain.Merchant) error {
	if customs == nil {
		customs = []*domain.Merchant{}
	}
	data, err := json.Marshal(customs)
	if err != nil {
		return fmt.Errorf("failed to encode custom merchants: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyCustomMerchants, string(data)); err != nil {
		return fmt.Errorf("failed to persist custom merchants: %w", err)
	}
	return nil
}

// LoadAll returns the built-in merchants plus persisted custom merchants.
// Custom entries whose code collides with a built-in are dropped, built-in
// wins. The very first load seeds the storage key with an empty custom set.
func (r *merchantRegistry) LoadAll(ctx context.Context) []*domain.Merchant {
	builtins := domain.BuiltinMerchants()

	customs, found, err := r.loadCustom(ctx)
	if err != nil {
		r.logger.Error("Falling back to built-in merchants only", zap.Error(err))
		return builtins
	}

	if !found {
		// First-ever load: seed the key so later reads distinguish "empty"
		// from "never written". A write fault here is logged, not surfaced.
		if err := r.persist(ctx, nil); err != nil {
			r.logger.Error("Failed to seed merchant storage on first load", zap.Error(err))
		}
	}

	builtinCodes := make(map[string]bool, len(builtins))
	for _, m := range builtins {
		builtinCodes[m.Code] = true
	}

	merchants := builtins
	for _, m := range customs {
		if builtinCodes[m.Code] {
			r.logger.Warn("Dropping custom merchant shadowing a built-in code",
				zap.String("code", m.Code),
				zap.String("id", m.ID),
			)
			continue
		}
		merchants = append(merchants, m)
	}
	return merchants
}

// Add creates a new custom merchant, rejecting duplicate codes
func (r *merchantRegistry) Add(ctx context.Context, name, code, description string) (*domain.Merchant, error) {
	customs, _, err := r.loadCustom(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range domain.BuiltinMerchants() {
		if m.Code == code {
			return nil, ErrDuplicateCode
		}
	}
	for _, m := range customs {
		if m.Code == code {
			return nil, ErrDuplicateCode
		}
	}

	merchant := &domain.Merchant{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}

	customs = append(customs, merchant)
	if err := r.persist(ctx, customs); err != nil {
		return nil, err
	}

	r.logger.Info("Merchant added",
		zap.String("id", merchant.ID),
		zap.String("code", merchant.Code),
	)
	return merchant, nil
}

// Update merges the given fields into a custom merchant. Built-ins are protected.
func (r *merchantRegistry) Update(ctx context.Context, id string, update domain.MerchantUpdate) (*domain.Merchant, error) {
	if domain.IsBuiltinMerchantID(id) {
		return nil, ErrBuiltinProtected
	}

	customs, _, err := r.loadCustom(ctx)
	if err != nil {
		return nil, err
	}

	var target *domain.Merchant
	for _, m := range customs {
		if m.ID == id {
			target = m
			break
		}
	}
	if target == nil {
		return nil, ErrMerchantNotFound
	}

	if update.Code != nil && *update.Code != target.Code {
		for _, m := range domain.BuiltinMerchants() {
			if m.Code == *update.Code {
				return nil, ErrDuplicateCode
			}
		}
		for _, m := range customs {
			if m.ID != id && m.Code == *update.Code {
				return nil, ErrDuplicateCode
			}
		}
		target.Code = *update.Code
	}
	if update.Name != nil {
		target.Name = *update.Name
	}
	if update.Description != nil {
		target.Description = *update.Description
	}

	if err := r.persist(ctx, customs); err != nil {
		return nil, err
	}

	r.logger.Info("Merchant updated", zap.String("id", id))
	return target, nil
}

// Delete removes a custom merchant. Built-ins are protected.
func (r *merchantRegistry) Delete(ctx context.Context, id string) error {
	if domain.IsBuiltinMerchantID(id) {
		return ErrBuiltinProtected
	}

	customs, _, err := r.loadCustom(ctx)
	if err != nil {
		return err
	}

	index := -1
	for i, m := range customs {
		if m.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrMerchantNotFound
	}

	customs = append(customs[:index], customs[index+1:]...)
	if err := r.persist(ctx, customs); err != nil {
		return err
	}

	r.logger.Info("Merchant deleted", zap.String("id", id))
	return nil
}

func (r *merchantRegistry) GetByID(ctx context.Context, id string) *domain.Merchant {
	for _, m := range r.LoadAll(ctx) {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (r *merchantRegistry) GetByCode(ctx context.Context, code string) *domain.Merchant {
	for _, m := range r.LoadAll(ctx) {
		if m.Code == code {
			return m
		}
	}
	return nil
}
