package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"scanbook/internal/domain"
	"scanbook/internal/storage"

	"go.uber.org/zap"
)

// ProductCatalog defines the interface for the merged built-in/custom product view
type ProductCatalog interface {
	// ByCategory returns the product code -> display name mapping visible to
	// the given merchant for a category. Storage faults yield the built-in
	// view alone (empty for non-default merchants), never an error.
	ByCategory(ctx context.Context, merchantID, categoryCode string) map[string]string
	// ProductID resolves the external product identifier for a catalog entry,
	// falling back to the default sentinel. It never fails.
	ProductID(ctx context.Context, merchantID, categoryCode, productCode string) string
	// Save overwrites or creates the custom entry at the given triple.
	// Name-uniqueness within a category is the caller's concern.
	Save(ctx context.Context, merchantID, categoryCode, productCode, name, productID string) error
	// NextProductCode returns the next unused 3-digit code for the
	// merchant+category: max existing numeric code plus one, "001" when empty.
	NextProductCode(ctx context.Context, merchantID, categoryCode string) string
}

type productCatalog struct {
	store  storage.Store
	logger *zap.Logger
}

// NewProductCatalog creates a new instance of ProductCatalog
func NewProductCatalog(store storage.Store, logger *zap.Logger) ProductCatalog {
	return &productCatalog{store: store, logger: logger}
}

func (c *productCatalog) loadCustom(ctx context.Context) (domain.CustomProducts, error) {
	raw, err := c.store.Get(ctx, storage.KeyCustomProducts)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return domain.CustomProducts{}, nil
		}
		return nil, fmt.Errorf("failed to load custom products: %w", err)
	}

	custom := domain.CustomProducts{}
	if err := json.Unmarshal([]byte(raw), &custom); err != nil {
		return nil, fmt.Errorf("failed to decode custom products: %w", err)
	}
	return custom, nil
}

func (c *productCatalog) ByCategory(ctx context.Context, merchantID, categoryCode string) map[string]string {
	products := map[string]string{}

	// Built-in products are visible only to the default built-in merchant.
	if merchantID == domain.DefaultMerchantID {
		for code, entry := range domain.BuiltinProducts()[categoryCode] {
			products[code] = entry.Name
		}
	}

	custom, err := c.loadCustom(ctx)
	if err != nil {
		c.logger.Error("Falling back to built-in products only", zap.Error(err))
		return products
	}

	// Custom entries win over built-ins at the same product code.
	for code, entry := range custom[merchantID][categoryCode] {
		products[code] = entry.Name
	}
	return products
}

func (c *productCatalog) ProductID(ctx context.Context, merchantID, categoryCode, productCode string) string {
	if merchantID == domain.DefaultMerchantID {
		if entry, ok := domain.BuiltinProducts()[categoryCode][productCode]; ok && entry.ProductID != "" {
			return entry.ProductID
		}
	}

	custom, err := c.loadCustom(ctx)
	if err != nil {
		c.logger.Error("Product id lookup falling back to default", zap.Error(err))
		return domain.DefaultProductID
	}

	if entry, ok := custom[merchantID][categoryCode][productCode]; ok && entry.ProductID != "" {
		return entry.ProductID
	}
	return domain.DefaultProductID
}

func (c *productCatalog) Save(ctx context.Context, merchantID, categoryCode, productCode, name, productID string) error {
	if productID == "" {
		productID = domain.DefaultProductID
	}

	custom, err := c.loadCustom(ctx)
	if err != nil {
		return err
	}

	if custom[merchantID] == nil {
		custom[merchantID] = map[string]map[string]domain.ProductEntry{}
	}
	if custom[merchantID][categoryCode] == nil {
		custom[merchantID][categoryCode] = map[string]domain.ProductEntry{}
	}
	custom[merchantID][categoryCode][productCode] = domain.ProductEntry{
		Name:      name,
		ProductID: productID,
	}

	data, err := json.Marshal(custom)
	if err != nil {
		return fmt.Errorf("failed to encode custom products: %w", err)
	}
	if err := c.store.Set(ctx, storage.KeyCustomProducts, string(data)); err != nil {
		return fmt.Errorf("failed to persist custom products: %w", err)
	}

	c.logger.Info("Product saved",
		zap.String("merchant_id", merchantID),
		zap.String("category", categoryCode),
		zap.String("product_code", productCode),
	)
	return nil
}

func (c *productCatalog) NextProductCode(ctx context.Context, merchantID, categoryCode string) string {
	max := 0
	for code := range c.ByCategory(ctx, merchantID, categoryCode) {
		n, err := strconv.Atoi(code)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%03d", max+1)
}
