package barcode

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"scanbook/internal/catalog"
	"scanbook/internal/domain"
	"scanbook/internal/registry"

	"go.uber.org/zap"
)

// Barcode wire formats. The current format embeds the merchant code and the
// external product id; the legacy format predates merchants and carries only
// category, product code and production date.
var (
	currentFormat = regexp.MustCompile(`^([A-Z]+)-([A-Z]+)-(\d{3})-([A-Z0-9]+)-(\d{8})$`)
	legacyFormat  = regexp.MustCompile(`^([A-Z]+)-(\d{3})-(\d{8})$`)
)

const (
	errEmptyBarcode    = "invalid barcode format"
	errUnknownFormat   = "unrecognized barcode format, expected MERCHANT-CATEGORY-NNN-PRODUCTID-YYYYMMDD or CATEGORY-NNN-YYYYMMDD"
	errInvalidDate     = "production date format incorrect"
	errUnregisteredFmt = "product %s-%s is not registered, add it to the catalog first"
)

// Codec parses and generates barcode strings. Parsing consults the category
// and merchant registries and the product catalog; the codec itself holds no
// state and never persists anything.
type Codec interface {
	Parse(ctx context.Context, raw string) domain.ParsedBarcode
	Generate(merchantCode, categoryCode, productCode, productID, productionDate string) string
}

type codec struct {
	merchants  registry.MerchantRegistry
	categories registry.CategoryRegistry
	products   catalog.ProductCatalog
	logger     *zap.Logger
}

// NewCodec creates a new instance of Codec
func NewCodec(
	merchants registry.MerchantRegistry,
	categories registry.CategoryRegistry,
	products catalog.ProductCatalog,
	logger *zap.Logger,
) Codec {
	return &codec{
		merchants:  merchants,
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// Parse decodes a scanned or hand-entered barcode. All failure modes are
// reported through the result's IsValid/Error fields; Parse never fails with
// a Go error.
func (c *codec) Parse(ctx context.Context, raw string) domain.ParsedBarcode {
	if raw == "" {
		return domain.ParsedBarcode{Error: errEmptyBarcode}
	}

	var merchantCode, categoryCode, productCode, productID, productionDate string

	if m := currentFormat.FindStringSubmatch(raw); m != nil {
		merchantCode, categoryCode, productCode, productID, productionDate = m[1], m[2], m[3], m[4], m[5]
	} else if m := legacyFormat.FindStringSubmatch(raw); m != nil {
		categoryCode, productCode, productionDate = m[1], m[2], m[3]
		productID = domain.DefaultProductID
	} else {
		return domain.ParsedBarcode{Error: errUnknownFormat}
	}

	result := domain.ParsedBarcode{
		MerchantCode:   merchantCode,
		Category:       categoryCode,
		ProductCode:    productCode,
		ProductID:      productID,
		ProductionDate: productionDate,
	}

	// Unknown categories are tolerated: the raw code doubles as the name.
	result.CategoryName = c.categories.All(ctx)[categoryCode]
	if result.CategoryName == "" {
		c.logger.Warn("Barcode references unknown category", zap.String("category", categoryCode))
		result.CategoryName = categoryCode
	}

	// Legacy barcodes predate merchants and resolve against the default
	// built-in merchant. An unknown merchant code is tolerated as well; only
	// the catalog lookup below is strict.
	merchantID := domain.DefaultMerchantID
	if merchantCode != "" {
		merchantID = ""
		if merchant := c.merchants.GetByCode(ctx, merchantCode); merchant != nil {
			merchantID = merchant.ID
			result.MerchantName = merchant.Name
		} else {
			c.logger.Warn("Barcode references unknown merchant", zap.String("merchant_code", merchantCode))
		}
	}

	// Products must be registered before they can be scanned.
	products := c.products.ByCategory(ctx, merchantID, categoryCode)
	name, registered := products[productCode]
	if !registered {
		result.Error = fmt.Sprintf(errUnregisteredFmt, categoryCode, productCode)
		return result
	}
	result.ProductName = name

	if result.ProductID == domain.DefaultProductID {
		result.ProductID = c.products.ProductID(ctx, merchantID, categoryCode, productCode)
	}

	formatted, ok := validateProductionDate(productionDate)
	if !ok {
		result.Error = errInvalidDate
		return result
	}
	result.FormattedDate = formatted
	result.IsValid = true
	return result
}

// Generate produces a current-format barcode by plain concatenation. The
// caller guarantees well-formed components; no validation is performed.
func (c *codec) Generate(merchantCode, categoryCode, productCode, productID, productionDate string) string {
	return fmt.Sprintf("%s-%s-%s-%s-%s", merchantCode, categoryCode, productCode, productID, productionDate)
}

// validateProductionDate checks an 8-digit YYYYMMDD string against the real
// calendar: the date's components must survive a round trip through
// time.Date, which rejects Feb 30, month 13 and the like.
func validateProductionDate(s string) (string, bool) {
	if len(s) != 8 {
		return "", false
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(s[4:6])
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(s[6:8])
	if err != nil {
		return "", false
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return "", false
	}

	return fmt.Sprintf("%04d/%02d/%02d", year, month, day), true
}
