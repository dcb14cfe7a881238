package transport

import (
	"net/http"

	"scanbook/internal/catalog"
	"scanbook/internal/middleware"
	"scanbook/internal/registry"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Code string `json:"code" validate:"required,alpha,uppercase,max=5"`
	Name string `json:"name" validate:"required,max=100"`
}

// CreateProductRequest represents the product creation payload. ProductCode is
// optional; when omitted the next unused code for the merchant+category is
// assigned.
type CreateProductRequest struct {
	ProductCode string `json:"product_code" validate:"omitempty,len=3,numeric"`
	Name        string `json:"name" validate:"required,max=100"`
	ProductID   string `json:"product_id" validate:"omitempty,alphanum,uppercase,max=20"`
}

// ProductResponse echoes a stored product entry
type ProductResponse struct {
	MerchantID  string `json:"merchant_id"`
	Category    string `json:"category"`
	ProductCode string `json:"product_code"`
	Name        string `json:"name"`
	ProductID   string `json:"product_id"`
}

// CatalogHandler handles HTTP requests for categories, products and bulk maintenance
type CatalogHandler struct {
	categories  registry.CategoryRegistry
	products    catalog.ProductCatalog
	maintenance catalog.Maintenance
	logger      *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	categories registry.CategoryRegistry,
	products catalog.ProductCatalog,
	maintenance catalog.Maintenance,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		categories:  categories,
		products:    products,
		maintenance: maintenance,
		logger:      logger,
	}
}

// RegisterRoutes registers category, product and maintenance routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
	})
	r.Route("/api/merchants/{merchantID}/categories/{category}/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/next-code", h.NextProductCode)
	})
	r.Route("/api/maintenance", func(r chi.Router) {
		r.Post("/clear", h.ClearAll)
		r.Post("/isolation-check", h.IsolationCheck)
	})
}

// ListCategories returns the merged built-in and custom category mapping
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.categories.All(r.Context()))
}

// CreateCategory handles custom category creation
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category creation validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.categories.Save(r.Context(), req.Code, req.Name)
	if err != nil {
		h.logger.Error("Category creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save category")
		return
	}
	if !saved {
		middleware.RespondWithError(w, http.StatusConflict, "category code already exists")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"code": req.Code,
		"name": req.Name,
	})
}

// ListProducts returns the merged product view for a merchant and category
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	merchantID := chi.URLParam(r, "merchantID")
	category := chi.URLParam(r, "category")
	middleware.RespondWithJSON(w, http.StatusOK, h.products.ByCategory(r.Context(), merchantID, category))
}

// NextProductCode returns the next unused 3-digit product code
func (h *CatalogHandler) NextProductCode(w http.ResponseWriter, r *http.Request) {
	merchantID := chi.URLParam(r, "merchantID")
	category := chi.URLParam(r, "category")
	code := h.products.NextProductCode(r.Context(), merchantID, category)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"product_code": code})
}

// CreateProduct stores a custom product, assigning the next free code when
// none is supplied. Duplicate display names within the category are rejected
// here; the catalog itself does not enforce name uniqueness.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product creation validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	merchantID := chi.URLParam(r, "merchantID")
	category := chi.URLParam(r, "category")
	ctx := r.Context()

	existing := h.products.ByCategory(ctx, merchantID, category)
	for _, name := range existing {
		if name == req.Name {
			middleware.RespondWithError(w, http.StatusConflict, "product name already exists in this category")
			return
		}
	}

	productCode := req.ProductCode
	if productCode == "" {
		productCode = h.products.NextProductCode(ctx, merchantID, category)
	}

	if err := h.products.Save(ctx, merchantID, category, productCode, req.Name, req.ProductID); err != nil {
		h.logger.Error("Product creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save product")
		return
	}

	productID := req.ProductID
	if productID == "" {
		productID = "0"
	}
	middleware.RespondWithJSON(w, http.StatusCreated, ProductResponse{
		MerchantID:  merchantID,
		Category:    category,
		ProductCode: productCode,
		Name:        req.Name,
		ProductID:   productID,
	})
}

// ClearAll removes all custom categories and products
func (h *CatalogHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	result := h.maintenance.ClearAll(r.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	middleware.RespondWithJSON(w, status, result)
}

// IsolationCheck runs the clear-isolation diagnostic
func (h *CatalogHandler) IsolationCheck(w http.ResponseWriter, r *http.Request) {
	passed := h.maintenance.VerifyClearIsolation(r.Context())
	middleware.RespondWithJSON(w, http.StatusOK, map[string]bool{"passed": passed})
}
