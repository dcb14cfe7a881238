package transport

import (
	"errors"
	"net/http"

	"scanbook/internal/domain"
	"scanbook/internal/middleware"
	"scanbook/internal/registry"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateMerchantRequest represents the merchant creation payload
type CreateMerchantRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"required,alphanum,uppercase,max=10"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateMerchantRequest represents a partial merchant update payload
type UpdateMerchantRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Code        *string `json:"code,omitempty" validate:"omitempty,alphanum,uppercase,max=10"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// MerchantHandler handles HTTP requests for merchant management
type MerchantHandler struct {
	merchants registry.MerchantRegistry
	logger    *zap.Logger
}

// NewMerchantHandler creates a new MerchantHandler
func NewMerchantHandler(merchants registry.MerchantRegistry, logger *zap.Logger) *MerchantHandler {
	return &MerchantHandler{merchants: merchants, logger: logger}
}

// RegisterRoutes registers all merchant routes
func (h *MerchantHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/merchants", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns built-in and custom merchants
func (h *MerchantHandler) List(w http.ResponseWriter, r *http.Request) {
	merchants := h.merchants.LoadAll(r.Context())
	middleware.RespondWithJSON(w, http.StatusOK, merchants)
}

// Get returns a single merchant by id
func (h *MerchantHandler) Get(w http.ResponseWriter, r *http.Request) {
	merchant := h.merchants.GetByID(r.Context(), chi.URLParam(r, "id"))
	if merchant == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "merchant not found")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, merchant)
}

// Create handles custom merchant creation
func (h *MerchantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMerchantRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Merchant creation validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	merchant, err := h.merchants.Add(r.Context(), req.Name, req.Code, req.Description)
	if err != nil {
		if errors.Is(err, registry.ErrDuplicateCode) {
			middleware.RespondWithError(w, http.StatusConflict, "merchant code already exists")
			return
		}
		h.logger.Error("Merchant creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create merchant")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, merchant)
}

// Update handles partial merchant updates
func (h *MerchantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateMerchantRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Merchant update validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := domain.MerchantUpdate{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	merchant, err := h.merchants.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		h.respondMutationError(w, err, "failed to update merchant")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, merchant)
}

// Delete removes a custom merchant
func (h *MerchantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.merchants.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondMutationError(w, err, "failed to delete merchant")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "merchant deleted"})
}

// respondMutationError maps registry sentinels to HTTP statuses
func (h *MerchantHandler) respondMutationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, registry.ErrMerchantNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "merchant not found")
	case errors.Is(err, registry.ErrBuiltinProtected):
		middleware.RespondWithError(w, http.StatusForbidden, "built-in merchant cannot be modified")
	case errors.Is(err, registry.ErrDuplicateCode):
		middleware.RespondWithError(w, http.StatusConflict, "merchant code already exists")
	default:
		h.logger.Error("Merchant mutation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}
