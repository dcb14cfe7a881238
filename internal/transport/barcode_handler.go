package transport

import (
	"net/http"

	"scanbook/internal/barcode"
	"scanbook/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ParseBarcodeRequest represents the barcode parse payload
type ParseBarcodeRequest struct {
	Barcode string `json:"barcode" validate:"required"`
}

// GenerateBarcodeRequest represents the barcode generation payload
type GenerateBarcodeRequest struct {
	MerchantCode   string `json:"merchant_code" validate:"required,alphanum,uppercase"`
	Category       string `json:"category" validate:"required,alpha,uppercase"`
	ProductCode    string `json:"product_code" validate:"required,len=3,numeric"`
	ProductID      string `json:"product_id" validate:"required,alphanum,uppercase"`
	ProductionDate string `json:"production_date" validate:"required,len=8,numeric"`
}

// GenerateBarcodeResponse carries the generated barcode string
type GenerateBarcodeResponse struct {
	Barcode string `json:"barcode"`
}

// BarcodeHandler handles HTTP requests for barcode parsing and generation
type BarcodeHandler struct {
	codec  barcode.Codec
	logger *zap.Logger
}

// NewBarcodeHandler creates a new BarcodeHandler
func NewBarcodeHandler(codec barcode.Codec, logger *zap.Logger) *BarcodeHandler {
	return &BarcodeHandler{codec: codec, logger: logger}
}

// RegisterRoutes registers all barcode routes
func (h *BarcodeHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/barcodes", func(r chi.Router) {
		r.Post("/parse", h.Parse)
		r.Post("/generate", h.Generate)
	})
}

// Parse decodes a barcode string. Invalid barcodes still answer 200: the
// result's is_valid/error fields carry the outcome so the client can render
// it directly.
func (h *BarcodeHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseBarcodeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Barcode parse validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.codec.Parse(r.Context(), req.Barcode)
	if !result.IsValid {
		h.logger.Debug("Barcode rejected",
			zap.String("barcode", req.Barcode),
			zap.String("reason", result.Error),
		)
	}
	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Generate produces a current-format barcode from its components
func (h *BarcodeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateBarcodeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Barcode generation validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code := h.codec.Generate(req.MerchantCode, req.Category, req.ProductCode, req.ProductID, req.ProductionDate)
	middleware.RespondWithJSON(w, http.StatusOK, GenerateBarcodeResponse{Barcode: code})
}
