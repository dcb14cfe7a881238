package transport

import (
	"net/http"

	"scanbook/internal/middleware"
	"scanbook/internal/sheets"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SaveSyncSettingsRequest represents the sync settings payload
type SaveSyncSettingsRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required,max=100"`
	SheetName     string `json:"sheet_name" validate:"required,max=100"`
	AutoSync      bool   `json:"auto_sync"`
}

// SyncHandler handles HTTP requests for spreadsheet-sync settings
type SyncHandler struct {
	settings sheets.SettingsStore
	logger   *zap.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(settings sheets.SettingsStore, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{settings: settings, logger: logger}
}

// RegisterRoutes registers all sync settings routes
func (h *SyncHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/sync/settings", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Save)
	})
}

// Get returns the persisted sync settings, or 404 when none exist
func (h *SyncHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Load(r.Context())
	if err != nil {
		h.logger.Error("Failed to load sync settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load sync settings")
		return
	}
	if settings == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "sync settings not configured")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

// Save persists the sync settings
func (h *SyncHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SaveSyncSettingsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Sync settings validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings := sheets.SyncSettings{
		SpreadsheetID: req.SpreadsheetID,
		SheetName:     req.SheetName,
		AutoSync:      req.AutoSync,
	}
	if err := h.settings.Save(r.Context(), settings); err != nil {
		h.logger.Error("Failed to save sync settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save sync settings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, settings)
}
