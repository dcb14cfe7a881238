package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"scanbook/internal/storage"

	"go.uber.org/zap"
)

// SyncSettings is the persisted spreadsheet-sync configuration. It lives under
// its own storage key, fully isolated from the catalog keys.
type SyncSettings struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetName     string `json:"sheet_name"`
	AutoSync      bool   `json:"auto_sync"`
}

// SettingsStore defines the interface for sync settings persistence
type SettingsStore interface {
	// Load returns the persisted settings, or nil when none have been saved
	Load(ctx context.Context) (*SyncSettings, error)
	Save(ctx context.Context, settings SyncSettings) error
}

type settingsStore struct {
	store  storage.Store
	logger *zap.Logger
}

// NewSettingsStore creates a new instance of SettingsStore
func NewSettingsStore(store storage.Store, logger *zap.Logger) SettingsStore {
	return &settingsStore{store: store, logger: logger}
}

func (s *settingsStore) Load(ctx context.Context) (*SyncSettings, error) {
	raw, err := s.store.Get(ctx, storage.KeySheetSync)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load sync settings: %w", err)
	}

	settings := &SyncSettings{}
	if err := json.Unmarshal([]byte(raw), settings); err != nil {
		return nil, fmt.Errorf("failed to decode sync settings: %w", err)
	}
	return settings, nil
}

func (s *settingsStore) Save(ctx context.Context, settings SyncSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode sync settings: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeySheetSync, string(data)); err != nil {
		return fmt.Errorf("failed to persist sync settings: %w", err)
	}

	s.logger.Info("Sync settings saved", zap.String("spreadsheet_id", settings.SpreadsheetID))
	return nil
}
