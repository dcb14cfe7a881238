package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// requestTimeout bounds every spreadsheet call; the remote service is the only
// network dependency in the app.
const requestTimeout = 30 * time.Second

// Client is a thin row-level client for the remote spreadsheet service. Only
// the append/read/update surface is covered; everything else about the sync
// protocol lives outside this core.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a spreadsheet client against the given base URL
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type rowPayload struct {
	Values []string `json:"values"`
}

type readResponse struct {
	Rows [][]string `json:"rows"`
}

// AppendRow appends a row of cell values to the configured sheet
func (c *Client) AppendRow(ctx context.Context, settings SyncSettings, values []string) error {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/sheets/%s/rows",
		c.baseURL, url.PathEscape(settings.SpreadsheetID), url.PathEscape(settings.SheetName))

	body, err := json.Marshal(rowPayload{Values: values})
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("append row failed with status %d", resp.StatusCode)
	}

	c.logger.Debug("Row appended", zap.String("sheet", settings.SheetName))
	return nil
}

// ReadRows fetches all rows of the configured sheet
func (c *Client) ReadRows(ctx context.Context, settings SyncSettings) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/sheets/%s/rows",
		c.baseURL, url.PathEscape(settings.SpreadsheetID), url.PathEscape(settings.SheetName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build read request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("read rows failed with status %d", resp.StatusCode)
	}

	var decoded readResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return decoded.Rows, nil
}

// UpdateRow overwrites the row at the given zero-based index
func (c *Client) UpdateRow(ctx context.Context, settings SyncSettings, index int, values []string) error {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/sheets/%s/rows/%d",
		c.baseURL, url.PathEscape(settings.SpreadsheetID), url.PathEscape(settings.SheetName), index)

	body, err := json.Marshal(rowPayload{Values: values})
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("update row failed with status %d", resp.StatusCode)
	}

	c.logger.Debug("Row updated", zap.String("sheet", settings.SheetName), zap.Int("index", index))
	return nil
}
