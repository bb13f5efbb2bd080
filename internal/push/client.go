package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"minderd/internal/model"
)

// Client syncs the day's schedule to the relay so reminders keep arriving
// while the app is closed.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SyncSchedule replaces the relay's stored schedule. The relay clears its
// sent set on every store, so a fresh plan never inherits stale dedup ids.
func (c *Client) SyncSchedule(ctx context.Context, records []model.NotificationRecord) error {
	payload := struct {
		Notifications []model.NotificationRecord `json:"notifications"`
	}{Notifications: records}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/push/schedule", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sync schedule: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sync schedule: unexpected status %d", resp.StatusCode)
	}
	return nil
}
