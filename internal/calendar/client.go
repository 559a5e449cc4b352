package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Entry is the payload pushed to the external calendar, keyed by booking id.
type Entry struct {
	BookingID uint      `json:"booking_id"`
	Status    string    `json:"status"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Summary   string    `json:"summary"`
}

type Client interface {
	SyncBooking(ctx context.Context, e Entry) error
}

// HTTPClient posts entries to the configured calendar-sync endpoint.
type HTTPClient struct {
	url  string
	http *http.Client
}

func NewHTTPClient(url string) *HTTPClient {
	return &HTTPClient{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) SyncBooking(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode calendar entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("calendar sync returned %d", resp.StatusCode)
	}
	return nil
}

// Noop is used when no calendar endpoint is configured.
type Noop struct{}

func (Noop) SyncBooking(context.Context, Entry) error { return nil }
