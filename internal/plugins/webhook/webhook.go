package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/config"
)

// Client posts undeliverable events to the external notification endpoint:
// PATCH baseURL + recipientId with the event payload wrapped in the body.
// Idempotent intent on the remote side; no retries here.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.WebhookConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Deliver(ctx context.Context, recipientID string, payload json.RawMessage) error {
	body, err := json.Marshal(map[string]json.RawMessage{"message": payload})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+recipientID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook error: status %d", resp.StatusCode)
	}
	return nil
}
