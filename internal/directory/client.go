// Package directory is the HTTP client for the profile/group service that
// owns membership data. The pipeline only asks it role questions; the
// directory decides who those roles contain.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"streamalerts/internal/common"
	"streamalerts/internal/config"
)

type Client struct {
	baseURL  string
	relayURL string
	http     *http.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Directory.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.Directory.BaseURL, "/"),
		relayURL: strings.TrimRight(cfg.Directory.EmailRelayURL, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

// Coordinators returns the coordinator person IDs of a group or organization.
func (c *Client) Coordinators(ctx context.Context, entityType common.EntityType, uniqueID string) ([]int64, error) {
	url := fmt.Sprintf("%s/api/v1/entities/%s/%s/coordinators", c.baseURL, strings.ToLower(string(entityType)), uniqueID)
	return c.getIDs(ctx, url)
}

// StreamOwner returns the person owning the given entity's stream.
func (c *Client) StreamOwner(ctx context.Context, entityType common.EntityType, uniqueID string) (int64, error) {
	url := fmt.Sprintf("%s/api/v1/entities/%s/%s/owner", c.baseURL, strings.ToLower(string(entityType)), uniqueID)

	var result struct {
		PersonID int64 `json:"person_id"`
	}
	if err := c.getJSON(ctx, url, &result); err != nil {
		return 0, err
	}
	return result.PersonID, nil
}

// Commenters returns everyone who commented on an activity.
func (c *Client) Commenters(ctx context.Context, activityID int64) ([]int64, error) {
	url := fmt.Sprintf("%s/api/v1/activities/%d/commenters", c.baseURL, activityID)
	return c.getIDs(ctx, url)
}

// Send forwards an email-channel notification to the relay, which owns
// address lookup, rendering, and transport.
func (c *Client) Send(ctx context.Context, recipientID int64, subject, body string) error {
	if c.relayURL == "" {
		return fmt.Errorf("email relay is not configured")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"recipient_id": recipientID,
		"subject":      subject,
		"body":         body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL+"/api/v1/send", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("email relay call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email relay returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getIDs(ctx context.Context, url string) ([]int64, error) {
	var result struct {
		PersonIDs []int64 `json:"person_ids"`
	}
	if err := c.getJSON(ctx, url, &result); err != nil {
		return nil, err
	}
	return result.PersonIDs, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("directory call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("directory returned %d for %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
