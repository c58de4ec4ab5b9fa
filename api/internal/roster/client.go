package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client fetches the roster for one term. The service answers with a JSON
// array whose third element is the slot-id -> slot mapping; everything else in
// the envelope is service bookkeeping we never look at.
type Client struct {
	BaseURL  string
	Term     string
	SchoolID string
	httpc    *http.Client
}

func NewClient(baseURL, term, schoolID string) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Term:     term,
		SchoolID: schoolID,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Slots(ctx context.Context) (map[string]Slot, error) {
	u := fmt.Sprintf("%s/roster/%s?school_id=%s", c.BaseURL, url.PathEscape(c.Term), url.QueryEscape(c.SchoolID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("roster %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("roster: decode envelope: %w", err)
	}
	if len(envelope) < 3 {
		return nil, fmt.Errorf("roster: envelope has %d elements, want at least 3", len(envelope))
	}
	var slots map[string]Slot
	if err := json.Unmarshal(envelope[2], &slots); err != nil {
		return nil, fmt.Errorf("roster: decode slots: %w", err)
	}
	return slots, nil
}
