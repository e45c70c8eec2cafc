// ABOUTME: HTTP client for the lead intake API
// ABOUTME: Posts finished leads and maps structured error responses
package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/engrity/intake/models"
)

// ErrDuplicateLead signals the store already holds a lead for this email.
// Distinct from transient failures so the caller does not suggest a retry.
var ErrDuplicateLead = errors.New("a request already exists for this email")

// LeadClient posts finished leads to the backend API.
type LeadClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLeadClient(baseURL string) *LeadClient {
	return &LeadClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateLead submits the lead and returns the created record. Any
// non-success response is fatal to the attempt; the provider-reported
// message is surfaced when present.
func (c *LeadClient) CreateLead(ctx context.Context, lead models.Lead) (*models.Lead, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/leads", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build lead request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach the intake API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		var created models.Lead
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return nil, fmt.Errorf("failed to parse created lead: %w", err)
		}
		return &created, nil
	}

	if resp.StatusCode == http.StatusConflict {
		return nil, ErrDuplicateLead
	}

	var errBody struct {
		Error string `json:"error"`
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
		return nil, errors.New(errBody.Error)
	}

	return nil, fmt.Errorf("intake API returned status %d", resp.StatusCode)
}
