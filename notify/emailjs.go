// ABOUTME: EmailJS notification client for submitted leads
// ABOUTME: Sends the report-request email as a best-effort side effect
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/engrity/intake/config"
	"github.com/engrity/intake/models"
)

const sendURL = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSClient delivers lead notifications through the EmailJS REST API.
type EmailJSClient struct {
	serviceID  string
	templateID string
	publicKey  string

	httpClient *http.Client
	endpoint   string
}

func NewEmailJSClient(cfg *config.Config) *EmailJSClient {
	return &EmailJSClient{
		serviceID:  cfg.EmailJSServiceID,
		templateID: cfg.EmailJSTemplateID,
		publicKey:  cfg.EmailJSPublicKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   sendURL,
	}
}

// Send submits the template parameters for one lead. Callers treat the
// outcome as operator-facing only.
func (c *EmailJSClient) Send(ctx context.Context, lead models.Lead) error {
	if c.serviceID == "" || c.templateID == "" || c.publicKey == "" {
		return fmt.Errorf("emailjs credentials not configured")
	}

	unitNumber := lead.UnitNumber
	if unitNumber == "" {
		unitNumber = "N/A"
	}

	payload := map[string]interface{}{
		"service_id":  c.serviceID,
		"template_id": c.templateID,
		"user_id":     c.publicKey,
		"template_params": map[string]string{
			"address":         lead.Address,
			"firstName":       lead.FirstName,
			"lastName":        lead.LastName,
			"email":           lead.Email,
			"phone":           lead.Phone,
			"bedrooms":        lead.Bedrooms,
			"bathrooms":       lead.Bathrooms,
			"basement":        lead.Basement,
			"basementStatus":  lead.BasementStatus,
			"sellingTimeline": lead.SellingTimeline,
			"propertyType":    lead.PropertyType,
			"unitNumber":      unitNumber,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call EmailJS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("EmailJS returned status %d", resp.StatusCode)
	}

	return nil
}
