// ABOUTME: Google Places API client for address autocomplete and validation
// ABOUTME: Biases queries to the configured service area and checks country
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/engrity/intake/config"
	"github.com/engrity/intake/models"
)

const (
	autocompleteURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"
	detailsURL      = "https://maps.googleapis.com/maps/api/place/details/json"
)

// Client handles Google Places API requests.
type Client struct {
	apiKey      string
	countryCode string
	countryName string
	biasLat     float64
	biasLng     float64
	biasRadiusM int

	httpClient *http.Client

	// Overridable endpoints for tests.
	autocompleteEndpoint string
	detailsEndpoint      string
}

// NewClient creates a Places client configured for the service area.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:               cfg.GoogleAPIKey,
		countryCode:          cfg.CountryCode,
		countryName:          cfg.CountryName,
		biasLat:              cfg.BiasLat,
		biasLng:              cfg.BiasLng,
		biasRadiusM:          cfg.BiasRadiusM,
		httpClient:           &http.Client{Timeout: 10 * time.Second},
		autocompleteEndpoint: autocompleteURL,
		detailsEndpoint:      detailsURL,
	}
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"result"`
}

// Autocomplete returns address suggestions for a partial query, biased
// around the service-area center and restricted to the target country.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]models.AddressSuggestion, error) {
	params := url.Values{}
	params.Add("input", query)
	params.Add("key", c.apiKey)
	params.Add("types", "address")
	params.Add("components", "country:"+c.countryCode)
	params.Add("location", fmt.Sprintf("%.4f,%.4f", c.biasLat, c.biasLng))
	params.Add("radius", fmt.Sprintf("%d", c.biasRadiusM))

	var result autocompleteResponse
	if err := c.get(ctx, c.autocompleteEndpoint, params, &result); err != nil {
		return nil, err
	}

	// ZERO_RESULTS is a valid empty answer, everything else is upstream failure.
	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places autocomplete status %s", result.Status)
	}

	suggestions := make([]models.AddressSuggestion, 0, len(result.Predictions))
	for _, p := range result.Predictions {
		suggestions = append(suggestions, models.AddressSuggestion{
			DisplayName: p.Description,
			PlaceID:     p.PlaceID,
		})
	}

	return suggestions, nil
}

// ValidatePlace resolves a place and reports whether its country component
// matches the configured target country.
func (c *Client) ValidatePlace(ctx context.Context, placeID string) (bool, error) {
	params := url.Values{}
	params.Add("place_id", placeID)
	params.Add("key", c.apiKey)
	params.Add("fields", "address_component")

	var result detailsResponse
	if err := c.get(ctx, c.detailsEndpoint, params, &result); err != nil {
		return false, err
	}

	for _, component := range result.Result.AddressComponents {
		for _, t := range component.Types {
			if t == "country" && component.LongName == c.countryName {
				return true, nil
			}
		}
	}

	return false, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build Places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Places API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Places API error (status %d)", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse Places response: %w", err)
	}

	return nil
}
