// ABOUTME: Tests for the Google Places client
// ABOUTME: Validates query parameters, suggestion mapping, and country checks
package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engrity/intake/config"
)

func testClient(autocomplete, details string) *Client {
	cfg := &config.Config{
		GoogleAPIKey: "test-key",
		CountryCode:  config.DefaultCountryCode,
		CountryName:  config.DefaultCountryName,
		BiasLat:      config.DefaultBiasLat,
		BiasLng:      config.DefaultBiasLng,
		BiasRadiusM:  config.DefaultBiasRadiusM,
	}

	c := NewClient(cfg)
	if autocomplete != "" {
		c.autocompleteEndpoint = autocomplete
	}
	if details != "" {
		c.detailsEndpoint = details
	}
	return c
}

func TestAutocomplete(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"input":      r.URL.Query().Get("input"),
			"components": r.URL.Query().Get("components"),
			"location":   r.URL.Query().Get("location"),
			"radius":     r.URL.Query().Get("radius"),
			"types":      r.URL.Query().Get("types"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"predictions": [
				{"description": "123 Main St, Langley, BC, Canada", "place_id": "place-1"},
				{"description": "123 Maple Dr, Langley, BC, Canada", "place_id": "place-2"}
			]
		}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL, "")

	suggestions, err := client.Autocomplete(context.Background(), "123 Ma")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "123 Main St, Langley, BC, Canada", suggestions[0].DisplayName)
	assert.Equal(t, "place-1", suggestions[0].PlaceID)

	// Bias and country restriction must reach the provider.
	assert.Equal(t, "123 Ma", gotQuery["input"])
	assert.Equal(t, "country:ca", gotQuery["components"])
	assert.Equal(t, "49.1044,-122.6600", gotQuery["location"])
	assert.Equal(t, "10000", gotQuery["radius"])
	assert.Equal(t, "address", gotQuery["types"])
}

func TestAutocompleteZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "predictions": []}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL, "")

	suggestions, err := client.Autocomplete(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestAutocompleteUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED"}`))
	}))
	defer srv.Close()

	client := testClient(srv.URL, "")

	_, err := client.Autocomplete(context.Background(), "123 Ma")
	require.Error(t, err)
}

func TestValidatePlaceCanadian(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "place-ca", r.URL.Query().Get("place_id"))
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {
				"address_components": [
					{"long_name": "Langley", "types": ["locality", "political"]},
					{"long_name": "Canada", "types": ["country", "political"]}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := testClient("", srv.URL)

	valid, err := client.ValidatePlace(context.Background(), "place-ca")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestValidatePlaceForeign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {
				"address_components": [
					{"long_name": "United States", "types": ["country", "political"]}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := testClient("", srv.URL)

	valid, err := client.ValidatePlace(context.Background(), "place-us")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestValidatePlaceNoComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OK", "result": {}}`))
	}))
	defer srv.Close()

	client := testClient("", srv.URL)

	valid, err := client.ValidatePlace(context.Background(), "place-empty")
	require.NoError(t, err)
	assert.False(t, valid)
}
