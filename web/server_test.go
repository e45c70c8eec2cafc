// ABOUTME: Tests for the JSON API server
// ABOUTME: Validates route behavior, error envelopes, and lead persistence
package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engrity/intake/db"
	"github.com/engrity/intake/models"
)

type fakePlaces struct {
	suggestions []models.AddressSuggestion
	suggestErr  error
	valid       bool
	validateErr error
	calls       int
}

func (f *fakePlaces) Autocomplete(_ context.Context, query string) ([]models.AddressSuggestion, error) {
	f.calls++
	return f.suggestions, f.suggestErr
}

func (f *fakePlaces) ValidatePlace(_ context.Context, placeID string) (bool, error) {
	f.calls++
	return f.valid, f.validateErr
}

func setupServer(t *testing.T, places *fakePlaces) (*httptest.Server, *sql.DB) {
	t.Helper()

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "intake.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	srv := httptest.NewServer(NewServer(database, places).Handler())
	t.Cleanup(srv.Close)

	return srv, database
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func validLeadBody() string {
	return `{
		"address": "123 Main St, Langley, BC, Canada",
		"firstName": "Jane",
		"lastName": "Doe",
		"email": "jane@example.com",
		"phone": "604-555-0199",
		"consent": true,
		"bedrooms": "3",
		"bathrooms": "2",
		"basement": "Yes",
		"basementStatus": "Finished",
		"sellingTimeline": "Yes, as soon as possible",
		"propertyType": "Detached House",
		"unitNumber": ""
	}`
}

func TestAutocompleteBlankQuery(t *testing.T) {
	places := &fakePlaces{}
	srv, _ := setupServer(t, places)

	resp, err := http.Get(srv.URL + "/api/address/autocomplete?q=")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Query parameter 'q' is required.", body["error"])

	// No upstream call for a blank query.
	assert.Equal(t, 0, places.calls)
}

func TestAutocompleteSuccess(t *testing.T) {
	places := &fakePlaces{
		suggestions: []models.AddressSuggestion{
			{DisplayName: "123 Main St, Langley, BC, Canada", PlaceID: "place-1"},
		},
	}
	srv, _ := setupServer(t, places)

	resp, err := http.Get(srv.URL + "/api/address/autocomplete?q=123+Ma")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []models.AddressSuggestion
	decodeBody(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "place-1", body[0].PlaceID)
}

func TestAutocompleteUpstreamFailure(t *testing.T) {
	places := &fakePlaces{suggestErr: errors.New("upstream down")}
	srv, _ := setupServer(t, places)

	resp, err := http.Get(srv.URL + "/api/address/autocomplete?q=123")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Failed to fetch autocomplete suggestions.", body["error"])
}

func TestValidateMissingPlaceID(t *testing.T) {
	srv, _ := setupServer(t, &fakePlaces{})

	resp, err := http.Get(srv.URL + "/api/address/validate")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	assert.Equal(t, false, body["valid"])
}

func TestValidateReturnsVerdict(t *testing.T) {
	srv, _ := setupServer(t, &fakePlaces{valid: true})

	resp, err := http.Get(srv.URL + "/api/address/validate?placeId=place-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]bool
	decodeBody(t, resp, &body)
	assert.True(t, body["valid"])
}

func TestCreateLead(t *testing.T) {
	srv, database := setupServer(t, &fakePlaces{})

	resp, err := http.Post(srv.URL+"/api/leads", "application/json", strings.NewReader(validLeadBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Lead
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "jane@example.com", created.Email)

	stored, err := db.FindLeadByEmail(database, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, created.ID, stored.ID)
}

func TestCreateLeadMissingRequiredField(t *testing.T) {
	srv, database := setupServer(t, &fakePlaces{})

	body := strings.Replace(validLeadBody(), `"jane@example.com"`, `""`, 1)
	resp, err := http.Post(srv.URL+"/api/leads", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	leads, err := db.FindLeads(database, "", 10)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestCreateLeadMissingConsent(t *testing.T) {
	srv, _ := setupServer(t, &fakePlaces{})

	body := strings.Replace(validLeadBody(), `"consent": true`, `"consent": false`, 1)
	resp, err := http.Post(srv.URL+"/api/leads", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateLeadDuplicateEmail(t *testing.T) {
	srv, _ := setupServer(t, &fakePlaces{})

	resp, err := http.Post(srv.URL+"/api/leads", "application/json", strings.NewReader(validLeadBody()))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/api/leads", "application/json", strings.NewReader(validLeadBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "A report request already exists for this email.", body["error"])
}

func TestCreateLeadWrongMethod(t *testing.T) {
	srv, _ := setupServer(t, &fakePlaces{})

	resp, err := http.Get(srv.URL + "/api/leads")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestUnmatchedRoute(t *testing.T) {
	srv, _ := setupServer(t, &fakePlaces{})

	resp, err := http.Get(srv.URL + "/api/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Route not found.", body["error"])
}
