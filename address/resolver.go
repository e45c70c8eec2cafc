// ABOUTME: Debounced address resolution client for the intake flow
// ABOUTME: Suggests via the backend with supersede-safe debouncing, verifies placeIds
package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/engrity/intake/models"
)

// DefaultDebounce is the quiescence window before a query reaches the
// network.
const DefaultDebounce = 300 * time.Millisecond

// Resolver issues debounced free-text queries against the backend address
// endpoints. Each Suggest call supersedes any earlier one: a superseded
// call's result is discarded on arrival, never applied.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	debounce   time.Duration

	mu  sync.Mutex
	gen uint64
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		debounce:   DefaultDebounce,
	}
}

func (r *Resolver) bump() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	return r.gen
}

func (r *Resolver) current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return gen == r.gen
}

// Suggest waits out the quiescence window, then fetches suggestions for
// query. The second return value is false when the call was superseded by
// a newer query (before or during the fetch) and its result must not be
// applied. A blank query returns an empty, current result without any
// network call. Fetch errors degrade silently to an empty list.
func (r *Resolver) Suggest(ctx context.Context, query string) ([]models.AddressSuggestion, bool) {
	gen := r.bump()

	if strings.TrimSpace(query) == "" {
		return nil, true
	}

	timer := time.NewTimer(r.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, false
	case <-timer.C:
	}

	if !r.current(gen) {
		return nil, false
	}

	suggestions, err := r.fetchSuggestions(ctx, query)
	if err != nil {
		suggestions = nil
	}

	// Re-check after the round trip so an out-of-order late arrival can
	// never overwrite a newer, already-applied result.
	if !r.current(gen) {
		return nil, false
	}

	return suggestions, true
}

// Verify reports whether the place passes the backend country check. Any
// transport or provider error reads as false; the caller has exactly one
// failure branch.
func (r *Resolver) Verify(ctx context.Context, placeID string) bool {
	endpoint := fmt.Sprintf("%s/api/address/validate?placeId=%s", r.baseURL, url.QueryEscape(placeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var body struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}

	return body.Valid
}

func (r *Resolver) fetchSuggestions(ctx context.Context, query string) ([]models.AddressSuggestion, error) {
	endpoint := fmt.Sprintf("%s/api/address/autocomplete?q=%s", r.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("autocomplete returned status %d", resp.StatusCode)
	}

	var suggestions []models.AddressSuggestion
	if err := json.NewDecoder(resp.Body).Decode(&suggestions); err != nil {
		return nil, err
	}

	return suggestions, nil
}
