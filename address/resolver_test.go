// ABOUTME: Tests for the debounced address resolver
// ABOUTME: Validates supersede races, blank short-circuit, and verify mapping
package address

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engrity/intake/models"
)

func suggestionServer(t *testing.T, delays map[string]time.Duration) (*httptest.Server, func() int) {
	t.Helper()

	var mu sync.Mutex
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")

		mu.Lock()
		calls++
		mu.Unlock()

		if d, ok := delays[q]; ok {
			time.Sleep(d)
		}

		_ = json.NewEncoder(w).Encode([]models.AddressSuggestion{
			{DisplayName: q + " result", PlaceID: "place-" + q},
		})
	}))
	t.Cleanup(srv.Close)

	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}

	return srv, count
}

func TestSuggestBlankQueryShortCircuits(t *testing.T) {
	srv, calls := suggestionServer(t, nil)

	resolver := NewResolver(srv.URL)
	resolver.debounce = 5 * time.Millisecond

	suggestions, applied := resolver.Suggest(context.Background(), "   ")
	assert.True(t, applied)
	assert.Empty(t, suggestions)
	assert.Equal(t, 0, calls())
}

func TestSuggestReturnsMatches(t *testing.T) {
	srv, _ := suggestionServer(t, nil)

	resolver := NewResolver(srv.URL)
	resolver.debounce = 5 * time.Millisecond

	suggestions, applied := resolver.Suggest(context.Background(), "123 Main")
	require.True(t, applied)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "123 Main result", suggestions[0].DisplayName)
	assert.Equal(t, "place-123 Main", suggestions[0].PlaceID)
}

func TestSuggestDebounceRace(t *testing.T) {
	// "A" is slow upstream so its response arrives after "ABC" has been
	// applied; it must be discarded on arrival, not applied out of order.
	srv, _ := suggestionServer(t, map[string]time.Duration{
		"A": 300 * time.Millisecond,
	})

	resolver := NewResolver(srv.URL)
	resolver.debounce = 20 * time.Millisecond

	type outcome struct {
		suggestions []models.AddressSuggestion
		applied     bool
	}

	outcomes := make(map[string]outcome)
	var mu sync.Mutex
	var wg sync.WaitGroup

	issue := func(query string) {
		defer wg.Done()
		suggestions, applied := resolver.Suggest(context.Background(), query)
		mu.Lock()
		outcomes[query] = outcome{suggestions, applied}
		mu.Unlock()
	}

	// "A" gets past its quiescence window and is mid-fetch when the next
	// keystrokes land; "AB" is superseded inside its window.
	wg.Add(3)
	go issue("A")
	time.Sleep(40 * time.Millisecond)
	go issue("AB")
	time.Sleep(5 * time.Millisecond)
	go issue("ABC")
	wg.Wait()

	assert.False(t, outcomes["A"].applied, "superseded query A must be discarded")
	assert.False(t, outcomes["AB"].applied, "superseded query AB must be discarded")
	require.True(t, outcomes["ABC"].applied)
	require.Len(t, outcomes["ABC"].suggestions, 1)
	assert.Equal(t, "ABC result", outcomes["ABC"].suggestions[0].DisplayName)
}

func TestSuggestNetworkErrorDegradesToEmpty(t *testing.T) {
	resolver := NewResolver("http://127.0.0.1:1")
	resolver.debounce = 5 * time.Millisecond

	suggestions, applied := resolver.Suggest(context.Background(), "123 Main")
	assert.True(t, applied)
	assert.Empty(t, suggestions)
}

func TestSuggestCancelledContext(t *testing.T) {
	srv, calls := suggestionServer(t, nil)

	resolver := NewResolver(srv.URL)
	resolver.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, applied := resolver.Suggest(ctx, "123 Main")
	assert.False(t, applied)
	assert.Equal(t, 0, calls())
}

func TestVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("placeId") == "place-ca" {
			_, _ = w.Write([]byte(`{"valid": true}`))
			return
		}
		_, _ = w.Write([]byte(`{"valid": false}`))
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL)

	assert.True(t, resolver.Verify(context.Background(), "place-ca"))
	assert.False(t, resolver.Verify(context.Background(), "place-us"))
}

func TestVerifyErrorReadsAsInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL)
	assert.False(t, resolver.Verify(context.Background(), "place-1"))

	unreachable := NewResolver("http://127.0.0.1:1")
	assert.False(t, unreachable.Verify(context.Background(), "place-1"))
}
