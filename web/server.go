// ABOUTME: JSON API server for address lookup and lead intake
// ABOUTME: Exposes autocomplete, validate, and lead creation endpoints
package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/engrity/intake/db"
	"github.com/engrity/intake/models"
)

// PlacesClient is what the server needs from the geocoding provider.
type PlacesClient interface {
	Autocomplete(ctx context.Context, query string) ([]models.AddressSuggestion, error)
	ValidatePlace(ctx context.Context, placeID string) (bool, error)
}

type Server struct {
	db     *sql.DB
	places PlacesClient
}

func NewServer(database *sql.DB, places PlacesClient) *Server {
	return &Server{
		db:     database,
		places: places,
	}
}

// Handler builds the route table. Unmatched paths get a JSON 404 and
// panicking handlers a JSON 500.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/address/autocomplete", s.handleAutocomplete)
	mux.HandleFunc("/api/address/validate", s.handleValidate)
	mux.HandleFunc("/api/leads", s.handleCreateLead)
	mux.HandleFunc("/", s.handleRoot)

	return recoverMiddleware(mux)
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting intake API server at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "Route not found.")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Intake API server is running")
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required.")
		return
	}

	suggestions, err := s.places.Autocomplete(r.Context(), query)
	if err != nil {
		log.Printf("Autocomplete error: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch autocomplete suggestions.")
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("placeId")
	if strings.TrimSpace(placeID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"valid": false,
			"error": "placeId parameter is required.",
		})
		return
	}

	valid, err := s.places.ValidatePlace(r.Context(), placeID)
	if err != nil {
		log.Printf("Address validation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"valid": false,
			"error": "Failed to validate address.",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	var lead models.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := lead.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := db.CreateLead(s.db, &lead); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "A report request already exists for this email.")
			return
		}
		log.Printf("Failed to store lead: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save your request. Please try again.")
		return
	}

	log.Printf("Lead %s created for %s", lead.ID, lead.Email)
	writeJSON(w, http.StatusCreated, lead)
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("Unhandled error: %v", rec)
				writeError(w, http.StatusInternalServerError, "Internal server error.")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
