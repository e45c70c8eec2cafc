// ABOUTME: Environment-backed configuration for the intake system
// ABOUTME: Loads .env, applies defaults for port, service area, and API keys
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Service-area defaults: queries are biased around Langley, BC and
// restricted to Canadian addresses.
const (
	DefaultPort        = 4000
	DefaultBiasLat     = 49.1044
	DefaultBiasLng     = -122.6600
	DefaultBiasRadiusM = 10000
	DefaultCountryCode = "ca"
	DefaultCountryName = "Canada"
)

// Config holds runtime settings for the server and the intake client.
type Config struct {
	// Port the API server listens on.
	Port int

	// GoogleAPIKey authenticates Places autocomplete and details calls.
	GoogleAPIKey string

	// Geographic bias for autocomplete queries.
	BiasLat     float64
	BiasLng     float64
	BiasRadiusM int

	// CountryCode restricts autocomplete; CountryName is matched against
	// the resolved place's country component during validation.
	CountryCode string
	CountryName string

	// APIBaseURL is where the intake client reaches the backend.
	APIBaseURL string

	// EmailJS credentials for the notification side effect.
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
}

// Load reads configuration from the environment, loading a .env file first
// if one is present. Missing values fall back to defaults; a missing
// GOOGLE_API_KEY is allowed (the Places client degrades to empty results).
func Load() (*Config, error) {
	// Same behavior as dotenv: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              DefaultPort,
		BiasLat:           DefaultBiasLat,
		BiasLng:           DefaultBiasLng,
		BiasRadiusM:       DefaultBiasRadiusM,
		CountryCode:       DefaultCountryCode,
		CountryName:       DefaultCountryName,
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		APIBaseURL:        "http://localhost:4000",
		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
		cfg.APIBaseURL = fmt.Sprintf("http://localhost:%d", p)
	}

	if base := os.Getenv("INTAKE_API_BASE_URL"); base != "" {
		cfg.APIBaseURL = base
	}

	if code := os.Getenv("SERVICE_AREA_COUNTRY"); code != "" {
		cfg.CountryCode = code
	}
	if name := os.Getenv("SERVICE_AREA_COUNTRY_NAME"); name != "" {
		cfg.CountryName = name
	}

	return cfg, nil
}
