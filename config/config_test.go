// ABOUTME: Tests for configuration loading
// ABOUTME: Validates defaults and environment overrides
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("INTAKE_API_BASE_URL", "")
	t.Setenv("SERVICE_AREA_COUNTRY", "")
	t.Setenv("SERVICE_AREA_COUNTRY_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "ca", cfg.CountryCode)
	assert.Equal(t, "Canada", cfg.CountryName)
	assert.Equal(t, "http://localhost:4000", cfg.APIBaseURL)
	assert.InDelta(t, 49.1044, cfg.BiasLat, 0.0001)
	assert.InDelta(t, -122.66, cfg.BiasLng, 0.0001)
	assert.Equal(t, 10000, cfg.BiasRadiusM)
}

func TestLoadPortOverride(t *testing.T) {
	t.Setenv("PORT", "8090")
	t.Setenv("INTAKE_API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "http://localhost:8090", cfg.APIBaseURL)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadBaseURLOverride(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("INTAKE_API_BASE_URL", "https://intake.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://intake.example.com", cfg.APIBaseURL)
}
