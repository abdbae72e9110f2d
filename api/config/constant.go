package config

import (
	"fmt"
	"strings"
)

const (
	// DefaultBaseURL is the local development API the harness targets by default.
	DefaultBaseURL = "http://localhost:5000/api"

	// Fixed test account expected to exist in the target environment.
	DefaultEmail    = "layla.hassan@example.com"
	DefaultPassword = "password123"

	// ProdHostMarker identifies production deployments of the API.
	ProdHostMarker = "finsec-prod"
)

// CheckNotProdURL refuses to seed synthetic bills into a production deployment.
// Call it before any command that writes to the API.
func CheckNotProdURL(cfg *Config) error {
	if cfg.BaseURL == "" {
		return fmt.Errorf("BaseURL is not configured")
	}
	if strings.Contains(strings.ToLower(cfg.BaseURL), ProdHostMarker) {
		return fmt.Errorf("refusing to seed: base URL %s contains production identifier %s", cfg.BaseURL, ProdHostMarker)
	}
	return nil
}
