// =============================================================================
// TFUK Order & Address Validation - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration from a YAML
// file, applies defaults, and validates the result on load.
//
// CREDENTIALS:
//   The Geoapify API key is never expected in the YAML file for shared
//   deployments. Resolution order:
//     1. geocode.api_key in the YAML file (local/dev use)
//     2. GEOAPIFY_API_KEY environment variable
//   A .env file in the working directory is loaded (via godotenv) before
//   the environment is consulted, so the key can live next to the binary
//   without being committed.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIKeyEnvVar is the environment variable consulted when the YAML file
// carries no API key.
const APIKeyEnvVar = "GEOAPIFY_API_KEY"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the application configuration, loaded from config.yaml.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for TFUK .txt files to process.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where reports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir is where processed input files are moved. Files are
	// only moved here after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// =========================================================================
	// PARSING SETTINGS
	// =========================================================================

	// Layout selects the fixed-width column profile: "standard" (current
	// exports, authoritative) or "legacy" (previous export generation).
	// Default: "standard"
	Layout string `yaml:"layout"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls diagnostic verbosity.
	// Valid values: "debug", "info", "warn", "error". Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ReportNameFormat defines the report file name (extension appended by
	// the writer). Placeholders:
	//   {original}  - input file name without extension
	//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - current date (YYYYMMDD)
	//   {uuid}      - a random UUID
	// Default: "{original}_validation_{timestamp}"
	ReportNameFormat string `yaml:"report_name_format"`

	// DisableArchive leaves input files in place after processing instead
	// of moving them to the archive directory.
	// Default: false (processed files are archived)
	DisableArchive bool `yaml:"disable_archive"`

	// =========================================================================
	// GEOCODING SETTINGS
	// =========================================================================

	// Geocode configures the Geoapify verification pipeline.
	Geocode GeocodeSettings `yaml:"geocode"`
}

// =============================================================================
// GEOCODING SETTINGS STRUCTURE
// =============================================================================

// GeocodeSettings configures the external geocoding service calls.
type GeocodeSettings struct {
	// APIKey is the Geoapify credential. Falls back to the
	// GEOAPIFY_API_KEY environment variable when empty.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the geocoding endpoint. Default: production
	// Geoapify endpoint.
	BaseURL string `yaml:"base_url"`

	// RequestDelayMs is the fixed pause between successive address
	// verifications, applied across the whole batch regardless of outcome
	// to respect the service's request-rate budget (free tier: 3000/day).
	// Default: 350
	RequestDelayMs int `yaml:"request_delay_ms"`

	// MaxRetries is the number of additional attempts after a retryable
	// failure (transport error or 5xx). Default: 2
	MaxRetries int `yaml:"max_retries"`

	// RetryDelayMs is the pause before each retry attempt. Default: 500
	RetryDelayMs int `yaml:"retry_delay_ms"`

	// TimeoutSeconds bounds a single geocoding round trip. Default: 15
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// RequestDelay returns the inter-request delay as a Duration.
func (g GeocodeSettings) RequestDelay() time.Duration {
	return time.Duration(g.RequestDelayMs) * time.Millisecond
}

// RetryDelay returns the retry delay as a Duration.
func (g GeocodeSettings) RetryDelay() time.Duration {
	return time.Duration(g.RetryDelayMs) * time.Millisecond
}

// Timeout returns the per-request timeout as a Duration.
func (g GeocodeSettings) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// LoadMainConfig loads the configuration from a YAML file, applies default
// values, resolves the API key, and validates the result. A missing config
// file is not an error: defaults apply.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// No config file: run entirely on defaults.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&config)
	resolveAPIKey(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.Layout == "" {
		config.Layout = "standard"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.ReportNameFormat == "" {
		config.ReportNameFormat = "{original}_validation_{timestamp}"
	}
	if config.Geocode.RequestDelayMs == 0 {
		config.Geocode.RequestDelayMs = 350
	}
	if config.Geocode.MaxRetries == 0 {
		config.Geocode.MaxRetries = 2
	}
	if config.Geocode.RetryDelayMs == 0 {
		config.Geocode.RetryDelayMs = 500
	}
	if config.Geocode.TimeoutSeconds == 0 {
		config.Geocode.TimeoutSeconds = 15
	}
}

// resolveAPIKey fills the Geoapify key from the environment when the YAML
// file carries none. A .env file in the working directory is honored.
func resolveAPIKey(config *MainConfig) {
	if config.Geocode.APIKey != "" {
		return
	}

	// Best effort: a missing .env file is fine.
	_ = godotenv.Load()

	config.Geocode.APIKey = os.Getenv(APIKeyEnvVar)
}

// validateConfig checks the configuration and creates missing directories.
func validateConfig(config *MainConfig) error {
	if config.Layout != "standard" && config.Layout != "legacy" {
		return fmt.Errorf("unknown layout profile %q (expected \"standard\" or \"legacy\")", config.Layout)
	}

	dirs := []string{
		config.InputDir,
		config.OutputDir,
		config.InputArchiveDir,
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
