// =============================================================================
// TFUK Order & Address Validation - Geoapify Geocoding Client
// =============================================================================
//
// Thin HTTP client for the Geoapify forward-geocoding endpoint. The client
// performs exactly one request per Search call; retry, fallback-query and
// rate-budget behavior live in the verifier (verifier.go).
//
// SERVICE CONTRACT:
//   GET {base_url}?text={query}&apiKey={key}
//   A successful response carries zero or more ranked match candidates,
//   each with a formatted address, a confidence score in [0,1] and a
//   [lon, lat] coordinate pair. Status codes 401 (bad credential),
//   429 (rate limited) and 5xx (transient server error) are distinguished
//   from other failures via HTTPStatusError.
//
// =============================================================================

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the Geoapify forward-geocoding endpoint.
const DefaultBaseURL = "https://api.geoapify.com/v1/geocode/search"

// defaultTimeout bounds a single geocoding round trip.
const defaultTimeout = 15 * time.Second

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// SearchResponse is the GeoJSON-style response from the geocoding service.
type SearchResponse struct {
	Features []Feature `json:"features"`
}

// Feature is one ranked match candidate.
type Feature struct {
	Properties FeatureProperties `json:"properties"`
	Geometry   FeatureGeometry   `json:"geometry"`
}

// FeatureProperties carries the formatted address and match quality.
type FeatureProperties struct {
	Formatted string      `json:"formatted"`
	Rank      FeatureRank `json:"rank"`
}

// FeatureRank carries the confidence score in [0, 1].
type FeatureRank struct {
	Confidence float64 `json:"confidence"`
}

// FeatureGeometry carries the coordinates as [longitude, latitude].
type FeatureGeometry struct {
	Coordinates []float64 `json:"coordinates"`
}

// Lat returns the latitude of the candidate, or 0 when absent.
func (f Feature) Lat() float64 {
	if len(f.Geometry.Coordinates) >= 2 {
		return f.Geometry.Coordinates[1]
	}
	return 0
}

// Lon returns the longitude of the candidate, or 0 when absent.
func (f Feature) Lon() float64 {
	if len(f.Geometry.Coordinates) >= 1 {
		return f.Geometry.Coordinates[0]
	}
	return 0
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// HTTPStatusError is returned for non-2xx responses so callers can branch on
// the HTTP status class.
type HTTPStatusError struct {
	// Code is the HTTP status code.
	Code int

	// Status is the HTTP status line text.
	Status string
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("geocode request failed: %s", e.Status)
}

// IsServerError reports whether the failure is a 5xx (retryable) response.
func (e *HTTPStatusError) IsServerError() bool {
	return e.Code >= 500 && e.Code <= 599
}

// =============================================================================
// CLIENT
// =============================================================================

// Client calls the Geoapify geocoding API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client. baseURL may be empty to use the
// production endpoint; timeout may be zero to use the default.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search issues a single forward-geocoding request for the free-text query.
// Non-2xx responses return a *HTTPStatusError; transport failures return the
// underlying error.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	reqURL := fmt.Sprintf("%s?text=%s&apiKey=%s",
		c.baseURL,
		url.QueryEscape(query),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain the body so the connection can be reused.
		io.Copy(io.Discard, resp.Body)
		return nil, &HTTPStatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	return &result, nil
}
