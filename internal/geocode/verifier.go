// =============================================================================
// TFUK Order & Address Validation - Address Verifier
// =============================================================================
//
// The verifier turns one address into one geocoding verdict. It builds a
// sanitized free-text query, calls the geocoding client, and interprets the
// outcome with bounded retry semantics.
//
// RETRY STATE MACHINE:
//   Attempting -> RetryingFull -> RetryingSimplified -> Done
//
//   - Transport failures and 5xx responses are retryable, up to MaxRetries
//     additional attempts with a fixed delay between them.
//   - The final retry downgrades to a simplified query built from only the
//     postcode and country, which sidesteps street lines with characters
//     the service rejects.
//   - 401 (bad credential) and 429 (rate limited) are terminal and issue
//     no retry; so are all other non-5xx HTTP failures.
//   - A response with zero match candidates is a terminal "not found".
//
// A failed verification produces an error-status Result, never a Go error:
// one bad address must not abort the rest of the batch.
//
// =============================================================================

package geocode

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/types"
)

// Default retry bounds, matching the service's observed transient-error
// behavior.
const (
	// DefaultMaxRetries is the number of additional attempts after the
	// first failed request.
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the pause before each retry attempt.
	DefaultRetryDelay = 500 * time.Millisecond
)

// =============================================================================
// RESULT
// =============================================================================

// ResultStatus classifies a verification attempt.
type ResultStatus string

const (
	// StatusSuccess means the service returned at least one match.
	StatusSuccess ResultStatus = "success"

	// StatusError means the address could not be verified.
	StatusError ResultStatus = "error"
)

// Result is the immutable outcome of one address verification attempt.
type Result struct {
	// Status is success or error.
	Status ResultStatus

	// Confidence is the [0,1] match-quality score of the top candidate.
	Confidence float64

	// FormattedAddress is the service's canonical rendering of the match.
	FormattedAddress string

	// Lat and Lon are the coordinates of the top candidate. Valid only
	// when HasCoordinates is true.
	Lat, Lon       float64
	HasCoordinates bool

	// Errors holds the failure messages, in the order they occurred.
	Errors []string
}

// =============================================================================
// VERIFIER
// =============================================================================

// Verifier verifies addresses against a geocoding client with bounded
// retries.
type Verifier struct {
	client     *Client
	maxRetries int
	retryDelay time.Duration
}

// NewVerifier creates a Verifier with the default retry bounds.
func NewVerifier(client *Client) *Verifier {
	return &Verifier{
		client:     client,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// NewVerifierWithRetries creates a Verifier with explicit retry bounds.
func NewVerifierWithRetries(client *Client, maxRetries int, retryDelay time.Duration) *Verifier {
	return &Verifier{
		client:     client,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// attemptPhase is the explicit state of the retry machine.
type attemptPhase int

const (
	// phaseAttempting is the first request with the full query.
	phaseAttempting attemptPhase = iota

	// phaseRetryingFull repeats the full query after a retryable failure.
	phaseRetryingFull

	// phaseRetryingSimplified is the last attempt, with the
	// postcode+country fallback query.
	phaseRetryingSimplified

	// phaseDone terminates the machine.
	phaseDone
)

// Verify geocodes one address and interprets the result. The address is
// assumed to have passed the local validation profile already.
func (v *Verifier) Verify(ctx context.Context, addr types.Address) Result {
	result := Result{Status: StatusError}

	fullQuery := BuildSearchText(addr)
	if fullQuery == "" {
		result.Errors = append(result.Errors, "No address data provided")
		return result
	}

	phase := phaseAttempting
	attempt := 0

	for phase != phaseDone {
		simplified := phase == phaseRetryingSimplified
		query := fullQuery
		if simplified {
			query = simplifiedQuery(addr)
		}

		resp, err := v.client.Search(ctx, query)

		switch {
		case err == nil:
			if len(resp.Features) == 0 {
				msg := "Address not found by Geoapify"
				if simplified {
					msg += " (simplified search)"
				}
				result.Errors = append(result.Errors, msg)
				phase = phaseDone
				break
			}

			top := resp.Features[0]
			result.Status = StatusSuccess
			result.Confidence = top.Properties.Rank.Confidence
			result.Lat = top.Lat()
			result.Lon = top.Lon()
			result.HasCoordinates = len(top.Geometry.Coordinates) >= 2
			result.FormattedAddress = top.Properties.Formatted
			if result.FormattedAddress == "" {
				result.FormattedAddress = query
			}
			phase = phaseDone

		case isStatus(err, 401):
			result.Errors = append(result.Errors, "Invalid API key")
			phase = phaseDone

		case isStatus(err, 429):
			result.Errors = append(result.Errors, "Rate limit exceeded")
			phase = phaseDone

		case isServerError(err):
			if attempt >= v.maxRetries {
				result.Errors = append(result.Errors,
					fmt.Sprintf("API Error: %d - server error, address may contain invalid characters", statusCode(err)))
				phase = phaseDone
				break
			}
			attempt++
			if !sleepCtx(ctx, v.retryDelay) {
				result.Errors = append(result.Errors, "Validation cancelled")
				phase = phaseDone
				break
			}
			phase = nextRetryPhase(attempt, v.maxRetries)

		case isStatusError(err):
			result.Errors = append(result.Errors, fmt.Sprintf("API Error: %s", statusText(err)))
			phase = phaseDone

		default:
			// Transport-level failure.
			if attempt >= v.maxRetries {
				result.Errors = append(result.Errors, fmt.Sprintf("Validation error: %v", err))
				phase = phaseDone
				break
			}
			attempt++
			if !sleepCtx(ctx, v.retryDelay) {
				result.Errors = append(result.Errors, "Validation cancelled")
				phase = phaseDone
				break
			}
			phase = nextRetryPhase(attempt, v.maxRetries)
		}
	}

	return result
}

// nextRetryPhase keeps retrying the full query until the last allowed
// attempt, which switches to the simplified fallback query.
func nextRetryPhase(attempt, maxRetries int) attemptPhase {
	if attempt >= maxRetries {
		return phaseRetryingSimplified
	}
	return phaseRetryingFull
}

// =============================================================================
// QUERY CONSTRUCTION
// =============================================================================

// querySanitizePattern strips characters outside alphanumerics, spaces,
// commas, periods and hyphens, which the geocoding service rejects.
var querySanitizePattern = regexp.MustCompile(`[^\w\s,.\-]`)

// whitespaceRunPattern collapses internal whitespace runs.
var whitespaceRunPattern = regexp.MustCompile(`\s+`)

// sanitizeComponent cleans one address component for use in a query.
func sanitizeComponent(s string) string {
	s = querySanitizePattern.ReplaceAllString(strings.TrimSpace(s), " ")
	s = whitespaceRunPattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// BuildSearchText builds the full free-text query from the address
// components, joining the non-empty sanitized parts with ", ".
func BuildSearchText(addr types.Address) string {
	parts := []string{
		sanitizeComponent(addr.Address1),
		sanitizeComponent(addr.Address2),
		sanitizeComponent(addr.Address3),
		sanitizeComponent(addr.City),
		sanitizeComponent(addr.Postcode),
		sanitizeComponent(addr.Country),
	}
	return joinNonEmpty(parts)
}

// simplifiedQuery builds the postcode+country fallback query.
func simplifiedQuery(addr types.Address) string {
	parts := []string{
		sanitizeComponent(addr.Postcode),
		sanitizeComponent(addr.Country),
	}
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// =============================================================================
// ERROR INSPECTION HELPERS
// =============================================================================

func asStatusError(err error) *HTTPStatusError {
	if se, ok := err.(*HTTPStatusError); ok {
		return se
	}
	return nil
}

func isStatusError(err error) bool {
	return asStatusError(err) != nil
}

func isStatus(err error, code int) bool {
	se := asStatusError(err)
	return se != nil && se.Code == code
}

func isServerError(err error) bool {
	se := asStatusError(err)
	return se != nil && se.IsServerError()
}

func statusCode(err error) int {
	if se := asStatusError(err); se != nil {
		return se.Code
	}
	return 0
}

func statusText(err error) string {
	if se := asStatusError(err); se != nil {
		return se.Status
	}
	return err.Error()
}

// sleepCtx sleeps for d or until the context is cancelled. Returns false
// on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
