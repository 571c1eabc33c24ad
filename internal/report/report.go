// =============================================================================
// TFUK Order & Address Validation - Report Types
// =============================================================================
//
// Result rows shared by the CSV, XLSX and text report writers. The pipeline
// packages build these; the writers only serialize them.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/geocode"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/types"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/validation"
)

// =============================================================================
// ORDER RESULTS
// =============================================================================

// OrderResult pairs an assembled order with its validation outcome.
type OrderResult struct {
	Order   types.Order
	Outcome validation.Outcome
}

// Status returns the derived validation status for the order.
func (r OrderResult) Status() string {
	return string(r.Outcome.Status())
}

// =============================================================================
// ADDRESS RESULTS
// =============================================================================

// AddressResult pairs a standalone address with its local validation
// outcome and, when the local rules passed and geocoding ran, the geocode
// verdict.
type AddressResult struct {
	Address types.Address
	Outcome validation.Outcome

	// Geocode is nil when local validation blocked the call or geocoding
	// was disabled for the run.
	Geocode *geocode.Result
}

// Status returns the overall status of the address: a local validation
// error dominates; otherwise the geocode verdict decides; a local-only run
// with no errors is a success.
func (r AddressResult) Status() string {
	if !r.Outcome.IsValid() {
		return string(validation.StatusError)
	}
	if r.Geocode != nil {
		return string(r.Geocode.Status)
	}
	return string(validation.StatusSuccess)
}

// Valid reports whether the overall status is success.
func (r AddressResult) Valid() bool {
	return r.Status() == string(validation.StatusSuccess)
}

// Errors returns the local validation errors followed by any geocode
// errors, in occurrence order.
func (r AddressResult) Errors() []string {
	errs := append([]string{}, r.Outcome.Errors...)
	if r.Geocode != nil {
		errs = append(errs, r.Geocode.Errors...)
	}
	return errs
}

// Confidence returns the geocode confidence score, or 0 when geocoding did
// not run.
func (r AddressResult) Confidence() float64 {
	if r.Geocode == nil {
		return 0
	}
	return r.Geocode.Confidence
}

// ConfidencePercent formats the confidence as a whole percentage, matching
// the operator-facing reports (e.g. "87%").
func (r AddressResult) ConfidencePercent() string {
	return fmt.Sprintf("%.0f%%", r.Confidence()*100)
}
