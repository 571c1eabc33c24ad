// =============================================================================
// TFUK Order & Address Validation - Composite Field Splitter
// =============================================================================
//
// The TFUK H2 record packs the postcode, the 3-letter country code and the
// phone number into one fixed-width region with irregular internal spacing.
// Any of the three components may be missing, and international postcodes
// vary in length, so no single pattern is reliable across all inputs.
//
// SPLITTING STRATEGY (ordered, first match wins):
//   1. "postcode, whitespace, exactly three uppercase letters" in the
//      postcode window — the text before the letters is the postcode.
//   2. A UK-shaped postcode anchored at the start of the trimmed window.
//   3. Split the window on the first whitespace-preceded run of three
//      uppercase letters; the prefix is the postcode. With no split point
//      the postcode is the first 10 characters of the window.
//   The country code is independently the first 3-uppercase-letter run in
//   the wider country/phone window, and the phone is whatever follows that
//   run, restricted to digits, spaces and + ( ) - characters.
//
// This is best-effort extraction: the patterns cover the formats observed
// in real TFUK files, not every international postcode shape.
//
// =============================================================================

package tfuk

import (
	"regexp"
	"strings"
)

// =============================================================================
// PATTERNS
// =============================================================================

var (
	// postcodeCountryPattern matches "<postcode> <CCC>" where CCC is a
	// 3-letter country code.
	postcodeCountryPattern = regexp.MustCompile(`\s*([A-Z0-9\s-]+?)\s+([A-Z]{3})`)

	// ukPostcodePattern matches a UK postcode (outward + inward code)
	// anchored at the start of the field.
	ukPostcodePattern = regexp.MustCompile(`^([A-Z]{1,2}\d{1,2}[A-Z]?\s?\d[A-Z]{2})`)

	// countrySplitPattern locates a whitespace-preceded 3-letter run, used
	// as the fallback split point for international postcodes.
	countrySplitPattern = regexp.MustCompile(`\s+[A-Z]{3}`)

	// countryCodePattern finds the first 3-letter uppercase run anywhere in
	// the country/phone window.
	countryCodePattern = regexp.MustCompile(`[A-Z]{3}`)

	// phonePattern captures the phone characters following the country code.
	phonePattern = regexp.MustCompile(`[A-Z]{3}([\d\s+()\-]+)`)
)

// maxFallbackPostcodeLen bounds the postcode when no split point is found.
const maxFallbackPostcodeLen = 10

// =============================================================================
// SPLITTER
// =============================================================================

// SplitCompositeField separates the packed postcode/country/phone region
// into its three components. postcodeWindow is the narrower window expected
// to hold the postcode (and usually the start of the country code);
// countryPhoneWindow is the wider, overlapping window holding the country
// code and phone number. Missing components yield empty strings.
func SplitCompositeField(postcodeWindow, countryPhoneWindow string) (postcode, country, phone string) {
	postcode = extractPostcode(postcodeWindow)

	if m := countryCodePattern.FindString(countryPhoneWindow); m != "" {
		country = m
	}

	if m := phonePattern.FindStringSubmatch(countryPhoneWindow); m != nil {
		phone = strings.TrimSpace(m[1])
	}

	return postcode, country, phone
}

// extractPostcode applies the ordered heuristic chain to the postcode window.
func extractPostcode(window string) string {
	// Heuristic 1: postcode followed by a 3-letter country code.
	if m := postcodeCountryPattern.FindStringSubmatch(window); m != nil {
		return strings.TrimSpace(m[1])
	}

	clean := strings.TrimSpace(window)

	// Heuristic 2: UK-shaped postcode at the start of the field.
	if m := ukPostcodePattern.FindStringSubmatch(clean); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Heuristic 3: split on the first whitespace-preceded 3-letter run.
	if loc := countrySplitPattern.FindStringIndex(clean); loc != nil {
		if before := strings.TrimSpace(clean[:loc[0]]); before != "" {
			return before
		}
	}

	// No split point: take the leading characters as an approximation.
	if len(clean) > maxFallbackPostcodeLen {
		return strings.TrimSpace(clean[:maxFallbackPostcodeLen])
	}
	return clean
}
