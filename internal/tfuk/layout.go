// =============================================================================
// TFUK Order & Address Validation - Record Layouts
// =============================================================================
//
// This file defines the fixed-width column layouts for the TFUK record
// format, together with the field extraction primitive that every record
// parser composes.
//
// LAYOUT PROFILES:
//   Two layouts are in circulation:
//   - "standard": the authoritative layout, matching current TFUK exports.
//   - "legacy":   an older layout with a narrower postcode window and a
//                 wider country/phone window. Only the packed
//                 postcode/country/phone windows differ.
//
//   The postcode window and the country/phone window deliberately overlap;
//   the composite field splitter (composite.go) resolves the ambiguity.
//
// COLUMN CONTRACT:
//   All ranges are half-open [start, end) byte offsets into the raw line.
//   Lines shorter than a field's end column yield the available prefix of
//   the field (possibly empty), never an error.
//
// =============================================================================

package tfuk

import "strings"

// =============================================================================
// FIELD EXTRACTION PRIMITIVE
// =============================================================================

// FieldRange is a half-open [Start, End) column range within a record line.
type FieldRange struct {
	Start int
	End   int
}

// Extract returns the whitespace-trimmed substring of line in the range
// [start, end). A line shorter than end yields whatever is available; a line
// shorter than start yields the empty string. Extraction never fails.
func Extract(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

// ExtractRange is Extract applied to a FieldRange.
func ExtractRange(line string, r FieldRange) string {
	return Extract(line, r.Start, r.End)
}

// =============================================================================
// RECORD TYPE PREFIXES
// =============================================================================

// Line type tokens. Classification is by literal prefix match on the raw
// line after the trailing carriage return has been stripped.
const (
	// PrefixFileHeader is the file-begin sentinel. Always ignored.
	PrefixFileHeader = "$$HDR"

	// PrefixFileTrailer is the file-end sentinel. Always ignored.
	PrefixFileTrailer = "$$EOF"

	// PrefixOrderHeader opens a new order (H1 record).
	PrefixOrderHeader = "H1"

	// PrefixCustomer carries one party's name/address/contact fields (H2).
	PrefixCustomer = "H2"

	// PrefixPaymentTerms carries the order's payment terms text (H3).
	PrefixPaymentTerms = "H3"

	// PrefixLineItem carries one product line (D1).
	PrefixLineItem = "D1"
)

// RecordType is a closed enumeration of line classifications.
type RecordType int

const (
	// RecordUnknown marks a line with an unrecognized prefix. Skipped.
	RecordUnknown RecordType = iota

	// RecordSentinel marks the $$HDR / $$EOF file markers. Skipped.
	RecordSentinel

	// RecordOrderHeader is an H1 line.
	RecordOrderHeader

	// RecordCustomer is an H2 line.
	RecordCustomer

	// RecordPaymentTerms is an H3 line.
	RecordPaymentTerms

	// RecordLineItem is a D1 line.
	RecordLineItem
)

// ClassifyLine maps a normalized line to exactly one RecordType.
func ClassifyLine(line string) RecordType {
	switch {
	case strings.HasPrefix(line, PrefixFileHeader), strings.HasPrefix(line, PrefixFileTrailer):
		return RecordSentinel
	case strings.HasPrefix(line, PrefixOrderHeader):
		return RecordOrderHeader
	case strings.HasPrefix(line, PrefixCustomer):
		return RecordCustomer
	case strings.HasPrefix(line, PrefixPaymentTerms):
		return RecordPaymentTerms
	case strings.HasPrefix(line, PrefixLineItem):
		return RecordLineItem
	default:
		return RecordUnknown
	}
}

// =============================================================================
// LAYOUT DEFINITION
// =============================================================================

// Layout defines the fixed-width column positions for every TFUK record type.
type Layout struct {
	// Name identifies the layout profile ("standard" or "legacy").
	Name string

	// H1 order header fields.
	OrderNumber  FieldRange
	OrderDate    FieldRange
	CurrencyFlag FieldRange
	Reference    FieldRange
	OrderType    FieldRange
	StatusCode   FieldRange
	PDFFilename  FieldRange
	Currency     FieldRange

	// H2 customer fields.
	CustomerCode FieldRange
	CustomerName FieldRange
	AddressLine1 FieldRange
	AddressLine2 FieldRange
	AddressLine3 FieldRange
	Email        FieldRange
	City         FieldRange

	// PostcodeWindow is the window known to contain the postcode, usually
	// followed by the start of the country code.
	PostcodeWindow FieldRange

	// CountryPhoneWindow is the wider window containing the country code
	// and phone number. It overlaps PostcodeWindow.
	CountryPhoneWindow FieldRange

	// H3 payment terms field.
	PaymentTerms FieldRange

	// D1 line item fields.
	ItemLineNumber FieldRange
	ItemReference  FieldRange
	ItemISBN       FieldRange
	ItemQuantity   FieldRange
	ItemPrice      FieldRange
}

// StandardLayout is the authoritative TFUK column layout, verified against
// current export samples.
func StandardLayout() Layout {
	l := baseLayout()
	l.Name = "standard"
	l.PostcodeWindow = FieldRange{320, 340}
	l.CountryPhoneWindow = FieldRange{330, 359}
	return l
}

// LegacyLayout is the alternate layout produced by the previous export
// generation. Only the packed postcode/country/phone windows differ from
// the standard layout.
func LegacyLayout() Layout {
	l := baseLayout()
	l.Name = "legacy"
	l.PostcodeWindow = FieldRange{320, 334}
	l.CountryPhoneWindow = FieldRange{330, 365}
	return l
}

// LayoutByName resolves a layout profile name. Unknown names fall back to
// the standard layout.
func LayoutByName(name string) Layout {
	if strings.EqualFold(name, "legacy") {
		return LegacyLayout()
	}
	return StandardLayout()
}

// baseLayout holds the columns shared by both profiles.
func baseLayout() Layout {
	return Layout{
		OrderNumber:  FieldRange{2, 17},
		OrderDate:    FieldRange{17, 25},
		CurrencyFlag: FieldRange{25, 26},
		Reference:    FieldRange{26, 41},
		OrderType:    FieldRange{41, 43},
		StatusCode:   FieldRange{43, 45},
		PDFFilename:  FieldRange{45, 85},
		Currency:     FieldRange{85, 88},

		CustomerCode: FieldRange{17, 35},
		CustomerName: FieldRange{35, 85},
		AddressLine1: FieldRange{85, 135},
		AddressLine2: FieldRange{135, 185},
		AddressLine3: FieldRange{185, 235},
		Email:        FieldRange{235, 285},
		City:         FieldRange{285, 320},

		PaymentTerms: FieldRange{17, 77},

		ItemLineNumber: FieldRange{2, 7},
		ItemReference:  FieldRange{7, 27},
		ItemISBN:       FieldRange{27, 40},
		ItemQuantity:   FieldRange{40, 46},
		ItemPrice:      FieldRange{46, 55},
	}
}
