// =============================================================================
// TFUK Order & Address Validation - Record Parsers
// =============================================================================
//
// One parser per record type. Each parser is a pure function over (line,
// layout) and never fails on malformed input:
//   - string fields that are absent or short parse to ""
//   - numeric fields that do not parse take documented defaults
//     (quantity 1, price 0); the validation engine reports the problem
//   - an H2 record with neither a customer name nor a first address line
//     is treated as empty/garbage and yields no record
//
// =============================================================================

package tfuk

import (
	"strconv"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/types"
)

// =============================================================================
// H1 - ORDER HEADER
// =============================================================================

// ParseOrderHeader parses an H1 line into a new Order. Child slices start
// empty; the order assembler appends to them while the order is current.
func ParseOrderHeader(line string, lineNumber int, layout Layout) types.Order {
	return types.Order{
		OrderNumber:  ExtractRange(line, layout.OrderNumber),
		Date:         ExtractRange(line, layout.OrderDate),
		CurrencyFlag: ExtractRange(line, layout.CurrencyFlag),
		Reference:    ExtractRange(line, layout.Reference),
		OrderType:    ExtractRange(line, layout.OrderType),
		StatusCode:   ExtractRange(line, layout.StatusCode),
		PDFFilename:  ExtractRange(line, layout.PDFFilename),
		Currency:     ExtractRange(line, layout.Currency),
		HeaderLine:   lineNumber,
	}
}

// =============================================================================
// H2 - CUSTOMER / ADDRESS
// =============================================================================

// ParseCustomer parses an H2 line into a Customer record. Returns nil when
// both the customer name and the first address line are empty, which marks
// a padding or garbage record.
func ParseCustomer(line string, lineNumber int, layout Layout) *types.Customer {
	customerName := ExtractRange(line, layout.CustomerName)
	addressLine1 := ExtractRange(line, layout.AddressLine1)

	if customerName == "" && addressLine1 == "" {
		return nil
	}

	// The packed postcode/country/phone region is taken raw (untrimmed) so
	// the splitter sees the original spacing.
	postcodeWindow := rawWindow(line, layout.PostcodeWindow)
	countryPhoneWindow := rawWindow(line, layout.CountryPhoneWindow)
	postcode, country, phone := SplitCompositeField(postcodeWindow, countryPhoneWindow)

	return &types.Customer{
		CustomerCode: ExtractRange(line, layout.CustomerCode),
		CustomerName: customerName,
		AddressLine1: addressLine1,
		AddressLine2: ExtractRange(line, layout.AddressLine2),
		AddressLine3: ExtractRange(line, layout.AddressLine3),
		Email:        ExtractRange(line, layout.Email),
		City:         ExtractRange(line, layout.City),
		Postcode:     postcode,
		CountryCode:  country,
		Phone:        phone,
		LineNumber:   lineNumber,
	}
}

// ParseAddress parses an H2 line into a standalone Address record, carrying
// the order number of the most recent H1 header as context. Returns nil for
// empty/garbage records, same as ParseCustomer.
func ParseAddress(line string, orderNumber string, lineNumber int, layout Layout) *types.Address {
	customer := ParseCustomer(line, lineNumber, layout)
	if customer == nil {
		return nil
	}

	return &types.Address{
		OrderNumber:  orderNumber,
		LineNumber:   lineNumber,
		CustomerCode: customer.CustomerCode,
		Name:         customer.CustomerName,
		Address1:     customer.AddressLine1,
		Address2:     customer.AddressLine2,
		Address3:     customer.AddressLine3,
		City:         customer.City,
		Postcode:     customer.Postcode,
		Country:      customer.CountryCode,
		Phone:        customer.Phone,
		Email:        customer.Email,
	}
}

// =============================================================================
// H3 - PAYMENT TERMS
// =============================================================================

// ParsePaymentTerms extracts the payment terms text from an H3 line.
func ParsePaymentTerms(line string, layout Layout) string {
	return ExtractRange(line, layout.PaymentTerms)
}

// =============================================================================
// D1 - LINE ITEM
// =============================================================================

// Defaults applied when a numeric line item sub-field fails to parse.
const (
	defaultQuantity = 1
	defaultPrice    = 0
)

// ParseLineItem parses a D1 line into a LineItem record. Quantity and price
// that fail to parse (or parse negative) take their defaults; the values are
// therefore always non-negative.
func ParseLineItem(line string, lineNumber int, layout Layout) types.LineItem {
	return types.LineItem{
		LineNumber:    ExtractRange(line, layout.ItemLineNumber),
		ItemReference: ExtractRange(line, layout.ItemReference),
		ISBN:          ExtractRange(line, layout.ItemISBN),
		Quantity:      parseIntField(ExtractRange(line, layout.ItemQuantity), defaultQuantity),
		Price:         parseIntField(ExtractRange(line, layout.ItemPrice), defaultPrice),
		FileLine:      lineNumber,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// rawWindow returns the untrimmed substring for a field range, clamped to
// the line length.
func rawWindow(line string, r FieldRange) string {
	if r.Start >= len(line) {
		return ""
	}
	end := r.End
	if end > len(line) {
		end = len(line)
	}
	return line[r.Start:end]
}

// parseIntField parses a numeric sub-field, substituting def on failure or
// on a negative value.
func parseIntField(value string, def int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return def
	}
	return n
}
