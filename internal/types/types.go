// =============================================================================
// TFUK Order & Address Validation - Shared Types
// =============================================================================
//
// This package contains the record types shared across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - tfuk (record parsing)
//   - validation
//   - geocode
//   - report
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// ORDER TYPES
// =============================================================================

// Order represents one customer order assembled from an H1 header line and
// the H2/H3/D1 lines that follow it.
type Order struct {
	// OrderNumber is the order identifier from the H1 line.
	// Assigned once when the order is created and never mutated afterward.
	OrderNumber string

	// Date is the raw 8-digit order date (YYYYMMDD).
	Date string

	// CurrencyFlag is the single-character currency indicator.
	CurrencyFlag string

	// Reference is the customer reference from the header.
	Reference string

	// OrderType is the 2-character order type code.
	OrderType string

	// StatusCode is the 2-character status code.
	StatusCode string

	// PDFFilename is the name of the accompanying PDF document, if any.
	PDFFilename string

	// Currency is the 3-letter currency code.
	Currency string

	// PaymentTerms is the payment terms text from the H3 line, if present.
	PaymentTerms string

	// Customers contains the H2 records attached to this order, in file order.
	Customers []Customer

	// LineItems contains the D1 records attached to this order, in file order.
	LineItems []LineItem

	// HeaderLine is the file line number of the H1 record (1-indexed).
	// Useful for error reporting.
	HeaderLine int
}

// =============================================================================
// CUSTOMER TYPES
// =============================================================================

// Customer role prefixes carried on the customer code.
const (
	// ShipToPrefix marks a ship-to (delivery) customer record.
	ShipToPrefix = "ST"

	// CarrierPrefix marks a carrier customer record.
	CarrierPrefix = "CA"
)

// Customer represents one named party at one postal address within an order,
// parsed from an H2 line.
type Customer struct {
	// CustomerCode is the account code. Its leading characters classify the
	// record's role (see IsShipTo / IsCarrier).
	CustomerCode string

	// CustomerName is the party name.
	CustomerName string

	// AddressLine1, AddressLine2 and AddressLine3 are the street address lines.
	AddressLine1 string
	AddressLine2 string
	AddressLine3 string

	// Email is the contact email address.
	Email string

	// City is the town or city.
	City string

	// Postcode is the postal code extracted from the packed
	// postcode/country/phone field.
	Postcode string

	// CountryCode is the 3-letter country code (e.g. GBR, USA).
	CountryCode string

	// Phone is the contact phone number.
	Phone string

	// LineNumber is the file line number of the H2 record (1-indexed).
	LineNumber int
}

// IsShipTo reports whether this customer record carries the shipping role.
func (c Customer) IsShipTo() bool {
	return strings.HasPrefix(c.CustomerCode, ShipToPrefix)
}

// IsCarrier reports whether this customer record is a carrier account.
// Carrier records are exempt from email validation in the order profile.
func (c Customer) IsCarrier() bool {
	return strings.HasPrefix(c.CustomerCode, CarrierPrefix)
}

// IsAmazon reports whether the customer name indicates an Amazon-origin
// order. Amazon marketplace orders never carry a buyer email, so email
// rules are skipped for them.
func (c Customer) IsAmazon() bool {
	return strings.Contains(strings.ToLower(c.CustomerName), "amazon")
}

// =============================================================================
// LINE ITEM TYPES
// =============================================================================

// LineItem represents one product line within an order, parsed from a D1 line.
type LineItem struct {
	// LineNumber is the order line number from the record.
	LineNumber string

	// ItemReference is the customer's item reference.
	ItemReference string

	// ISBN is the 13-digit product identifier.
	ISBN string

	// Quantity is the ordered quantity. Defaults to 1 when the field does
	// not parse as an integer; validation reports the underlying problem.
	Quantity int

	// Price is the unit price in minor currency units (pence/cents).
	// Defaults to 0 when the field does not parse.
	Price int

	// FileLine is the file line number of the D1 record (1-indexed).
	FileLine int
}

// PriceFormatted returns the price as a major-unit string with two decimal
// places, e.g. 500 -> "5.00".
func (li LineItem) PriceFormatted() string {
	return fmt.Sprintf("%d.%02d", li.Price/100, li.Price%100)
}

// =============================================================================
// ADDRESS TYPES (standalone address mode)
// =============================================================================

// Address is a postal address drawn directly from an H2 line without owning
// order context, used by the standalone address verification pipeline.
type Address struct {
	// OrderNumber is the number of the most recent H1 header seen before
	// this H2 line. Empty when the file carries no header.
	OrderNumber string

	// LineNumber is the file line number of the H2 record (1-indexed).
	LineNumber int

	CustomerCode string
	Name         string
	Address1     string
	Address2     string
	Address3     string
	City         string
	Postcode     string
	Country      string
	Phone        string
	Email        string
}

// IsAmazon reports whether the address name indicates an Amazon-origin order.
func (a Address) IsAmazon() bool {
	return strings.Contains(strings.ToLower(a.Name), "amazon")
}
