// =============================================================================
// TFUK Order & Address Validation - Validation Engine
// =============================================================================
//
// This module applies field-presence and format rules to assembled orders
// and standalone addresses, producing categorized errors and warnings with
// an overall status.
//
// VALIDATION STRATEGY:
//   - Rules are evaluated independently, with no early exit, so that every
//     applicable violation is reported in one pass.
//   - Violations are collected, never thrown. A record's problems attach to
//     its own outcome and cannot abort processing of sibling records.
//   - Validation is a pure function of the record's current state: running
//     it twice yields an identical outcome.
//
// RULE PROFILES:
//   Two deliberately distinct profiles exist and are not unified:
//   - Order profile (ValidateOrder): order-level, per-customer and
//     per-line-item rules. Email rules are skipped entirely for
//     Amazon-named customers and for carrier-prefixed customer codes.
//   - Address profile (ValidateAddress): the stricter pre-geocoding rules.
//     Missing postcode, country code or phone is an error that blocks the
//     geocode call; missing email is an error unless the name is
//     Amazon-origin. The carrier exemption does not apply here.
//
// =============================================================================

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/types"
)

// =============================================================================
// OUTCOME
// =============================================================================

// Status is the overall classification of a validation outcome.
type Status string

const (
	// StatusSuccess means no errors and no warnings.
	StatusSuccess Status = "success"

	// StatusWarning means at least one warning and no errors.
	StatusWarning Status = "warning"

	// StatusError means at least one error.
	StatusError Status = "error"
)

// Outcome holds the collected violations for one record. Errors and
// warnings keep the order in which the rules reported them.
type Outcome struct {
	Errors   []string
	Warnings []string
}

// Status derives the overall status: error dominates warning dominates
// success.
func (o Outcome) Status() Status {
	switch {
	case len(o.Errors) > 0:
		return StatusError
	case len(o.Warnings) > 0:
		return StatusWarning
	default:
		return StatusSuccess
	}
}

// IsValid reports whether the outcome carries no errors.
func (o Outcome) IsValid() bool {
	return len(o.Errors) == 0
}

func (o *Outcome) addError(format string, args ...interface{}) {
	o.Errors = append(o.Errors, fmt.Sprintf(format, args...))
}

func (o *Outcome) addWarning(format string, args ...interface{}) {
	o.Warnings = append(o.Warnings, fmt.Sprintf(format, args...))
}

// =============================================================================
// SHARED PATTERNS
// =============================================================================

var (
	// orderDatePattern matches the 8-digit YYYYMMDD order date.
	orderDatePattern = regexp.MustCompile(`^\d{8}$`)

	// isbnPattern matches a 13-digit ISBN beginning 978 or 979.
	isbnPattern = regexp.MustCompile(`^97[89]\d{10}$`)
)

// validate backs the email format rule.
var validate = validator.New()

// emailFormatValid reports whether value is a well-formed email address.
func emailFormatValid(value string) bool {
	return validate.Var(value, "email") == nil
}

// =============================================================================
// ORDER PROFILE
// =============================================================================

// ValidateOrder applies the order rule profile to an assembled order.
func ValidateOrder(order types.Order) Outcome {
	var outcome Outcome

	// Order-level rules.
	if order.OrderNumber == "" {
		outcome.addError("Missing order number")
	}
	if !orderDatePattern.MatchString(order.Date) {
		outcome.addError("Missing or invalid order date (expected YYYYMMDD)")
	}
	if order.Currency == "" {
		outcome.addWarning("Missing currency")
	}
	if len(order.Customers) == 0 {
		outcome.addError("No customer information found")
	}
	if len(order.LineItems) == 0 {
		outcome.addError("No line items found")
	}

	// Per-customer rules.
	for i, customer := range order.Customers {
		validateCustomer(&outcome, i+1, customer)
	}

	// Per-line-item rules.
	for i, item := range order.LineItems {
		validateLineItem(&outcome, i+1, item)
	}

	return outcome
}

// validateCustomer applies the role-aware per-customer rules.
func validateCustomer(outcome *Outcome, position int, customer types.Customer) {
	ref := customerRef(position, customer)

	if customer.CustomerName == "" {
		outcome.addError("%s: missing customer name", ref)
	}
	if customer.AddressLine1 == "" {
		outcome.addError("%s: missing address line 1", ref)
	}
	if customer.City == "" {
		outcome.addError("%s: missing city", ref)
	}
	if customer.Postcode == "" {
		outcome.addWarning("%s: missing postcode", ref)
	}
	if customer.Phone == "" {
		outcome.addWarning("%s: missing phone number", ref)
	}

	// Amazon marketplace orders carry no buyer email, and carrier records
	// are contact-free accounts; email is not validated at all for either.
	if customer.IsAmazon() || customer.IsCarrier() {
		return
	}

	if customer.Email == "" {
		outcome.addWarning("%s: missing email address", ref)
	} else if !emailFormatValid(customer.Email) {
		outcome.addError("%s: invalid email address '%s'", ref, customer.Email)
	}
}

// validateLineItem applies the per-line-item rules.
func validateLineItem(outcome *Outcome, position int, item types.LineItem) {
	ref := lineItemRef(position, item)

	if !isbnPattern.MatchString(item.ISBN) {
		outcome.addError("%s: invalid ISBN '%s' (expected 13 digits starting 978 or 979)", ref, item.ISBN)
	}
	if item.Quantity <= 0 {
		outcome.addError("%s: quantity must be a positive integer", ref)
	}
	if item.Price <= 0 {
		outcome.addError("%s: price must be a positive integer", ref)
	}
	if item.ItemReference == "" {
		outcome.addWarning("%s: missing item reference", ref)
	}
}

// customerRef builds the message prefix identifying a customer record.
func customerRef(position int, customer types.Customer) string {
	if customer.CustomerCode != "" {
		return fmt.Sprintf("Customer %d (%s)", position, customer.CustomerCode)
	}
	return fmt.Sprintf("Customer %d", position)
}

// lineItemRef builds the message prefix identifying a line item.
func lineItemRef(position int, item types.LineItem) string {
	if item.LineNumber != "" {
		return fmt.Sprintf("Line %s", item.LineNumber)
	}
	return fmt.Sprintf("Line item %d", position)
}

// =============================================================================
// ADDRESS PROFILE
// =============================================================================

// ValidateAddress applies the standalone address rule profile. Any error
// blocks the geocode call for the address.
func ValidateAddress(addr types.Address) Outcome {
	var outcome Outcome
	var missing []string

	if addr.Postcode == "" {
		missing = append(missing, "Postcode")
	}
	if addr.Country == "" {
		missing = append(missing, "Country Code")
	}
	// No carrier exemption in this profile: only Amazon-origin names skip
	// the email requirement.
	if !addr.IsAmazon() && addr.Email == "" {
		missing = append(missing, "Email")
	}
	if addr.Phone == "" {
		missing = append(missing, "Phone")
	}

	if len(missing) > 0 {
		outcome.addError("Missing required fields: %s", strings.Join(missing, ", "))
	}

	return outcome
}
