// =============================================================================
// TFUK Order & Address Validation - CSV Report Writer
// =============================================================================
//
// Row-oriented CSV export of validation results, one row per processed
// record. The address column set matches the export produced by the
// original operator tool so downstream spreadsheets keep working.
//
// =============================================================================

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// addressHeader is the fixed column set of the address results export.
var addressHeader = []string{
	"Order", "Line", "Customer Code", "Name",
	"Address1", "Address2", "Address3", "City",
	"Postcode", "Country", "Email", "Phone",
	"Status", "Confidence", "Formatted Address",
	"Latitude", "Longitude", "Errors",
}

// orderHeader is the fixed column set of the order results export.
var orderHeader = []string{
	"Order", "Date", "Currency", "Order Type", "Status Code",
	"Customers", "Line Items", "Payment Terms",
	"Status", "Errors", "Warnings",
}

// WriteAddressCSV writes the address results to path.
func WriteAddressCSV(results []AddressResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(addressHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.Address.OrderNumber,
			strconv.Itoa(r.Address.LineNumber),
			r.Address.CustomerCode,
			r.Address.Name,
			r.Address.Address1,
			r.Address.Address2,
			r.Address.Address3,
			r.Address.City,
			r.Address.Postcode,
			r.Address.Country,
			r.Address.Email,
			r.Address.Phone,
			r.Status(),
			r.ConfidencePercent(),
			formattedAddress(r),
			latitude(r),
			longitude(r),
			strings.Join(r.Errors(), "; "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}

	return nil
}

// WriteOrderCSV writes the order results to path.
func WriteOrderCSV(results []OrderResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(orderHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.Order.OrderNumber,
			r.Order.Date,
			r.Order.Currency,
			r.Order.OrderType,
			r.Order.StatusCode,
			strconv.Itoa(len(r.Order.Customers)),
			strconv.Itoa(len(r.Order.LineItems)),
			r.Order.PaymentTerms,
			r.Status(),
			strings.Join(r.Outcome.Errors, "; "),
			strings.Join(r.Outcome.Warnings, "; "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}

	return nil
}

// =============================================================================
// FIELD FORMATTING HELPERS
// =============================================================================

func formattedAddress(r AddressResult) string {
	if r.Geocode == nil {
		return ""
	}
	return r.Geocode.FormattedAddress
}

func latitude(r AddressResult) string {
	if r.Geocode == nil || !r.Geocode.HasCoordinates {
		return ""
	}
	return strconv.FormatFloat(r.Geocode.Lat, 'f', 6, 64)
}

func longitude(r AddressResult) string {
	if r.Geocode == nil || !r.Geocode.HasCoordinates {
		return ""
	}
	return strconv.FormatFloat(r.Geocode.Lon, 'f', 6, 64)
}
