// =============================================================================
// TFUK Order & Address Validation - XLSX Report Writer
// =============================================================================
//
// Workbook export of validation results: a Summary sheet with batch
// statistics and a Results sheet with one row per record. Operators who
// review validation runs in Excel get this alongside the CSV export.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	resultsSheet = "Results"
)

// WriteAddressXLSX writes the address results workbook to path.
func WriteAddressXLSX(results []AddressResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("failed to create results sheet: %w", err)
	}

	// Summary sheet.
	valid, invalid := 0, 0
	for _, r := range results {
		if r.Valid() {
			valid++
		} else {
			invalid++
		}
	}
	writeSummary(f, [][]interface{}{
		{"TFUK Address Validation"},
		{},
		{"Total addresses", len(results)},
		{"Valid", valid},
		{"Invalid", invalid},
	})

	// Results sheet.
	setRow(f, resultsSheet, 1, toInterfaces(addressHeader))
	for i, r := range results {
		setRow(f, resultsSheet, i+2, []interface{}{
			r.Address.OrderNumber,
			r.Address.LineNumber,
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
		})
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX report: %w", err)
	}
	return nil
}

// WriteOrderXLSX writes the order results workbook to path.
func WriteOrderXLSX(results []OrderResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(resultsSheet); err != nil {
		return fmt.Errorf("failed to create results sheet: %w", err)
	}

	// Summary sheet.
	counts := map[string]int{}
	for _, r := range results {
		counts[r.Status()]++
	}
	writeSummary(f, [][]interface{}{
		{"TFUK Order Validation"},
		{},
		{"Total orders", len(results)},
		{"Success", counts["success"]},
		{"Warning", counts["warning"]},
		{"Error", counts["error"]},
	})

	// Results sheet.
	setRow(f, resultsSheet, 1, toInterfaces(orderHeader))
	for i, r := range results {
		setRow(f, resultsSheet, i+2, []interface{}{
			r.Order.OrderNumber,
			r.Order.Date,
			r.Order.Currency,
			r.Order.OrderType,
			r.Order.StatusCode,
			len(r.Order.Customers),
			len(r.Order.LineItems),
			r.Order.PaymentTerms,
			r.Status(),
			strings.Join(r.Outcome.Errors, "; "),
			strings.Join(r.Outcome.Warnings, "; "),
		})
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save XLSX report: %w", err)
	}
	return nil
}

// =============================================================================
// SHEET HELPERS
// =============================================================================

// writeSummary fills the summary sheet row by row.
func writeSummary(f *excelize.File, rows [][]interface{}) {
	for i, row := range rows {
		setRow(f, summarySheet, i+1, row)
	}
}

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return
	}
	// SetSheetRow only fails on malformed references, which the
	// coordinate conversion above rules out.
	_ = f.SetSheetRow(sheet, cell, &values)
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
