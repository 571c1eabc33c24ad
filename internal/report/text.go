// =============================================================================
// TFUK Order & Address Validation - Invalid Address Report
// =============================================================================
//
// Plain-text report of the invalid addresses in a batch, formatted for
// pasting into an email to the order desk.
//
// =============================================================================

package report

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WriteInvalidAddressReport writes the invalid addresses to a plain-text
// file at path. Returns the number of invalid addresses written; when the
// batch has none, no file is created.
func WriteInvalidAddressReport(results []AddressResult, path string) (int, error) {
	var invalid []AddressResult
	for _, r := range results {
		if !r.Valid() {
			invalid = append(invalid, r)
		}
	}
	if len(invalid) == 0 {
		return 0, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create invalid address report: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintln(w, "TFUK Invalid Addresses Report")
	fmt.Fprintln(w, "==============================")
	fmt.Fprintf(w, "Total: %d\n\n", len(invalid))

	for i, r := range invalid {
		name := r.Address.Name
		if name == "" {
			name = "Unnamed"
		}
		fmt.Fprintf(w, "%d. Order %s - %s\n", i+1, r.Address.OrderNumber, name)
		fmt.Fprintf(w, "   Line: %d\n", r.Address.LineNumber)
		fmt.Fprintf(w, "   Address: %s\n", summarizeAddress(r))
		if errs := r.Errors(); len(errs) > 0 {
			fmt.Fprintf(w, "   Errors: %s\n", strings.Join(errs, "; "))
		}
		fmt.Fprintln(w)
	}

	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush invalid address report: %w", err)
	}

	return len(invalid), nil
}

// summarizeAddress renders the address on one line, skipping empty parts.
func summarizeAddress(r AddressResult) string {
	parts := []string{
		r.Address.Address1,
		r.Address.Address2,
		r.Address.City,
		r.Address.Postcode,
	}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
