package report_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/geocode"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/report"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/types"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/validation"
)

// sampleResults builds one verified, one geocode-failed and one locally
// rejected address result.
func sampleResults() []report.AddressResult {
	verified := report.AddressResult{
		Address: types.Address{
			OrderNumber: "ORD0000000001",
			LineNumber:  5,
			Name:        "ACME BOOKS LTD",
			Address1:    "10 DOWNING STREET",
			City:        "LONDON",
			Postcode:    "SW1A 1AA",
			Country:     "GBR",
			Phone:       "02079460000",
			Email:       "orders@acme.example",
		},
		Geocode: &geocode.Result{
			Status:           geocode.StatusSuccess,
			Confidence:       0.95,
			FormattedAddress: "10 Downing Street, London SW1A 1AA, United Kingdom",
			Lat:              51.5033635,
			Lon:              -0.1276474,
			HasCoordinates:   true,
		},
	}

	notFound := report.AddressResult{
		Address: types.Address{
			OrderNumber: "ORD0000000001",
			LineNumber:  9,
			Name:        "NOWHERE BOOKS",
			Address1:    "1 IMAGINARY LANE",
			Postcode:    "ZZ99 9ZZ",
			Country:     "GBR",
			Phone:       "01000000000",
			Email:       "books@nowhere.example",
		},
		Geocode: &geocode.Result{
			Status: geocode.StatusError,
			Errors: []string{"Address not found by Geoapify"},
		},
	}

	rejected := report.AddressResult{
		Address: types.Address{
			OrderNumber: "ORD0000000002",
			LineNumber:  14,
			Name:        "INCOMPLETE LTD",
			Address1:    "2 HALF STREET",
		},
		Outcome: validation.Outcome{
			Errors: []string{"Missing required fields: Postcode, Country Code, Email, Phone"},
		},
	}

	return []report.AddressResult{verified, notFound, rejected}
}

func Test_AddressResult_Status(t *testing.T) {
	results := sampleResults()

	assert.Equal(t, "success", results[0].Status())
	assert.True(t, results[0].Valid())

	assert.Equal(t, "error", results[1].Status())
	assert.False(t, results[1].Valid())

	// Local validation dominates even without a geocode verdict.
	assert.Equal(t, "error", results[2].Status())

	// Local-only run with clean validation.
	localOnly := report.AddressResult{Address: results[0].Address}
	assert.Equal(t, "success", localOnly.Status())
	assert.Equal(t, "0%", localOnly.ConfidencePercent())
}

func Test_AddressResult_Errors(t *testing.T) {
	r := report.AddressResult{
		Outcome: validation.Outcome{Errors: []string{"local problem"}},
		Geocode: &geocode.Result{Errors: []string{"remote problem"}},
	}
	assert.Equal(t, []string{"local problem", "remote problem"}, r.Errors())
}

func Test_WriteAddressCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addresses.csv")
	require.NoError(t, report.WriteAddressCSV(sampleResults(), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"Order", "Line", "Customer Code", "Name",
		"Address1", "Address2", "Address3", "City",
		"Postcode", "Country", "Email", "Phone",
		"Status", "Confidence", "Formatted Address",
		"Latitude", "Longitude", "Errors",
	}, rows[0])

	verified := rows[1]
	assert.Equal(t, "ORD0000000001", verified[0])
	assert.Equal(t, "5", verified[1])
	assert.Equal(t, "success", verified[12])
	assert.Equal(t, "95%", verified[13])
	assert.Equal(t, "10 Downing Street, London SW1A 1AA, United Kingdom", verified[14])
	assert.Equal(t, "51.503363", verified[15])
	assert.Equal(t, "-0.127647", verified[16])
	assert.Empty(t, verified[17])

	notFound := rows[2]
	assert.Equal(t, "error", notFound[12])
	assert.Empty(t, notFound[15], "no coordinates without a match")
	assert.Equal(t, "Address not found by Geoapify", notFound[17])

	rejected := rows[3]
	assert.Equal(t, "error", rejected[12])
	assert.Equal(t, "Missing required fields: Postcode, Country Code, Email, Phone", rejected[17])
}

func Test_WriteOrderCSV(t *testing.T) {
	results := []report.OrderResult{
		{
			Order: types.Order{
				OrderNumber:  "ORD0000000001",
				Date:         "20260815",
				Currency:     "GBP",
				PaymentTerms: "30 DAYS NET",
				Customers:    []types.Customer{{CustomerName: "ACME BOOKS LTD"}},
				LineItems:    []types.LineItem{{ISBN: "9780140449136"}, {ISBN: "9780262033848"}},
			},
		},
		{
			Order: types.Order{OrderNumber: "ORD0000000002"},
			Outcome: validation.Outcome{
				Errors:   []string{"No customer information found", "No line items found"},
				Warnings: []string{"Missing currency"},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, report.WriteOrderCSV(results, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	clean := rows[1]
	assert.Equal(t, "ORD0000000001", clean[0])
	assert.Equal(t, "1", clean[5])
	assert.Equal(t, "2", clean[6])
	assert.Equal(t, "success", clean[8])

	failed := rows[2]
	assert.Equal(t, "error", failed[8])
	assert.Equal(t, "No customer information found; No line items found", failed[9])
	assert.Equal(t, "Missing currency", failed[10])
}

func Test_WriteInvalidAddressReport(t *testing.T) {
	t.Run("writes only the invalid addresses", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.txt")
		count, err := report.WriteInvalidAddressReport(sampleResults(), path)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		text := string(data)
		assert.Contains(t, text, "Total: 2")
		assert.Contains(t, text, "NOWHERE BOOKS")
		assert.Contains(t, text, "INCOMPLETE LTD")
		assert.NotContains(t, text, "ACME BOOKS LTD")
	})

	t.Run("no file when everything is valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.txt")
		count, err := report.WriteInvalidAddressReport(sampleResults()[:1], path)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.NoFileExists(t, path)
	})
}
