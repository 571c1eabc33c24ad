package tfuk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/tfuk"
)

// Test_SplitCompositeField validates the heuristic chain that separates the
// packed postcode/country/phone region into its components.
func Test_SplitCompositeField(t *testing.T) {
	tests := []struct {
		name               string
		postcodeWindow     string
		countryPhoneWindow string
		expectedPostcode   string
		expectedCountry    string
		expectedPhone      string
	}{
		{
			name:               "all three components present",
			postcodeWindow:     "SW1A 1AA GBR 02079460000",
			countryPhoneWindow: "SW1A 1AA GBR 02079460000",
			expectedPostcode:   "SW1A 1AA",
			expectedCountry:    "GBR",
			expectedPhone:      "02079460000",
		},
		{
			name:               "uk postcode without country or phone",
			postcodeWindow:     "SW1A 1AA",
			countryPhoneWindow: "",
			expectedPostcode:   "SW1A 1AA",
			expectedCountry:    "",
			expectedPhone:      "",
		},
		{
			name:               "numeric international postcode",
			postcodeWindow:     "75008 FRA 0142685300",
			countryPhoneWindow: "FRA 0142685300",
			expectedPostcode:   "75008",
			expectedCountry:    "FRA",
			expectedPhone:      "0142685300",
		},
		{
			name:               "no split point truncates to ten characters",
			postcodeWindow:     "12345678901234",
			countryPhoneWindow: "",
			expectedPostcode:   "1234567890",
			expectedCountry:    "",
			expectedPhone:      "",
		},
		{
			name:               "country code only",
			postcodeWindow:     "",
			countryPhoneWindow: "   USA   ",
			expectedPostcode:   "",
			expectedCountry:    "USA",
			expectedPhone:      "",
		},
		{
			name:               "phone keeps punctuation characters",
			postcodeWindow:     "EC1A 1BB GBR",
			countryPhoneWindow: "GBR +44 (0)20 7946 0000",
			expectedPostcode:   "EC1A 1BB",
			expectedCountry:    "GBR",
			expectedPhone:      "+44 (0)20 7946 0000",
		},
		{
			name:               "everything empty",
			postcodeWindow:     "",
			countryPhoneWindow: "",
			expectedPostcode:   "",
			expectedCountry:    "",
			expectedPhone:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postcode, country, phone := tfuk.SplitCompositeField(tt.postcodeWindow, tt.countryPhoneWindow)
			assert.Equal(t, tt.expectedPostcode, postcode)
			assert.Equal(t, tt.expectedCountry, country)
			assert.Equal(t, tt.expectedPhone, phone)
		})
	}
}
