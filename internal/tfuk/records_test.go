package tfuk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/tfuk"
)

// fixedLine builds a space-padded record line with the given type prefix and
// field values placed at their start columns. Shared by the record and parser
// tests.
func fixedLine(prefix string, fields map[int]string) string {
	buf := make([]byte, 370)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, prefix)
	for start, value := range fields {
		copy(buf[start:], value)
	}
	return string(buf)
}

func Test_ParseOrderHeader(t *testing.T) {
	line := fixedLine("H1", map[int]string{
		2:  "ORD0000000123",
		17: "20260815",
		25: "Y",
		26: "PO-778899",
		41: "SO",
		43: "01",
		45: "order_123.pdf",
		85: "GBP",
	})

	order := tfuk.ParseOrderHeader(line, 4, tfuk.StandardLayout())

	assert.Equal(t, "ORD0000000123", order.OrderNumber)
	assert.Equal(t, "20260815", order.Date)
	assert.Equal(t, "Y", order.CurrencyFlag)
	assert.Equal(t, "PO-778899", order.Reference)
	assert.Equal(t, "SO", order.OrderType)
	assert.Equal(t, "01", order.StatusCode)
	assert.Equal(t, "order_123.pdf", order.PDFFilename)
	assert.Equal(t, "GBP", order.Currency)
	assert.Equal(t, 4, order.HeaderLine)
	assert.Empty(t, order.Customers)
	assert.Empty(t, order.LineItems)
}

func Test_ParseCustomer(t *testing.T) {
	t.Run("complete record with composite region", func(t *testing.T) {
		line := fixedLine("H2", map[int]string{
			17:  "STGB0001",
			35:  "ACME BOOKS LTD",
			85:  "10 DOWNING STREET",
			135: "WESTMINSTER",
			235: "orders@acme.example",
			285: "LONDON",
			320: "SW1A 1AA",
			330: "GBR",
			334: "02079460000",
		})

		customer := tfuk.ParseCustomer(line, 5, tfuk.StandardLayout())
		require.NotNil(t, customer)

		assert.Equal(t, "STGB0001", customer.CustomerCode)
		assert.Equal(t, "ACME BOOKS LTD", customer.CustomerName)
		assert.Equal(t, "10 DOWNING STREET", customer.AddressLine1)
		assert.Equal(t, "WESTMINSTER", customer.AddressLine2)
		assert.Equal(t, "orders@acme.example", customer.Email)
		assert.Equal(t, "LONDON", customer.City)
		assert.Equal(t, "SW1A 1AA", customer.Postcode)
		assert.Equal(t, "GBR", customer.CountryCode)
		assert.Equal(t, "02079460000", customer.Phone)
		assert.Equal(t, 5, customer.LineNumber)
		assert.True(t, customer.IsShipTo())
	})

	t.Run("blank name and first address line yields nil", func(t *testing.T) {
		line := fixedLine("H2", map[int]string{17: "STGB0001"})
		assert.Nil(t, tfuk.ParseCustomer(line, 6, tfuk.StandardLayout()))
	})

	t.Run("name alone is enough", func(t *testing.T) {
		line := fixedLine("H2", map[int]string{35: "ACME BOOKS LTD"})
		require.NotNil(t, tfuk.ParseCustomer(line, 7, tfuk.StandardLayout()))
	})
}

func Test_ParseAddress(t *testing.T) {
	line := fixedLine("H2", map[int]string{
		17:  "STGB0001",
		35:  "ACME BOOKS LTD",
		85:  "10 DOWNING STREET",
		285: "LONDON",
		320: "SW1A 1AA",
		330: "GBR",
	})

	addr := tfuk.ParseAddress(line, "ORD0000000123", 5, tfuk.StandardLayout())
	require.NotNil(t, addr)

	assert.Equal(t, "ORD0000000123", addr.OrderNumber)
	assert.Equal(t, "ACME BOOKS LTD", addr.Name)
	assert.Equal(t, "10 DOWNING STREET", addr.Address1)
	assert.Equal(t, "SW1A 1AA", addr.Postcode)
	assert.Equal(t, "GBR", addr.Country)
	assert.Equal(t, 5, addr.LineNumber)

	blank := fixedLine("H2", nil)
	assert.Nil(t, tfuk.ParseAddress(blank, "ORD0000000123", 6, tfuk.StandardLayout()))
}

func Test_ParseLineItem(t *testing.T) {
	layout := tfuk.StandardLayout()

	t.Run("well-formed item", func(t *testing.T) {
		line := fixedLine("D1", map[int]string{
			2:  "00001",
			7:  "REF-001",
			27: "9780140449136",
			40: "2",
			46: "500",
		})

		item := tfuk.ParseLineItem(line, 8, layout)
		assert.Equal(t, "00001", item.LineNumber)
		assert.Equal(t, "REF-001", item.ItemReference)
		assert.Equal(t, "9780140449136", item.ISBN)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, 500, item.Price)
		assert.Equal(t, 8, item.FileLine)
	})

	t.Run("unparsable numerics take defaults", func(t *testing.T) {
		line := fixedLine("D1", map[int]string{40: "XX"})
		item := tfuk.ParseLineItem(line, 9, layout)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, 0, item.Price)
	})

	t.Run("negative values take defaults", func(t *testing.T) {
		line := fixedLine("D1", map[int]string{40: "-3", 46: "-250"})
		item := tfuk.ParseLineItem(line, 10, layout)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, 0, item.Price)
	})

	t.Run("explicit zero quantity is kept", func(t *testing.T) {
		line := fixedLine("D1", map[int]string{40: "0"})
		item := tfuk.ParseLineItem(line, 11, layout)
		assert.Equal(t, 0, item.Quantity)
	})
}
