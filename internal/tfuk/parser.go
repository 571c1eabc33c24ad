// =============================================================================
// TFUK Order & Address Validation - File Parser / Order Assembler
// =============================================================================
//
// This file streams a TFUK order file line by line, classifies each line by
// its type prefix, and assembles H1/H2/H3/D1 records into order aggregates.
//
// ASSEMBLY STATE MACHINE:
//   States: NoCurrentOrder, BuildingOrder.
//   - H1 while BuildingOrder: emit the current order, start a new one.
//   - H1 while NoCurrentOrder: start a new order.
//   - H2/H3/D1 while BuildingOrder: attach to the current order.
//   - H2/H3/D1 while NoCurrentOrder: dropped. An order cannot exist without
//     its header; this is an intentional skip, not an error.
//   - $$HDR/$$EOF sentinels: always ignored.
//   - End of input while BuildingOrder: emit the current order.
//   Unrecognized prefixes are silently skipped.
//
// Line terminators are normalized (trailing carriage return stripped)
// before classification, so CRLF and LF files parse identically.
//
// STANDALONE ADDRESS MODE:
//   ParseAddresses skips order aggregation entirely: it tracks only the
//   most recent H1 order number and emits one Address per H2 line.
//
// =============================================================================

package tfuk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/types"
)

// maxLineSize bounds the scanner buffer. TFUK records are ~360 bytes; this
// leaves generous headroom for padded exports.
const maxLineSize = 64 * 1024

// =============================================================================
// PARSER
// =============================================================================

// Parser parses TFUK order files using a fixed column layout.
type Parser struct {
	layout Layout
}

// NewParser creates a Parser for the given layout profile.
func NewParser(layout Layout) *Parser {
	return &Parser{layout: layout}
}

// Layout returns the column layout the parser was built with.
func (p *Parser) Layout() Layout {
	return p.layout
}

// =============================================================================
// ORDER PARSING
// =============================================================================

// ParseOrders reads a TFUK file and returns the assembled orders in file
// order. Malformed lines are skipped or defaulted, never fatal; the only
// error condition is a failure of the underlying reader.
func (p *Parser) ParseOrders(r io.Reader) ([]types.Order, error) {
	assembler := newOrderAssembler(p.layout)

	if err := scanLines(r, assembler.consume); err != nil {
		return nil, err
	}

	return assembler.finalize(), nil
}

// ParseOrdersFile opens path and parses it with ParseOrders.
func (p *Parser) ParseOrdersFile(path string) ([]types.Order, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.ParseOrders(file)
}

// =============================================================================
// STANDALONE ADDRESS PARSING
// =============================================================================

// ParseAddresses reads a TFUK file and returns one Address per H2 line,
// independent of order assembly. The only context carried across lines is
// the order number of the most recent H1 header.
func (p *Parser) ParseAddresses(r io.Reader) ([]types.Address, error) {
	var addresses []types.Address
	var orderNumber string

	err := scanLines(r, func(line string, lineNumber int) {
		switch ClassifyLine(line) {
		case RecordOrderHeader:
			orderNumber = ExtractRange(line, p.layout.OrderNumber)
		case RecordCustomer:
			if addr := ParseAddress(line, orderNumber, lineNumber, p.layout); addr != nil {
				addresses = append(addresses, *addr)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

// ParseAddressesFile opens path and parses it with ParseAddresses.
func (p *Parser) ParseAddressesFile(path string) ([]types.Address, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.ParseAddresses(file)
}

// =============================================================================
// ORDER ASSEMBLER
// =============================================================================

// assemblerState is the explicit state of the order assembly fold.
type assemblerState int

const (
	// noCurrentOrder means no H1 header has opened an order yet (or input
	// just started).
	noCurrentOrder assemblerState = iota

	// buildingOrder means an H1 header is open and child lines attach to it.
	buildingOrder
)

// orderAssembler folds the line stream into order aggregates.
type orderAssembler struct {
	layout  Layout
	state   assemblerState
	current types.Order
	orders  []types.Order
}

func newOrderAssembler(layout Layout) *orderAssembler {
	return &orderAssembler{layout: layout, state: noCurrentOrder}
}

// consume processes one normalized line.
func (a *orderAssembler) consume(line string, lineNumber int) {
	switch ClassifyLine(line) {
	case RecordSentinel, RecordUnknown:
		// Sentinels and unrecognized prefixes are skipped in every state.

	case RecordOrderHeader:
		if a.state == buildingOrder {
			a.orders = append(a.orders, a.current)
		}
		a.current = ParseOrderHeader(line, lineNumber, a.layout)
		a.state = buildingOrder

	case RecordCustomer:
		if a.state != buildingOrder {
			return
		}
		if customer := ParseCustomer(line, lineNumber, a.layout); customer != nil {
			a.current.Customers = append(a.current.Customers, *customer)
		}

	case RecordPaymentTerms:
		if a.state != buildingOrder {
			return
		}
		a.current.PaymentTerms = ParsePaymentTerms(line, a.layout)

	case RecordLineItem:
		if a.state != buildingOrder {
			return
		}
		a.current.LineItems = append(a.current.LineItems, ParseLineItem(line, lineNumber, a.layout))
	}
}

// finalize emits the in-progress order, if any, and returns the full list.
func (a *orderAssembler) finalize() []types.Order {
	if a.state == buildingOrder {
		a.orders = append(a.orders, a.current)
		a.state = noCurrentOrder
	}
	return a.orders
}

// =============================================================================
// LINE SCANNING
// =============================================================================

// scanLines streams r line by line, strips the trailing carriage return,
// and hands each line (with its 1-indexed line number) to fn.
func scanLines(r io.Reader, fn func(line string, lineNumber int)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		fn(line, lineNumber)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
