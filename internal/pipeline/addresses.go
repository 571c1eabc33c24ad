// =============================================================================
// TFUK Order & Address Validation - Address Pipeline
// =============================================================================
//
// Orchestrates the standalone address verification run:
//   1. Extract one Address per H2 line (no order aggregation)
//   2. Run the address validation profile; a local error blocks geocoding
//      for that address
//   3. Geocode the remaining addresses strictly sequentially, pausing a
//      fixed delay between successive addresses to respect the external
//      request-rate budget. There is no parallel fan-out, by design.
//   4. Write the CSV/XLSX reports and the invalid-address text report
//
// One failed geocode call flags its own address and nothing else; the
// batch always runs to completion unless the context is cancelled.
//
// =============================================================================

package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/config"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/geocode"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/report"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/tfuk"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/validation"
	"github.com/tjintranet/TF-Order-Address-Validation/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// AddressesResult is the outcome of one address verification run.
type AddressesResult struct {
	// FilePath is the input file that was processed.
	FilePath string

	// Success indicates the file was parsed and its reports written.
	Success bool

	// Error holds the pipeline failure, if any.
	Error error

	// CSVReport, XLSXReport and InvalidReport are the written report
	// paths. InvalidReport is empty when every address was valid.
	CSVReport     string
	XLSXReport    string
	InvalidReport string

	// Stats describes the batch.
	Stats AddressStats
}

// AddressStats summarizes one address verification run.
type AddressStats struct {
	Total          int
	Valid          int
	Invalid        int
	Geocoded       int
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE
// =============================================================================

// AddressPipeline runs the standalone address verification for one file.
type AddressPipeline struct {
	filePath string
	cfg      *config.MainConfig
	parser   *tfuk.Parser
	verifier *geocode.Verifier
	log      *logrus.Logger

	// geocodeEnabled is false for local-only runs (--no-geocode).
	geocodeEnabled bool

	// Progress, when set, is called after each address with the number
	// completed and the batch total.
	Progress func(done, total int)
}

// NewAddressPipeline creates a pipeline for one input file. verifier may be
// nil for a local-only run.
func NewAddressPipeline(filePath string, cfg *config.MainConfig, verifier *geocode.Verifier, log *logrus.Logger) *AddressPipeline {
	return &AddressPipeline{
		filePath:       filePath,
		cfg:            cfg,
		parser:         tfuk.NewParser(tfuk.LayoutByName(cfg.Layout)),
		verifier:       verifier,
		log:            log,
		geocodeEnabled: verifier != nil,
	}
}

// Run executes the pipeline and returns its result. Cancellation stops the
// batch before the next address; completed results are still reported.
func (p *AddressPipeline) Run(ctx context.Context) AddressesResult {
	start := time.Now()
	result := AddressesResult{FilePath: p.filePath}

	// =========================================================================
	// STEP 1: EXTRACT ADDRESSES
	// =========================================================================

	addresses, err := p.parser.ParseAddressesFile(p.filePath)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse %s: %w", filepath.Base(p.filePath), err)
		return result
	}

	p.log.WithFields(logrus.Fields{
		"file":      p.filePath,
		"addresses": len(addresses),
		"geocode":   p.geocodeEnabled,
	}).Info("starting address validation")

	// =========================================================================
	// STEP 2+3: VALIDATE AND GEOCODE, SEQUENTIALLY
	// =========================================================================

	results := make([]report.AddressResult, 0, len(addresses))

	for i, addr := range addresses {
		if i > 0 && p.geocodeEnabled {
			// Fixed inter-request delay, applied between successive
			// addresses regardless of the previous outcome.
			if !sleepCtx(ctx, p.cfg.Geocode.RequestDelay()) {
				p.log.Warn("address batch cancelled")
				break
			}
		}

		ar := report.AddressResult{
			Address: addr,
			Outcome: validation.ValidateAddress(addr),
		}

		if ar.Outcome.IsValid() && p.geocodeEnabled {
			geocodeResult := p.verifier.Verify(ctx, addr)
			ar.Geocode = &geocodeResult
			result.Stats.Geocoded++
		}

		p.log.WithFields(logrus.Fields{
			"order":  addr.OrderNumber,
			"line":   addr.LineNumber,
			"status": ar.Status(),
		}).Debug("address processed")

		results = append(results, ar)

		if p.Progress != nil {
			p.Progress(i+1, len(addresses))
		}
	}

	for _, r := range results {
		if r.Valid() {
			result.Stats.Valid++
		} else {
			result.Stats.Invalid++
		}
	}
	result.Stats.Total = len(results)

	// =========================================================================
	// STEP 4: WRITE REPORTS
	// =========================================================================

	baseName := utils.GenerateReportFileName(p.cfg.ReportNameFormat, p.filePath)

	result.CSVReport = filepath.Join(p.cfg.OutputDir, baseName+".csv")
	if err := report.WriteAddressCSV(results, result.CSVReport); err != nil {
		result.Error = err
		return result
	}

	result.XLSXReport = filepath.Join(p.cfg.OutputDir, baseName+".xlsx")
	if err := report.WriteAddressXLSX(results, result.XLSXReport); err != nil {
		result.Error = err
		return result
	}

	invalidPath := filepath.Join(p.cfg.OutputDir, baseName+"_invalid.txt")
	written, err := report.WriteInvalidAddressReport(results, invalidPath)
	if err != nil {
		result.Error = err
		return result
	}
	if written > 0 {
		result.InvalidReport = invalidPath
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// sleepCtx sleeps for d or until the context is cancelled. Returns false
// on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
