// =============================================================================
// TFUK Order & Address Validation - Order Pipeline
// =============================================================================
//
// Orchestrates the processing of a single TFUK order file:
//   1. Parse and assemble the orders
//   2. Run the order validation profile over each order
//   3. Write the CSV and XLSX reports
//   4. Archive the input file
//
// Each file is processed independently; a failure in one file is reported
// in its Result and never aborts sibling files. Validation problems are
// per-order data, not pipeline failures.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/config"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/report"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/tfuk"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/validation"
	"github.com/tjintranet/TF-Order-Address-Validation/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// OrdersResult is the outcome of processing one order file.
type OrdersResult struct {
	// FilePath is the input file that was processed.
	FilePath string

	// Success indicates the file was parsed and its reports written.
	// Validation errors inside the file do not clear this flag.
	Success bool

	// Error holds the pipeline failure, if any.
	Error error

	// CSVReport and XLSXReport are the written report paths.
	CSVReport  string
	XLSXReport string

	// ArchivePath is where the input file was moved, if archival ran.
	ArchivePath string

	// Stats describes what was processed.
	Stats OrderStats
}

// OrderStats summarizes one processed order file.
type OrderStats struct {
	Orders         int
	Customers      int
	LineItems      int
	ErrorOrders    int
	WarningOrders  int
	ProcessingTime time.Duration
}

// =============================================================================
// PIPELINE
// =============================================================================

// OrderPipeline processes a single TFUK order file.
type OrderPipeline struct {
	filePath string
	cfg      *config.MainConfig
	parser   *tfuk.Parser
	files    *utils.FileManager
	log      *logrus.Logger
}

// NewOrderPipeline creates a pipeline for one input file.
func NewOrderPipeline(filePath string, cfg *config.MainConfig, log *logrus.Logger) *OrderPipeline {
	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	files.ArchiveOnSuccess = !cfg.DisableArchive

	return &OrderPipeline{
		filePath: filePath,
		cfg:      cfg,
		parser:   tfuk.NewParser(tfuk.LayoutByName(cfg.Layout)),
		files:    files,
		log:      log,
	}
}

// Run executes the pipeline and returns its result.
func (p *OrderPipeline) Run() OrdersResult {
	start := time.Now()
	result := OrdersResult{FilePath: p.filePath}

	p.log.WithFields(logrus.Fields{
		"file":   p.filePath,
		"layout": p.parser.Layout().Name,
	}).Info("processing order file")

	// =========================================================================
	// STEP 1: PARSE AND ASSEMBLE ORDERS
	// =========================================================================

	orders, err := p.parser.ParseOrdersFile(p.filePath)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse %s: %w", filepath.Base(p.filePath), err)
		return result
	}

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================

	results := make([]report.OrderResult, 0, len(orders))
	for _, order := range orders {
		outcome := validation.ValidateOrder(order)

		switch outcome.Status() {
		case validation.StatusError:
			result.Stats.ErrorOrders++
		case validation.StatusWarning:
			result.Stats.WarningOrders++
		}

		result.Stats.Customers += len(order.Customers)
		result.Stats.LineItems += len(order.LineItems)

		results = append(results, report.OrderResult{Order: order, Outcome: outcome})
	}
	result.Stats.Orders = len(orders)

	p.log.WithFields(logrus.Fields{
		"orders":     result.Stats.Orders,
		"customers":  result.Stats.Customers,
		"line_items": result.Stats.LineItems,
		"errors":     result.Stats.ErrorOrders,
		"warnings":   result.Stats.WarningOrders,
	}).Info("validation complete")

	// =========================================================================
	// STEP 3: WRITE REPORTS
	// =========================================================================

	baseName := utils.GenerateReportFileName(p.cfg.ReportNameFormat, p.filePath)

	result.CSVReport = filepath.Join(p.cfg.OutputDir, baseName+".csv")
	if err := report.WriteOrderCSV(results, result.CSVReport); err != nil {
		result.Error = err
		return result
	}

	result.XLSXReport = filepath.Join(p.cfg.OutputDir, baseName+".xlsx")
	if err := report.WriteOrderXLSX(results, result.XLSXReport); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 4: ARCHIVE INPUT
	// =========================================================================

	archivePath, err := p.files.ArchiveInputFile(p.filePath)
	if err != nil {
		// The reports are already on disk; archival failure is logged but
		// does not fail the run.
		p.log.WithError(err).Warn("failed to archive input file")
	} else {
		result.ArchivePath = archivePath
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(start)
	return result
}
