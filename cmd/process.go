// =============================================================================
// TFUK Order & Address Validation - Process Command
// =============================================================================
//
// This file defines the 'process' command, which parses TFUK order files,
// runs the order validation profile, and writes the result reports.
//
// COMMAND USAGE:
//   tfuk process [flags]
//
// FLAGS:
//   --file    : Process a single file instead of scanning the input directory
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover TFUK .txt files in the input directory
//   3. For each file:
//      a. Parse and assemble orders
//      b. Validate every order (errors/warnings collected per order)
//      c. Write CSV and XLSX reports
//      d. Archive the input file
//   4. Print a summary
//
//   Files are processed one at a time; a failure in one file is reported
//   and the remaining files still run.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/pipeline"
	"github.com/tjintranet/TF-Order-Address-Validation/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processFile is the path to a single file to process instead of scanning
// the input directory.
var processFile string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parse and validate TFUK order files",
	Long: `The process command scans the input directory for TFUK order files (.txt),
parses each file into order aggregates, validates every order against the
order rule set, and writes CSV and XLSX reports to the output directory.

Validation problems are recorded per order in the reports; they do not stop
processing. Successfully processed input files are moved to the archive
directory unless archival is disabled in the configuration.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&processFile,
		"file",
		"",
		"Path to a specific TFUK file to process (skips input directory scan)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the order validation run.
func runProcess() error {
	startTime := time.Now()

	fmt.Println("=== TFUK Order Validation ===")

	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	// =========================================================================
	// DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if processFile != "" {
		inputFiles = []string{processFile}
	} else {
		fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
		inputFiles, err = fm.DiscoverInputFiles("")
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Println("No TFUK files found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// PROCESS FILES
	// =========================================================================

	var successCount, errorCount int
	var totalOrders, totalErrorOrders int

	for _, file := range inputFiles {
		result := pipeline.NewOrderPipeline(file, cfg, log).Run()

		if result.Success {
			successCount++
			totalOrders += result.Stats.Orders
			totalErrorOrders += result.Stats.ErrorOrders
			fmt.Printf("  ✓ %s: %d order(s), %d with errors -> %s\n",
				filepath.Base(result.FilePath),
				result.Stats.Orders,
				result.Stats.ErrorOrders,
				filepath.Base(result.CSVReport))
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	// =========================================================================
	// PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:        %d\n", len(inputFiles))
	fmt.Printf("Successful:         %d\n", successCount)
	fmt.Printf("Failed:             %d\n", errorCount)
	fmt.Printf("Orders validated:   %d\n", totalOrders)
	fmt.Printf("Orders with errors: %d\n", totalErrorOrders)
	fmt.Printf("Time elapsed:       %s\n", elapsed)

	return nil
}
