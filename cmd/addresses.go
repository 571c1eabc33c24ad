// =============================================================================
// TFUK Order & Address Validation - Addresses Command
// =============================================================================
//
// This file defines the 'addresses' command: the standalone address
// verification pipeline. H2 records are extracted without order assembly,
// checked against the address rule set, and the ones that pass are
// verified against the Geoapify geocoding service one at a time.
//
// COMMAND USAGE:
//   tfuk addresses [flags]
//
// FLAGS:
//   --file        : Verify a single file instead of scanning the input dir
//   --no-geocode  : Run only the local field-presence checks
//
// RATE BUDGET:
//   Geocoding is strictly sequential with a fixed delay between addresses
//   (350ms by default, ~170 addresses/minute), which keeps a full batch
//   inside the service's free-tier daily quota.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/config"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/geocode"
	"github.com/tjintranet/TF-Order-Address-Validation/internal/pipeline"
	"github.com/tjintranet/TF-Order-Address-Validation/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// addressesFile is the path to a single file to verify.
var addressesFile string

// noGeocode disables the external geocoding calls.
var noGeocode bool

// =============================================================================
// ADDRESSES COMMAND DEFINITION
// =============================================================================

// addressesCmd represents the 'addresses' command.
var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Verify the addresses in TFUK files against the geocoding service",
	Long: `The addresses command extracts every customer/address (H2) record from the
input files, validates the required fields, and verifies each passing
address against the Geoapify geocoding API.

Addresses failing the local checks are reported without an API call.
Geocoding runs sequentially with a fixed inter-request delay to respect the
service's rate budget; interrupting the run (Ctrl-C) stops before the next
address and still writes reports for the addresses already processed.

Requires a Geoapify API key via the GEOAPIFY_API_KEY environment variable
(a .env file is honored) or geocode.api_key in the configuration file,
unless --no-geocode is given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddresses()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the addresses command with the root command and its flags.
func init() {
	rootCmd.AddCommand(addressesCmd)

	addressesCmd.Flags().StringVar(
		&addressesFile,
		"file",
		"",
		"Path to a specific TFUK file to verify (skips input directory scan)",
	)

	addressesCmd.Flags().BoolVar(
		&noGeocode,
		"no-geocode",
		false,
		"Run only the local field checks, without calling the geocoding service",
	)
}

// =============================================================================
// MAIN FUNCTION
// =============================================================================

// runAddresses orchestrates the address verification run.
func runAddresses() error {
	startTime := time.Now()

	fmt.Println("=== TFUK Address Validation ===")

	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	// =========================================================================
	// BUILD THE VERIFIER
	// =========================================================================

	var verifier *geocode.Verifier
	if !noGeocode {
		if cfg.Geocode.APIKey == "" {
			return fmt.Errorf("no Geoapify API key configured: set %s or geocode.api_key (or pass --no-geocode)",
				config.APIKeyEnvVar)
		}
		client := geocode.NewClient(cfg.Geocode.APIKey, cfg.Geocode.BaseURL, cfg.Geocode.Timeout())
		verifier = geocode.NewVerifierWithRetries(client, cfg.Geocode.MaxRetries, cfg.Geocode.RetryDelay())
	}

	// Ctrl-C stops before the next address; completed work is reported.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if addressesFile != "" {
		inputFiles = []string{addressesFile}
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

	// =========================================================================
	// PROCESS FILES
	// =========================================================================

	var totalAddresses, totalValid, totalInvalid int

	for _, file := range inputFiles {
		p := pipeline.NewAddressPipeline(file, cfg, verifier, log)
		p.Progress = func(done, total int) {
			fmt.Printf("\r  %s: %d / %d", filepath.Base(file), done, total)
		}

		result := p.Run(ctx)
		fmt.Println()

		if !result.Success {
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
			continue
		}

		totalAddresses += result.Stats.Total
		totalValid += result.Stats.Valid
		totalInvalid += result.Stats.Invalid

		fmt.Printf("  ✓ %s: %d valid, %d invalid -> %s\n",
			filepath.Base(result.FilePath),
			result.Stats.Valid,
			result.Stats.Invalid,
			filepath.Base(result.CSVReport))
		if result.InvalidReport != "" {
			fmt.Printf("    Invalid address report: %s\n", filepath.Base(result.InvalidReport))
		}

		if ctx.Err() != nil {
			fmt.Println("  Interrupted; remaining files skipped.")
			break
		}
	}

	// =========================================================================
	// PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Validation Complete ===")
	fmt.Printf("Total addresses: %d\n", totalAddresses)
	fmt.Printf("Valid:           %d\n", totalValid)
	fmt.Printf("Invalid:         %d\n", totalInvalid)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	return nil
}
