// =============================================================================
// TFUK Order & Address Validation - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the subcommands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (tfuk)
//   ├── processCmd   (tfuk process)    - parse + validate order files
//   ├── addressesCmd (tfuk addresses)  - standalone address verification
//   └── versionCmd   (tfuk version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Each
//   subcommand loads the configuration itself, so `tfuk version` works
//   without a config file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tjintranet/TF-Order-Address-Validation/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "tfuk",

	Short: "TFUK order & address validation - parse and validate fixed-width order files",

	Long: `TFUK Order & Address Validation is a CLI tool for the proprietary TFUK
fixed-width order file format. It parses order files into structured order
and address records, validates them against field-level business rules, and
optionally verifies addresses against the Geoapify geocoding service.

Key Features:
  - Fixed-width record parsing with standard and legacy column layouts
  - Heuristic extraction of the packed postcode/country/phone field
  - Layered required/optional validation rules with Amazon and carrier
    exemptions
  - Sequential, rate-limited geocoding with bounded retries
  - CSV and XLSX result reports, plus an invalid-address text report

Example Usage:
  tfuk process                      # Validate all order files in the input directory
  tfuk addresses --file orders.txt  # Verify the addresses in one file
  tfuk addresses --no-geocode       # Field-level address checks only`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfigAndLogger loads the configuration file and builds the logger
// the subcommands share. The --verbose flag overrides the configured level.
func loadConfigAndLogger() (*config.MainConfig, *logrus.Logger, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	return cfg, log, nil
}
