// =============================================================================
// TFUK Order & Address Validation - Main Entry Point
// =============================================================================
//
// This is the main entry point for the TFUK order & address validation CLI.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   tfuk process    - Parse and validate TFUK order files
//   tfuk addresses  - Verify addresses against the geocoding service
//   tfuk version    - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : Core business logic (not for external import)
//   - pkg/        : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/tjintranet/TF-Order-Address-Validation/cmd"
)

// main is the entry point of the application. It simply calls the Execute
// function from the cmd package, which initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
