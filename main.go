// =============================================================================
// Quota Data Transformer - Main Entry Point
// =============================================================================
//
// This is the main entry point of the Quota Data Transformer CLI. It hands
// control to the Cobra command tree in the cmd package.
//
// USAGE:
//   qdt transform <file>   - Normalize an export and print or write it
//   qdt sheets <workbook>  - List the worksheets of a workbook
//   qdt serve              - Serve the pipeline over HTTP
//   qdt version            - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing pipeline, input adapters, export, HTTP layer
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/quota-data-transformer/cmd"
)

func main() {
	cmd.Execute()
}
