// =============================================================================
// Quota Data Transformer - Sheets Command
// =============================================================================
//
// This file defines the 'sheets' command, which lists the worksheets of a
// workbook so one can be chosen with 'transform --sheet'.
//
// COMMAND USAGE:
//   qdt sheets tickets.xlsx
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/quota-data-transformer/internal/converter"
)

func newSheetsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <workbook>",
		Short: "List the worksheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := converter.DetectKind(args[0])
			if err != nil {
				return err
			}
			if kind != converter.SourceSpreadsheet {
				return fmt.Errorf("%s is not a workbook", args[0])
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			names, err := converter.ListSheets(data)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
