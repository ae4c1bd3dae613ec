package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sheetpub/sheetpub/sheet"
)

var sheetsInput string

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "List the worksheets of a workbook",
	Long: `List worksheet names with their zero-based index, for use with
"sheetpub render --sheet".`,
	Example: `  sheetpub sheets --input data/source.xlsx`,
	Args:    cobra.NoArgs,
	RunE:    runSheets,
}

func init() {
	sheetsCmd.Flags().StringVarP(&sheetsInput, "input", "i", "", "Workbook to read (.xlsx)")
	_ = sheetsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(sheetsCmd)
}

func runSheets(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	names, err := sheet.Sheets(sheetsInput)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for i, name := range names {
		fmt.Fprintf(w, "%d\t%s\n", i, name)
	}
	return w.Flush()
}
