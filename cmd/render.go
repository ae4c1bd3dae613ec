package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetpub/sheetpub/report"
	"github.com/sheetpub/sheetpub/sheet"
)

var (
	renderInput       string
	renderOutput      string
	renderSheet       string
	renderRange       string
	renderRaw         bool
	renderTitle       string
	renderLang        string
	renderNote        string
	renderPlaceholder string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a worksheet as a searchable HTML page",
	Long: `Render one worksheet as a static HTML page with a sticky header row and a
case-insensitive search box.

The first non-blank row is the header. Empty cells render as empty cells.
Use --range to skip title blocks above or beside the table.`,
	Example: `  sheetpub render --input data/source.xlsx --output site/index.html
  sheetpub render -i data/source.xlsx -o site/index.html --sheet Data
  sheetpub render -i data/source.xlsx -o site/index.html -r "'Q1 Report'!B3:H200" --title "Q1 Activities"`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "Workbook to read (.xlsx)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "HTML file to write (overwritten)")
	renderCmd.Flags().StringVarP(&renderSheet, "sheet", "s", "", "Worksheet name or zero-based index (default: first worksheet)")
	renderCmd.Flags().StringVarP(&renderRange, "range", "r", "", `Only read this block (e.g. "A1:F20" or "Data!A1:F20")`)
	renderCmd.Flags().BoolVar(&renderRaw, "raw", false, "Use raw cell values instead of formatted text")
	renderCmd.Flags().StringVar(&renderTitle, "title", report.DefaultTitle, "Page title and heading")
	renderCmd.Flags().StringVar(&renderLang, "lang", report.DefaultLang, "Page language attribute")
	renderCmd.Flags().StringVar(&renderNote, "note", report.DefaultNote, "Caption under the heading (empty to omit)")
	renderCmd.Flags().StringVar(&renderPlaceholder, "placeholder", report.DefaultPlaceholder, "Search box placeholder")
	_ = renderCmd.MarkFlagRequired("input")
	_ = renderCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	tbl, err := sheet.Load(renderInput, sheet.Options{
		Sheet: renderSheet,
		Range: renderRange,
		Raw:   renderRaw,
	})
	if err != nil {
		return err
	}

	html, err := report.Bytes(tbl, report.Options{
		Title:       renderTitle,
		Lang:        renderLang,
		Note:        renderNote,
		Placeholder: renderPlaceholder,
	})
	if err != nil {
		return err
	}
	if err := report.Write(renderOutput, html); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", renderOutput)
	return nil
}
