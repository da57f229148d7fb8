// Package show prints the ledger to the terminal
package show

import (
	"context"
	"io"
	"os"

	"fjacquet/sheet-ledger/cmd/common"
	"fjacquet/sheet-ledger/cmd/root"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/report"
	"fjacquet/sheet-ledger/internal/validation"

	"github.com/spf13/cobra"
)

var (
	format     string
	outputFile string
)

// Cmd represents the show command
var Cmd = &cobra.Command{
	Use:   "show",
	Short: "Load the sheet and print transactions with totals",
	Long: `Load the sheet and print its transactions, newest first, followed by
total income, total expenses and balance.

The income and expense views keep the totals of the whole sheet; the month
view shows totals for that month only.`,
	Run: showFunc,
}

func init() {
	root.AddViewFlags(Cmd)
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatTable, "Output format: table, json or yaml")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to this file instead of stdout")
}

func showFunc(cmd *cobra.Command, args []string) {
	c, err := root.NewContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing: %v", err)
	}

	opts := Options{
		View:       root.SharedFlags.View,
		Month:      root.SharedFlags.Month,
		Format:     format,
		OutputFile: outputFile,
		Currency:   c.GetConfig().Display.Currency,
	}
	if err := Run(cmd.Context(), c.GetRegister(), opts, os.Stdout, c.GetLogger()); err != nil {
		root.Log.Fatalf("Error showing ledger: %v", err)
	}
}

// Options configures Run.
type Options struct {
	View       string
	Month      int
	Format     string
	OutputFile string
	Currency   string
}

// Run loads the ledger and renders the selected view to w, or to
// opts.OutputFile when set.
func Run(ctx context.Context, ledger common.Ledger, opts Options, w io.Writer, log logging.Logger) error {
	if err := validation.IsValidOutputFormat(opts.Format); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	view, err := common.LoadView(ctx, ledger, opts.View, opts.Month, log)
	if err != nil {
		return err
	}

	gen := report.NewGenerator(log, opts.Currency)
	if opts.OutputFile != "" {
		if err := validation.IsValidOutputPath(opts.OutputFile); err != nil {
			return err
		}
		return gen.WriteReportFile(view, opts.Format, opts.OutputFile)
	}

	out, err := gen.GenerateReport(view, opts.Format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
