// Package export writes the ledger to a CSV file
package export

import (
	"context"

	"fjacquet/sheet-ledger/cmd/common"
	"fjacquet/sheet-ledger/cmd/root"
	csvcommon "fjacquet/sheet-ledger/internal/common"
	"fjacquet/sheet-ledger/internal/logging"
	"fjacquet/sheet-ledger/internal/models"
	"fjacquet/sheet-ledger/internal/validation"

	"github.com/spf13/cobra"
)

var outputFile string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Load the sheet and export transactions to CSV",
	Long: `Load the sheet and write the selected transactions, newest first, to a
CSV file with the columns ID, Date, Description, Category and Amount.
The configured csv.delimiter is used as separator.`,
	Run: exportFunc,
}

func init() {
	root.AddViewFlags(Cmd)
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "ledger.csv", "Output CSV file")
}

func exportFunc(cmd *cobra.Command, args []string) {
	c, err := root.NewContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing: %v", err)
	}

	view, err := Run(cmd.Context(), c.GetRegister(), root.SharedFlags.View, root.SharedFlags.Month, outputFile, c.GetLogger())
	if err != nil {
		root.Log.Fatalf("Error exporting ledger: %v", err)
	}
	root.Log.Infof("Exported %d transactions to %s (%s)", len(view.Transactions), outputFile, view.Status)
}

// Run loads the ledger and writes the selected view to path.
func Run(ctx context.Context, ledger common.Ledger, viewName string, month int, path string, log logging.Logger) (models.View, error) {
	if err := validation.IsValidOutputPath(path); err != nil {
		return models.View{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	view, err := common.LoadView(ctx, ledger, viewName, month, log)
	if err != nil {
		return models.View{}, err
	}
	if err := csvcommon.WriteTransactionsToCSV(view.Transactions, path); err != nil {
		return models.View{}, err
	}
	return view, nil
}
