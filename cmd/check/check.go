// Package check tests the connection to the sheet's CSV export
package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"fjacquet/sheet-ledger/cmd/root"
	"fjacquet/sheet-ledger/internal/sheets"

	"github.com/spf13/cobra"
)

// Cmd represents the check command
var Cmd = &cobra.Command{
	Use:   "check",
	Short: "Test that the sheet's CSV export is reachable",
	Long: `Download the sheet's CSV export once and report the HTTP status, the
number of data rows and the header line. Exits non-zero when the export
can't be fetched.`,
	Run: checkFunc,
}

func checkFunc(cmd *cobra.Command, args []string) {
	c, err := root.NewContainer()
	if err != nil {
		root.Log.Fatalf("Error initializing: %v", err)
	}
	if err := Run(cmd.Context(), c.GetCSVClient(), c.GetAPIClient().Configured(), os.Stdout); err != nil {
		root.Log.Fatalf("Connection check failed: %v", err)
	}
}

// Tester probes the CSV export.
type Tester interface {
	TestConnection(ctx context.Context) (sheets.ConnectionReport, error)
}

// Run probes the export and prints the report to w.
func Run(ctx context.Context, tester Tester, apiConfigured bool, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := tester.TestConnection(ctx)

	fmt.Fprintf(w, "URL:       %s\n", report.URL)
	if report.StatusCode != 0 {
		fmt.Fprintf(w, "Status:    %d\n", report.StatusCode)
	}
	fmt.Fprintf(w, "Data rows: %d\n", report.DataRows)
	if report.Header != "" {
		fmt.Fprintf(w, "Header:    %q\n", report.Header)
	}
	fallback := "not configured"
	if apiConfigured {
		fallback = "configured"
	}
	fmt.Fprintf(w, "API key:   %s\n", fallback)
	fmt.Fprintln(w, report.Message)

	return err
}
