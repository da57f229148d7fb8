package sheets

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/sheet-ledger/internal/common"
	"fjacquet/sheet-ledger/internal/parsererror"
)

// ConnectionReport describes the result of probing the CSV export.
type ConnectionReport struct {
	URL        string `json:"url" yaml:"url"`
	OK         bool   `json:"ok" yaml:"ok"`
	StatusCode int    `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	DataRows   int    `json:"data_rows" yaml:"data_rows"`
	Header     string `json:"header,omitempty" yaml:"header,omitempty"`
	Message    string `json:"message" yaml:"message"`
}

// TestConnection downloads the export once and reports whether it is
// reachable, how many data rows it has and what its header line is.
// The report is filled in on failure too; err is the underlying fetch error.
func (c *CSVExportClient) TestConnection(ctx context.Context) (ConnectionReport, error) {
	report := ConnectionReport{URL: c.ExportURL()}

	body, status, err := c.download(ctx)
	if err != nil {
		var fe *parsererror.FetchError
		if errors.As(err, &fe) && fe.StatusCode != 0 {
			report.StatusCode = fe.StatusCode
			report.Message = fmt.Sprintf("Error: HTTP %d. Check that the document is shared publicly.", fe.StatusCode)
		} else {
			report.Message = fmt.Sprintf("Connection error: %v", errors.Unwrap(err))
		}
		return report, err
	}

	report.StatusCode = status
	lines := common.NonBlankLines(body)
	if len(lines) > 1 {
		report.OK = true
		report.DataRows = len(lines) - 1
		report.Header = lines[0]
		report.Message = fmt.Sprintf("Connection works! Found %d data rows.", report.DataRows)
	} else {
		if len(lines) == 1 {
			report.Header = lines[0]
		}
		report.Message = "Connection works, but there is no data or only headers."
	}
	return report, nil
}
