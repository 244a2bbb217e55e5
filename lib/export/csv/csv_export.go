package csvexport

import (
	"bytes"
	"encoding/csv"
	reportexport "home-task-tracker/lib/export/report"

	"github.com/pkg/errors"
)

// Export writes the table with CRLF line endings and minimal quoting.
func Export(table reportexport.Table) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	if err := writer.WriteAll(table.All()); err != nil {
		return nil, errors.Wrap(err, "failed to write csv report")
	}
	return buf, nil
}
