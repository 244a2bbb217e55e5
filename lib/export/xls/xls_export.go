package xlsexport

import (
	"bytes"
	reportexport "home-task-tracker/lib/export/report"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Activity Report"

// ExportReport renders the activity table into a single sheet workbook.
func ExportReport(table reportexport.Table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 1
	if err := writeRow(f, sheet, row, table.Title); err != nil {
		return nil, errors.Wrap(err, "failed to write report title to xlsx")
	}
	if err := applyBoldRow(f, sheet, row, len(table.Title)); err != nil {
		return nil, errors.Wrap(err, "failed to write report title to xlsx")
	}
	row, err := writeHeader(f, sheet, row, table.Headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write header to xlsx")
	}
	if len(table.Rows) != 0 {
		if err = applyDataCellStyle(f, sheet, 1, row+1, len(table.Headers), row+len(table.Rows)); err != nil {
			return nil, errors.Wrap(err, "failed to write data rows to xlsx")
		}
		for _, values := range table.Rows {
			row++
			if err = writeRow(f, sheet, row, values); err != nil {
				return nil, errors.Wrap(err, "failed to write data rows to xlsx")
			}
		}
	}
	for _, values := range table.Footer {
		row++
		if err = writeRow(f, sheet, row, values); err != nil {
			return nil, errors.Wrap(err, "failed to write totals to xlsx")
		}
		if err = applyBoldRow(f, sheet, row, len(values)); err != nil {
			return nil, errors.Wrap(err, "failed to write totals to xlsx")
		}
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "failed to rename xlsx sheet")
	}
	return f.WriteToBuffer()
}
