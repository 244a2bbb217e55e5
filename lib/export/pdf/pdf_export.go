package pdfexport

import (
	"bytes"
	"fmt"
	reportexport "home-task-tracker/lib/export/report"
	"home-task-tracker/lib/utils/helpers"
	paymentapimodels "home-task-tracker/models/api/payment"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

var columnWidths = []float64{70, 30, 25, 25, 40}

// WorkerStatement renders a printable payment statement for one worker and period.
func WorkerStatement(report paymentapimodels.WorkerActivity, generatedAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("WorkerStatement panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Payment Statement - "+report.Worker.FullName), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Payment Statement", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, tr(report.Worker.FullName+" <"+report.Worker.Email+">"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Period: "+report.Period), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Generated: "+generatedAt.UTC().Format(helpers.DateTimeLayout), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	table := reportexport.WorkerTable(report, paymentapimodels.ActivityFilter{})
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for idx, header := range table.Headers {
		pdf.CellFormat(columnWidths[idx], 7, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(table.Rows) == 0 {
		pdf.CellFormat(sumWidths(), 7, "No completions in this period", "1", 1, "C", false, 0, "")
	}
	for _, row := range table.Rows {
		for idx, value := range row {
			align := "L"
			if idx == 2 {
				align = "R"
			}
			pdf.CellFormat(columnWidths[idx], 7, tr(value), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	for _, row := range table.Footer {
		pdf.CellFormat(columnWidths[0]+columnWidths[1], 6, tr(row[1]), "", 0, "R", false, 0, "")
		pdf.CellFormat(columnWidths[2], 6, tr(row[2]), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "I", 9)
	pdf.Ln(6)
	pdf.CellFormat(0, 5, fmt.Sprintf("%d completions listed", report.Totals.Count), "", 1, "L", false, 0, "")

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sumWidths() float64 {
	total := 0.0
	for _, width := range columnWidths {
		total += width
	}
	return total
}
