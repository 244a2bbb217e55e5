// Package reportexport lays out activity reports as plain rows shared by the csv and xlsx renderers.
package reportexport

import (
	"fmt"
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	paymentapimodels "home-task-tracker/models/api/payment"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const CurrencySymbol = "£"

var (
	adminHeaders  = []string{"Worker Name", "Tasks Completed", "Total Value (£)", "Paid (£)", "Awaiting Payment (£)", "Rejected (£)"}
	workerHeaders = []string{"Task", "Completion Date", "Value (£)", "Status", "Reviewed Date"}
)

// Table is a rendered report: title row, column headers, body rows and footer rows.
type Table struct {
	Title   []string
	Headers []string
	Rows    [][]string
	Footer  [][]string
}

// All returns every row in output order.
func (t Table) All() [][]string {
	result := make([][]string, 0, len(t.Rows)+len(t.Footer)+2)
	result = append(result, t.Title, t.Headers)
	result = append(result, t.Rows...)
	result = append(result, t.Footer...)
	return result
}

func Money(value decimal.Decimal) string {
	return CurrencySymbol + value.StringFixed(2)
}

func titleCase(value string) string {
	return cases.Title(language.English).String(value)
}

// FilterLabel describes the non-default filters, e.g. " (Paid, High Priority, Active Tasks)".
func FilterLabel(filter paymentapimodels.ActivityFilter) string {
	parts := []string{}
	if !filter.Status.IsAll() {
		parts = append(parts, titleCase(string(filter.Status.Normalize())))
	}
	if !filter.Priority.IsAll() {
		parts = append(parts, titleCase(string(filter.Priority.Normalize()))+" Priority")
	}
	if !filter.TaskStatus.IsAll() {
		parts = append(parts, titleCase(string(filter.TaskStatus.Normalize()))+" Tasks")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", strings.Join(parts, ", "))
}

// FileName is activity_report_{start}_{end}{_status}{_priority_priority}{_state_tasks}.{ext}
func FileName(filter paymentapimodels.ActivityFilter, ext string) string {
	parts := []string{}
	if !filter.Status.IsAll() {
		parts = append(parts, string(filter.Status.Normalize()))
	}
	if !filter.Priority.IsAll() {
		parts = append(parts, string(filter.Priority.Normalize())+"_priority")
	}
	if !filter.TaskStatus.IsAll() {
		parts = append(parts, string(filter.TaskStatus.Normalize())+"_tasks")
	}
	suffix := ""
	if len(parts) != 0 {
		suffix = "_" + strings.Join(parts, "_")
	}
	return fmt.Sprintf("activity_report_%s_%s%s.%s",
		filter.StartDate.Format(helpers.ISODateLayout),
		filter.EndDate.Format(helpers.ISODateLayout),
		suffix, ext)
}

func AdminTable(report paymentapimodels.AdminActivity, filter paymentapimodels.ActivityFilter) Table {
	table := Table{
		Title:   []string{"Activity Report - All Workers" + FilterLabel(filter), report.Period},
		Headers: adminHeaders,
		Rows:    make([][]string, 0, len(report.Workers)),
	}
	for _, worker := range report.Workers {
		table.Rows = append(table.Rows, []string{
			worker.Worker.FullName,
			fmt.Sprint(worker.Totals.Count),
			Money(worker.Totals.TotalValue),
			Money(worker.Totals.PaidTotal),
			Money(worker.Totals.AwaitingPayment),
			Money(worker.Totals.RejectedTotal),
		})
	}
	table.Footer = [][]string{{
		"",
		"Grand Total:",
		Money(report.Totals.TotalValue),
		Money(report.Totals.PaidTotal),
		Money(report.Totals.AwaitingPayment),
		Money(report.Totals.RejectedTotal),
	}}
	return table
}

func WorkerTable(report paymentapimodels.WorkerActivity, filter paymentapimodels.ActivityFilter) Table {
	table := Table{
		Title:   []string{"Activity Report - " + report.Worker.FullName + FilterLabel(filter), report.Period},
		Headers: workerHeaders,
		Rows:    make([][]string, 0, len(report.Items)),
	}
	for _, item := range report.Items {
		reviewed := "Pending"
		if item.ReviewedAt != nil {
			reviewed = item.ReviewedAt.UTC().Format(helpers.DateTimeLayout)
		}
		table.Rows = append(table.Rows, []string{
			item.TaskTitle,
			item.CompletionDate.Format(helpers.DateLayout),
			Money(item.Value),
			StatusLabel(item.Status),
			reviewed,
		})
	}
	table.Footer = [][]string{
		{"", "Total:", Money(report.Totals.TotalValue), "", ""},
		{"", "Paid:", Money(report.Totals.PaidTotal), "", ""},
		{"", "Awaiting Payment:", Money(report.Totals.AwaitingPayment), "", ""},
		{"", "Rejected:", Money(report.Totals.RejectedTotal), "", ""},
	}
	return table
}

// StatusLabel is how a completion status reads in exported documents.
func StatusLabel(status models.CompletionStatus) string {
	return titleCase(string(status))
}
