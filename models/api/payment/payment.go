package paymentapimodels

import (
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	apimodels "home-task-tracker/models/api"
	completionapimodels "home-task-tracker/models/api/completion"
	dbmodels "home-task-tracker/models/db"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type WorkerRef struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func WorkerRefConvert(rec dbmodels.User) WorkerRef {
	return WorkerRef{
		ID:       rec.ID,
		FullName: rec.GetFullName(),
		Email:    rec.Email,
	}
}

// WorkerPayment is the approved earnings of one worker over a period.
type WorkerPayment struct {
	Worker WorkerRef                            `json:"worker"`
	Total  decimal.Decimal                      `json:"total"`
	Count  int                                  `json:"count"`
	Items  []completionapimodels.CompletionView `json:"items"`
}

type AdminPayments struct {
	Workers    []WorkerPayment `json:"workers"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Period     string          `json:"period"`
}

// ActivityTotals holds the running sums of an activity report.
// ApprovedTotal counts approved and paid completions, AwaitingPayment only approved ones.
type ActivityTotals struct {
	Count           int             `json:"count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	ApprovedTotal   decimal.Decimal `json:"approved_total"`
	PaidTotal       decimal.Decimal `json:"paid_total"`
	AwaitingPayment decimal.Decimal `json:"awaiting_payment"`
	RejectedTotal   decimal.Decimal `json:"rejected_total"`
}

func (t *ActivityTotals) Add(value decimal.Decimal, status models.CompletionStatus) {
	t.Count++
	t.TotalValue = t.TotalValue.Add(value)
	switch status {
	case models.CompletionStatusApproved:
		t.ApprovedTotal = t.ApprovedTotal.Add(value)
		t.AwaitingPayment = t.AwaitingPayment.Add(value)
	case models.CompletionStatusPaid:
		t.ApprovedTotal = t.ApprovedTotal.Add(value)
		t.PaidTotal = t.PaidTotal.Add(value)
	case models.CompletionStatusRejected:
		t.RejectedTotal = t.RejectedTotal.Add(value)
	}
}

func (t *ActivityTotals) Merge(other ActivityTotals) {
	t.Count += other.Count
	t.TotalValue = t.TotalValue.Add(other.TotalValue)
	t.ApprovedTotal = t.ApprovedTotal.Add(other.ApprovedTotal)
	t.PaidTotal = t.PaidTotal.Add(other.PaidTotal)
	t.AwaitingPayment = t.AwaitingPayment.Add(other.AwaitingPayment)
	t.RejectedTotal = t.RejectedTotal.Add(other.RejectedTotal)
}

type WorkerActivity struct {
	Worker WorkerRef                            `json:"worker"`
	Totals ActivityTotals                       `json:"totals"`
	Items  []completionapimodels.CompletionView `json:"items"`
	Period string                               `json:"period"`
}

type AdminActivity struct {
	Workers []WorkerActivity `json:"workers"`
	Totals  ActivityTotals   `json:"totals"`
	Period  string           `json:"period"`
}

type ActivityFilter struct {
	StartDate  time.Time
	EndDate    time.Time
	Status     models.StatusFilter
	Priority   models.PriorityFilter
	TaskStatus models.TaskStateFilter
}

func (f ActivityFilter) Validate() error {
	if f.EndDate.Before(f.StartDate) {
		return errors.New("end date must not be before start date")
	}
	if err := f.Status.Validate(); err != nil {
		return err
	}
	if err := f.Priority.Validate(); err != nil {
		return err
	}
	return f.TaskStatus.Validate()
}

func (f ActivityFilter) Period() string {
	return helpers.FormatPeriod(f.StartDate, f.EndDate)
}

func (f ActivityFilter) ToCompletionFilter() completionapimodels.CompletionFilter {
	start := helpers.Day(f.StartDate)
	end := helpers.Day(f.EndDate)
	result := completionapimodels.CompletionFilter{
		DateFrom: &start,
		DateTo:   &end,
		OrderBy:  completionapimodels.OrderCompletionDateDesc,
	}
	if status, ok := f.Status.Status(); ok {
		result.Status = &status
	}
	if priority, ok := f.Priority.Priority(); ok {
		result.Priority = &priority
	}
	if active, ok := f.TaskStatus.IsActive(); ok {
		result.TaskActive = &active
	}
	return result
}

// ReportRequest is the query of the reports and export endpoints. Empty dates mean the current week.
type ReportRequest struct {
	WorkerID         uint   `query:"worker_id"`
	StartDate        string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate          string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StatusFilter     string `query:"status_filter"`
	PriorityFilter   string `query:"priority_filter"`
	TaskStatusFilter string `query:"task_status_filter"`
	Format           string `query:"format" validate:"omitempty,oneof=csv xlsx"`
}

func (r ReportRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

func (r ReportRequest) GetFilter(today time.Time) ActivityFilter {
	start, end := helpers.GetWeekDates(today)
	if r.StartDate != "" {
		start, _ = helpers.ParseISODate(r.StartDate)
	}
	if r.EndDate != "" {
		end, _ = helpers.ParseISODate(r.EndDate)
	}
	return ActivityFilter{
		StartDate:  start,
		EndDate:    end,
		Status:     models.StatusFilter(r.StatusFilter).Normalize(),
		Priority:   models.PriorityFilter(r.PriorityFilter).Normalize(),
		TaskStatus: models.TaskStateFilter(r.TaskStatusFilter).Normalize(),
	}
}

// PaymentSummary splits a worker's reviewed earnings into unpaid and paid.
type PaymentSummary struct {
	ApprovedCount int                                  `json:"approved_count"`
	ApprovedTotal decimal.Decimal                      `json:"approved_total"`
	PaidCount     int                                  `json:"paid_count"`
	PaidTotal     decimal.Decimal                      `json:"paid_total"`
	Unpaid        []completionapimodels.CompletionView `json:"unpaid"`
}

type WorkerStats struct {
	TotalCompleted       int64           `json:"total_completed"`
	PendingCount         int64           `json:"pending_count"`
	ApprovedCount        int64           `json:"approved_count"`
	RejectedCount        int64           `json:"rejected_count"`
	PaidCount            int64           `json:"paid_count"`
	ApprovalRate         float64         `json:"approval_rate"`
	AwaitingPaymentTotal decimal.Decimal `json:"awaiting_payment_total"`
	AwaitingPaymentCount int64           `json:"awaiting_payment_count"`
	TotalPaidEarnings    decimal.Decimal `json:"total_paid_earnings"`
	PaidEarningsCount    int             `json:"paid_earnings_count"`
	ThisWeekEarnings     decimal.Decimal `json:"this_week_earnings"`
	ThisWeekCount        int             `json:"this_week_count"`
}

type WorkerSummary struct {
	Worker  WorkerRef      `json:"worker"`
	Summary PaymentSummary `json:"summary"`
}

type AdminDashboard struct {
	Workers              []WorkerRef     `json:"workers"`
	PendingCount         int             `json:"pending_count"`
	WeekTotal            decimal.Decimal `json:"week_total"`
	WeekPeriod           string          `json:"week_period"`
	AwaitingPaymentTotal decimal.Decimal `json:"awaiting_payment_total"`
	ActiveTasks          int64           `json:"active_tasks"`
	WorkerPayments       []WorkerSummary `json:"worker_payments"`
}

type WorkerDashboard struct {
	Stats  WorkerStats                          `json:"stats"`
	Recent []completionapimodels.CompletionView `json:"recent"`
}
