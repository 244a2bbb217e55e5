package paymenthandler

import (
	"home-task-tracker/db"
	completionstore "home-task-tracker/lib/completion/store"
	taskstore "home-task-tracker/lib/task/store"
	usersstore "home-task-tracker/lib/users/store"
	apperrors "home-task-tracker/lib/utils/app-errors"
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	completionapimodels "home-task-tracker/models/api/completion"
	paymentapimodels "home-task-tracker/models/api/payment"
	dbmodels "home-task-tracker/models/db"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	WorkerPayment(workerID uint, start, end time.Time) (paymentapimodels.WorkerPayment, error)
	AdminPayments(adminID uint, start, end time.Time) (paymentapimodels.AdminPayments, error)
	WorkerActivity(workerID uint, filter paymentapimodels.ActivityFilter) (paymentapimodels.WorkerActivity, error)
	AdminActivity(adminID uint, filter paymentapimodels.ActivityFilter) (paymentapimodels.AdminActivity, error)
	WorkerReport(adminID, workerID uint, filter paymentapimodels.ActivityFilter) (paymentapimodels.WorkerActivity, error)
	PendingApprovals(adminID uint) ([]completionapimodels.CompletionView, error)
	ApprovedForPayment(adminID uint, workerID *uint) ([]completionapimodels.CompletionView, error)
	WorkerPaymentSummary(workerID uint) (paymentapimodels.PaymentSummary, error)
	WorkerStats(workerID uint, today time.Time) (paymentapimodels.WorkerStats, error)
	PaidEarnings(workerID uint) (paymentapimodels.WorkerPayment, error)
	AdminDashboard(adminID uint, today time.Time) (paymentapimodels.AdminDashboard, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(conn *gorm.DB) Provider {
	return impl{
		completionStore: completionstore.NewInstance(conn),
		taskStore:       taskstore.NewInstance(conn),
		usersStore:      usersstore.NewInstance(conn),
	}
}

type impl struct {
	completionStore completionstore.Provider
	taskStore       taskstore.Provider
	usersStore      usersstore.Provider
}

func (i impl) getLogger(userID uint) *log.Entry {
	return log.WithField("user_id", userID)
}

func (i impl) WorkerPayment(workerID uint, start, end time.Time) (paymentapimodels.WorkerPayment, error) {
	worker, err := i.getWorker(workerID)
	if err != nil {
		return paymentapimodels.WorkerPayment{}, err
	}
	return i.workerPayment(*worker, start, end)
}

func (i impl) AdminPayments(adminID uint, start, end time.Time) (paymentapimodels.AdminPayments, error) {
	workers, err := i.usersStore.ListWorkers(adminID, true)
	if err != nil {
		return paymentapimodels.AdminPayments{}, err
	}
	result := paymentapimodels.AdminPayments{
		Workers:    make([]paymentapimodels.WorkerPayment, 0, len(workers)),
		GrandTotal: decimal.Zero,
		Period:     helpers.FormatPeriod(start, end),
	}
	for _, worker := range workers {
		payment, err := i.workerPayment(worker, start, end)
		if err != nil {
			return paymentapimodels.AdminPayments{}, err
		}
		result.Workers = append(result.Workers, payment)
		result.GrandTotal = result.GrandTotal.Add(payment.Total)
	}
	return result, nil
}

func (i impl) WorkerActivity(workerID uint, filter paymentapimodels.ActivityFilter) (paymentapimodels.WorkerActivity, error) {
	if err := filter.Validate(); err != nil {
		return paymentapimodels.WorkerActivity{}, err
	}
	worker, err := i.getWorker(workerID)
	if err != nil {
		return paymentapimodels.WorkerActivity{}, err
	}
	return i.workerActivity(*worker, filter)
}

func (i impl) AdminActivity(adminID uint, filter paymentapimodels.ActivityFilter) (paymentapimodels.AdminActivity, error) {
	if err := filter.Validate(); err != nil {
		return paymentapimodels.AdminActivity{}, err
	}
	workers, err := i.usersStore.ListWorkers(adminID, true)
	if err != nil {
		return paymentapimodels.AdminActivity{}, err
	}
	result := paymentapimodels.AdminActivity{
		Workers: make([]paymentapimodels.WorkerActivity, 0, len(workers)),
		Totals:  newTotals(),
		Period:  filter.Period(),
	}
	for _, worker := range workers {
		activity, err := i.workerActivity(worker, filter)
		if err != nil {
			return paymentapimodels.AdminActivity{}, err
		}
		result.Workers = append(result.Workers, activity)
		result.Totals.Merge(activity.Totals)
	}
	i.getLogger(adminID).
		WithField("period", result.Period).
		WithField("workers", len(result.Workers)).
		Debug("admin activity report built")
	return result, nil
}

func (i impl) WorkerReport(adminID, workerID uint, filter paymentapimodels.ActivityFilter) (paymentapimodels.WorkerActivity, error) {
	if err := filter.Validate(); err != nil {
		return paymentapimodels.WorkerActivity{}, err
	}
	worker, err := i.getWorker(workerID)
	if err != nil {
		return paymentapimodels.WorkerActivity{}, err
	}
	if !worker.BelongsTo(adminID) {
		return paymentapimodels.WorkerActivity{}, apperrors.ErrForbidden
	}
	return i.workerActivity(*worker, filter)
}

func (i impl) PendingApprovals(adminID uint) ([]completionapimodels.CompletionView, error) {
	status := models.CompletionStatusPending
	list, err := i.completionStore.List(completionapimodels.CompletionFilter{
		AdminID: &adminID,
		Status:  &status,
		OrderBy: completionapimodels.OrderSubmittedAtDesc,
	})
	if err != nil {
		return nil, err
	}
	return completionapimodels.CompletionListConvert(list), nil
}

func (i impl) ApprovedForPayment(adminID uint, workerID *uint) ([]completionapimodels.CompletionView, error) {
	status := models.CompletionStatusApproved
	list, err := i.completionStore.List(completionapimodels.CompletionFilter{
		AdminID:  &adminID,
		WorkerID: workerID,
		Status:   &status,
		OrderBy:  completionapimodels.OrderReviewedAtDesc,
	})
	if err != nil {
		return nil, err
	}
	return completionapimodels.CompletionListConvert(list), nil
}

func (i impl) WorkerPaymentSummary(workerID uint) (paymentapimodels.PaymentSummary, error) {
	approved, err := i.listByStatus(workerID, models.CompletionStatusApproved)
	if err != nil {
		return paymentapimodels.PaymentSummary{}, err
	}
	paid, err := i.listByStatus(workerID, models.CompletionStatusPaid)
	if err != nil {
		return paymentapimodels.PaymentSummary{}, err
	}
	return paymentapimodels.PaymentSummary{
		ApprovedCount: len(approved),
		ApprovedTotal: sumValues(approved),
		PaidCount:     len(paid),
		PaidTotal:     sumValues(paid),
		Unpaid:        approved,
	}, nil
}

func (i impl) WorkerStats(workerID uint, today time.Time) (paymentapimodels.WorkerStats, error) {
	counts, err := i.completionStore.CountByStatus(workerID)
	if err != nil {
		return paymentapimodels.WorkerStats{}, err
	}
	result := paymentapimodels.WorkerStats{
		PendingCount:  counts[models.CompletionStatusPending],
		ApprovedCount: counts[models.CompletionStatusApproved],
		RejectedCount: counts[models.CompletionStatusRejected],
		PaidCount:     counts[models.CompletionStatusPaid],
	}
	for _, count := range counts {
		result.TotalCompleted += count
	}
	if result.TotalCompleted > 0 {
		result.ApprovalRate = float64(result.ApprovedCount) / float64(result.TotalCompleted) * 100
	}

	approved, err := i.listByStatus(workerID, models.CompletionStatusApproved)
	if err != nil {
		return paymentapimodels.WorkerStats{}, err
	}
	result.AwaitingPaymentTotal = sumValues(approved)
	result.AwaitingPaymentCount = result.ApprovedCount

	paid, err := i.PaidEarnings(workerID)
	if err != nil {
		return paymentapimodels.WorkerStats{}, err
	}
	result.TotalPaidEarnings = paid.Total
	result.PaidEarningsCount = paid.Count

	start, end := helpers.GetWeekDates(today)
	week, err := i.approvedInRange(workerID, start, end)
	if err != nil {
		return paymentapimodels.WorkerStats{}, err
	}
	result.ThisWeekEarnings = sumValues(week)
	result.ThisWeekCount = len(week)
	return result, nil
}

func (i impl) PaidEarnings(workerID uint) (paymentapimodels.WorkerPayment, error) {
	worker, err := i.getWorker(workerID)
	if err != nil {
		return paymentapimodels.WorkerPayment{}, err
	}
	paid, err := i.listByStatus(workerID, models.CompletionStatusPaid)
	if err != nil {
		return paymentapimodels.WorkerPayment{}, err
	}
	return paymentapimodels.WorkerPayment{
		Worker: paymentapimodels.WorkerRefConvert(*worker),
		Total:  sumValues(paid),
		Count:  len(paid),
		Items:  paid,
	}, nil
}

func (i impl) AdminDashboard(adminID uint, today time.Time) (paymentapimodels.AdminDashboard, error) {
	workers, err := i.usersStore.ListWorkers(adminID, true)
	if err != nil {
		return paymentapimodels.AdminDashboard{}, err
	}
	pending, err := i.PendingApprovals(adminID)
	if err != nil {
		return paymentapimodels.AdminDashboard{}, err
	}
	start, end := helpers.GetWeekDates(today)
	week, err := i.AdminPayments(adminID, start, end)
	if err != nil {
		return paymentapimodels.AdminDashboard{}, err
	}
	awaiting, err := i.ApprovedForPayment(adminID, nil)
	if err != nil {
		return paymentapimodels.AdminDashboard{}, err
	}
	activeTasks, err := i.taskStore.CountActive(adminID)
	if err != nil {
		return paymentapimodels.AdminDashboard{}, err
	}
	result := paymentapimodels.AdminDashboard{
		Workers:              make([]paymentapimodels.WorkerRef, 0, len(workers)),
		PendingCount:         len(pending),
		WeekTotal:            week.GrandTotal,
		WeekPeriod:           week.Period,
		AwaitingPaymentTotal: sumValues(awaiting),
		ActiveTasks:          activeTasks,
		WorkerPayments:       make([]paymentapimodels.WorkerSummary, 0, len(workers)),
	}
	for _, worker := range workers {
		summary, err := i.WorkerPaymentSummary(worker.ID)
		if err != nil {
			return paymentapimodels.AdminDashboard{}, err
		}
		ref := paymentapimodels.WorkerRefConvert(worker)
		result.Workers = append(result.Workers, ref)
		result.WorkerPayments = append(result.WorkerPayments, paymentapimodels.WorkerSummary{
			Worker:  ref,
			Summary: summary,
		})
	}
	return result, nil
}

func (i impl) workerPayment(worker dbmodels.User, start, end time.Time) (paymentapimodels.WorkerPayment, error) {
	items, err := i.approvedInRange(worker.ID, start, end)
	if err != nil {
		return paymentapimodels.WorkerPayment{}, err
	}
	return paymentapimodels.WorkerPayment{
		Worker: paymentapimodels.WorkerRefConvert(worker),
		Total:  sumValues(items),
		Count:  len(items),
		Items:  items,
	}, nil
}

func (i impl) workerActivity(worker dbmodels.User, filter paymentapimodels.ActivityFilter) (paymentapimodels.WorkerActivity, error) {
	storeFilter := filter.ToCompletionFilter()
	storeFilter.WorkerID = &worker.ID
	list, err := i.completionStore.List(storeFilter)
	if err != nil {
		return paymentapimodels.WorkerActivity{}, err
	}
	result := paymentapimodels.WorkerActivity{
		Worker: paymentapimodels.WorkerRefConvert(worker),
		Totals: newTotals(),
		Items:  completionapimodels.CompletionListConvert(list),
		Period: filter.Period(),
	}
	for _, item := range result.Items {
		result.Totals.Add(item.Value, item.Status)
	}
	return result, nil
}

func (i impl) approvedInRange(workerID uint, start, end time.Time) ([]completionapimodels.CompletionView, error) {
	status := models.CompletionStatusApproved
	from := helpers.Day(start)
	to := helpers.Day(end)
	list, err := i.completionStore.List(completionapimodels.CompletionFilter{
		WorkerID: &workerID,
		Status:   &status,
		DateFrom: &from,
		DateTo:   &to,
		OrderBy:  completionapimodels.OrderCompletionDateDesc,
	})
	if err != nil {
		return nil, err
	}
	return completionapimodels.CompletionListConvert(list), nil
}

func (i impl) listByStatus(workerID uint, status models.CompletionStatus) ([]completionapimodels.CompletionView, error) {
	list, err := i.completionStore.List(completionapimodels.CompletionFilter{
		WorkerID: &workerID,
		Status:   &status,
		OrderBy:  completionapimodels.OrderCompletionDateDesc,
	})
	if err != nil {
		return nil, err
	}
	return completionapimodels.CompletionListConvert(list), nil
}

func (i impl) getWorker(workerID uint) (*dbmodels.User, error) {
	worker, err := i.usersStore.GetByID(workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil || !worker.Role.IsWorker() {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "worker %v", workerID)
	}
	return worker, nil
}

func newTotals() paymentapimodels.ActivityTotals {
	return paymentapimodels.ActivityTotals{
		TotalValue:      decimal.Zero,
		ApprovedTotal:   decimal.Zero,
		PaidTotal:       decimal.Zero,
		AwaitingPayment: decimal.Zero,
		RejectedTotal:   decimal.Zero,
	}
}

func sumValues(list []completionapimodels.CompletionView) decimal.Decimal {
	total := decimal.Zero
	for _, item := range list {
		total = total.Add(item.Value)
	}
	return total
}
