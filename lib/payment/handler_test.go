package paymenthandler

import (
	completionhandler "home-task-tracker/lib/completion"
	apperrors "home-task-tracker/lib/utils/app-errors"
	"home-task-tracker/lib/utils/testdb"
	"home-task-tracker/models"
	paymentapimodels "home-task-tracker/models/api/payment"
	dbmodels "home-task-tracker/models/db"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	monday = testdb.Date(2024, time.March, 4)
	sunday = testdb.Date(2024, time.March, 10)
)

type fixture struct {
	conn    *gorm.DB
	handler Provider
	admin   dbmodels.User
	worker  dbmodels.User
	dishes  dbmodels.Task
	lawn    dbmodels.Task
}

func newFixture(t *testing.T) fixture {
	conn := testdb.New(t)
	admin := testdb.CreateAdmin(t, conn, "admin@example.com")
	worker := testdb.CreateWorker(t, conn, admin.ID, "worker@example.com")
	return fixture{
		conn:    conn,
		handler: NewInstance(conn),
		admin:   admin,
		worker:  worker,
		dishes:  testdb.CreateTask(t, conn, admin.ID, "Wash dishes", "10.00", models.TaskPriorityNormal),
		lawn:    testdb.CreateTask(t, conn, admin.ID, "Mow lawn", "2.55", models.TaskPriorityHigh),
	}
}

func weekFilter(status models.StatusFilter) paymentapimodels.ActivityFilter {
	return paymentapimodels.ActivityFilter{
		StartDate:  monday,
		EndDate:    sunday,
		Status:     status,
		Priority:   models.FilterAll,
		TaskStatus: models.FilterAll,
	}
}

func TestWorkerPayment(t *testing.T) {
	t.Run(`approve then pay check`, func(t *testing.T) {
		f := newFixture(t)
		completions := completionhandler.NewInstance(f.conn, testdb.FixedClock(monday.Add(20*time.Hour)))
		view, err := completions.Submit(f.worker.ID, f.dishes.ID, monday)
		require.Nil(t, err)
		_, err = completions.Review(f.admin.ID, view.ID, models.CompletionStatusApproved, "")
		require.Nil(t, err)

		payment, err := f.handler.WorkerPayment(f.worker.ID, monday, sunday)
		require.Nil(t, err)
		require.Equal(t, "10.00", payment.Total.StringFixed(2))
		require.Equal(t, 1, payment.Count)

		_, err = completions.MarkPaid(f.admin.ID, view.ID)
		require.Nil(t, err)

		paid, err := f.handler.WorkerActivity(f.worker.ID, weekFilter(models.StatusFilter(models.CompletionStatusPaid)))
		require.Nil(t, err)
		require.Len(t, paid.Items, 1)
		require.Equal(t, view.ID, paid.Items[0].ID)

		approved, err := f.handler.WorkerActivity(f.worker.ID, weekFilter(models.StatusFilter(models.CompletionStatusApproved)))
		require.Nil(t, err)
		require.Empty(t, approved.Items)

		payment, err = f.handler.WorkerPayment(f.worker.ID, monday, sunday)
		require.Nil(t, err)
		require.True(t, payment.Total.IsZero())
		require.Equal(t, 0, payment.Count)
	})

	t.Run(`inclusive range check`, func(t *testing.T) {
		f := newFixture(t)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, sunday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday.AddDate(0, 0, -1), models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, sunday.AddDate(0, 0, 1), models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, testdb.Date(2024, time.March, 6), models.CompletionStatusPending)

		payment, err := f.handler.WorkerPayment(f.worker.ID, monday, sunday)
		require.Nil(t, err)
		require.Equal(t, 2, payment.Count)
		require.Equal(t, "12.55", payment.Total.StringFixed(2))
		require.Equal(t, sunday, payment.Items[0].CompletionDate)
	})

	t.Run(`decimal sum check`, func(t *testing.T) {
		f := newFixture(t)
		penny := testdb.CreateTask(t, f.conn, f.admin.ID, "Feed cat", "0.10", models.TaskPriorityLow)
		for day := 4; day <= 6; day++ {
			testdb.CreateCompletion(t, f.conn, penny.ID, f.worker.ID, testdb.Date(2024, time.March, day), models.CompletionStatusApproved)
		}
		payment, err := f.handler.WorkerPayment(f.worker.ID, monday, sunday)
		require.Nil(t, err)
		require.Equal(t, "0.30", payment.Total.StringFixed(2))
	})

	t.Run(`unknown worker check`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.WorkerPayment(f.admin.ID, monday, sunday)
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestAdminPayments(t *testing.T) {
	t.Run(`grand total check`, func(t *testing.T) {
		f := newFixture(t)
		second := testdb.CreateWorker(t, f.conn, f.admin.ID, "second@example.com")
		inactive := testdb.CreateWorker(t, f.conn, f.admin.ID, "inactive@example.com")
		require.Nil(t, f.conn.Model(&inactive).Update("is_active", false).Error)

		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, second.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, inactive.ID, monday, models.CompletionStatusApproved)

		payments, err := f.handler.AdminPayments(f.admin.ID, monday, sunday)
		require.Nil(t, err)
		require.Len(t, payments.Workers, 2)
		require.Equal(t, f.worker.ID, payments.Workers[0].Worker.ID)
		require.Equal(t, second.ID, payments.Workers[1].Worker.ID)
		require.Equal(t, "12.55", payments.GrandTotal.StringFixed(2))
		require.Equal(t, "04/03/2024 to 10/03/2024", payments.Period)
	})
}

func TestActivity(t *testing.T) {
	t.Run(`totals check`, func(t *testing.T) {
		f := newFixture(t)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, monday, models.CompletionStatusPaid)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, testdb.Date(2024, time.March, 5), models.CompletionStatusRejected)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, testdb.Date(2024, time.March, 6), models.CompletionStatusPending)

		activity, err := f.handler.WorkerActivity(f.worker.ID, weekFilter(models.FilterAll))
		require.Nil(t, err)
		require.Equal(t, 4, activity.Totals.Count)
		require.Equal(t, "32.55", activity.Totals.TotalValue.StringFixed(2))
		require.Equal(t, "12.55", activity.Totals.ApprovedTotal.StringFixed(2))
		require.Equal(t, "2.55", activity.Totals.PaidTotal.StringFixed(2))
		require.Equal(t, "10.00", activity.Totals.AwaitingPayment.StringFixed(2))
		require.Equal(t, "10.00", activity.Totals.RejectedTotal.StringFixed(2))
		require.Equal(t, testdb.Date(2024, time.March, 6), activity.Items[0].CompletionDate)
	})

	t.Run(`awaiting payment alias check`, func(t *testing.T) {
		f := newFixture(t)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, monday, models.CompletionStatusPaid)

		activity, err := f.handler.WorkerActivity(f.worker.ID, weekFilter(models.StatusFilterAwaitingPayment))
		require.Nil(t, err)
		require.Len(t, activity.Items, 1)
		require.Equal(t, models.CompletionStatusApproved, activity.Items[0].Status)
	})

	t.Run(`priority and task status filter check`, func(t *testing.T) {
		f := newFixture(t)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		require.Nil(t, f.conn.Model(&f.dishes).Update("is_active", false).Error)

		filter := weekFilter(models.FilterAll)
		filter.Priority = models.PriorityFilter(models.TaskPriorityHigh)
		activity, err := f.handler.WorkerActivity(f.worker.ID, filter)
		require.Nil(t, err)
		require.Len(t, activity.Items, 1)
		require.Equal(t, f.lawn.ID, activity.Items[0].TaskID)

		filter = weekFilter(models.FilterAll)
		filter.TaskStatus = models.TaskStateInactive
		activity, err = f.handler.WorkerActivity(f.worker.ID, filter)
		require.Nil(t, err)
		require.Len(t, activity.Items, 1)
		require.Equal(t, f.dishes.ID, activity.Items[0].TaskID)
	})

	t.Run(`invalid filter check`, func(t *testing.T) {
		f := newFixture(t)
		_, err := f.handler.WorkerActivity(f.worker.ID, weekFilter("done"))
		require.NotNil(t, err)
		filter := weekFilter(models.FilterAll)
		filter.EndDate = monday.AddDate(0, 0, -1)
		_, err = f.handler.AdminActivity(f.admin.ID, filter)
		require.NotNil(t, err)
	})

	t.Run(`admin grand totals check`, func(t *testing.T) {
		f := newFixture(t)
		second := testdb.CreateWorker(t, f.conn, f.admin.ID, "second@example.com")
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusPaid)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, second.ID, monday, models.CompletionStatusRejected)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, second.ID, monday, models.CompletionStatusApproved)

		activity, err := f.handler.AdminActivity(f.admin.ID, weekFilter(models.FilterAll))
		require.Nil(t, err)
		require.Len(t, activity.Workers, 2)
		require.Equal(t, 3, activity.Totals.Count)
		require.Equal(t, "22.55", activity.Totals.TotalValue.StringFixed(2))
		require.Equal(t, "10.00", activity.Totals.PaidTotal.StringFixed(2))
		require.Equal(t, "10.00", activity.Totals.AwaitingPayment.StringFixed(2))
		require.Equal(t, "2.55", activity.Totals.RejectedTotal.StringFixed(2))
		require.Equal(t, "20.00", activity.Totals.ApprovedTotal.StringFixed(2))
	})

	t.Run(`worker report ownership check`, func(t *testing.T) {
		f := newFixture(t)
		otherAdmin := testdb.CreateAdmin(t, f.conn, "other@example.com")
		_, err := f.handler.WorkerReport(otherAdmin.ID, f.worker.ID, weekFilter(models.FilterAll))
		require.True(t, errors.Is(err, apperrors.ErrForbidden))

		report, err := f.handler.WorkerReport(f.admin.ID, f.worker.ID, weekFilter(models.FilterAll))
		require.Nil(t, err)
		require.Equal(t, "Worker worker", report.Worker.FullName)
	})
}

func TestQueues(t *testing.T) {
	t.Run(`pending approvals check`, func(t *testing.T) {
		f := newFixture(t)
		otherAdmin := testdb.CreateAdmin(t, f.conn, "other@example.com")
		otherWorker := testdb.CreateWorker(t, f.conn, otherAdmin.ID, "other-worker@example.com")
		otherTask := testdb.CreateTask(t, f.conn, otherAdmin.ID, "Other", "1.00", models.TaskPriorityLow)

		first := testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusPending)
		second := testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, testdb.Date(2024, time.March, 5), models.CompletionStatusPending)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, otherTask.ID, otherWorker.ID, monday, models.CompletionStatusPending)

		list, err := f.handler.PendingApprovals(f.admin.ID)
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Equal(t, second.ID, list[0].ID)
		require.Equal(t, first.ID, list[1].ID)
	})

	t.Run(`approved for payment check`, func(t *testing.T) {
		f := newFixture(t)
		second := testdb.CreateWorker(t, f.conn, f.admin.ID, "second@example.com")
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, second.ID, testdb.Date(2024, time.March, 5), models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, second.ID, monday, models.CompletionStatusPaid)

		list, err := f.handler.ApprovedForPayment(f.admin.ID, nil)
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Equal(t, second.ID, list[0].WorkerID)

		list, err = f.handler.ApprovedForPayment(f.admin.ID, &f.worker.ID)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, f.worker.ID, list[0].WorkerID)
	})
}

func TestWorkerStats(t *testing.T) {
	t.Run(`no completions check`, func(t *testing.T) {
		f := newFixture(t)
		stats, err := f.handler.WorkerStats(f.worker.ID, monday)
		require.Nil(t, err)
		require.Equal(t, int64(0), stats.TotalCompleted)
		require.Equal(t, float64(0), stats.ApprovalRate)
		require.True(t, stats.ThisWeekEarnings.IsZero())
	})

	t.Run(`counts and totals check`, func(t *testing.T) {
		f := newFixture(t)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, monday, models.CompletionStatusPaid)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, testdb.Date(2024, time.February, 26), models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, testdb.Date(2024, time.March, 5), models.CompletionStatusRejected)

		stats, err := f.handler.WorkerStats(f.worker.ID, testdb.Date(2024, time.March, 6))
		require.Nil(t, err)
		require.Equal(t, int64(4), stats.TotalCompleted)
		require.Equal(t, int64(2), stats.ApprovedCount)
		require.Equal(t, int64(1), stats.PaidCount)
		require.Equal(t, int64(1), stats.RejectedCount)
		require.Equal(t, int64(0), stats.PendingCount)
		require.Equal(t, float64(50), stats.ApprovalRate)
		require.Equal(t, "20.00", stats.AwaitingPaymentTotal.StringFixed(2))
		require.Equal(t, int64(2), stats.AwaitingPaymentCount)
		require.Equal(t, "2.55", stats.TotalPaidEarnings.StringFixed(2))
		require.Equal(t, 1, stats.PaidEarningsCount)
		require.Equal(t, "10.00", stats.ThisWeekEarnings.StringFixed(2))
		require.Equal(t, 1, stats.ThisWeekCount)
	})

	t.Run(`payment summary check`, func(t *testing.T) {
		f := newFixture(t)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, monday, models.CompletionStatusPaid)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, sunday, models.CompletionStatusPaid)

		summary, err := f.handler.WorkerPaymentSummary(f.worker.ID)
		require.Nil(t, err)
		require.Equal(t, 1, summary.ApprovedCount)
		require.Equal(t, "10.00", summary.ApprovedTotal.StringFixed(2))
		require.Equal(t, 2, summary.PaidCount)
		require.Equal(t, "5.10", summary.PaidTotal.StringFixed(2))
		require.Len(t, summary.Unpaid, 1)
	})
}

func TestAdminDashboard(t *testing.T) {
	t.Run(`dashboard check`, func(t *testing.T) {
		f := newFixture(t)
		testdb.CreateTask(t, f.conn, f.admin.ID, "Old", "1.00", models.TaskPriorityLow)
		require.Nil(t, f.conn.Model(&f.lawn).Update("is_active", false).Error)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, monday, models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.dishes.ID, f.worker.ID, testdb.Date(2024, time.February, 26), models.CompletionStatusApproved)
		testdb.CreateCompletion(t, f.conn, f.lawn.ID, f.worker.ID, monday, models.CompletionStatusPending)

		dashboard, err := f.handler.AdminDashboard(f.admin.ID, testdb.Date(2024, time.March, 6))
		require.Nil(t, err)
		require.Len(t, dashboard.Workers, 1)
		require.Equal(t, 1, dashboard.PendingCount)
		require.Equal(t, "10.00", dashboard.WeekTotal.StringFixed(2))
		require.Equal(t, "20.00", dashboard.AwaitingPaymentTotal.StringFixed(2))
		require.Equal(t, int64(2), dashboard.ActiveTasks)
		require.Len(t, dashboard.WorkerPayments, 1)
		require.Equal(t, 2, dashboard.WorkerPayments[0].Summary.ApprovedCount)
	})
}
