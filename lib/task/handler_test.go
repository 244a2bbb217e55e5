package taskhandler

import (
	apperrors "home-task-tracker/lib/utils/app-errors"
	"home-task-tracker/lib/utils/testdb"
	"home-task-tracker/models"
	taskapimodels "home-task-tracker/models/api/task"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func taskData(title, value string, priority models.TaskPriority, category string) taskapimodels.TaskData {
	return taskapimodels.TaskData{
		Title:         title,
		MonetaryValue: decimal.RequireFromString(value),
		Priority:      priority,
		Category:      category,
	}
}

func TestCreate(t *testing.T) {
	t.Run(`create check`, func(t *testing.T) {
		conn := testdb.New(t)
		admin := testdb.CreateAdmin(t, conn, "admin@example.com")
		handler := NewInstance(conn)

		view, err := handler.Create(admin.ID, taskData("Wash dishes", "2.50", "", "  Kitchen "))
		require.Nil(t, err)
		require.NotZero(t, view.ID)
		require.Equal(t, models.TaskPriorityNormal, view.Priority)
		require.Equal(t, "Kitchen", view.Category)
		require.Equal(t, "2.50", view.MonetaryValue.StringFixed(2))
		require.True(t, view.IsActive)
	})

	t.Run(`validation check`, func(t *testing.T) {
		conn := testdb.New(t)
		admin := testdb.CreateAdmin(t, conn, "admin@example.com")
		handler := NewInstance(conn)

		_, err := handler.Create(admin.ID, taskData("Wash dishes", "0", models.TaskPriorityLow, ""))
		require.NotNil(t, err)
		_, err = handler.Create(admin.ID, taskData("Wash dishes", "1.005", models.TaskPriorityLow, ""))
		require.NotNil(t, err)
		_, err = handler.Create(admin.ID, taskData("Wash dishes", "1.00", "urgent", ""))
		require.NotNil(t, err)
		_, err = handler.Create(admin.ID, taskData("", "1.00", models.TaskPriorityLow, ""))
		require.NotNil(t, err)
	})

	t.Run(`worker cannot create check`, func(t *testing.T) {
		conn := testdb.New(t)
		admin := testdb.CreateAdmin(t, conn, "admin@example.com")
		worker := testdb.CreateWorker(t, conn, admin.ID, "worker@example.com")
		_, err := NewInstance(conn).Create(worker.ID, taskData("Wash dishes", "1.00", models.TaskPriorityLow, ""))
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
	})
}

func TestUpdate(t *testing.T) {
	t.Run(`edit and deactivate check`, func(t *testing.T) {
		conn := testdb.New(t)
		admin := testdb.CreateAdmin(t, conn, "admin@example.com")
		handler := NewInstance(conn)
		task := testdb.CreateTask(t, conn, admin.ID, "Wash dishes", "2.50", models.TaskPriorityLow)

		view, err := handler.Update(admin.ID, task.ID, taskData("Wash all dishes", "3.75", models.TaskPriorityHigh, "Kitchen"))
		require.Nil(t, err)
		require.Equal(t, "Wash all dishes", view.Title)
		require.Equal(t, "3.75", view.MonetaryValue.StringFixed(2))
		require.Equal(t, models.TaskPriorityHigh, view.Priority)

		view, err = handler.SetActive(admin.ID, task.ID, false)
		require.Nil(t, err)
		require.False(t, view.IsActive)

		view, err = handler.SetActive(admin.ID, task.ID, true)
		require.Nil(t, err)
		require.True(t, view.IsActive)
	})

	t.Run(`foreign admin check`, func(t *testing.T) {
		conn := testdb.New(t)
		admin := testdb.CreateAdmin(t, conn, "admin@example.com")
		otherAdmin := testdb.CreateAdmin(t, conn, "other@example.com")
		handler := NewInstance(conn)
		task := testdb.CreateTask(t, conn, admin.ID, "Wash dishes", "2.50", models.TaskPriorityLow)

		_, err := handler.Update(otherAdmin.ID, task.ID, taskData("Mine now", "1.00", models.TaskPriorityLow, ""))
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
		_, err = handler.SetActive(otherAdmin.ID, task.ID, false)
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
		_, err = handler.Get(admin.ID, task.ID+10)
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestList(t *testing.T) {
	t.Run(`admin filters check`, func(t *testing.T) {
		conn := testdb.New(t)
		admin := testdb.CreateAdmin(t, conn, "admin@example.com")
		handler := NewInstance(conn)
		dishes, err := handler.Create(admin.ID, taskData("Wash dishes", "1.00", models.TaskPriorityLow, "Kitchen"))
		require.Nil(t, err)
		lawn, err := handler.Create(admin.ID, taskData("Mow lawn", "5.00", models.TaskPriorityHigh, "Garden"))
		require.Nil(t, err)
		bins, err := handler.Create(admin.ID, taskData("Take out bins", "0.50", models.TaskPriorityNormal, ""))
		require.Nil(t, err)
		_, err = handler.SetActive(admin.ID, lawn.ID, false)
		require.Nil(t, err)

		list, err := handler.List(admin.ID, taskapimodels.TaskFilter{})
		require.Nil(t, err)
		require.Len(t, list, 3)
		require.Equal(t, bins.ID, list[0].ID)
		require.Equal(t, dishes.ID, list[2].ID)

		list, err = handler.List(admin.ID, taskapimodels.TaskFilter{Category: taskapimodels.CategoryNone})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, bins.ID, list[0].ID)

		list, err = handler.List(admin.ID, taskapimodels.TaskFilter{Category: "Kitchen", Status: models.TaskStateActive})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, dishes.ID, list[0].ID)

		list, err = handler.List(admin.ID, taskapimodels.TaskFilter{Priority: "high", Status: models.TaskStateInactive})
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, lawn.ID, list[0].ID)

		_, err = handler.List(admin.ID, taskapimodels.TaskFilter{Priority: "urgent"})
		require.NotNil(t, err)

		categories, err := handler.Categories(admin.ID)
		require.Nil(t, err)
		require.Equal(t, []string{"Garden", "Kitchen"}, categories)
	})

	t.Run(`worker priority order check`, func(t *testing.T) {
		conn := testdb.New(t)
		admin := testdb.CreateAdmin(t, conn, "admin@example.com")
		worker := testdb.CreateWorker(t, conn, admin.ID, "worker@example.com")
		otherAdmin := testdb.CreateAdmin(t, conn, "other@example.com")
		handler := NewInstance(conn)

		low := testdb.CreateTask(t, conn, admin.ID, "Dust shelves", "1.00", models.TaskPriorityLow)
		high := testdb.CreateTask(t, conn, admin.ID, "Mow lawn", "5.00", models.TaskPriorityHigh)
		normal := testdb.CreateTask(t, conn, admin.ID, "Wash dishes", "2.00", models.TaskPriorityNormal)
		newerHigh := testdb.CreateTask(t, conn, admin.ID, "Clean car", "4.00", models.TaskPriorityHigh)
		testdb.CreateTask(t, conn, otherAdmin.ID, "Not mine", "9.00", models.TaskPriorityHigh)
		_, err := handler.SetActive(admin.ID, normal.ID, false)
		require.Nil(t, err)

		list, err := handler.ListForWorker(worker.ID, models.FilterAll)
		require.Nil(t, err)
		require.Len(t, list, 4)
		require.Equal(t, newerHigh.ID, list[0].ID)
		require.Equal(t, high.ID, list[1].ID)
		require.Equal(t, normal.ID, list[2].ID)
		require.Equal(t, low.ID, list[3].ID)

		list, err = handler.ListForWorker(worker.ID, models.TaskStateActive)
		require.Nil(t, err)
		require.Len(t, list, 3)

		list, err = handler.ListForWorker(worker.ID, models.TaskStateInactive)
		require.Nil(t, err)
		require.Len(t, list, 1)
		require.Equal(t, normal.ID, list[0].ID)

		_, err = handler.ListForWorker(admin.ID, models.TaskStateActive)
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
	})
}
