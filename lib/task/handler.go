package taskhandler

import (
	"home-task-tracker/db"
	taskstore "home-task-tracker/lib/task/store"
	usersstore "home-task-tracker/lib/users/store"
	apperrors "home-task-tracker/lib/utils/app-errors"
	"home-task-tracker/models"
	taskapimodels "home-task-tracker/models/api/task"
	dbmodels "home-task-tracker/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(adminID uint, data taskapimodels.TaskData) (taskapimodels.TaskView, error)
	Update(adminID, taskID uint, data taskapimodels.TaskData) (taskapimodels.TaskView, error)
	SetActive(adminID, taskID uint, active bool) (taskapimodels.TaskView, error)
	Get(adminID, taskID uint) (taskapimodels.TaskView, error)
	List(adminID uint, filter taskapimodels.TaskFilter) ([]taskapimodels.TaskView, error)
	Categories(adminID uint) ([]string, error)
	ListForWorker(workerID uint, state models.TaskStateFilter) ([]taskapimodels.TaskView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(conn *gorm.DB) Provider {
	return impl{
		taskStore:  taskstore.NewInstance(conn),
		usersStore: usersstore.NewInstance(conn),
	}
}

type impl struct {
	taskStore  taskstore.Provider
	usersStore usersstore.Provider
}

func (i impl) getLogger(adminID, taskID uint) *log.Entry {
	logger := log.WithField("admin_id", adminID)
	if taskID != 0 {
		logger = logger.WithField("task_id", taskID)
	}
	return logger
}

func (i impl) Create(adminID uint, data taskapimodels.TaskData) (taskapimodels.TaskView, error) {
	if err := data.Validate(); err != nil {
		return taskapimodels.TaskView{}, err
	}
	admin, err := i.usersStore.GetByID(adminID)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	if admin == nil || !admin.Role.IsAdmin() {
		return taskapimodels.TaskView{}, apperrors.ErrForbidden
	}
	rec := dbmodels.Task{
		Title:         data.Title,
		Description:   data.Description,
		MonetaryValue: data.MonetaryValue,
		Category:      data.Category,
		Priority:      data.Priority,
		IsActive:      true,
		CreatedBy:     adminID,
	}
	id, err := i.taskStore.Create(rec)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	i.getLogger(adminID, id).Info("task created")
	return i.Get(adminID, id)
}

func (i impl) Update(adminID, taskID uint, data taskapimodels.TaskData) (taskapimodels.TaskView, error) {
	if err := data.Validate(); err != nil {
		return taskapimodels.TaskView{}, err
	}
	if _, err := i.getOwned(adminID, taskID); err != nil {
		return taskapimodels.TaskView{}, err
	}
	updMap := map[string]interface{}{
		"title":          data.Title,
		"description":    data.Description,
		"monetary_value": data.MonetaryValue,
		"category":       data.Category,
		"priority":       data.Priority,
	}
	if err := i.taskStore.Update(taskID, updMap); err != nil {
		return taskapimodels.TaskView{}, err
	}
	i.getLogger(adminID, taskID).Info("task updated")
	return i.Get(adminID, taskID)
}

func (i impl) SetActive(adminID, taskID uint, active bool) (taskapimodels.TaskView, error) {
	rec, err := i.getOwned(adminID, taskID)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	if rec.IsActive != active {
		if err = i.taskStore.Update(taskID, map[string]interface{}{"is_active": active}); err != nil {
			return taskapimodels.TaskView{}, err
		}
		i.getLogger(adminID, taskID).WithField("is_active", active).Info("task state changed")
	}
	return i.Get(adminID, taskID)
}

func (i impl) Get(adminID, taskID uint) (taskapimodels.TaskView, error) {
	rec, err := i.getOwned(adminID, taskID)
	if err != nil {
		return taskapimodels.TaskView{}, err
	}
	return taskapimodels.TaskConvert(*rec), nil
}

func (i impl) List(adminID uint, filter taskapimodels.TaskFilter) ([]taskapimodels.TaskView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	list, err := i.taskStore.List(adminID, filter)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) Categories(adminID uint) ([]string, error) {
	return i.taskStore.Categories(adminID)
}

func (i impl) ListForWorker(workerID uint, state models.TaskStateFilter) ([]taskapimodels.TaskView, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}
	worker, err := i.usersStore.GetByID(workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil || !worker.Role.IsWorker() || worker.AdminID == nil {
		return nil, apperrors.ErrForbidden
	}
	list, err := i.taskStore.ListByPriority(*worker.AdminID, state)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) getOwned(adminID, taskID uint) (*dbmodels.Task, error) {
	rec, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "task %v", taskID)
	}
	if rec.CreatedBy != adminID {
		return nil, apperrors.ErrForbidden
	}
	return rec, nil
}

func convertList(list []dbmodels.Task) []taskapimodels.TaskView {
	result := make([]taskapimodels.TaskView, 0, len(list))
	for _, rec := range list {
		result = append(result, taskapimodels.TaskConvert(rec))
	}
	return result
}
