package completionstore

import (
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	completionapimodels "home-task-tracker/models/api/completion"
	dbmodels "home-task-tracker/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.TaskCompletion) (uint, error)
	GetByID(id uint) (rec *dbmodels.TaskCompletion, err error)
	GetExtByID(id uint) (rec *dbmodels.TaskCompletionExt, err error)
	GetByKey(taskID, workerID uint, date time.Time) (rec *dbmodels.TaskCompletion, err error)
	Update(id uint, status models.CompletionStatus, updMap map[string]interface{}) error
	DeleteByIDs(ids []uint) error
	DeleteByWorker(workerID uint) error
	List(filter completionapimodels.CompletionFilter) (list []dbmodels.TaskCompletionExt, err error)
	CountByStatus(workerID uint) (map[models.CompletionStatus]int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const extSelect = "task_completions.*, " +
	"tasks.title AS task_title, " +
	"tasks.monetary_value AS monetary_value, " +
	"tasks.priority AS task_priority, " +
	"tasks.is_active AS task_is_active, " +
	"tasks.created_by AS task_created_by, " +
	"users.first_name AS worker_first_name, " +
	"users.last_name AS worker_last_name"

func (i impl) Create(rec dbmodels.TaskCompletion) (uint, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.TaskCompletion, error) {
	rec := dbmodels.TaskCompletion{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetExtByID(id uint) (*dbmodels.TaskCompletionExt, error) {
	list := []dbmodels.TaskCompletionExt{}
	err := i.extQuery().
		Where("task_completions.id = ?", id).
		Limit(1).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (i impl) GetByKey(taskID, workerID uint, date time.Time) (*dbmodels.TaskCompletion, error) {
	rec := dbmodels.TaskCompletion{}
	err := i.db.
		Where("task_id = ?", taskID).
		Where("worker_id = ?", workerID).
		Where("completion_date = ?", helpers.ToDate(date)).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Update applies updMap only while the row is still in status.
func (i impl) Update(id uint, status models.CompletionStatus, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.TaskCompletion{}).
		Where("id = ?", id).
		Where("status = ?", status).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.Errorf("completion %v with status %v not found", id, status)
	}
	return nil
}

func (i impl) DeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.
		Where("id IN ?", ids).
		Delete(&dbmodels.TaskCompletion{}).
		Error
}

func (i impl) DeleteByWorker(workerID uint) error {
	return i.db.
		Where("worker_id = ?", workerID).
		Delete(&dbmodels.TaskCompletion{}).
		Error
}

func (i impl) List(filter completionapimodels.CompletionFilter) (list []dbmodels.TaskCompletionExt, err error) {
	list = []dbmodels.TaskCompletionExt{}
	tx := i.extQuery()
	tx = i.addFilter(tx, filter)
	err = tx.Find(&list).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list task completions")
	}
	return list, nil
}

func (i impl) CountByStatus(workerID uint) (map[models.CompletionStatus]int64, error) {
	type row struct {
		Status models.CompletionStatus
		Total  int64
	}
	rows := []row{}
	err := i.db.
		Model(&dbmodels.TaskCompletion{}).
		Select("status, COUNT(*) AS total").
		Where("worker_id = ?", workerID).
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count task completions")
	}
	result := map[models.CompletionStatus]int64{}
	for _, r := range rows {
		result[r.Status] = r.Total
	}
	return result, nil
}

func (i impl) extQuery() *gorm.DB {
	return i.db.
		Table("task_completions").
		Select(extSelect).
		Joins("JOIN tasks ON tasks.id = task_completions.task_id").
		Joins("JOIN users ON users.id = task_completions.worker_id")
}

func (i impl) addFilter(tx *gorm.DB, filter completionapimodels.CompletionFilter) *gorm.DB {
	if filter.WorkerID != nil {
		tx = tx.Where("task_completions.worker_id = ?", *filter.WorkerID)
	}
	if filter.AdminID != nil {
		tx = tx.Where("tasks.created_by = ?", *filter.AdminID)
	}
	if filter.Status != nil {
		tx = tx.Where("task_completions.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		tx = tx.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.TaskActive != nil {
		tx = tx.Where("tasks.is_active = ?", *filter.TaskActive)
	}
	if filter.DateFrom != nil {
		tx = tx.Where("task_completions.completion_date >= ?", helpers.ToDate(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		tx = tx.Where("task_completions.completion_date <= ?", helpers.ToDate(*filter.DateTo))
	}
	if filter.OrderBy != "" {
		tx = tx.Order(filter.OrderBy)
	}
	tx = tx.Order("task_completions.id DESC")
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	return tx
}
