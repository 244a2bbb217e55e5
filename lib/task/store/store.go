package taskstore

import (
	"home-task-tracker/models"
	taskapimodels "home-task-tracker/models/api/task"
	dbmodels "home-task-tracker/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Task) (uint, error)
	GetByID(id uint) (rec *dbmodels.Task, err error)
	Update(id uint, updMap map[string]interface{}) error
	List(adminID uint, filter taskapimodels.TaskFilter) (list []dbmodels.Task, err error)
	ListByPriority(adminID uint, state models.TaskStateFilter) (list []dbmodels.Task, err error)
	Categories(adminID uint) ([]string, error)
	CountActive(adminID uint) (int64, error)
	DeleteByAdmin(adminID uint) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Task) (uint, error) {
	err := rec.Validate()
	if err != nil {
		return 0, err
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id uint) (*dbmodels.Task, error) {
	rec := dbmodels.Task{}
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

func (i impl) Update(id uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(adminID uint, filter taskapimodels.TaskFilter) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("created_by = ?", adminID)
	tx = i.addFilter(tx, filter)
	err = tx.
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}
	return list, nil
}

// ListByPriority is the worker view of an admin's tasks: high priority first, newest first.
func (i impl) ListByPriority(adminID uint, state models.TaskStateFilter) (list []dbmodels.Task, err error) {
	list = []dbmodels.Task{}
	tx := i.db.
		Model(&dbmodels.Task{}).
		Where("created_by = ?", adminID)
	if active, ok := state.IsActive(); ok {
		tx = tx.Where("is_active = ?", active)
	}
	err = tx.
		Order(models.PriorityRankOrder).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}
	return list, nil
}

func (i impl) Categories(adminID uint) ([]string, error) {
	result := []string{}
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("created_by = ?", adminID).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	return result, nil
}

func (i impl) CountActive(adminID uint) (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.Task{}).
		Where("created_by = ?", adminID).
		Where("is_active = ?", true).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

// DeleteByAdmin removes the admin's tasks together with their completions.
func (i impl) DeleteByAdmin(adminID uint) error {
	taskIDs := i.db.
		Model(&dbmodels.Task{}).
		Select("id").
		Where("created_by = ?", adminID)
	err := i.db.
		Where("task_id IN (?)", taskIDs).
		Delete(&dbmodels.TaskCompletion{}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to delete task completions")
	}
	err = i.db.
		Where("created_by = ?", adminID).
		Delete(&dbmodels.Task{}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to delete tasks")
	}
	return nil
}

func (i impl) addFilter(tx *gorm.DB, filter taskapimodels.TaskFilter) *gorm.DB {
	switch filter.Category {
	case "", models.FilterAll:
	case taskapimodels.CategoryNone:
		tx = tx.Where("(category IS NULL OR category = '')")
	default:
		tx = tx.Where("category = ?", filter.Category)
	}
	if priority, ok := filter.Priority.Priority(); ok {
		tx = tx.Where("priority = ?", priority)
	}
	if active, ok := filter.Status.IsActive(); ok {
		tx = tx.Where("is_active = ?", active)
	}
	return tx
}
