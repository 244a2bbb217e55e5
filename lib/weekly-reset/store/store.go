package weeklyresetstore

import (
	"home-task-tracker/lib/utils/helpers"
	dbmodels "home-task-tracker/models/db"
	"time"

	"gorm.io/gorm"
)

type Provider interface {
	Create(adminID uint, day time.Time) (uint, error)
	Exists(adminID uint, day time.Time) (bool, error)
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

func (i impl) Create(adminID uint, day time.Time) (uint, error) {
	rec := dbmodels.WeeklyReset{
		AdminID:   adminID,
		ResetDate: helpers.ToDate(day),
	}
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) Exists(adminID uint, day time.Time) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.WeeklyReset{}).
		Where("admin_id = ?", adminID).
		Where("reset_date = ?", helpers.ToDate(day)).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount != 0, nil
}

func (i impl) DeleteByAdmin(adminID uint) error {
	return i.db.
		Where("admin_id = ?", adminID).
		Delete(&dbmodels.WeeklyReset{}).
		Error
}
