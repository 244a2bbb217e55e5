package dbmodels

import (
	"home-task-tracker/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type Task struct {
	BaseModel
	Title         string              `gorm:"type:varchar(200);not null"`
	Description   string              `gorm:"type:text"`
	MonetaryValue decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	Category      string              `gorm:"type:varchar(100);index"`
	Priority      models.TaskPriority `gorm:"type:varchar(20);not null"`
	IsActive      bool                `gorm:"not null;index"`
	CreatedBy     uint                `gorm:"not null;index"`
}

func (j Task) Validate() error {
	if j.CreatedBy == 0 {
		return errors.New("task owner is not set")
	}
	if j.Title == "" {
		return errors.New("task title is required")
	}
	if !j.MonetaryValue.IsPositive() {
		return errors.New("monetary value must be greater than zero")
	}
	if !j.MonetaryValue.Equal(j.MonetaryValue.Round(2)) {
		return errors.New("monetary value must have at most two decimal places")
	}
	if !j.Priority.IsValid() {
		return errors.Errorf("unknown priority %v", j.Priority)
	}
	return nil
}
