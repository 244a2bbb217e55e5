package dbmodels

import (
	"fmt"
	"home-task-tracker/models"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TaskCompletion is unique per (task, worker, day): a rejected row is resubmitted in place.
type TaskCompletion struct {
	ID             uint                    `gorm:"primaryKey" json:"id"`
	TaskID         uint                    `gorm:"not null;uniqueIndex:idx_task_completion_key,priority:1"`
	WorkerID       uint                    `gorm:"not null;uniqueIndex:idx_task_completion_key,priority:2;index"`
	CompletionDate datatypes.Date          `gorm:"type:date;not null;uniqueIndex:idx_task_completion_key,priority:3"`
	Status         models.CompletionStatus `gorm:"type:varchar(20);not null;index"`
	AdminNotes     string                  `gorm:"type:text"`
	SubmittedAt    time.Time
	ReviewedAt     *time.Time
	ReviewedBy     *uint
}

// TaskCompletionExt is a completion joined with its task and worker.
type TaskCompletionExt struct {
	TaskCompletion
	TaskTitle       string
	MonetaryValue   decimal.Decimal
	TaskPriority    models.TaskPriority
	TaskIsActive    bool
	TaskCreatedBy   uint
	WorkerFirstName string
	WorkerLastName  string
}

func (r TaskCompletionExt) GetWorkerFullName() string {
	return fmt.Sprintf("%s %s", r.WorkerFirstName, r.WorkerLastName)
}
