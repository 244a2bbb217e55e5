package completionapimodels

import (
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	apimodels "home-task-tracker/models/api"
	dbmodels "home-task-tracker/models/db"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type SubmitRequest struct {
	CompletionDate string `json:"completion_date" validate:"required,datetime=2006-01-02"` // yyyy-mm-dd
}

func (r SubmitRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

func (r SubmitRequest) GetDate() time.Time {
	date, _ := helpers.ParseISODate(r.CompletionDate)
	return date
}

type ReviewRequest struct {
	Status     models.CompletionStatus `json:"status" validate:"required"`
	AdminNotes string                  `json:"admin_notes"`
}

func (r ReviewRequest) Validate() error {
	if err := apimodels.ValidateStruct(r); err != nil {
		return err
	}
	if !r.Status.IsValid() {
		return errors.Errorf("unknown status %v", r.Status)
	}
	return nil
}

const (
	OrderCompletionDateDesc = "task_completions.completion_date DESC"
	OrderSubmittedAtDesc    = "task_completions.submitted_at DESC"
	OrderReviewedAtDesc     = "task_completions.reviewed_at DESC"
)

// CompletionFilter narrows completion queries; nil fields are not applied.
type CompletionFilter struct {
	WorkerID   *uint
	AdminID    *uint // owner of the task
	Status     *models.CompletionStatus
	Priority   *models.TaskPriority
	TaskActive *bool
	DateFrom   *time.Time
	DateTo     *time.Time
	OrderBy    string
	Limit      int
}

// CompletionView is a completion as shown in lists and reports.
type CompletionView struct {
	ID             uint                    `json:"id"`
	TaskID         uint                    `json:"task_id"`
	TaskTitle      string                  `json:"task_title"`
	WorkerID       uint                    `json:"worker_id"`
	WorkerName     string                  `json:"worker_name"`
	CompletionDate time.Time               `json:"completion_date"`
	Value          decimal.Decimal         `json:"value"`
	Status         models.CompletionStatus `json:"status"`
	AdminNotes     string                  `json:"admin_notes,omitempty"`
	SubmittedAt    time.Time               `json:"submitted_at"`
	ReviewedAt     *time.Time              `json:"reviewed_at"`
	ReviewedBy     *uint                   `json:"reviewed_by"`
}

func CompletionConvert(rec dbmodels.TaskCompletionExt) CompletionView {
	return CompletionView{
		ID:             rec.ID,
		TaskID:         rec.TaskID,
		TaskTitle:      rec.TaskTitle,
		WorkerID:       rec.WorkerID,
		WorkerName:     rec.GetWorkerFullName(),
		CompletionDate: helpers.FromDate(rec.CompletionDate),
		Value:          rec.MonetaryValue,
		Status:         rec.Status,
		AdminNotes:     rec.AdminNotes,
		SubmittedAt:    rec.SubmittedAt,
		ReviewedAt:     rec.ReviewedAt,
		ReviewedBy:     rec.ReviewedBy,
	}
}

func CompletionListConvert(list []dbmodels.TaskCompletionExt) []CompletionView {
	result := make([]CompletionView, 0, len(list))
	for _, rec := range list {
		result = append(result, CompletionConvert(rec))
	}
	return result
}
