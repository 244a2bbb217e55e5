package taskapimodels

import (
	"home-task-tracker/models"
	apimodels "home-task-tracker/models/api"
	dbmodels "home-task-tracker/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type TaskData struct {
	Title         string              `json:"title" validate:"required,min=3,max=200"`
	Description   string              `json:"description" validate:"max=200"`
	MonetaryValue decimal.Decimal     `json:"monetary_value"`
	Category      string              `json:"category" validate:"max=100"`
	Priority      models.TaskPriority `json:"priority"`
}

func (r *TaskData) Validate() error {
	if r.Priority == "" {
		r.Priority = models.TaskPriorityNormal
	}
	r.Category = strings.TrimSpace(r.Category)
	if err := apimodels.ValidateStruct(r); err != nil {
		return err
	}
	if r.MonetaryValue.LessThan(decimal.RequireFromString("0.01")) {
		return errors.New("monetary value must be at least 0.01")
	}
	if !r.Priority.IsValid() {
		return errors.Errorf("unknown priority %v", r.Priority)
	}
	return nil
}

// CategoryNone selects tasks without a category.
const CategoryNone = "none"

type TaskFilter struct {
	Category string                 `json:"category" query:"category"` // all | none | <category name>
	Priority models.PriorityFilter  `json:"priority" query:"priority"`
	Status   models.TaskStateFilter `json:"status" query:"status"`
}

func (f TaskFilter) Validate() error {
	if err := f.Priority.Validate(); err != nil {
		return err
	}
	return f.Status.Validate()
}

type TaskView struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	MonetaryValue decimal.Decimal     `json:"monetary_value"`
	Category      string              `json:"category"`
	Priority      models.TaskPriority `json:"priority"`
	IsActive      bool                `json:"is_active"`
	CreatedAt     time.Time           `json:"created_at"`
}

func TaskConvert(rec dbmodels.Task) TaskView {
	return TaskView{
		ID:            rec.ID,
		Title:         rec.Title,
		Description:   rec.Description,
		MonetaryValue: rec.MonetaryValue,
		Category:      rec.Category,
		Priority:      rec.Priority,
		IsActive:      rec.IsActive,
		CreatedAt:     rec.CreatedAt,
	}
}
