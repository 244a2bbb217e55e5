package completionhandler

import (
	"home-task-tracker/db"
	completionstore "home-task-tracker/lib/completion/store"
	taskstore "home-task-tracker/lib/task/store"
	usersstore "home-task-tracker/lib/users/store"
	apperrors "home-task-tracker/lib/utils/app-errors"
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	completionapimodels "home-task-tracker/models/api/completion"
	dbmodels "home-task-tracker/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentLimit = 10

type Provider interface {
	Submit(workerID, taskID uint, completionDate time.Time) (completionapimodels.CompletionView, error)
	Review(adminID, completionID uint, status models.CompletionStatus, notes string) (completionapimodels.CompletionView, error)
	MarkPaid(adminID, completionID uint) (completionapimodels.CompletionView, error)
	History(workerID uint, filter models.StatusFilter) ([]completionapimodels.CompletionView, error)
	Recent(workerID uint, filter models.StatusFilter) ([]completionapimodels.CompletionView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, helpers.SystemClock)
}

func NewInstance(conn *gorm.DB, clock helpers.Clock) Provider {
	return impl{
		db:              conn,
		clock:           clock,
		completionStore: completionstore.NewInstance(conn),
		taskStore:       taskstore.NewInstance(conn),
		usersStore:      usersstore.NewInstance(conn),
	}
}

type impl struct {
	db              *gorm.DB
	clock           helpers.Clock
	completionStore completionstore.Provider
	taskStore       taskstore.Provider
	usersStore      usersstore.Provider
}

func (i impl) getLogger(userID, completionID uint) *log.Entry {
	logger := log.WithField("user_id", userID)
	if completionID != 0 {
		logger = logger.WithField("completion_id", completionID)
	}
	return logger
}

func (i impl) Submit(workerID, taskID uint, completionDate time.Time) (completionapimodels.CompletionView, error) {
	logger := i.getLogger(workerID, 0).WithField("task_id", taskID)
	worker, err := i.usersStore.GetByID(workerID)
	if err != nil {
		return completionapimodels.CompletionView{}, err
	}
	if worker == nil || !worker.Role.IsWorker() || worker.AdminID == nil {
		return completionapimodels.CompletionView{}, apperrors.ErrForbidden
	}
	task, err := i.taskStore.GetByID(taskID)
	if err != nil {
		return completionapimodels.CompletionView{}, err
	}
	if task == nil {
		return completionapimodels.CompletionView{}, errors.Wrapf(apperrors.ErrNotFound, "task %v", taskID)
	}
	if !worker.BelongsTo(task.CreatedBy) {
		return completionapimodels.CompletionView{}, apperrors.ErrForbidden
	}

	var completionID uint
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := completionstore.NewInstance(tx)
		existing, err := store.GetByKey(taskID, workerID, completionDate)
		if err != nil {
			return err
		}
		now := i.clock()
		if existing == nil {
			completionID, err = store.Create(dbmodels.TaskCompletion{
				TaskID:         taskID,
				WorkerID:       workerID,
				CompletionDate: helpers.ToDate(completionDate),
				Status:         models.CompletionStatusPending,
				SubmittedAt:    now,
			})
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateSubmission
			}
			return err
		}
		if existing.Status != models.CompletionStatusRejected {
			return apperrors.ErrDuplicateSubmission
		}
		completionID = existing.ID
		return store.Update(existing.ID, models.CompletionStatusRejected, map[string]interface{}{
			"status":       models.CompletionStatusPending,
			"admin_notes":  "",
			"submitted_at": now,
			"reviewed_at":  nil,
			"reviewed_by":  nil,
		})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateSubmission) {
			logger.Debug("task already completed on the selected date")
		}
		return completionapimodels.CompletionView{}, err
	}
	logger.WithField("completion_id", completionID).Info("task completion submitted for approval")
	return i.getView(completionID)
}

func (i impl) Review(adminID, completionID uint, status models.CompletionStatus, notes string) (completionapimodels.CompletionView, error) {
	if !status.IsReviewDecision() {
		return completionapimodels.CompletionView{}, errors.Wrapf(apperrors.ErrInvalidStatus, "status %v", status)
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := completionstore.NewInstance(tx)
		rec, err := i.getOwned(store, taskstore.NewInstance(tx), adminID, completionID)
		if err != nil {
			return err
		}
		if rec.Status != models.CompletionStatusPending {
			return errors.Wrapf(apperrors.ErrInvalidTransition, "completion is %v, only pending tasks can be reviewed", rec.Status)
		}
		return store.Update(rec.ID, models.CompletionStatusPending, map[string]interface{}{
			"status":      status,
			"admin_notes": notes,
			"reviewed_at": i.clock(),
			"reviewed_by": adminID,
		})
	})
	if err != nil {
		return completionapimodels.CompletionView{}, err
	}
	i.getLogger(adminID, completionID).WithField("status", status).Info("task completion reviewed")
	return i.getView(completionID)
}

func (i impl) MarkPaid(adminID, completionID uint) (completionapimodels.CompletionView, error) {
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := completionstore.NewInstance(tx)
		rec, err := i.getOwned(store, taskstore.NewInstance(tx), adminID, completionID)
		if err != nil {
			return err
		}
		if rec.Status != models.CompletionStatusApproved {
			return errors.Wrap(apperrors.ErrInvalidTransition, "only approved tasks can be marked as paid")
		}
		return store.Update(rec.ID, models.CompletionStatusApproved, map[string]interface{}{
			"status":      models.CompletionStatusPaid,
			"reviewed_at": i.clock(),
			"reviewed_by": adminID,
		})
	})
	if err != nil {
		return completionapimodels.CompletionView{}, err
	}
	i.getLogger(adminID, completionID).Info("task completion marked as paid")
	return i.getView(completionID)
}

func (i impl) History(workerID uint, filter models.StatusFilter) ([]completionapimodels.CompletionView, error) {
	return i.listForWorker(workerID, filter, 0)
}

func (i impl) Recent(workerID uint, filter models.StatusFilter) ([]completionapimodels.CompletionView, error) {
	return i.listForWorker(workerID, filter, recentLimit)
}

func (i impl) listForWorker(workerID uint, filter models.StatusFilter, limit int) ([]completionapimodels.CompletionView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	storeFilter := completionapimodels.CompletionFilter{
		WorkerID: &workerID,
		OrderBy:  completionapimodels.OrderSubmittedAtDesc,
		Limit:    limit,
	}
	if status, ok := filter.Status(); ok {
		storeFilter.Status = &status
	}
	list, err := i.completionStore.List(storeFilter)
	if err != nil {
		return nil, err
	}
	return completionapimodels.CompletionListConvert(list), nil
}

// getOwned loads the completion and checks that its task was created by adminID.
func (i impl) getOwned(store completionstore.Provider, tasks taskstore.Provider, adminID, completionID uint) (*dbmodels.TaskCompletion, error) {
	rec, err := store.GetByID(completionID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "completion %v", completionID)
	}
	task, err := tasks.GetByID(rec.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.CreatedBy != adminID {
		return nil, apperrors.ErrForbidden
	}
	return rec, nil
}

func (i impl) getView(completionID uint) (completionapimodels.CompletionView, error) {
	rec, err := i.completionStore.GetExtByID(completionID)
	if err != nil {
		return completionapimodels.CompletionView{}, err
	}
	if rec == nil {
		return completionapimodels.CompletionView{}, errors.Wrapf(apperrors.ErrNotFound, "completion %v", completionID)
	}
	return completionapimodels.CompletionConvert(*rec), nil
}
