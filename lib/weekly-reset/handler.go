package weeklyresethandler

import (
	"home-task-tracker/db"
	completionstore "home-task-tracker/lib/completion/store"
	usersstore "home-task-tracker/lib/users/store"
	apperrors "home-task-tracker/lib/utils/app-errors"
	"home-task-tracker/lib/utils/helpers"
	weeklyresetstore "home-task-tracker/lib/weekly-reset/store"
	"home-task-tracker/models"
	completionapimodels "home-task-tracker/models/api/completion"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Reset purges the pending completions of the admin's tasks once per day and returns how many were removed.
	Reset(adminID uint) (int, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, helpers.SystemClock)
}

func NewInstance(conn *gorm.DB, clock helpers.Clock) Provider {
	return impl{
		db:         conn,
		clock:      clock,
		usersStore: usersstore.NewInstance(conn),
		resetStore: weeklyresetstore.NewInstance(conn),
	}
}

type impl struct {
	db         *gorm.DB
	clock      helpers.Clock
	usersStore usersstore.Provider
	resetStore weeklyresetstore.Provider
}

func (i impl) getLogger(adminID uint) *log.Entry {
	return log.WithField("admin_id", adminID)
}

func (i impl) Reset(adminID uint) (int, error) {
	logger := i.getLogger(adminID)
	admin, err := i.usersStore.GetByID(adminID)
	if err != nil {
		return 0, err
	}
	if admin == nil || !admin.Role.IsAdmin() {
		return 0, apperrors.ErrForbidden
	}
	today := helpers.Day(i.clock())
	exist, err := i.resetStore.Exists(adminID, today)
	if err != nil {
		return 0, err
	}
	if exist {
		return 0, apperrors.ErrAlreadyReset
	}

	deleted := 0
	err = i.db.Transaction(func(tx *gorm.DB) error {
		completionStore := completionstore.NewInstance(tx)
		status := models.CompletionStatusPending
		pending, err := completionStore.List(completionapimodels.CompletionFilter{
			AdminID: &adminID,
			Status:  &status,
		})
		if err != nil {
			return err
		}
		ids := make([]uint, 0, len(pending))
		for _, rec := range pending {
			ids = append(ids, rec.ID)
		}
		if err = completionStore.DeleteByIDs(ids); err != nil {
			return errors.Wrap(err, "failed to delete pending completions")
		}
		if _, err = weeklyresetstore.NewInstance(tx).Create(adminID, today); err != nil {
			return err
		}
		deleted = len(ids)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apperrors.ErrAlreadyReset
		}
		logger.WithError(err).Error("weekly reset rolled back")
		return 0, apperrors.NewResetFailed(err)
	}
	logger.WithField("deleted", deleted).Info("weekly reset completed")
	return deleted, nil
}
