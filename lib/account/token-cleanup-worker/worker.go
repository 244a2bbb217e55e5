package tokencleanupworker

import (
	"context"
	"home-task-tracker/db"
	usersstore "home-task-tracker/lib/users/store"
	baseworker "home-task-tracker/lib/utils/base-worker"
	"home-task-tracker/lib/utils/helpers"
	"time"

	"gorm.io/gorm"
)

func StartWorker(ctx context.Context) {
	i := newInstance(db.DB, helpers.SystemClock)
	go i.Run(ctx, i.handle)
}

func newInstance(conn *gorm.DB, clock helpers.Clock) *impl {
	return &impl{
		BaseImpl:   *baseworker.NewInstance("ResetTokenCleanupWorker", 30*time.Second, 60*time.Minute),
		clock:      clock,
		usersStore: usersstore.NewInstance(conn),
	}
}

type impl struct {
	baseworker.BaseImpl
	clock      helpers.Clock
	usersStore usersstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	cleared, err := i.usersStore.ClearExpiredResetTokens(i.clock())
	if err != nil {
		logger.WithError(err).Error("failed to clear expired password reset tokens")
		return
	}
	if cleared != 0 {
		logger.WithField("cleared", cleared).Info("expired password reset tokens cleared")
	}
}
