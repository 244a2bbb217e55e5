package db

import (
	dbmodels "home-task-tracker/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func AutoMigrateDB() error {
	log.Info("Running migrations")
	if err := Migrate(DB); err != nil {
		return err
	}
	log.Info("Migrations finished")
	return nil
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "failed to migrate User")
	}
	if err := conn.AutoMigrate(&dbmodels.Task{}); err != nil {
		return errors.Wrap(err, "failed to migrate Task")
	}
	if err := conn.AutoMigrate(&dbmodels.TaskCompletion{}); err != nil {
		return errors.Wrap(err, "failed to migrate TaskCompletion")
	}
	if err := conn.AutoMigrate(&dbmodels.WeeklyReset{}); err != nil {
		return errors.Wrap(err, "failed to migrate WeeklyReset")
	}
	return nil
}
