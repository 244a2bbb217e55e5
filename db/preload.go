package db

import (
	"home-task-tracker/config"
	usersstore "home-task-tracker/lib/users/store"
	"home-task-tracker/models"
	dbmodels "home-task-tracker/models/db"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func InitPreload() {
	addAdmin()
}

func addAdmin() {
	if config.Conf.Admin.Email == "" || config.Conf.Admin.Password == "" {
		log.Info("bootstrap admin not added, ADMIN_EMAIL or ADMIN_PASSWORD is not set")
		return
	}
	logger := log.WithField("email", config.Conf.Admin.Email)
	store := usersstore.NewInstance(DB)
	exist, err := store.ExistByEmail(config.Conf.Admin.Email)
	if err != nil {
		logger.WithError(err).Error("failed to add bootstrap admin")
		return
	}
	if exist {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(config.Conf.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.WithError(err).Error("failed to add bootstrap admin")
		return
	}
	rec := dbmodels.User{
		Email:     config.Conf.Admin.Email,
		Role:      models.UserRoleAdmin,
		FirstName: config.Conf.Admin.FirstName,
		LastName:  config.Conf.Admin.LastName,
		Password:  string(hash),
		IsActive:  true,
	}
	if _, err = store.Create(rec); err != nil {
		logger.WithError(err).Error("failed to add bootstrap admin")
		return
	}
	logger.Info("bootstrap admin added")
}
