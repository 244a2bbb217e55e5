package usersstore

import (
	"home-task-tracker/models"
	dbmodels "home-task-tracker/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.User) (uint, error)
	Update(userID uint, updMap map[string]interface{}) error
	Delete(userID uint) error
	GetByID(userID uint) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	FindByResetToken(token string) (rec *dbmodels.User, err error)
	ExistByEmail(email string) (bool, error)
	ListWorkers(adminID uint, onlyActive bool) (list []dbmodels.User, err error)
	CountActiveWorkers(adminID uint) (int64, error)
	ClearExpiredResetTokens(before time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (uint, error) {
	err := rec.Validate()
	if err != nil {
		return 0, err
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return 0, err
	}
	return rec.ID, nil
}

func (i impl) Update(userID uint, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(userID uint) error {
	return i.db.
		Where("id = ?", userID).
		Delete(&dbmodels.User{}).
		Error
}

func (i impl) GetByID(userID uint) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByEmail(email string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByResetToken(token string) (*dbmodels.User, error) {
	if token == "" {
		return nil, nil
	}
	rec := dbmodels.User{}
	err := i.db.
		Where("reset_token = ?", token).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ExistByEmail(email string) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.User{}).
		Where("email = ?", email).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount != 0, nil
}

// ListWorkers returns the admin's workers in id order.
func (i impl) ListWorkers(adminID uint, onlyActive bool) (list []dbmodels.User, err error) {
	list = []dbmodels.User{}
	tx := i.db.
		Where("admin_id = ?", adminID).
		Where("role = ?", models.UserRoleWorker)
	if onlyActive {
		tx = tx.Where("is_active = ?", true)
	}
	err = tx.
		Order("id ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list workers")
	}
	return list, nil
}

func (i impl) CountActiveWorkers(adminID uint) (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.User{}).
		Where("admin_id = ?", adminID).
		Where("is_active = ?", true).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

// ClearExpiredResetTokens drops reset tokens that expired before the given moment.
func (i impl) ClearExpiredResetTokens(before time.Time) (int64, error) {
	result := i.db.
		Model(&dbmodels.User{}).
		Where("reset_token IS NOT NULL").
		Where("reset_token_expires < ?", before).
		Updates(map[string]interface{}{
			"reset_token":         nil,
			"reset_token_expires": nil,
		})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to clear expired reset tokens")
	}
	return result.RowsAffected, nil
}
