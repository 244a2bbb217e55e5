package dbmodels

import (
	"fmt"
	"home-task-tracker/models"
	"time"

	"github.com/pkg/errors"
)

type User struct {
	BaseModel
	Email             string          `gorm:"type:varchar(120);uniqueIndex;not null"`
	Password          string          `gorm:"type:varchar(256);not null"`
	Role              models.UserRole `gorm:"type:varchar(20);not null"`
	AdminID           *uint           `gorm:"index"`
	FirstName         string          `gorm:"type:varchar(50);not null"`
	LastName          string          `gorm:"type:varchar(50);not null"`
	IsActive          bool            `gorm:"not null"`
	ResetToken        *string         `gorm:"type:varchar(256);index"`
	ResetTokenExpires *time.Time
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

// BelongsTo reports whether r is a worker assigned to adminID.
func (r User) BelongsTo(adminID uint) bool {
	return r.Role.IsWorker() && r.AdminID != nil && *r.AdminID == adminID
}

func (r User) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("unknown role %v", r.Role)
	}
	if r.Role.IsWorker() && (r.AdminID == nil || *r.AdminID == 0) {
		return errors.New("worker must be assigned to an admin")
	}
	if r.Role.IsAdmin() && r.AdminID != nil {
		return errors.New("admin cannot be assigned to another admin")
	}
	return nil
}
