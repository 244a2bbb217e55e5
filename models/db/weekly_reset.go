package dbmodels

import (
	"time"

	"gorm.io/datatypes"
)

type WeeklyReset struct {
	ID        uint           `gorm:"primaryKey"`
	AdminID   uint           `gorm:"not null;uniqueIndex:idx_weekly_reset_admin_day,priority:1"`
	ResetDate datatypes.Date `gorm:"type:date;not null;uniqueIndex:idx_weekly_reset_admin_day,priority:2"`
	CreatedAt time.Time
}
