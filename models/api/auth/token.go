package authapimodels

import (
	"home-task-tracker/models"
	dbmodels "home-task-tracker/models/db"
	"time"
)

type JWTResponse struct {
	Token string `json:"token"`
}

type Profile struct {
	ID        uint            `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
	AdminID   *uint           `json:"admin_id,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

func ProfileConvert(rec dbmodels.User) Profile {
	return Profile{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Role:      rec.Role,
		AdminID:   rec.AdminID,
		IsActive:  rec.IsActive,
		CreatedAt: rec.CreatedAt,
	}
}
