package authapimodels

import (
	"home-task-tracker/models"
	apimodels "home-task-tracker/models/api"
	"strings"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RegisterRequest struct {
	Email           string          `json:"email" validate:"required,email,max=120"`
	FirstName       string          `json:"first_name" validate:"required,min=2,max=50"`
	LastName        string          `json:"last_name" validate:"required,min=2,max=50"`
	Password        string          `json:"password" validate:"required,min=6"`
	ConfirmPassword string          `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            models.UserRole `json:"role" validate:"required"`
	AdminEmail      string          `json:"admin_email" validate:"omitempty,email"` // required for workers
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.AdminEmail = strings.TrimSpace(r.AdminEmail)
	if err := apimodels.ValidateStruct(r); err != nil {
		return err
	}
	if !r.Role.IsValid() {
		return errors.Errorf("unknown role %v", r.Role)
	}
	if r.Role.IsWorker() && r.AdminEmail == "" {
		return errors.New("admin email is required for workers")
	}
	return nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type PasswordRecovery struct {
	Email string `json:"email" validate:"required,email"` // address that receives the reset link
}

func (r PasswordRecovery) Validate() error {
	return apimodels.ValidateStruct(r)
}

type PasswordResetRequest struct {
	ResetCode       string `json:"reset_code" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

func (r PasswordResetRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

func (r DeleteAccountRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}
