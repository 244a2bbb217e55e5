package accounthandler

import (
	"fmt"
	"home-task-tracker/config"
	"home-task-tracker/db"
	completionstore "home-task-tracker/lib/completion/store"
	"home-task-tracker/lib/smtp"
	taskstore "home-task-tracker/lib/task/store"
	usersstore "home-task-tracker/lib/users/store"
	apperrors "home-task-tracker/lib/utils/app-errors"
	authutils "home-task-tracker/lib/utils/auth-utils"
	"home-task-tracker/lib/utils/helpers"
	initchecker "home-task-tracker/lib/utils/init-checker"
	weeklyresetstore "home-task-tracker/lib/weekly-reset/store"
	authapimodels "home-task-tracker/models/api/auth"
	dbmodels "home-task-tracker/models/db"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type Provider interface {
	Register(request authapimodels.RegisterRequest) (id uint, hMsg string, err error)
	Login(email, password string) (authapimodels.JWTResponse, error)
	Profile(userID uint) (authapimodels.Profile, error)
	ChangePassword(userID uint, request authapimodels.ChangePasswordRequest) (hMsg string, err error)
	ForgotPassword(email string) error
	ResetPassword(request authapimodels.PasswordResetRequest) (hMsg string, err error)
	DeleteAccount(userID uint, password string) (hMsg string, err error)
}

var Instance Provider

type Params struct {
	JWTSecret      string
	JWTExpireInSec int
	PublicURL      string
	PasswordCost   int
}

func NewHandler() {
	initchecker.CheckInit(
		"mailer", smtp.Instance,
	)
	Instance = NewInstance(db.DB, helpers.SystemClock, smtp.Instance, Params{
		JWTSecret:      config.Conf.Auth.JWTSecret,
		JWTExpireInSec: config.Conf.Auth.JWTExpireInSec,
		PublicURL:      config.Conf.App.PublicURL,
		PasswordCost:   bcrypt.DefaultCost,
	})
}

func NewInstance(conn *gorm.DB, clock helpers.Clock, mailer smtp.Provider, params Params) Provider {
	if params.PasswordCost == 0 {
		params.PasswordCost = bcrypt.DefaultCost
	}
	return impl{
		db:         conn,
		clock:      clock,
		mailer:     mailer,
		params:     params,
		usersStore: usersstore.NewInstance(conn),
	}
}

type impl struct {
	db         *gorm.DB
	clock      helpers.Clock
	mailer     smtp.Provider
	params     Params
	usersStore usersstore.Provider
}

func (i impl) Register(request authapimodels.RegisterRequest) (id uint, hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return 0, "", err
	}
	logger := log.WithField("email", request.Email)
	exist, err := i.usersStore.ExistByEmail(request.Email)
	if err != nil {
		return 0, "", err
	}
	if exist {
		return 0, "Email already registered. Please choose a different one.", nil
	}
	rec := dbmodels.User{
		Email:     request.Email,
		Role:      request.Role,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		IsActive:  true,
	}
	if request.Role.IsWorker() {
		admin, err := i.usersStore.FindByEmail(request.AdminEmail)
		if err != nil {
			return 0, "", err
		}
		if admin == nil {
			return 0, fmt.Sprintf("No user found with email address: %s. Please check the email address and try again.", request.AdminEmail), nil
		}
		if !admin.Role.IsAdmin() {
			return 0, fmt.Sprintf("The email %s belongs to a %s, not an administrator. Please enter an admin email address.", request.AdminEmail, admin.Role), nil
		}
		rec.AdminID = &admin.ID
	}
	rec.Password, err = i.hashPassword(request.Password)
	if err != nil {
		return 0, "", err
	}
	id, err = i.usersStore.Create(rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, "Email already registered. Please choose a different one.", nil
		}
		logger.WithError(err).Error("registration failed")
		return 0, "", err
	}
	logger.WithField("user_id", id).WithField("role", rec.Role).Info("user registered")
	return id, "", nil
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	user, err := i.usersStore.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		logger.WithError(err).Error("failed to find user by email")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || !user.IsActive || !checkPassword(user.Password, password) {
		logger.Debug("login rejected")
		return authapimodels.JWTResponse{}, apperrors.ErrUnauthorized
	}
	token, err := authutils.GetToken(i.params.JWTSecret, i.params.JWTExpireInSec, user.ID, user.GetFullName(), user.Role, i.clock())
	if err != nil {
		logger.WithError(err).Error("failed to sign JWT")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{Token: token}, nil
}

func (i impl) Profile(userID uint) (authapimodels.Profile, error) {
	user, err := i.getUser(userID)
	if err != nil {
		return authapimodels.Profile{}, err
	}
	return authapimodels.ProfileConvert(*user), nil
}

func (i impl) ChangePassword(userID uint, request authapimodels.ChangePasswordRequest) (hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return "", err
	}
	user, err := i.getUser(userID)
	if err != nil {
		return "", err
	}
	if !checkPassword(user.Password, request.CurrentPassword) {
		return "Current password is incorrect.", nil
	}
	hash, err := i.hashPassword(request.NewPassword)
	if err != nil {
		return "", err
	}
	if err = i.usersStore.Update(userID, map[string]interface{}{"password": hash}); err != nil {
		return "", err
	}
	log.WithField("user_id", userID).Info("password changed")
	return "", nil
}

// ForgotPassword answers the same way whether the address is known or not.
func (i impl) ForgotPassword(email string) error {
	logger := log.WithField("email", email)
	user, err := i.usersStore.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if user == nil {
		logger.Debug("password reset requested for unknown email")
		return nil
	}
	token := uuid.NewString()
	expires := i.clock().Add(resetTokenTTL)
	err = i.usersStore.Update(user.ID, map[string]interface{}{
		"reset_token":         token,
		"reset_token_expires": expires,
	})
	if err != nil {
		return err
	}
	link := fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(i.params.PublicURL, "/"), token)
	message := fmt.Sprintf("Hello %s,\n\n"+
		"We received a request to reset your password for your Home Task Tracker account.\n"+
		"Open the link below to choose a new password:\n\n%s\n\n"+
		"This link will expire in 1 hour. If you didn't request this password reset, you can safely ignore this email.\n",
		user.GetFullName(), link)
	if err = i.mailer.SendEMail(user.Email, "Password Reset Request", message); err != nil {
		logger.WithError(err).Error("failed to send password reset email")
		return errors.Wrap(err, "failed to send password reset email")
	}
	return nil
}

func (i impl) ResetPassword(request authapimodels.PasswordResetRequest) (hMsg string, err error) {
	if err = request.Validate(); err != nil {
		return "", err
	}
	user, err := i.usersStore.FindByResetToken(request.ResetCode)
	if err != nil {
		return "", err
	}
	if user == nil || user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(i.clock()) {
		return "The password reset link is invalid or has expired.", nil
	}
	hash, err := i.hashPassword(request.NewPassword)
	if err != nil {
		return "", err
	}
	err = i.usersStore.Update(user.ID, map[string]interface{}{
		"password":            hash,
		"reset_token":         nil,
		"reset_token_expires": nil,
	})
	if err != nil {
		return "", err
	}
	log.WithField("user_id", user.ID).Info("password reset")
	return "", nil
}

func (i impl) DeleteAccount(userID uint, password string) (hMsg string, err error) {
	user, err := i.getUser(userID)
	if err != nil {
		return "", err
	}
	if !checkPassword(user.Password, password) {
		return "Password is incorrect.", nil
	}
	if user.Role.IsAdmin() {
		workers, err := i.usersStore.CountActiveWorkers(userID)
		if err != nil {
			return "", err
		}
		if workers > 0 {
			return fmt.Sprintf("Cannot delete account. You have %d active workers. Please deactivate or transfer them first.", workers), nil
		}
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if user.Role.IsAdmin() {
			if err := taskstore.NewInstance(tx).DeleteByAdmin(userID); err != nil {
				return err
			}
			if err := weeklyresetstore.NewInstance(tx).DeleteByAdmin(userID); err != nil {
				return err
			}
		} else {
			if err := completionstore.NewInstance(tx).DeleteByWorker(userID); err != nil {
				return err
			}
		}
		return usersstore.NewInstance(tx).Delete(userID)
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to delete account")
	}
	log.WithField("user_id", userID).WithField("role", user.Role).Info("account deleted")
	return "", nil
}

func (i impl) getUser(userID uint) (*dbmodels.User, error) {
	user, err := i.usersStore.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Wrapf(apperrors.ErrNotFound, "user %v", userID)
	}
	return user, nil
}

func (i impl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), i.params.PasswordCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
