package accounthandler

import (
	apperrors "home-task-tracker/lib/utils/app-errors"
	authutils "home-task-tracker/lib/utils/auth-utils"
	"home-task-tracker/lib/utils/testdb"
	"home-task-tracker/models"
	authapimodels "home-task-tracker/models/api/auth"
	dbmodels "home-task-tracker/models/db"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type sentMail struct {
	to      string
	subject string
	message string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) SendEMail(to, subject, message string) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, message: message})
	return nil
}

var now = time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)

func newHandler(conn *gorm.DB, mailer *fakeMailer, at time.Time) Provider {
	return NewInstance(conn, testdb.FixedClock(at), mailer, Params{
		JWTSecret:      "secret",
		JWTExpireInSec: 3600,
		PublicURL:      "http://tracker.local/",
		PasswordCost:   bcrypt.MinCost,
	})
}

func registerRequest(email string, role models.UserRole, adminEmail string) authapimodels.RegisterRequest {
	return authapimodels.RegisterRequest{
		Email:           email,
		FirstName:       "Jane",
		LastName:        "Doe",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            role,
		AdminEmail:      adminEmail,
	}
}

func TestRegister(t *testing.T) {
	t.Run(`admin and worker check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)

		adminID, hMsg, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)
		require.Empty(t, hMsg)

		workerID, hMsg, err := handler.Register(registerRequest("worker@example.com", models.UserRoleWorker, "admin@example.com"))
		require.Nil(t, err)
		require.Empty(t, hMsg)

		profile, err := handler.Profile(workerID)
		require.Nil(t, err)
		require.Equal(t, models.UserRoleWorker, profile.Role)
		require.NotNil(t, profile.AdminID)
		require.Equal(t, adminID, *profile.AdminID)
		require.True(t, profile.IsActive)
	})

	t.Run(`soft failures check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)
		_, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)
		_, _, err = handler.Register(registerRequest("worker@example.com", models.UserRoleWorker, "admin@example.com"))
		require.Nil(t, err)

		_, hMsg, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)
		require.Equal(t, "Email already registered. Please choose a different one.", hMsg)

		_, hMsg, err = handler.Register(registerRequest("new@example.com", models.UserRoleWorker, "nobody@example.com"))
		require.Nil(t, err)
		require.Contains(t, hMsg, "No user found with email address: nobody@example.com")

		_, hMsg, err = handler.Register(registerRequest("new@example.com", models.UserRoleWorker, "worker@example.com"))
		require.Nil(t, err)
		require.Contains(t, hMsg, "belongs to a worker, not an administrator")
	})
}

func TestLogin(t *testing.T) {
	t.Run(`login check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)
		adminID, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)

		resp, err := newHandler(conn, &fakeMailer{}, time.Now()).Login("admin@example.com", "secret1")
		require.Nil(t, err)
		claims, err := authutils.ParseToken("secret", resp.Token)
		require.Nil(t, err)
		id, err := authutils.ClaimsUserID(claims)
		require.Nil(t, err)
		require.Equal(t, adminID, id)
		require.Equal(t, models.UserRoleAdmin, authutils.ClaimsRole(claims))

		_, err = handler.Login("admin@example.com", "wrong")
		require.True(t, errors.Is(err, apperrors.ErrUnauthorized))
		_, err = handler.Login("nobody@example.com", "secret1")
		require.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run(`inactive user check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)
		adminID, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)
		require.Nil(t, conn.Model(&dbmodels.User{}).Where("id = ?", adminID).Update("is_active", false).Error)

		_, err = handler.Login("admin@example.com", "secret1")
		require.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	})
}

func TestPasswords(t *testing.T) {
	t.Run(`change password check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)
		adminID, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)

		hMsg, err := handler.ChangePassword(adminID, authapimodels.ChangePasswordRequest{
			CurrentPassword: "wrong",
			NewPassword:     "secret2",
			ConfirmPassword: "secret2",
		})
		require.Nil(t, err)
		require.Equal(t, "Current password is incorrect.", hMsg)

		hMsg, err = handler.ChangePassword(adminID, authapimodels.ChangePasswordRequest{
			CurrentPassword: "secret1",
			NewPassword:     "secret2",
			ConfirmPassword: "secret2",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		_, err = handler.Login("admin@example.com", "secret2")
		require.Nil(t, err)
	})

	t.Run(`forgot and reset check`, func(t *testing.T) {
		conn := testdb.New(t)
		mailer := &fakeMailer{}
		handler := newHandler(conn, mailer, now)
		_, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)

		require.Nil(t, handler.ForgotPassword("nobody@example.com"))
		require.Empty(t, mailer.sent)

		require.Nil(t, handler.ForgotPassword("admin@example.com"))
		require.Len(t, mailer.sent, 1)
		require.Equal(t, "admin@example.com", mailer.sent[0].to)
		require.Contains(t, mailer.sent[0].message, "http://tracker.local/reset-password/")

		user := dbmodels.User{}
		require.Nil(t, conn.Where("email = ?", "admin@example.com").First(&user).Error)
		require.NotNil(t, user.ResetToken)
		require.Contains(t, mailer.sent[0].message, *user.ResetToken)

		expired := newHandler(conn, mailer, now.Add(61*time.Minute))
		hMsg, err := expired.ResetPassword(authapimodels.PasswordResetRequest{
			ResetCode:       *user.ResetToken,
			NewPassword:     "secret3",
			ConfirmPassword: "secret3",
		})
		require.Nil(t, err)
		require.Equal(t, "The password reset link is invalid or has expired.", hMsg)

		hMsg, err = newHandler(conn, mailer, now.Add(30*time.Minute)).ResetPassword(authapimodels.PasswordResetRequest{
			ResetCode:       *user.ResetToken,
			NewPassword:     "secret3",
			ConfirmPassword: "secret3",
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		_, err = handler.Login("admin@example.com", "secret3")
		require.Nil(t, err)

		hMsg, err = handler.ResetPassword(authapimodels.PasswordResetRequest{
			ResetCode:       *user.ResetToken,
			NewPassword:     "secret4",
			ConfirmPassword: "secret4",
		})
		require.Nil(t, err)
		require.True(t, strings.HasPrefix(hMsg, "The password reset link is invalid"))
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run(`admin with active workers check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)
		adminID, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)
		_, _, err = handler.Register(registerRequest("worker@example.com", models.UserRoleWorker, "admin@example.com"))
		require.Nil(t, err)

		hMsg, err := handler.DeleteAccount(adminID, "secret1")
		require.Nil(t, err)
		require.Contains(t, hMsg, "You have 1 active workers")
		_, err = handler.Profile(adminID)
		require.Nil(t, err)
	})

	t.Run(`admin cascade check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)
		adminID, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)
		workerID, _, err := handler.Register(registerRequest("worker@example.com", models.UserRoleWorker, "admin@example.com"))
		require.Nil(t, err)
		task := testdb.CreateTask(t, conn, adminID, "Wash dishes", "1.00", models.TaskPriorityLow)
		testdb.CreateCompletion(t, conn, task.ID, workerID, testdb.Date(2024, time.March, 4), models.CompletionStatusPaid)
		require.Nil(t, conn.Model(&dbmodels.User{}).Where("id = ?", workerID).Update("is_active", false).Error)

		hMsg, err := handler.DeleteAccount(adminID, "wrong")
		require.Nil(t, err)
		require.Equal(t, "Password is incorrect.", hMsg)

		hMsg, err = handler.DeleteAccount(adminID, "secret1")
		require.Nil(t, err)
		require.Empty(t, hMsg)

		var tasks, completions int64
		require.Nil(t, conn.Model(&dbmodels.Task{}).Count(&tasks).Error)
		require.Nil(t, conn.Model(&dbmodels.TaskCompletion{}).Count(&completions).Error)
		require.Equal(t, int64(0), tasks)
		require.Equal(t, int64(0), completions)
		_, err = handler.Profile(adminID)
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run(`worker cascade check`, func(t *testing.T) {
		conn := testdb.New(t)
		handler := newHandler(conn, &fakeMailer{}, now)
		adminID, _, err := handler.Register(registerRequest("admin@example.com", models.UserRoleAdmin, ""))
		require.Nil(t, err)
		workerID, _, err := handler.Register(registerRequest("worker@example.com", models.UserRoleWorker, "admin@example.com"))
		require.Nil(t, err)
		task := testdb.CreateTask(t, conn, adminID, "Wash dishes", "1.00", models.TaskPriorityLow)
		testdb.CreateCompletion(t, conn, task.ID, workerID, testdb.Date(2024, time.March, 4), models.CompletionStatusApproved)

		hMsg, err := handler.DeleteAccount(workerID, "secret1")
		require.Nil(t, err)
		require.Empty(t, hMsg)

		var tasks, completions int64
		require.Nil(t, conn.Model(&dbmodels.Task{}).Count(&tasks).Error)
		require.Nil(t, conn.Model(&dbmodels.TaskCompletion{}).Count(&completions).Error)
		require.Equal(t, int64(1), tasks)
		require.Equal(t, int64(0), completions)
	})
}
