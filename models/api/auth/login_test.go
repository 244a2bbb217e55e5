package authapimodels

import (
	"home-task-tracker/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequest(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{
			Email:           " jane@example.com ",
			FirstName:       "Jane",
			LastName:        "Doe",
			Password:        "secret1",
			ConfirmPassword: "secret1",
			Role:            models.UserRoleWorker,
			AdminEmail:      "admin@example.com",
		}
	}

	t.Run(`valid worker check`, func(t *testing.T) {
		r := valid()
		require.Nil(t, r.Validate())
		require.Equal(t, "jane@example.com", r.Email)
	})

	t.Run(`worker without admin check`, func(t *testing.T) {
		r := valid()
		r.AdminEmail = ""
		require.EqualError(t, r.Validate(), "admin email is required for workers")
	})

	t.Run(`password mismatch check`, func(t *testing.T) {
		r := valid()
		r.ConfirmPassword = "secret2"
		require.NotNil(t, r.Validate())
	})

	t.Run(`unknown role check`, func(t *testing.T) {
		r := valid()
		r.Role = "owner"
		require.NotNil(t, r.Validate())
	})
}
