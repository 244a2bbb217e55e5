package middleware

import (
	authutils "home-task-tracker/lib/utils/auth-utils"
	"home-task-tracker/models"
	apimodels "home-task-tracker/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRequired() fiber.Handler {
	return RoleRequired(models.UserRoleAdmin)
}

func WorkerRequired() fiber.Handler {
	return RoleRequired(models.UserRoleWorker)
}

// RoleRequired must run after AuthorizationRequired.
func RoleRequired(role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if authutils.GetUserRole(ctx) != role {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("access denied"))
		}
		return ctx.Next()
	}
}
