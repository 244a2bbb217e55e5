package apiv1

import (
	"home-task-tracker/controllers"
	accounthandler "home-task-tracker/lib/account"
	apimodels "home-task-tracker/models/api"
	authapimodels "home-task-tracker/models/api/auth"

	"github.com/gofiber/fiber/v2"
)

type profileApiController struct {
	controllers.BaseAPIController
}

func InitProfileApiRouters(app *fiber.App) {
	controller := profileApiController{}
	app.Get("", controller.me)
	app.Put("password", controller.changePassword)
	app.Post("delete", controller.deleteAccount)
}

// @Summary Current user
// @Tags Profile
// @Description Current user
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.Profile}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile [get]
func (c *profileApiController) me(ctx *fiber.Ctx) error {
	userID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	resp, err := accounthandler.Instance.Profile(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get profile")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Change password
// @Tags Profile
// @Description Change password
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		authapimodels.ChangePasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile/password [put]
func (c *profileApiController) changePassword(ctx *fiber.Ctx) error {
	userID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	var payload authapimodels.ChangePasswordRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := accounthandler.Instance.ChangePassword(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to change password")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Your password has been changed successfully.", nil))
}

// @Summary Delete own account
// @Tags Profile
// @Description Admins with active workers cannot delete their account
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		authapimodels.DeleteAccountRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile/delete [post]
func (c *profileApiController) deleteAccount(ctx *fiber.Ctx) error {
	userID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	var payload authapimodels.DeleteAccountRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := accounthandler.Instance.DeleteAccount(userID, payload.Password)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to delete account")
	}
	if hMsg != "" {
		return c.SendHMsg(ctx, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Your account has been deleted.", nil))
}
