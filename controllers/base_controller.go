package controllers

import (
	apperrors "home-task-tracker/lib/utils/app-errors"
	authutils "home-task-tracker/lib/utils/auth-utils"
	apimodels "home-task-tracker/models/api"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read data from request")
	}
	return nil
}

func (c *BaseAPIController) QueryParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		log.WithError(err).Error("failed to parse request query")
		return errors.New("failed to read query parameters")
	}
	return nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.WithField("method", ctx.Method()).WithField("path", ctx.Path())
	if userID, err := authutils.GetUserID(ctx); err == nil {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

// GetID reads a positive numeric id from the route param, "id" by default.
func (c *BaseAPIController) GetID(ctx *fiber.Ctx, param ...string) (uint, error) {
	name := "id"
	if len(param) != 0 {
		name = param[0]
	}
	value, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.Errorf("invalid %s", name)
	}
	return uint(value), nil
}

// GetUserID is the id of the authenticated principal.
func (c *BaseAPIController) GetUserID(ctx *fiber.Ctx) (uint, error) {
	return authutils.GetUserID(ctx)
}

// SendError maps domain errors to http statuses. Soft errors are answered with a warning and status 200.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	switch {
	case apperrors.IsSoft(err):
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewWarning(errors.Cause(err).Error()))
	case errors.Is(err, apperrors.ErrUnauthorized):
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(apperrors.ErrUnauthorized.Error()))
	case errors.Is(err, apperrors.ErrForbidden):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(apperrors.ErrForbidden.Error()))
	case errors.Is(err, apperrors.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, apperrors.ErrInvalidStatus):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

// SendHMsg answers a soft refusal produced by a handler.
func (c *BaseAPIController) SendHMsg(ctx *fiber.Ctx, hMsg string) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewWarning(hMsg))
}
