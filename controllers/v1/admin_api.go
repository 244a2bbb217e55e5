package apiv1

import (
	"home-task-tracker/controllers"
	completionhandler "home-task-tracker/lib/completion"
	paymenthandler "home-task-tracker/lib/payment"
	taskhandler "home-task-tracker/lib/task"
	"home-task-tracker/lib/utils/helpers"
	weeklyresethandler "home-task-tracker/lib/weekly-reset"
	apimodels "home-task-tracker/models/api"
	completionapimodels "home-task-tracker/models/api/completion"
	taskapimodels "home-task-tracker/models/api/task"

	"github.com/gofiber/fiber/v2"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Get("dashboard", controller.dashboard)
	app.Route("tasks", func(router fiber.Router) {
		router.Get("", controller.taskList)
		router.Post("", controller.taskCreate)
		router.Get("categories", controller.taskCategories)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.taskGet)
			idRoute.Put("", controller.taskUpdate)
			idRoute.Put("deactivate", controller.taskDeactivate)
			idRoute.Put("activate", controller.taskActivate)
		})
	})
	app.Get("approvals", controller.pendingApprovals)
	app.Route("completions/:id", func(router fiber.Router) {
		router.Put("review", controller.review)
		router.Put("paid", controller.markPaid)
	})
	app.Post("weekly-reset", controller.weeklyReset)
}

// @Summary Admin dashboard
// @Tags Admin
// @Description Workers, pending approvals, this week payments and active tasks
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.AdminDashboard}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/dashboard [get]
func (c *adminApiController) dashboard(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	resp, err := paymenthandler.Instance.AdminDashboard(adminID, helpers.SystemClock())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to load dashboard")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Task list
// @Tags Admin tasks
// @Description Tasks of the admin newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   category		query		string	false	"all | none | category name"
// @Param   priority		query		string	false	"all | low | normal | high"
// @Param   status			query		string	false	"all | active | inactive"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/tasks [get]
func (c *adminApiController) taskList(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	var filter taskapimodels.TaskFilter
	if err = c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taskhandler.Instance.List(adminID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get task list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Create task
// @Tags Admin tasks
// @Description Create task
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 taskapimodels.TaskData	true	"request body"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/tasks [post]
func (c *adminApiController) taskCreate(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	var payload taskapimodels.TaskData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taskhandler.Instance.Create(adminID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to create task")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Task created successfully!", resp))
}

// @Summary Task categories
// @Tags Admin tasks
// @Description Distinct categories of the admin tasks
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]string}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/tasks/categories [get]
func (c *adminApiController) taskCategories(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	resp, err := taskhandler.Instance.Categories(adminID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get categories")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Task by ID
// @Tags Admin tasks
// @Description Task by ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/admin/tasks/{id} [get]
func (c *adminApiController) taskGet(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taskhandler.Instance.Get(adminID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get task")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Edit task
// @Tags Admin tasks
// @Description Edit task
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Param	body body	 taskapimodels.TaskData	true	"request body"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/admin/tasks/{id} [put]
func (c *adminApiController) taskUpdate(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload taskapimodels.TaskData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taskhandler.Instance.Update(adminID, id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to update task")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Task updated successfully!", resp))
}

// @Summary Deactivate task
// @Tags Admin tasks
// @Description Workers no longer see inactive tasks by default
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/admin/tasks/{id}/deactivate [put]
func (c *adminApiController) taskDeactivate(ctx *fiber.Ctx) error {
	return c.setTaskActive(ctx, false, "Task deactivated successfully!")
}

// @Summary Reactivate task
// @Tags Admin tasks
// @Description Reactivate task
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Success 200 {object} apimodels.Response{data=taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/admin/tasks/{id}/activate [put]
func (c *adminApiController) taskActivate(ctx *fiber.Ctx) error {
	return c.setTaskActive(ctx, true, "Task reactivated successfully!")
}

func (c *adminApiController) setTaskActive(ctx *fiber.Ctx, active bool, okMsg string) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taskhandler.Instance.SetActive(adminID, id, active)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to change task state")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage(okMsg, resp))
}

// @Summary Pending approvals
// @Tags Admin approvals
// @Description Pending completions of the admin tasks, newest submission first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]completionapimodels.CompletionView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/approvals [get]
func (c *adminApiController) pendingApprovals(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	resp, err := paymenthandler.Instance.PendingApprovals(adminID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get pending approvals")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve or reject a completion
// @Tags Admin approvals
// @Description Only pending completions can be reviewed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "completion ID"
// @Param	body body	 completionapimodels.ReviewRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=completionapimodels.CompletionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/admin/completions/{id}/review [put]
func (c *adminApiController) review(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload completionapimodels.ReviewRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := completionhandler.Instance.Review(adminID, id, payload.Status, payload.AdminNotes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to review completion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Task "+string(resp.Status)+" successfully!", resp))
}

// @Summary Mark an approved completion as paid
// @Tags Admin approvals
// @Description Mark an approved completion as paid
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "completion ID"
// @Success 200 {object} apimodels.Response{data=completionapimodels.CompletionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/admin/completions/{id}/paid [put]
func (c *adminApiController) markPaid(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := completionhandler.Instance.MarkPaid(adminID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to mark completion as paid")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Task marked as paid successfully!", resp))
}

// @Summary Weekly reset
// @Tags Admin
// @Description Deletes every pending completion of the admin tasks, once per day
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/weekly-reset [post]
func (c *adminApiController) weeklyReset(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	deleted, err := weeklyresethandler.Instance.Reset(adminID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Error during reset")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Weekly reset completed.", deleted))
}
