package apiv1

import (
	"home-task-tracker/controllers"
	completionhandler "home-task-tracker/lib/completion"
	paymenthandler "home-task-tracker/lib/payment"
	taskhandler "home-task-tracker/lib/task"
	"home-task-tracker/lib/utils/helpers"
	"home-task-tracker/models"
	apimodels "home-task-tracker/models/api"
	completionapimodels "home-task-tracker/models/api/completion"
	paymentapimodels "home-task-tracker/models/api/payment"

	"github.com/gofiber/fiber/v2"
)

type workerApiController struct {
	controllers.BaseAPIController
}

func InitWorkerApiRouters(app *fiber.App) {
	controller := workerApiController{}
	app.Get("dashboard", controller.dashboard)
	app.Get("tasks", controller.tasks)
	app.Post("tasks/:id/complete", controller.submit)
	app.Get("history", controller.history)
	app.Get("stats", controller.stats)
	app.Get("earnings", controller.earnings)
	app.Get("payments", controller.payments)
	app.Get("payment-summary", controller.paymentSummary)
	app.Get("activity", controller.activity)
}

// @Summary Worker dashboard
// @Tags Worker
// @Description Statistics and the latest completions
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status_filter		query		string	false	"all | pending | approved | awaiting_payment | rejected | paid"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.WorkerDashboard}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/dashboard [get]
func (c *workerApiController) dashboard(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	filter := models.StatusFilter(ctx.Query("status_filter")).Normalize()
	if err = filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stats, err := paymenthandler.Instance.WorkerStats(workerID, helpers.SystemClock())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to load dashboard")
	}
	recent, err := completionhandler.Instance.Recent(workerID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to load dashboard")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(paymentapimodels.WorkerDashboard{
		Stats:  stats,
		Recent: recent,
	}))
}

// @Summary Available tasks
// @Tags Worker
// @Description Tasks of the worker admin, highest priority first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status			query		string	false	"active (default) | inactive | all"
// @Success 200 {object} apimodels.Response{data=[]taskapimodels.TaskView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/tasks [get]
func (c *workerApiController) tasks(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	state := models.TaskStateFilter(ctx.Query("status", string(models.TaskStateActive)))
	if err = state.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := taskhandler.Instance.ListForWorker(workerID, state)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get tasks")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Submit a completion
// @Tags Worker
// @Description A rejected completion of the same day is resubmitted in place
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Param	body body	 completionapimodels.SubmitRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=completionapimodels.CompletionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/tasks/{id}/complete [post]
func (c *workerApiController) submit(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	taskID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload completionapimodels.SubmitRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := completionhandler.Instance.Submit(workerID, taskID, payload.GetDate())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to submit completion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Task completion submitted for approval!", resp))
}

// @Summary Completion history
// @Tags Worker
// @Description Own completions, newest submission first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   status_filter		query		string	false	"all | pending | approved | awaiting_payment | rejected | paid"
// @Success 200 {object} apimodels.Response{data=[]completionapimodels.CompletionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/history [get]
func (c *workerApiController) history(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	filter := models.StatusFilter(ctx.Query("status_filter")).Normalize()
	if err = filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := completionhandler.Instance.History(workerID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Worker statistics
// @Tags Worker
// @Description Counts per status, approval rate and earnings
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.WorkerStats}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/stats [get]
func (c *workerApiController) stats(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	resp, err := paymenthandler.Instance.WorkerStats(workerID, helpers.SystemClock())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get statistics")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Paid earnings
// @Tags Worker
// @Description Every paid completion
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.WorkerPayment}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/earnings [get]
func (c *workerApiController) earnings(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	resp, err := paymenthandler.Instance.PaidEarnings(workerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get earnings")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approved earnings for a period
// @Tags Worker
// @Description The current week by default
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   start_date		query		string	false	"yyyy-mm-dd"
// @Param   end_date		query		string	false	"yyyy-mm-dd"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.WorkerPayment}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/payments [get]
func (c *workerApiController) payments(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	filter, err := c.getFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := paymenthandler.Instance.WorkerPayment(workerID, filter.StartDate, filter.EndDate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get payments")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Payment summary
// @Tags Worker
// @Description Approved unpaid completions and paid totals
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.PaymentSummary}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/payment-summary [get]
func (c *workerApiController) paymentSummary(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	resp, err := paymenthandler.Instance.WorkerPaymentSummary(workerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get payment summary")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Own activity report
// @Tags Worker
// @Description Own activity report
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   start_date			query		string	false	"yyyy-mm-dd"
// @Param   end_date			query		string	false	"yyyy-mm-dd"
// @Param   status_filter		query		string	false	"all | pending | approved | awaiting_payment | rejected | paid"
// @Param   priority_filter		query		string	false	"all | low | normal | high"
// @Param   task_status_filter	query		string	false	"all | active | inactive"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.WorkerActivity}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/worker/activity [get]
func (c *workerApiController) activity(ctx *fiber.Ctx) error {
	workerID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	filter, err := c.getFilter(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := paymenthandler.Instance.WorkerActivity(workerID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to build activity report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func (c *workerApiController) getFilter(ctx *fiber.Ctx) (paymentapimodels.ActivityFilter, error) {
	var payload paymentapimodels.ReportRequest
	if err := c.QueryParser(ctx, &payload); err != nil {
		return paymentapimodels.ActivityFilter{}, err
	}
	if err := payload.Validate(); err != nil {
		return paymentapimodels.ActivityFilter{}, err
	}
	filter := payload.GetFilter(helpers.SystemClock())
	if err := filter.Validate(); err != nil {
		return paymentapimodels.ActivityFilter{}, err
	}
	return filter, nil
}
