package apiv1

import (
	"fmt"
	"home-task-tracker/controllers"
	csvexport "home-task-tracker/lib/export/csv"
	pdfexport "home-task-tracker/lib/export/pdf"
	reportexport "home-task-tracker/lib/export/report"
	xlsexport "home-task-tracker/lib/export/xls"
	paymenthandler "home-task-tracker/lib/payment"
	"home-task-tracker/lib/utils/helpers"
	apimodels "home-task-tracker/models/api"
	paymentapimodels "home-task-tracker/models/api/payment"

	"github.com/gofiber/fiber/v2"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("payments", func(router fiber.Router) {
		router.Get("", controller.payments)
		router.Get("approved", controller.approvedForPayment)
	})
	app.Route("reports", func(router fiber.Router) {
		router.Get("", controller.report)
		router.Get("export", controller.export)
	})
	app.Get("workers/:id/statement", controller.statement)
}

// @Summary Weekly payments
// @Tags Admin reports
// @Description Approved earnings per active worker for a period, the current week by default
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   start_date		query		string	false	"yyyy-mm-dd"
// @Param   end_date		query		string	false	"yyyy-mm-dd"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.AdminPayments}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/payments [get]
func (c *reportApiController) payments(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	filter, err := c.getFilter(ctx, nil)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := paymenthandler.Instance.AdminPayments(adminID, filter.StartDate, filter.EndDate)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get payments")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approved completions waiting for payment
// @Tags Admin reports
// @Description Approved completions of the admin tasks, latest review first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   worker_id		query		int		false	"worker ID"
// @Success 200 {object} apimodels.Response{data=[]completionapimodels.CompletionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/payments/approved [get]
func (c *reportApiController) approvedForPayment(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	var workerID *uint
	if value := ctx.QueryInt("worker_id"); value > 0 {
		id := uint(value)
		workerID = &id
	}
	resp, err := paymenthandler.Instance.ApprovedForPayment(adminID, workerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get approved completions")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Activity report
// @Tags Admin reports
// @Description All workers or a single worker when worker_id is set
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   worker_id			query		int		false	"worker ID"
// @Param   start_date			query		string	false	"yyyy-mm-dd"
// @Param   end_date			query		string	false	"yyyy-mm-dd"
// @Param   status_filter		query		string	false	"all | pending | approved | awaiting_payment | rejected | paid"
// @Param   priority_filter		query		string	false	"all | low | normal | high"
// @Param   task_status_filter	query		string	false	"all | active | inactive"
// @Success 200 {object} apimodels.Response{data=paymentapimodels.AdminActivity}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/reports [get]
func (c *reportApiController) report(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	var payload paymentapimodels.ReportRequest
	filter, err := c.getFilter(ctx, &payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.WorkerID != 0 {
		resp, err := paymenthandler.Instance.WorkerReport(adminID, payload.WorkerID, filter)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to build activity report")
		}
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
	}
	resp, err := paymenthandler.Instance.AdminActivity(adminID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to build activity report")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Export activity report
// @Tags Admin reports
// @Description Same query as the activity report plus format csv (default) or xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   worker_id			query		int		false	"worker ID"
// @Param   start_date			query		string	false	"yyyy-mm-dd"
// @Param   end_date			query		string	false	"yyyy-mm-dd"
// @Param   status_filter		query		string	false	"all | pending | approved | awaiting_payment | rejected | paid"
// @Param   priority_filter		query		string	false	"all | low | normal | high"
// @Param   task_status_filter	query		string	false	"all | active | inactive"
// @Param   format				query		string	false	"csv | xlsx"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/reports/export [get]
func (c *reportApiController) export(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	var payload paymentapimodels.ReportRequest
	filter, err := c.getFilter(ctx, &payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var table reportexport.Table
	if payload.WorkerID != 0 {
		report, err := paymenthandler.Instance.WorkerReport(adminID, payload.WorkerID, filter)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to build activity report")
		}
		table = reportexport.WorkerTable(report, filter)
	} else {
		report, err := paymenthandler.Instance.AdminActivity(adminID, filter)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to build activity report")
		}
		table = reportexport.AdminTable(report, filter)
	}

	if payload.Format == formatXLSX {
		data, err := xlsexport.ExportReport(table)
		if err != nil {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to export activity report to Excel")
		}
		ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reportexport.FileName(filter, formatXLSX)+`"`)
		return ctx.SendStream(data)
	}
	data, err := csvexport.Export(table)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to export activity report to CSV")
	}
	ctx.Set(fiber.HeaderContentType, "text/csv")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reportexport.FileName(filter, formatCSV)+`"`)
	return ctx.SendStream(data)
}

// @Summary Worker payment statement
// @Tags Admin reports
// @Description PDF statement of one worker for a period, the current week by default
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "worker ID"
// @Param   start_date			query		string	false	"yyyy-mm-dd"
// @Param   end_date			query		string	false	"yyyy-mm-dd"
// @Param   status_filter		query		string	false	"all | pending | approved | awaiting_payment | rejected | paid"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/workers/{id}/statement [get]
func (c *reportApiController) statement(ctx *fiber.Ctx) error {
	adminID, err := c.GetUserID(ctx)
	if err != nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	workerID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload paymentapimodels.ReportRequest
	filter, err := c.getFilter(ctx, &payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	report, err := paymenthandler.Instance.WorkerReport(adminID, workerID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to build payment statement")
	}
	data, err := pdfexport.WorkerStatement(report, helpers.SystemClock())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to render payment statement")
	}
	fileName := fmt.Sprintf("statement_%d_%s_%s.pdf", workerID,
		filter.StartDate.Format(helpers.ISODateLayout), filter.EndDate.Format(helpers.ISODateLayout))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(data)
}

// getFilter parses the report query into out, or into a throwaway request when out is nil.
func (c *reportApiController) getFilter(ctx *fiber.Ctx, out *paymentapimodels.ReportRequest) (paymentapimodels.ActivityFilter, error) {
	if out == nil {
		out = &paymentapimodels.ReportRequest{}
	}
	if err := c.QueryParser(ctx, out); err != nil {
		return paymentapimodels.ActivityFilter{}, err
	}
	if err := out.Validate(); err != nil {
		return paymentapimodels.ActivityFilter{}, err
	}
	filter := out.GetFilter(helpers.SystemClock())
	if err := filter.Validate(); err != nil {
		return paymentapimodels.ActivityFilter{}, err
	}
	return filter, nil
}
