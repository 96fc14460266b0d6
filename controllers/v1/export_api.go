package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"refdesk-backend/controllers"
	exporthandler "refdesk-backend/lib/export"
	"refdesk-backend/middleware"
	apimodels "refdesk-backend/models/api"
	referenceapimodels "refdesk-backend/models/api/reference"
)

type exportApiController struct {
	controllers.BaseAPIController
}

func InitExportApiRouters(app *fiber.App) {
	controller := exportApiController{}
	app.Route("export", func(router fiber.Router) {
		router.Get("references.xlsx", controller.references)
		router.Get("template/:id/submissions.xlsx", controller.submissions)
		router.Get("submission/:id/receipt.pdf", controller.receipt)
	})
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// @Summary Reference register export
// @Tags Export
// @Description Exports the reference register as an XLSX file
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   kind       query  string  false  "reference kind"
// @Param   status     query  string  false  "reference status"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/references.xlsx [get]
func (c *exportApiController) references(ctx *fiber.Ctx) error {
	var filter referenceapimodels.ReferenceFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read query parameters"))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	buf, err := exporthandler.Instance.ReferencesXLSX(userID, filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export references")
	}
	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="references.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Submissions export
// @Tags Export
// @Description Exports every submission of a template as an XLSX grid
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "template ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/template/{id}/submissions.xlsx [get]
func (c *exportApiController) submissions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	buf, err := exporthandler.Instance.SubmissionsXLSX(userID, role, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export submissions")
	}
	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="submissions.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Submission receipt
// @Tags Export
// @Description Renders a PDF receipt of one submission
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "submission ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/export/submission/{id}/receipt.pdf [get]
func (c *exportApiController) receipt(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := exporthandler.Instance.SubmissionReceiptPDF(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to render receipt")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt.pdf"`)
	return ctx.Status(fiber.StatusOK).Send(file)
}
