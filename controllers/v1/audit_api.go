package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"refdesk-backend/controllers"
	audithandler "refdesk-backend/lib/audit"
	apimodels "refdesk-backend/models/api"
	auditapimodels "refdesk-backend/models/api/audit"
)

type auditApiController struct {
	controllers.BaseAPIController
}

func InitAuditApiRouters(app *fiber.App) {
	controller := auditApiController{}
	app.Route("audit", func(router fiber.Router) {
		router.Post("list", controller.list)
	})
}

// @Summary Audit log
// @Tags Audit
// @Description Lists audit entries filtered by entity, record and user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 auditapimodels.AuditFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]auditapimodels.AuditLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/audit/list [post]
func (c *auditApiController) list(ctx *fiber.Ctx) error {
	var payload auditapimodels.AuditFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := audithandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list audit entries")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
