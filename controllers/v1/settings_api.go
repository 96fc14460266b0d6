package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"refdesk-backend/controllers"
	settingshandler "refdesk-backend/lib/settings"
	"refdesk-backend/models"
	apimodels "refdesk-backend/models/api"
	settingsapimodels "refdesk-backend/models/api/settings"
)

type settingsApiController struct {
	controllers.BaseAPIController
}

func InitSettingsApiRouters(app *fiber.App) {
	controller := settingsApiController{}
	app.Route("settings", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Put(":code", controller.update)
	})
}

// @Summary Settings list
// @Tags Settings
// @Description Returns every system setting
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]settingsapimodels.SystemSettingView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [get]
func (c *settingsApiController) list(ctx *fiber.Ctx) error {
	list, err := settingshandler.Instance.GetList()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list settings")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Update setting
// @Tags Settings
// @Description Updates one system setting by code
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   code          		path    string  				    	true         "setting code"
// @Param	body body	 settingsapimodels.SystemSettingUpdate	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings/{code} [put]
func (c *settingsApiController) update(ctx *fiber.Ctx) error {
	code := ctx.Params("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("setting code is required"))
	}
	var payload settingsapimodels.SystemSettingUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := settingshandler.Instance.UpdateSettingValue(models.SystemSettingCode(code), payload.Value)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update setting")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
