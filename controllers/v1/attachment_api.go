package apiv1

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"refdesk-backend/controllers"
	filestorage "refdesk-backend/lib/file-storage"
	"refdesk-backend/middleware"
	apimodels "refdesk-backend/models/api"
)

type attachmentApiController struct {
	controllers.BaseAPIController
}

func InitAttachmentApiRouters(app *fiber.App) {
	controller := attachmentApiController{}
	app.Route("attachment", func(router fiber.Router) {
		router.Get("list/:owner_type/:owner_id", controller.list)
		router.Post(":owner_type/:owner_id", controller.upload)
		router.Get(":id", controller.download)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Upload attachment
// @Tags Attachments
// @Description Uploads a file against an assignment or a reference
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   owner_type    		path    string  	true    "assignment or reference"
// @Param   owner_id      		path    string  	true    "owner record ID"
// @Param   file          		formData file    	true    "file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/{owner_type}/{owner_id} [post]
func (c *attachmentApiController) upload(ctx *fiber.Ctx) error {
	ownerType := ctx.Params("owner_type")
	ownerID := ctx.Params("owner_id")
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to open uploaded file"))
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("failed to read uploaded file"))
	}
	userID := middleware.GetUserID(ctx)
	contentType := fileHeader.Header.Get("Content-Type")
	id, err := filestorage.Instance.Upload(ctx.Context(), userID, ownerType, ownerID, fileHeader.Filename, contentType, data)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to upload attachment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Download attachment
// @Tags Attachments
// @Description Streams the stored file back to the caller
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} binary
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/{id} [get]
func (c *attachmentApiController) download(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, file, err := filestorage.Instance.Download(ctx.Context(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to download attachment")
	}
	ctx.Set(fiber.HeaderContentType, view.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+view.FileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(file)
}

// @Summary Attachment list
// @Tags Attachments
// @Description Lists attachments of an assignment or a reference
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   owner_type    		path    string  	true    "assignment or reference"
// @Param   owner_id      		path    string  	true    "owner record ID"
// @Success 200 {object} apimodels.Response{data=[]attachmentapimodels.AttachmentView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/list/{owner_type}/{owner_id} [get]
func (c *attachmentApiController) list(ctx *fiber.Ctx) error {
	ownerType := ctx.Params("owner_type")
	ownerID := ctx.Params("owner_id")
	list, err := filestorage.Instance.ListByOwner(ownerType, ownerID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list attachments")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Delete attachment
// @Tags Attachments
// @Description Removes the file and its record
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attachment/{id} [delete]
func (c *attachmentApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = filestorage.Instance.Delete(ctx.Context(), userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete attachment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
