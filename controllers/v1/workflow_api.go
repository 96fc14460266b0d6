package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"refdesk-backend/controllers"
	workflowhandler "refdesk-backend/lib/workflow"
	"refdesk-backend/middleware"
	apimodels "refdesk-backend/models/api"
	formapimodels "refdesk-backend/models/api/form"
)

type workflowApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowApiRouters(app *fiber.App) {
	controller := workflowApiController{}
	app.Route("workflow", func(router fiber.Router) {
		router.Post("draft", controller.saveDraft)
		router.Post("delegate", controller.delegate)
		router.Post("mark-back", controller.markBack)
		router.Post("approve", controller.approve)
		router.Post("mark-final", controller.markFinal)
		router.Post("submit-distributor", controller.submitToDistributor)
		router.Post("inbox", controller.inbox)
		router.Post("sent", controller.sent)
		router.Get("chain/:id", controller.chain)
		router.Get("submission/:id", controller.submission)
		router.Put(":id/read", controller.markRead)
	})
}

// @Summary Save draft
// @Tags Workflow
// @Description Validates and stores draft data for the caller's assignment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.DraftData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/draft [post]
func (c *workflowApiController) saveDraft(ctx *fiber.Ctx) error {
	var payload formapimodels.DraftData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := workflowhandler.Instance.SaveDraft(ctx.Context(), userID, ctx.IP(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to save draft")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Delegate
// @Tags Workflow
// @Description Hands the form to another user, appending to the delegation chain
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.DelegateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/delegate [post]
func (c *workflowApiController) delegate(ctx *fiber.Ctx) error {
	var payload formapimodels.DelegateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := workflowhandler.Instance.Delegate(ctx.Context(), userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delegate assignment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Mark back
// @Tags Workflow
// @Description Returns the form to a previous holder in the chain
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.MarkBackData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/mark-back [post]
func (c *workflowApiController) markBack(ctx *fiber.Ctx) error {
	var payload formapimodels.MarkBackData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := workflowhandler.Instance.MarkBack(ctx.Context(), userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark assignment back")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Approve
// @Tags Workflow
// @Description Approves the assignment, optionally finalizing it
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.ApproveData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/approve [post]
func (c *workflowApiController) approve(ctx *fiber.Ctx) error {
	var payload formapimodels.ApproveData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	designation := middleware.GetUserDesignation(ctx)
	view, err := workflowhandler.Instance.Approve(ctx.Context(), userID, designation, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to approve assignment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Mark final
// @Tags Workflow
// @Description Locks the assignment against further changes
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.AssignmentActionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/mark-final [post]
func (c *workflowApiController) markFinal(ctx *fiber.Ctx) error {
	var payload formapimodels.AssignmentActionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	designation := middleware.GetUserDesignation(ctx)
	view, err := workflowhandler.Instance.MarkFinal(ctx.Context(), userID, designation, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to finalize assignment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Submit to distributor
// @Tags Workflow
// @Description Reports a finalized, approved form back to the distributor
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.AssignmentActionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/submit-distributor [post]
func (c *workflowApiController) submitToDistributor(ctx *fiber.Ctx) error {
	var payload formapimodels.AssignmentActionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := workflowhandler.Instance.SubmitToDistributor(ctx.Context(), userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit assignment")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Inbox
// @Tags Workflow
// @Description Lists assignments held by the caller
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.InboxFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/inbox [post]
func (c *workflowApiController) inbox(ctx *fiber.Ctx) error {
	var payload formapimodels.InboxFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	list, err := workflowhandler.Instance.Inbox(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list inbox")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Sent
// @Tags Workflow
// @Description Lists assignments the caller handed to others
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 formapimodels.InboxFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/sent [post]
func (c *workflowApiController) sent(ctx *fiber.Ctx) error {
	var payload formapimodels.InboxFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	list, err := workflowhandler.Instance.Sent(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list sent assignments")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Chain
// @Tags Workflow
// @Description Returns the assignment lineage from root to the given record
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]formapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/chain/{id} [get]
func (c *workflowApiController) chain(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := workflowhandler.Instance.Chain(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load assignment chain")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Submission by id
// @Tags Workflow
// @Description Returns the stored data of one submission
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=formapimodels.SubmissionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/submission/{id} [get]
func (c *workflowApiController) submission(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	role := middleware.GetUserRole(ctx)
	view, err := workflowhandler.Instance.GetSubmission(userID, role, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load submission")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Mark read
// @Tags Workflow
// @Description Marks an inbox assignment as read
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/workflow/{id}/read [put]
func (c *workflowApiController) markRead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	err = workflowhandler.Instance.MarkRead(userID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to mark assignment read")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
