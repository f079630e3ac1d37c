package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"crewing-backend/controllers"
	checklisthandler "crewing-backend/lib/checklist"
	pdfexport "crewing-backend/lib/export/pdf"
	"crewing-backend/middleware"
	"crewing-backend/models"
	apimodels "crewing-backend/models/api"
	checklistapimodels "crewing-backend/models/api/checklist"
)

type checklistAPIController struct {
	controllers.BaseAPIController
}

func InitChecklistAPIRouters(app *fiber.App) {
	controller := checklistAPIController{}
	app.Route("checklist", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("by_requirement/:requirement_id", controller.listByRequirement)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("gates", controller.setGates)
			idRoute.Put("advance", controller.advance)
			idRoute.Get("history", controller.history)
			idRoute.Get("report", controller.report)
		})
	})
}

// sendChecklistError maps the checklist error taxonomy onto HTTP statuses.
// Version conflicts come back as 409 so the client knows to re-read and retry.
func (c *checklistAPIController) sendChecklistError(ctx *fiber.Ctx, err error, hMsg string) error {
	var incomplete *checklisthandler.IncompleteChecklistError
	var selfApproval *checklisthandler.SelfApprovalError
	var invalidTransition *checklisthandler.InvalidTransitionError
	switch {
	case errors.Is(err, checklisthandler.ErrConcurrentModification):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, checklisthandler.ErrUnknownChecklist),
		errors.Is(err, checklisthandler.ErrUnknownRequirement),
		errors.Is(err, checklisthandler.ErrUnknownCandidate):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.As(err, &incomplete), errors.As(err, &invalidTransition):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case errors.As(err, &selfApproval):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, hMsg)
}

// @Summary Create a release checklist
// @Tags Checklist
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 checklistapimodels.ChecklistCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=checklistapimodels.ChecklistView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/checklist [post]
func (c *checklistAPIController) create(ctx *fiber.Ctx) error {
	var payload checklistapimodels.ChecklistCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := checklisthandler.Instance.Create(payload, userID)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to create the release checklist")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Get a release checklist by ID
// @Tags Checklist
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=checklistapimodels.ChecklistView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/checklist/{id} [get]
func (c *checklistAPIController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := checklisthandler.Instance.GetByID(id)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to get the release checklist")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Release checklists of one requirement
// @Tags Checklist
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Success 200 {object} apimodels.Response{data=[]checklistapimodels.ChecklistView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/checklist/by_requirement/{requirement_id} [get]
func (c *checklistAPIController) listByRequirement(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := checklisthandler.Instance.ListByRequirement(requirementID)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to get the checklist list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Update checklist gates
// @Tags Checklist
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 checklistapimodels.GatesData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=checklistapimodels.ChecklistView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/checklist/{id}/gates [put]
func (c *checklistAPIController) setGates(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload checklistapimodels.GatesData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	view, err := checklisthandler.Instance.SetGates(id, payload, userID)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to update the checklist gates")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Apply a checklist transition
// @Tags Checklist
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 checklistapimodels.AdvanceData	true	"request body"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=checklistapimodels.ChecklistView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/checklist/{id}/advance [put]
func (c *checklistAPIController) advance(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload checklistapimodels.AdvanceData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.Action == models.ChecklistActionApprove || payload.Action == models.ChecklistActionReject {
		role := middleware.GetUserRole(ctx)
		if role != models.ManagerRole && role != models.AdminRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("approval decisions require a crewing manager"))
		}
	}
	userID := middleware.GetUserID(ctx)
	view, err := checklisthandler.Instance.Advance(id, payload, userID)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to apply the checklist transition")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Checklist transition history
// @Tags Checklist
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=[]checklistapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/checklist/{id}/history [get]
func (c *checklistAPIController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := checklisthandler.Instance.History(id)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to get the checklist history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Checklist report as PDF
// @Tags Checklist
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string	true	"rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/checklist/{id}/report [get]
func (c *checklistAPIController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := checklisthandler.Instance.GetByID(id)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to get the release checklist")
	}
	history, err := checklisthandler.Instance.History(id)
	if err != nil {
		return c.sendChecklistError(ctx, err, "failed to get the checklist history")
	}
	data, err := pdfexport.GenerateChecklistReport(view, history)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to generate the checklist report")
	}
	fileName := fmt.Sprintf("checklist-%v.pdf", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Send(data)
}
