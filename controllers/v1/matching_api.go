package apiv1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"crewing-backend/controllers"
	xlsexport "crewing-backend/lib/export/xls"
	matchinghandler "crewing-backend/lib/matching"
	requirementhandler "crewing-backend/lib/requirement"
	shortlisthandler "crewing-backend/lib/shortlist"
	"crewing-backend/middleware"
	apimodels "crewing-backend/models/api"
	matchingapimodels "crewing-backend/models/api/matching"
)

type matchingAPIController struct {
	controllers.BaseAPIController
}

func InitMatchingAPIRouters(app *fiber.App) {
	controller := matchingAPIController{}
	app.Route("matching/:requirement_id", func(router fiber.Router) {
		router.Post("run", controller.run)
		router.Get("matches", controller.listMatches)
		router.Get("matches/:candidate_id", controller.getMatch)
		router.Get("runs", controller.listRuns)
		router.Route("shortlist", func(shortlistRoute fiber.Router) {
			shortlistRoute.Get("", controller.shortlist)
			shortlistRoute.Get("export", controller.shortlistExport)
			shortlistRoute.Put(":candidate_id/status", controller.entryStatus)
		})
	})
}

// @Summary Run matching and rebuild the shortlist
// @Tags Matching
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Success 200 {object} apimodels.Response{data=matchingapimodels.MatchRunView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/matching/{requirement_id}/run [post]
func (c *matchingAPIController) run(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	run, err := matchinghandler.Instance.EvaluateAndScore(requirementID, userID)
	if err != nil {
		if err == matchinghandler.ErrUnknownRequirement {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to run matching")
	}
	_, err = shortlisthandler.Instance.Rebuild(ctx.Context(), requirementID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to rebuild the shortlist")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(run))
}

// @Summary Current match list
// @Tags Matching
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Success 200 {object} apimodels.Response{data=[]matchingapimodels.CandidateMatchView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/matching/{requirement_id}/matches [get]
func (c *matchingAPIController) listMatches(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := matchinghandler.Instance.ListMatches(requirementID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get the match list")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Match explanation for one candidate
// @Tags Matching
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Param   candidate_id		path    string	true	"candidate ID"
// @Success 200 {object} apimodels.Response{data=matchingapimodels.CandidateMatchView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/matching/{requirement_id}/matches/{candidate_id} [get]
func (c *matchingAPIController) getMatch(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID, err := c.GetParam(ctx, "candidate_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	match, err := matchinghandler.Instance.GetMatch(requirementID, candidateID)
	if err != nil {
		if err == matchinghandler.ErrNoCurrentMatch {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get the match")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(match))
}

// @Summary Match run history
// @Tags Matching
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Param   limit       		query   int 	false	"max rows"
// @Success 200 {object} apimodels.Response{data=[]matchingapimodels.MatchRunView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/matching/{requirement_id}/runs [get]
func (c *matchingAPIController) listRuns(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	list, err := matchinghandler.Instance.ListRuns(requirementID, limit)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get the match run history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Shortlist
// @Tags Matching
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Success 200 {object} apimodels.Response{data=[]matchingapimodels.ShortlistEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/matching/{requirement_id}/shortlist [get]
func (c *matchingAPIController) shortlist(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := shortlisthandler.Instance.List(requirementID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get the shortlist")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Export the shortlist to Excel
// @Tags Matching
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/matching/{requirement_id}/shortlist/export [get]
func (c *matchingAPIController) shortlistExport(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	requirement, err := requirementhandler.Instance.GetByID(requirementID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get the requirement")
	}
	list, err := shortlisthandler.Instance.List(requirementID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get the shortlist")
	}
	data, err := xlsexport.Instance.ExportShortlist(requirement.RoleTitle, list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export the shortlist to Excel")
	}
	fileName := fmt.Sprintf("shortlist-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.ms-excel")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Update a shortlist entry's workflow status
// @Tags Matching
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 matchingapimodels.EntryStatusData	true	"request body"
// @Param   requirement_id		path    string	true	"requirement ID"
// @Param   candidate_id		path    string	true	"candidate ID"
// @Success 200 {object} apimodels.Response{data=matchingapimodels.ShortlistEntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/matching/{requirement_id}/shortlist/{candidate_id}/status [put]
func (c *matchingAPIController) entryStatus(ctx *fiber.Ctx) error {
	requirementID, err := c.GetParam(ctx, "requirement_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID, err := c.GetParam(ctx, "candidate_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload matchingapimodels.EntryStatusData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	entry, err := shortlisthandler.Instance.UpdateEntryStatus(requirementID, candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update the shortlist entry status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(entry))
}
