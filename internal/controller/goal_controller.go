package controller

import (
	"supervision_backend/internal/service"
	"supervision_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// GoalController serves goal authoring, daily records and progress queries.

type GoalController struct {
	GoalService     *service.GoalService
	RecordService   *service.RecordService
	ProgressService *service.ProgressService
}

func NewGoalController(
	goalService *service.GoalService,
	recordService *service.RecordService,
	progressService *service.ProgressService,
) *GoalController {
	return &GoalController{
		GoalService:     goalService,
		RecordService:   recordService,
		ProgressService: progressService,
	}
}

// @Summary List goals
// @Description All active goals, optionally filtered by area
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Param area query string false "area filter"
// @Success 200 {object} util.Response
// @Router /goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	area, ok := parseAreaQuery(ctx)
	if !ok {
		util.BadRequest(ctx, "unknown area")
		return
	}

	goals, err := c.GoalService.ListGoals(area)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, goals)
}

// @Summary Get one goal
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Success 200 {object} util.Response
// @Router /goals/{id} [get]
func (c *GoalController) GetGoal(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid goal id")
		return
	}

	goal, err := c.GoalService.GetGoal(id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// @Summary Create a goal
// @Description Creates a goal with an optional set of per-shift target overrides
// @Tags goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param goal body service.CreateGoalRequest true "goal definition"
// @Success 201 {object} util.Response
// @Router /goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(claims.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// @Summary Edit a goal's targets
// @Description Only targets are editable; area and measurement type are fixed
// @Tags goals
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param target body service.UpdateTargetRequest true "new targets"
// @Success 200 {object} util.Response
// @Router /goals/{id}/target [put]
func (c *GoalController) UpdateTarget(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid goal id")
		return
	}

	var req service.UpdateTargetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateTarget(id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// @Summary List shift targets
// @Tags goals
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param shift query string false "shift filter"
// @Success 200 {object} util.Response
// @Router /goals/{id}/shift-targets [get]
func (c *GoalController) ListShiftTargets(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid goal id")
		return
	}
	sh, ok := parseShiftQuery(ctx)
	if !ok {
		util.BadRequest(ctx, "unknown shift")
		return
	}

	targets, err := c.GoalService.ListShiftTargets(id, sh)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, targets)
}

// @Summary List daily records
// @Tags records
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param start query string true "window start (YYYY-MM-DD)"
// @Param end query string true "window end (YYYY-MM-DD)"
// @Param shift query string false "shift filter"
// @Success 200 {object} util.Response
// @Router /goals/{id}/records [get]
func (c *GoalController) ListRecords(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid goal id")
		return
	}
	start, ok := parseDateQuery(ctx, "start")
	if !ok {
		util.BadRequest(ctx, "start must be YYYY-MM-DD")
		return
	}
	end, ok := parseDateQuery(ctx, "end")
	if !ok {
		util.BadRequest(ctx, "end must be YYYY-MM-DD")
		return
	}
	sh, ok := parseShiftQuery(ctx)
	if !ok {
		util.BadRequest(ctx, "unknown shift")
		return
	}

	records, err := c.RecordService.ListWindow(id, start, end, sh)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, records)
}

// @Summary Upsert a daily record
// @Description Supersedes the record in place when recordId is supplied
// @Tags records
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param record body service.UpsertRecordRequest true "observation"
// @Success 200 {object} util.Response
// @Router /goals/{id}/records [put]
func (c *GoalController) UpsertRecord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseUintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid goal id")
		return
	}

	var req service.UpsertRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	record, err := c.RecordService.Upsert(claims.UserID, id, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, record)
}

// @Summary Progress over a window
// @Description Progress percentage, actual and target for a goal; add ?shift= for the shift view
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param start query string true "window start (YYYY-MM-DD)"
// @Param end query string true "window end (YYYY-MM-DD)"
// @Param shift query string false "shift filter"
// @Success 200 {object} util.Response
// @Router /goals/{id}/progress [get]
func (c *GoalController) GetProgress(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid goal id")
		return
	}
	start, ok := parseDateQuery(ctx, "start")
	if !ok {
		util.BadRequest(ctx, "start must be YYYY-MM-DD")
		return
	}
	end, ok := parseDateQuery(ctx, "end")
	if !ok {
		util.BadRequest(ctx, "end must be YYYY-MM-DD")
		return
	}
	sh, ok := parseShiftQuery(ctx)
	if !ok {
		util.BadRequest(ctx, "unknown shift")
		return
	}

	progress, err := c.ProgressService.Progress(id, sh, start, end)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	if sh == nil {
		util.Success(ctx, progress)
		return
	}

	contribution, err := c.ProgressService.Contribution(id, *sh, start, end)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"progress":     progress,
		"contribution": contribution,
	})
}

// @Summary Month-over-month progress
// @Description Current month to date vs the full previous month
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "goal id"
// @Param shift query string false "shift filter"
// @Success 200 {object} util.Response
// @Router /goals/{id}/progress/monthly [get]
func (c *GoalController) GetMonthlyProgress(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		util.BadRequest(ctx, "invalid goal id")
		return
	}
	sh, ok := parseShiftQuery(ctx)
	if !ok {
		util.BadRequest(ctx, "unknown shift")
		return
	}

	comparison, err := c.ProgressService.Monthly(id, sh, timeNow())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, comparison)
}
