package controller

import (
	"supervision_backend/internal/model"
	"supervision_backend/internal/service"
	"supervision_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ValidationController struct {
	ValidationService *service.ValidationService
}

func NewValidationController(validationService *service.ValidationService) *ValidationController {
	return &ValidationController{ValidationService: validationService}
}

// @Summary Checklist items
// @Description The static checklist for one area
// @Tags validations
// @Produce json
// @Security ApiKeyAuth
// @Param area query string true "area"
// @Success 200 {object} util.Response
// @Router /validations/items [get]
func (c *ValidationController) ListItems(ctx *gin.Context) {
	items, err := c.ValidationService.Items(model.Area(ctx.Query("area")))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, items)
}

// @Summary Submission gate
// @Description Whether the area may submit now, for which round, and any cooldown left
// @Tags validations
// @Produce json
// @Security ApiKeyAuth
// @Param area query string true "area"
// @Success 200 {object} util.Response
// @Router /validations/gate [get]
func (c *ValidationController) GetGate(ctx *gin.Context) {
	gate, err := c.ValidationService.Gate(model.Area(ctx.Query("area")), timeNow())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gate)
}

// @Summary Submit a validation round
// @Description All-or-nothing: one rating per checklist item for the active round
// @Tags validations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param batch body service.SubmitRoundRequest true "round ratings"
// @Success 201 {object} util.Response
// @Router /validations/submit [post]
func (c *ValidationController) SubmitRound(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRoundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subs, err := c.ValidationService.SubmitRound(claims.UserID, req, timeNow())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, subs)
}

// @Summary Pending submissions
// @Description The approver's working set for one area shift-day
// @Tags validations
// @Produce json
// @Security ApiKeyAuth
// @Param area query string true "area"
// @Param date query string true "shift-day (YYYY-MM-DD)"
// @Param shift query string true "shift"
// @Success 200 {object} util.Response
// @Router /validations/pending [get]
func (c *ValidationController) ListPending(ctx *gin.Context) {
	date, ok := parseDateQuery(ctx, "date")
	if !ok {
		util.BadRequest(ctx, "date must be YYYY-MM-DD")
		return
	}
	sh := model.Shift(ctx.Query("shift"))
	if !sh.Valid() {
		util.BadRequest(ctx, "unknown shift")
		return
	}

	subs, err := c.ValidationService.Pending(model.Area(ctx.Query("area")), date, sh)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, subs)
}

type updateSubmissionStatusRequest struct {
	Status model.SubmissionStatus `json:"status" binding:"required"`
}

// @Summary Approve or reject a submission
// @Tags validations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "submission id"
// @Param status body updateSubmissionStatusRequest true "new status"
// @Success 200 {object} util.Response
// @Router /validations/{id}/status [patch]
func (c *ValidationController) UpdateStatus(ctx *gin.Context) {
	var req updateSubmissionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.ValidationService.SetStatus(ctx.Param("id"), req.Status)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}
