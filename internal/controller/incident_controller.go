package controller

import (
	"net/http"

	"supervision_backend/internal/model"
	"supervision_backend/internal/service"
	"supervision_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IncidentController struct {
	IncidentService *service.IncidentService
}

func NewIncidentController(incidentService *service.IncidentService) *IncidentController {
	return &IncidentController{IncidentService: incidentService}
}

// @Summary List incidents
// @Description Optionally filtered by area and bucket (current excludes not-yet-due deferred items)
// @Tags incidents
// @Produce json
// @Security ApiKeyAuth
// @Param area query string false "area filter"
// @Param bucket query string false "current or scheduled"
// @Success 200 {object} util.Response
// @Router /incidents [get]
func (c *IncidentController) ListIncidents(ctx *gin.Context) {
	area, ok := parseAreaQuery(ctx)
	if !ok {
		util.BadRequest(ctx, "unknown area")
		return
	}

	incidents, err := c.IncidentService.List(area, ctx.Query("bucket"), timeNow())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, incidents)
}

// @Summary Raise an incident
// @Description Optionally creates and links a goal; a failed link is surfaced, never dropped
// @Tags incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body service.CreateIncidentRequest true "incident"
// @Success 201 {object} util.Response
// @Router /incidents [post]
func (c *IncidentController) CreateIncident(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateIncidentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	incident, err := c.IncidentService.Create(claims.UserID, req, timeNow())
	if err != nil {
		// the incident may exist with an unlinked goal; report both ids so
		// the caller can retry the link or discard the goal
		if ple, ok := err.(*service.PartialLinkError); ok {
			ctx.JSON(http.StatusBadGateway, util.Response{
				Code:    http.StatusBadGateway,
				Message: ple.Error(),
				Data: gin.H{
					"incidentId": ple.IncidentID,
					"goalId":     ple.GoalID,
				},
			})
			return
		}
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, incident)
}

type updateIncidentStatusRequest struct {
	Status model.IncidentStatus `json:"status" binding:"required"`
}

// @Summary Advance an incident
// @Description pending -> in_process -> resolved -> closed; closing requires the supervisor
// @Tags incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "incident id"
// @Param status body updateIncidentStatusRequest true "target status"
// @Success 200 {object} util.Response
// @Router /incidents/{id}/status [patch]
func (c *IncidentController) UpdateStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req updateIncidentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	incident, err := c.IncidentService.UpdateStatus(ctx.Param("id"), req.Status, claims.Role, claims.Area)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, incident)
}
