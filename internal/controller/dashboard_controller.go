package controller

import (
	"supervision_backend/internal/service"
	"supervision_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary Supervision overview
// @Description Current shift plus per-goal global and shift progress with contribution
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param area query string false "area filter"
// @Success 200 {object} util.Response
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	area, ok := parseAreaQuery(ctx)
	if !ok {
		util.BadRequest(ctx, "unknown area")
		return
	}

	overview, err := c.DashboardService.GetOverview(ctx.Request.Context(), area, timeNow())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, overview)
}

// @Summary Current shift
// @Description The shift active right now in the facility timezone
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /shift/current [get]
func (c *DashboardController) GetCurrentShift(ctx *gin.Context) {
	util.Success(ctx, gin.H{"shift": c.DashboardService.CurrentShift(timeNow())})
}
