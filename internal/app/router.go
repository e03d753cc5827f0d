package app

import (
	"supervision_backend/internal/config"
	"supervision_backend/internal/middleware"
	"supervision_backend/internal/model"
	"supervision_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/profile", c.auth.GetProfile)
		api.GET("/shift/current", c.dashboard.GetCurrentShift)
		api.GET("/dashboard", c.dashboard.GetDashboard)

		goals := api.Group("/goals")
		{
			goals.GET("", c.goal.ListGoals)
			goals.GET("/:id", c.goal.GetGoal)
			goals.GET("/:id/shift-targets", c.goal.ListShiftTargets)
			goals.GET("/:id/records", c.goal.ListRecords)
			goals.GET("/:id/progress", c.goal.GetProgress)
			goals.GET("/:id/progress/monthly", c.goal.GetMonthlyProgress)

			// goal authoring is the senior supervisor's alone
			goals.POST("", middleware.RoleMiddleware(model.Supervisor), c.goal.CreateGoal)
			goals.PUT("/:id/target", middleware.RoleMiddleware(model.Supervisor), c.goal.UpdateTarget)

			goals.PUT("/:id/records", middleware.RoleMiddleware(model.AreaSupervisor, model.Operator), c.goal.UpsertRecord)
		}

		validations := api.Group("/validations")
		{
			validations.GET("/items", c.validation.ListItems)
			validations.GET("/gate", c.validation.GetGate)
			validations.POST("/submit", middleware.RoleMiddleware(model.AreaSupervisor, model.Operator), c.validation.SubmitRound)
			validations.GET("/pending", middleware.RoleMiddleware(model.Supervisor), c.validation.ListPending)
			validations.PATCH("/:id/status", middleware.RoleMiddleware(model.Supervisor), c.validation.UpdateStatus)
		}

		incidents := api.Group("/incidents")
		{
			incidents.GET("", c.incident.ListIncidents)
			incidents.POST("", c.incident.CreateIncident)
			// the service decides per-transition who may advance
			incidents.PATCH("/:id/status", c.incident.UpdateStatus)
		}
	}
}
