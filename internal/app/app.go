package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supervision_backend/internal/config"
	"supervision_backend/internal/controller"
	"supervision_backend/internal/repository"
	"supervision_backend/internal/service"
	"supervision_backend/internal/shift"
	"supervision_backend/pkg/database"
	"supervision_backend/pkg/logger"
	"supervision_backend/pkg/monitoring"
	"supervision_backend/pkg/security"
	"supervision_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Location *time.Location
	services *services
}

type repositories struct {
	user        *repository.UserRepository
	goal        *repository.GoalRepository
	shiftTarget *repository.ShiftTargetRepository
	record      *repository.DailyRecordRepository
	validation  *repository.ValidationRepository
	incident    *repository.IncidentRepository
}

type services struct {
	auth       *service.AuthService
	goal       *service.GoalService
	record     *service.RecordService
	progress   *service.ProgressService
	validation *service.ValidationService
	incident   *service.IncidentService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	goal       *controller.GoalController
	validation *controller.ValidationController
	incident   *controller.IncidentController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		goal:        repository.NewGoalRepository(db),
		shiftTarget: repository.NewShiftTargetRepository(db),
		record:      repository.NewDailyRecordRepository(db),
		validation:  repository.NewValidationRepository(db),
		incident:    repository.NewIncidentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	cooldown := time.Duration(cfg.Facility.CooldownMinutes) * time.Minute

	s.auth = service.NewAuthService(repos.user, cfg)
	s.goal = service.NewGoalService(repos.goal, repos.shiftTarget)
	s.record = service.NewRecordService(repos.goal, repos.record)
	s.progress = service.NewProgressService(repos.goal, repos.shiftTarget, repos.record, a.Location)
	s.validation = service.NewValidationService(repos.validation, a.Location, cooldown)
	s.incident = service.NewIncidentService(repos.incident, s.goal, a.Location, logger.Log)
	s.dashboard = service.NewDashboardService(repos.goal, s.progress, rdb, a.Location, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		goal:       controller.NewGoalController(s.goal, s.record, s.progress),
		validation: controller.NewValidationController(s.validation),
		incident:   controller.NewIncidentController(s.incident),
		dashboard:  controller.NewDashboardController(s.dashboard),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks refreshes the overdue-incident gauge once a minute so
// due-but-pending deferred incidents stay visible without every view
// recomputing them.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			count, err := s.incident.CountOverdue(time.Now())
			if err != nil {
				logger.Log.Error("overdue incident count failed", zap.Error(err))
				continue
			}
			monitoring.OverdueIncidents.Set(float64(count))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Location: shift.LoadLocation(cfg.Facility.Timezone, cfg.Facility.FallbackUTCOffset),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("supervision-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
