package app

import (
	"context"
	"net/http"

	_ "github.com/campuscollab/server/cmd/server/docs" // swagger docs
	"github.com/campuscollab/server/internal/module/application"
	"github.com/campuscollab/server/internal/module/auth"
	"github.com/campuscollab/server/internal/module/membership"
	"github.com/campuscollab/server/internal/module/notification"
	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/thread"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/campuscollab/server/internal/shared/config"
	"github.com/campuscollab/server/internal/shared/logger"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/campuscollab/server/internal/shared/middleware"
	"github.com/campuscollab/server/internal/shared/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table AutoMigrate manages. Users and threads are owned
// by the identity and thread services; they are migrated here so a fresh
// database is usable in development and integration tests.
func Models() []any {
	return []any{
		&user.User{},
		&thread.Thread{},
		&thread.Member{},
		&project.Project{},
		&application.Application{},
		&notification.Notification{},
	}
}

// App represents the application.
type App struct {
	config    *config.Config
	db        *gorm.DB
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	tokens    middleware.TokenValidator
	limiter   ratelimit.Limiter

	projectHandler      *project.Handler
	applicationHandler  *application.Handler
	membershipHandler   *membership.Handler
	notificationHandler *notification.Handler
}

// NewApp assembles the application and its router.
func NewApp(
	cfg *config.Config,
	db *gorm.DB,
	log *logger.Logger,
	zapLog *zap.Logger,
	registry *prometheus.Registry,
	m *metrics.Metrics,
	jwtManager *auth.JWTManager,
	limiter ratelimit.Limiter,
	projectHandler *project.Handler,
	applicationHandler *application.Handler,
	membershipHandler *membership.Handler,
	notificationHandler *notification.Handler,
) *App {
	a := &App{
		config:              cfg,
		db:                  db,
		logger:              log,
		zapLogger:           zapLog,
		registry:            registry,
		metrics:             m,
		tokens:              jwtManager,
		limiter:             limiter,
		projectHandler:      projectHandler,
		applicationHandler:  applicationHandler,
		membershipHandler:   membershipHandler,
		notificationHandler: notificationHandler,
	}
	a.router = a.setupRouter()
	a.registerRoutes()
	return a
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = a.config.Server.AllowOrigins
	r.Use(middleware.CORS(corsConfig))

	if a.metrics != nil {
		r.Use(middleware.Metrics(a.metrics))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	}

	r.GET("/health", a.health)

	if a.config.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	return r
}

// registerRoutes mounts every module under /api/v1.
func (a *App) registerRoutes() {
	requireAuth := middleware.RequireAuth(a.tokens)
	optionalAuth := middleware.OptionalAuth(a.tokens)

	applyLimit := middleware.RateLimitByUser(a.limiter, "apply",
		a.config.RateLimit.ApplyLimit, a.config.RateLimit.ApplyWindow, a.logger)

	v1 := a.router.Group("/api/v1")
	a.projectHandler.RegisterRoutes(v1, requireAuth, optionalAuth)
	a.applicationHandler.RegisterRoutes(v1, requireAuth, applyLimit)
	a.membershipHandler.RegisterRoutes(v1, requireAuth)
	a.notificationHandler.RegisterRoutes(v1, requireAuth)
}

func (a *App) health(c *gin.Context) {
	if err := pingDatabase(c.Request.Context(), a.db); err != nil {
		a.zapLogger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the zap logger.
func (a *App) Logger() *zap.Logger {
	return a.zapLogger
}

func pingDatabase(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
