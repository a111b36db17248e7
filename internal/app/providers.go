package app

import (
	"github.com/campuscollab/server/internal/module/application"
	"github.com/campuscollab/server/internal/module/auth"
	"github.com/campuscollab/server/internal/module/membership"
	"github.com/campuscollab/server/internal/module/notification"
	"github.com/campuscollab/server/internal/module/project"
	"github.com/campuscollab/server/internal/module/thread"
	"github.com/campuscollab/server/internal/module/user"
	"github.com/campuscollab/server/internal/shared/cache"
	"github.com/campuscollab/server/internal/shared/config"
	"github.com/campuscollab/server/internal/shared/database"
	"github.com/campuscollab/server/internal/shared/events"
	"github.com/campuscollab/server/internal/shared/logger"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/campuscollab/server/internal/shared/ratelimit"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideZapLogger,
	ProvideDatabase,
	ProvideRedisClient,
	ProvideRegistry,
	ProvideMetrics,
	ProvideJWTManager,
	ProvideRateLimiter,
)

// ProvideLogger creates the request logger.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates the zap logger used by services and subscribers.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

// ProvideDatabase opens the database and migrates owned tables when enabled.
func ProvideDatabase(cfg *config.Config, zapLog *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, Models()...); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
	}

	cleanup := func() {
		if err := database.Close(db); err != nil {
			zapLog.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client. Redis is optional: an empty
// address or a failed connection yields nil and the in-process cache is used.
func ProvideRedisClient(cfg *config.Config, zapLog *zap.Logger) (goredis.UniversalClient, func()) {
	if cfg.Redis.Address == "" {
		return nil, func() {}
	}
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		zapLog.Warn("Redis connection failed, continuing without cache", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates application metrics, or nil when disabled.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics.Namespace, reg)
}

// ProvideJWTManager creates the access token validator.
func ProvideJWTManager(cfg *config.Config) *auth.JWTManager {
	jwtConfig := auth.DefaultJWTConfig()
	jwtConfig.Secret = cfg.Auth.JWTSecret
	if cfg.Auth.Issuer != "" {
		jwtConfig.Issuer = cfg.Auth.Issuer
	}
	return auth.NewJWTManager(jwtConfig)
}

// ProvideRateLimiter shares limits across instances through Redis when
// connected and falls back to per-process limits otherwise.
func ProvideRateLimiter(redis goredis.UniversalClient) ratelimit.Limiter {
	if redis == nil {
		return ratelimit.NewMemoryLimiter()
	}
	return ratelimit.NewRedisLimiter(redis)
}

// ===== Event Providers =====

// EventSet provides the lifecycle event bus and its subscribers.
var EventSet = wire.NewSet(
	ProvideKafkaRelay,
	ProvideEventBus,
	wire.Bind(new(events.Publisher), new(*events.Bus)),
)

// ProvideKafkaRelay creates the Kafka relay, or nil when disabled.
func ProvideKafkaRelay(cfg *config.Config, zapLog *zap.Logger) (*events.KafkaRelay, func()) {
	if !cfg.Events.KafkaEnabled {
		return nil, func() {}
	}
	writer := events.NewKafkaWriter(events.KafkaConfig{
		Brokers:      cfg.Events.KafkaBrokers,
		Topic:        cfg.Events.KafkaTopic,
		WriteTimeout: cfg.Events.WriteTimeout,
	}, zapLog)
	relay := events.NewKafkaRelay(writer, cfg.Events.WriteTimeout, zapLog)
	return relay, func() {
		if err := relay.Close(); err != nil {
			zapLog.Warn("close kafka relay", zap.Error(err))
		}
	}
}

// ProvideEventBus creates the event bus with every subscriber registered.
// Subscribers run in registration order: cache invalidation first so that
// later subscribers observe the new team.
func ProvideEventBus(
	zapLog *zap.Logger,
	invalidator *membership.Invalidator,
	subscriber *notification.Subscriber,
	relay *events.KafkaRelay,
) *events.Bus {
	bus := events.NewBus(zapLog)
	bus.Register(invalidator)
	bus.Register(subscriber)
	if relay != nil {
		bus.Register(relay)
	}
	return bus
}

// ===== Module Providers =====

// ModuleSet provides repositories, services and handlers.
var ModuleSet = wire.NewSet(
	// Repositories
	ProvideUserRepository,
	ProvideThreadRepository,
	ProvideProjectRepository,
	ProvideApplicationRepository,
	ProvideNotificationRepository,

	// Services
	ProvideUserDirectory,
	ProvideThreadRegistry,
	ProvideMembershipCache,
	ProvideMembershipService,
	ProvideProjectService,
	ProvideApplicationService,
	ProvideNotificationService,
	ProvideNotificationSink,

	// Subscribers
	ProvideMembershipInvalidator,
	ProvideNotificationSubscriber,

	// Handlers
	ProvideProjectHandler,
	ProvideApplicationHandler,
	ProvideMembershipHandler,
	ProvideNotificationHandler,
)

// ProvideUserRepository creates the user repository.
func ProvideUserRepository(db *gorm.DB) user.Repository {
	return user.NewRepository(db)
}

// ProvideThreadRepository creates the thread repository.
func ProvideThreadRepository(db *gorm.DB) thread.Repository {
	return thread.NewRepository(db)
}

// ProvideProjectRepository creates the project repository. Deleting a
// project removes its applications in the same transaction.
func ProvideProjectRepository(db *gorm.DB) project.Repository {
	return project.NewRepository(db, application.DeleteByProject)
}

// ProvideApplicationRepository creates the application repository.
func ProvideApplicationRepository(db *gorm.DB) application.Repository {
	return application.NewRepository(db)
}

// ProvideNotificationRepository creates the notification repository.
func ProvideNotificationRepository(db *gorm.DB) notification.Repository {
	return notification.NewRepository(db)
}

// ProvideUserDirectory creates the profile directory.
func ProvideUserDirectory(repo user.Repository, zapLog *zap.Logger) *user.Directory {
	return user.NewDirectory(repo, zapLog)
}

// ProvideThreadRegistry creates the thread registry.
func ProvideThreadRegistry(repo thread.Repository) *thread.Registry {
	return thread.NewRegistry(repo)
}

// ProvideMembershipCache picks Redis when connected, memory otherwise.
func ProvideMembershipCache(redis goredis.UniversalClient) membership.Cache {
	if redis == nil {
		return membership.NewMemoryCache()
	}
	return membership.NewRedisCache(redis)
}

// ProvideMembershipService creates the membership resolver service.
func ProvideMembershipService(
	cfg *config.Config,
	projects project.Repository,
	apps application.Repository,
	users *user.Directory,
	memberCache membership.Cache,
	m *metrics.Metrics,
	zapLog *zap.Logger,
) *membership.Service {
	return membership.NewService(projects, apps, users, memberCache, cfg.Membership.CacheTTL, m, zapLog)
}

// ProvideProjectService creates the project lifecycle service.
func ProvideProjectService(
	repo project.Repository,
	threads *thread.Registry,
	members *membership.Service,
	publisher events.Publisher,
	zapLog *zap.Logger,
) *project.Service {
	return project.NewService(repo, threads, members, publisher, zapLog)
}

// ProvideApplicationService creates the application lifecycle service.
func ProvideApplicationService(
	repo application.Repository,
	projects project.Repository,
	users *user.Directory,
	publisher events.Publisher,
	m *metrics.Metrics,
	zapLog *zap.Logger,
) *application.Service {
	return application.NewService(repo, projects, users, publisher, m, zapLog)
}

// ProvideNotificationService creates the recipient notification service.
func ProvideNotificationService(cfg *config.Config, repo notification.Repository, zapLog *zap.Logger) *notification.Service {
	return notification.NewService(repo, cfg.Notification.ListLimit, zapLog)
}

// ProvideNotificationSink creates the breaker guarded notification sink.
func ProvideNotificationSink(cfg *config.Config, repo notification.Repository, m *metrics.Metrics, zapLog *zap.Logger) notification.Sink {
	return notification.NewBreakerSink(repo, &notification.SinkConfig{
		MaxFailures: cfg.Notification.BreakerMaxFailures,
		Timeout:     cfg.Notification.BreakerTimeout,
		Interval:    cfg.Notification.BreakerInterval,
	}, m, zapLog)
}

// ProvideMembershipInvalidator creates the membership cache invalidator.
func ProvideMembershipInvalidator(service *membership.Service, zapLog *zap.Logger) *membership.Invalidator {
	return membership.NewInvalidator(service, zapLog)
}

// ProvideNotificationSubscriber creates the notification subscriber.
func ProvideNotificationSubscriber(sink notification.Sink, m *metrics.Metrics, zapLog *zap.Logger) *notification.Subscriber {
	return notification.NewSubscriber(sink, m, zapLog)
}

// ProvideProjectHandler creates the project handler.
func ProvideProjectHandler(service *project.Service, zapLog *zap.Logger) *project.Handler {
	return project.NewHandler(service, zapLog)
}

// ProvideApplicationHandler creates the application handler.
func ProvideApplicationHandler(service *application.Service, zapLog *zap.Logger) *application.Handler {
	return application.NewHandler(service, zapLog)
}

// ProvideMembershipHandler creates the membership handler.
func ProvideMembershipHandler(service *membership.Service, zapLog *zap.Logger) *membership.Handler {
	return membership.NewHandler(service, zapLog)
}

// ProvideNotificationHandler creates the notification handler.
func ProvideNotificationHandler(service *notification.Service, zapLog *zap.Logger) *notification.Handler {
	return notification.NewHandler(service, zapLog)
}

// AppSet is the complete provider set.
var AppSet = wire.NewSet(
	InfraSet,
	EventSet,
	ModuleSet,
	NewApp,
)
