package app

import (
	"context"
	"coursegpt_backend/internal/config"
	"coursegpt_backend/internal/controller"
	"coursegpt_backend/internal/llm"
	"coursegpt_backend/internal/repository"
	"coursegpt_backend/internal/service"
	"coursegpt_backend/pkg/configwatcher"
	"coursegpt_backend/pkg/database"
	"coursegpt_backend/pkg/logger"
	"coursegpt_backend/pkg/monitoring"
	"coursegpt_backend/pkg/security"
	"coursegpt_backend/pkg/tracing"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "coursegpt-backend"

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	lesson *repository.LessonRepository
	course *repository.CourseRepository
}

type services struct {
	lesson     *service.LessonService
	course     *service.CourseService
	generation *service.GenerationService
}

type controllers struct {
	lesson *controller.LessonController
	draft  *controller.DraftController
	course *controller.CourseController
	health *controller.HealthController
}

// Deps are the external resources an App is assembled from. Redis and
// Provider may be nil.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Provider llm.Provider
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		lesson: repository.NewLessonRepository(db),
		course: repository.NewCourseRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client, provider llm.Provider) *services {
	var cache service.LessonCache
	if rdb != nil {
		cache = service.NewRedisLessonCache(rdb, cfg.Redis.CacheTTL)
	}

	s := &services{}
	s.lesson = service.NewLessonService(repos.lesson, cache, cfg.Database.Timeout)
	s.course = service.NewCourseService(repos.course, s.lesson, cfg.Database.Timeout)
	s.generation = service.NewGenerationService(provider, service.SettingsFromConfig(cfg.AI))
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		lesson: controller.NewLessonController(s.lesson),
		draft:  controller.NewDraftController(s.generation, s.lesson),
		course: controller.NewCourseController(s.course),
		health: controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware(serviceName))
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewWithDeps assembles services, controllers and routes on top of already
// opened resources.
func NewWithDeps(cfg *config.Config, deps Deps) *App {
	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config: cfg,
		DB:     deps.DB,
		Redis:  deps.Redis,
	}

	repos := app.initRepositories(deps.DB)
	app.services = app.initServices(repos, cfg, deps.Redis, deps.Provider)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	app.RegisterConfigCallback(logger.SetLevel)
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.services.generation.UpdateSettings(service.SettingsFromConfig(newCfg.AI))
	})

	return app
}

// New opens the database, the optional Redis cache, the generation provider
// and tracing, then assembles the App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, lesson cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	provider, err := llm.NewProvider(ctx, cfg.AI)
	if err != nil {
		var cfgErr *llm.ErrConfig
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("initialize generation provider: %w", err)
		}
		logger.Log.Warn("Generation provider not configured; draft generation will fail", zap.Error(err))
		provider = nil
	} else {
		logger.Log.Info("Generation provider ready",
			zap.String("provider", provider.Name()),
			zap.String("model", provider.ModelID()),
		)
	}

	app := NewWithDeps(cfg, Deps{DB: db, Redis: rdb, Provider: provider})

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(ctx, serviceName, cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if a.Config.ConfigFile != "" {
		go func() {
			err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(newCfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

// Close releases the tracer, Redis and the database pool.
func (a *App) Close() {
	if a.tracer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
		cancel()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = logger.Log.Sync()
}

// Generation exposes the generation service to the CLI.
func (a *App) Generation() *service.GenerationService {
	return a.services.generation
}
