package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/controller"
	"thinking_styles_backend/internal/repository"
	"thinking_styles_backend/internal/service"
	"thinking_styles_backend/pkg/configwatcher"
	"thinking_styles_backend/pkg/database"
	"thinking_styles_backend/pkg/logger"
	"thinking_styles_backend/pkg/monitoring"
	"thinking_styles_backend/pkg/security"
	"thinking_styles_backend/pkg/tracing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigDir       string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	origins         *security.Origins
	limiter         *security.RateLimiter
	bank            *bankReloader
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	assessment *repository.AssessmentRepository
	report     *repository.ReportRepository
	reflection *repository.ReflectionRepository
}

type services struct {
	engine     *service.EngineHolder
	cache      *service.ReportCache
	storage    *service.StorageService
	render     *service.RenderService
	auth       *service.AuthService
	user       *service.UserService
	assessment *service.AssessmentService
	report     *service.ReportService
	export     *service.ExportService
	education  *service.EducationService
	hub        *service.NotificationHub
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	assessment   *controller.AssessmentController
	report       *controller.ReportController
	education    *controller.EducationController
	health       *controller.HealthController
	notification *controller.NotificationController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 配置文件变更后依次通知各组件
func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		report:     repository.NewReportRepository(db),
		reflection: repository.NewReflectionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	engine, err := service.BuildEngine(cfg.Assessment)
	if err != nil {
		return nil, err
	}
	s.engine = service.NewEngineHolder(engine)

	s.render, err = service.NewRenderService()
	if err != nil {
		return nil, err
	}

	s.cache = service.NewReportCache(rdb, cfg.Assessment.ReportCacheTTL())
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.assessment = service.NewAssessmentService(repos.assessment, s.user, s.engine, s.cache)
	s.report = service.NewReportService(repos.report, repos.assessment, repos.reflection, s.user, s.engine, s.cache)
	s.export = service.NewExportService(s.report, s.render, s.storage, repos.report)
	s.education = service.NewEducationService(s.engine)

	s.hub = service.NewNotificationHub(rdb, s.user, a.origins)
	s.assessment.Notifier = s.hub
	s.report.Notifier = s.hub

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		assessment:   controller.NewAssessmentController(s.assessment),
		report:       controller.NewReportController(s.report, s.export),
		education:    controller.NewEducationController(s.education),
		health:       controller.NewHealthController(db, rdb),
		notification: controller.NewNotificationController(s.hub),
	}
}

func rateWindow(cfg *config.Config) time.Duration {
	if cfg.RateLimit.WindowMinutes <= 0 {
		return time.Minute
	}
	return time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloaders 热更新：CORS、限流、缓存时长、题库
func (a *App) registerReloaders() {
	s := a.services
	a.bank = newBankReloader(s.engine, a.Config.Assessment)

	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.origins.Set(cfg.CORS.AllowedOrigins)
		a.limiter.Update(cfg.RateLimit.MaxRequests, rateWindow(cfg))
		s.cache.SetTTL(cfg.Assessment.ReportCacheTTL())
	})

	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.bank.Apply(cfg.Assessment)
	})
}

// newApp 组装应用，数据库与 Redis 由调用方提供
func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		origins: security.NewOrigins(cfg.CORS.AllowedOrigins),
		limiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, rateWindow(cfg)),
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		return nil, err
	}
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.registerReloaders()
	return app, nil
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app, err := newApp(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}
	app.ConfigDir = configDir

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.limiter.RunCleanup(ctx)

	// 通知推送依赖 Redis 订阅，失败时只影响实时推送
	if err := a.services.hub.Start(ctx); err != nil {
		logger.Log.Error("通知服务启动失败", zap.Error(err))
	}

	a.bank.Start(ctx)

	if a.ConfigDir != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.ConfigDir, configwatcher.DefaultDebounce, a.applyConfig); err != nil {
				logger.Log.Error("配置监听启动失败", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if err := a.Redis.Close(); err != nil {
		logger.Log.Warn("Failed to close redis", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
