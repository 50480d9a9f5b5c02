package app

import (
	"aeducacao_backend/internal/config"
	"aeducacao_backend/internal/controller"
	"aeducacao_backend/internal/repository"
	"aeducacao_backend/internal/service"
	"aeducacao_backend/pkg/database"
	"aeducacao_backend/pkg/logger"
	"aeducacao_backend/pkg/monitoring"
	"aeducacao_backend/pkg/security"
	"aeducacao_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	watcher         *service.DirectoryWatcherService
	configMu        sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	document    *repository.DocumentRepository
	progress    *repository.UserProgressRepository
	interaction *repository.InteractionRepository
	session     *repository.AssessmentSessionRepository
}

type services struct {
	storage        *service.StorageService
	search         *service.SearchService
	indexer        *service.IndexerService
	analyze        *service.AnalyzeService
	learningGap    *service.LearningGapService
	media          *service.MediaService
	exercise       *service.ExerciseService
	assessment     *service.AssessmentService
	recommendation *service.RecommendationService
	performance    *service.PerformanceService
	auth           *service.AuthService
}

type controllers struct {
	analyze        *controller.AnalyzeController
	search         *controller.SearchController
	learningGap    *controller.LearningGapController
	index          *controller.IndexController
	admin          *controller.AdminController
	media          *controller.MediaController
	exercise       *controller.ExerciseController
	assessment     *controller.AssessmentController
	recommendation *controller.RecommendationController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置文件热更新入口，由configwatcher触发
func (a *App) ReloadConfig(cfg *config.Config) {
	a.configMu.Lock()
	defer a.configMu.Unlock()

	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		document:    repository.NewDocumentRepository(db),
		progress:    repository.NewUserProgressRepository(db),
		interaction: repository.NewInteractionRepository(db),
		session:     repository.NewAssessmentSessionRepository(rdb, 24*time.Hour),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.search = service.NewSearchService(
		repos.document,
		rdb,
		cfg.Search.DefaultLimit,
		time.Duration(cfg.Search.CacheTTLMinutes)*time.Minute,
	)
	s.indexer = service.NewIndexerService(repos.document, s.storage)
	s.analyze = service.NewAnalyzeService(s.search, repos.progress, repos.interaction, cfg.Media.DefaultSamples)
	s.learningGap = service.NewLearningGapService(repos.progress, repos.interaction, s.search)
	s.media = service.NewMediaService(&cfg.Media)
	s.exercise = service.NewExerciseService(s.media)

	// 开放题的评判走分析管线
	s.assessment = service.NewAssessmentService(repos.session, repos.progress, s.analyze)
	s.recommendation = service.NewRecommendationService(repos.progress, repos.interaction, s.search)
	s.performance = service.NewPerformanceService(s.indexer)
	s.auth = service.NewAuthService(cfg)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		analyze:        controller.NewAnalyzeController(s.analyze),
		search:         controller.NewSearchController(s.search),
		learningGap:    controller.NewLearningGapController(s.learningGap),
		index:          controller.NewIndexController(s.indexer),
		admin:          controller.NewAdminController(s.auth, s.performance),
		media:          controller.NewMediaController(s.media),
		exercise:       controller.NewExerciseController(s.exercise),
		assessment:     controller.NewAssessmentController(s.assessment),
		recommendation: controller.NewRecommendationController(s.recommendation),
		health:         controller.NewHealthController(),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
	))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

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
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("aeducacao-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	// 监控目录里出现的新文件自动进内容库
	if len(cfg.Indexer.WatchDirs) > 0 {
		app.watcher = service.NewDirectoryWatcherService(services.indexer)
		if err := app.watcher.Start(cfg.Indexer.WatchDirs); err != nil {
			logger.Log.Warn("directory watcher disabled", zap.Error(err))
			app.watcher = nil
		}
	}

	// 本地存储时直接由gin提供已处理的媒体文件
	if cfg.Storage.Type != "minio" {
		if _, err := os.Stat(cfg.Media.RootDir); os.IsNotExist(err) {
			os.MkdirAll(cfg.Media.RootDir, os.ModePerm)
		}
		router.Static("/"+cfg.Media.RootDir, cfg.Media.RootDir)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.watcher != nil {
		a.watcher.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
