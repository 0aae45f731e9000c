// Package bootstrap composes the application: configuration, logging,
// the backend client, repositories, services, realtime plumbing,
// middleware and controllers, and finally the Gin router.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/internlink/internlink/docs" // generated swagger docs
	appControllers "github.com/internlink/internlink/internal/app/controllers"
	appMigrations "github.com/internlink/internlink/internal/app/migrations"
	"github.com/internlink/internlink/internal/app/models"
	appRepos "github.com/internlink/internlink/internal/app/repositories"
	appRoutes "github.com/internlink/internlink/internal/app/routes"
	appServices "github.com/internlink/internlink/internal/app/services"
	"github.com/internlink/internlink/internal/authstate"
	"github.com/internlink/internlink/internal/backend"
	"github.com/internlink/internlink/internal/changefeed"
	"github.com/internlink/internlink/internal/config"
	"github.com/internlink/internlink/internal/live"
	appMiddleware "github.com/internlink/internlink/internal/middleware"
	"github.com/internlink/internlink/internal/mockauth"
	pkgAuth "github.com/internlink/internlink/internal/pkg/auth"
	"github.com/internlink/internlink/internal/pkg/email"
	"github.com/internlink/internlink/internal/pkg/filestorage"
	"github.com/internlink/internlink/internal/pkg/helpers"
	"github.com/internlink/internlink/internal/pkg/logger"
	"github.com/internlink/internlink/internal/pkg/websocket"
	"github.com/internlink/internlink/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	Services     *appServices.Services
	JWTService   *pkgAuth.JWTService
	FileStorage  *filestorage.LocalStorage
	Feed         *changefeed.Feed
	Hub          *websocket.Hub
	Bridge       *websocket.Bridge
	AuthState    *authstate.Container
	ListingsView *live.Watcher[*models.JobListing]
	Redis        *redis.Client

	// BackendConfigured is false in mock mode, where data routes are
	// guarded off and the session controller serves the auth surface
	BackendConfigured bool

	AuthMiddleware *appMiddleware.AuthMiddleware
	RateLimiter    *appMiddleware.RateLimiter
	Controllers    appRoutes.Controllers

	Logger zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupBackend decides between the real database backend and mock mode.
// With a configured backend it verifies the connection, applies the
// embedded migrations and seeds the default data.
func SetupBackend(cfg *config.Config, lgr zerolog.Logger) (*backend.Client, error) {
	client, err := backend.New(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to backend database")
		return nil, err
	}

	if client.MockMode() {
		lgr.Warn().Msg("Running in mock mode: data endpoints are disabled until a backend is configured")
		return client, nil
	}

	dbPool := client.DB.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		client.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.Run(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		client.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed failures are logged but do not block startup
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return client, nil
}

// BuildDependencies initializes repositories, services, realtime
// infrastructure, middleware and controllers over the backend client.
func BuildDependencies(cfg *config.Config, client *backend.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, BackendConfigured: !client.MockMode()}

	// In mock mode there is no pool; repositories are still constructed
	// so the wiring stays uniform, and the router's backend guard keeps
	// requests from ever reaching them.
	if client.DB != nil {
		deps.Repos = appRepos.NewRepositories(client.DB.Pool)
	} else {
		deps.Repos = appRepos.NewRepositories(nil)
	}

	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	emailService := email.NewService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  "InternLink",
		FromEmail: cfg.SMTP.From,
		UseTLS:    true,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.Feed = changefeed.New()
	deps.Services = appServices.NewServices(deps.Repos, deps.Feed, deps.JWTService, emailService, deps.FileStorage, lgr)

	// Realtime fan-out: the hub tracks websocket clients per user, the
	// bridge routes change feed events into it.
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.Bridge = websocket.NewBridge(deps.Feed, deps.Hub, lgr)
	deps.Bridge.Start()

	// Auth state container: mock identity store without a backend, the
	// database-backed provider otherwise.
	var provider authstate.Provider
	if client.MockMode() {
		store, err := mockauth.NewStore(cfg.Mock.Dir)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize mock identity store")
			return nil, fmt.Errorf("failed to initialize mock identity store: %w", err)
		}
		provider = authstate.NewMockProvider(store)
	} else {
		provider = authstate.NewDBProvider(deps.Services.AuthService, deps.Services.ProfileService)
	}
	deps.AuthState = authstate.New(provider, lgr)
	if err := deps.AuthState.Start(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Failed to start auth state container")
		return nil, err
	}

	// Live listings view: seeded from the public browse surface, then
	// kept current by the change feed. Without a backend the snapshot
	// fails and the view serves the demo dataset instead.
	listingSnapshot := func(ctx context.Context) ([]*models.JobListing, error) {
		if client.MockMode() {
			return nil, errors.New("backend not configured")
		}
		active := models.JobStatusActive
		approved := models.ModerationApproved
		jobs, _, err := deps.Repos.JobListingRepository.GetAll(ctx, appRepos.JobListingFilter{
			Status:           &active,
			ModerationStatus: &approved,
		}, 1, 50)
		return jobs, err
	}
	deps.ListingsView = live.NewWatcher(live.WatcherConfig[*models.JobListing]{
		Table:    "job_listings",
		Feed:     deps.Feed,
		Snapshot: listingSnapshot,
		Fallback: live.DemoListings(),
		Decode: func(event changefeed.Event) (*models.JobListing, bool) {
			job, ok := event.Row.(*models.JobListing)
			return job, ok
		},
		RowID:  func(job *models.JobListing) int64 { return job.ID },
		Logger: lgr,
	})
	deps.ListingsView.Start(context.Background())

	// Redis is optional: without an address the limiter passes everything
	if cfg.Redis.Addr != "" {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
	}
	deps.RateLimiter = appMiddleware.NewRateLimiter(deps.Redis, cfg.RateLimit.Requests, cfg.RateLimitWindow(), lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(deps.Services.AuthService, lgr),
		Session:     appControllers.NewSessionController(deps.AuthState, lgr),
		Profile:     appControllers.NewProfileController(deps.Services.ProfileService, lgr),
		Job:         appControllers.NewJobController(deps.Services.JobService, lgr),
		Application: appControllers.NewApplicationController(deps.Services.ApplicationService, lgr),
		Message:     appControllers.NewMessageController(deps.Services.MessageService, lgr),
		Review:      appControllers.NewReviewController(deps.Services.ReviewService, lgr),
		Admin:       appControllers.NewAdminController(deps.Services.AdminService, lgr),
		Live: appControllers.NewLiveController(deps.ListingsView, deps.Feed, func(userID int64) live.DesktopNotifier {
			return websocket.NewDesktopPush(deps.Hub, userID)
		}, lgr),
		Feed: websocket.NewHandler(deps.Hub, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RateLimiter, cfg.Storage.UploadDir, deps.BackendConfigured)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
