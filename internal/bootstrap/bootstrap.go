package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/escolinha/backend/internal/app/controllers"
	appMigrations "github.com/escolinha/backend/internal/app/migrations"
	appRepos "github.com/escolinha/backend/internal/app/repositories"
	appRoutes "github.com/escolinha/backend/internal/app/routes"
	appServices "github.com/escolinha/backend/internal/app/services"
	"github.com/escolinha/backend/internal/config"
	"github.com/escolinha/backend/internal/db"
	appMiddleware "github.com/escolinha/backend/internal/middleware"
	pkgAuth "github.com/escolinha/backend/internal/pkg/auth"
	"github.com/escolinha/backend/internal/pkg/filestorage"
	"github.com/escolinha/backend/internal/pkg/helpers"
	"github.com/escolinha/backend/internal/pkg/logger"
	"github.com/escolinha/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	StudentService      appServices.StudentService
	TeacherService      appServices.TeacherService
	FinanceService      appServices.FinanceService
	DashboardService    appServices.DashboardService
	FeedbackService     appServices.FeedbackService
	Provisioning        appServices.ProvisioningService
	AuthController      *appControllers.AuthController
	StudentController   *appControllers.StudentController
	TeacherController   *appControllers.TeacherController
	FinanceController   *appControllers.FinanceController
	DashboardController *appControllers.DashboardController
	FeedbackController  *appControllers.FeedbackController
	UploadController    *appControllers.UploadController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
	FileStorage         *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env is fine; the environment may carry everything already.
	_ = godotenv.Load()

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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Startup survives a failed seed; the admin can be created by hand.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	// The base URL must match the static file serving path in the server.
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 120*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	uow := appRepos.NewPgxUnitOfWork(database)

	deps.Provisioning = appServices.NewProvisioningService(uow, lgr)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Provisioning, lgr)
	deps.TeacherService = appServices.NewTeacherService(deps.Repos.TeacherRepository, deps.Repos.ExpenseRepository, lgr)
	deps.FinanceService = appServices.NewFinanceService(
		deps.Repos.TuitionRepository,
		deps.Repos.ExpenseRepository,
		deps.Repos.LedgerRepository,
		deps.Repos.ClosingRepository,
		deps.Repos.StudentRepository,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.DashboardRepository, deps.Repos.LedgerRepository, lgr)
	deps.FeedbackService = appServices.NewFeedbackService(
		deps.Repos.FeedbackRepository,
		deps.Repos.LinkRepository,
		deps.Repos.StudentRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)
	deps.FinanceController = appControllers.NewFinanceController(deps.FinanceService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService)
	deps.UploadController = appControllers.NewUploadController(deps.FileStorage, int64(cfg.Upload.MaxSizeMB), cfg.Upload.MaxFiles)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.CORS())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.TeacherController,
		deps.FinanceController,
		deps.DashboardController,
		deps.FeedbackController,
		deps.UploadController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
