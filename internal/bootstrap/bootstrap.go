package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/lams-capstone/lams-admin/internal/app/controllers"
	appMigrations "github.com/lams-capstone/lams-admin/internal/app/migrations"
	appRepos "github.com/lams-capstone/lams-admin/internal/app/repositories"
	appRoutes "github.com/lams-capstone/lams-admin/internal/app/routes"
	appServices "github.com/lams-capstone/lams-admin/internal/app/services"
	"github.com/lams-capstone/lams-admin/internal/config"
	"github.com/lams-capstone/lams-admin/internal/db"
	appMiddleware "github.com/lams-capstone/lams-admin/internal/middleware"
	pkgAuth "github.com/lams-capstone/lams-admin/internal/pkg/auth"
	"github.com/lams-capstone/lams-admin/internal/pkg/filestorage"
	"github.com/lams-capstone/lams-admin/internal/pkg/helpers"
	"github.com/lams-capstone/lams-admin/internal/pkg/logger"
	"github.com/lams-capstone/lams-admin/internal/seed"
)

// multipartOverhead is allowed on top of the upload size for the other form fields.
const multipartOverhead = 1 << 20

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService appServices.PersonService
	FacultyService appServices.PersonService
	StaffService   appServices.PersonService
	UserService    appServices.UserService
	AuthService    *appServices.AuthService
	Registry       appServices.IdentifierRegistry
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("dir", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Registry = appServices.NewIdentifierRegistry(deps.Repos.IdentifierRepository)

	maxUpload := cfg.Storage.MaxUploadSize
	deps.StudentService = appServices.NewPersonService(deps.Repos.StudentRepository, deps.Registry,
		deps.FileStorage, appServices.StudentOptions(maxUpload), lgr)
	deps.FacultyService = appServices.NewPersonService(deps.Repos.FacultyRepository, deps.Registry,
		deps.FileStorage, appServices.FacultyOptions(maxUpload), lgr)
	deps.StaffService = appServices.NewPersonService(deps.Repos.StaffRepository, deps.Registry,
		deps.FileStorage, appServices.StaffOptions(), lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.AuthService, lgr),
		Student: appControllers.NewStudentController(deps.StudentService),
		Faculty: appControllers.NewFacultyController(deps.FacultyService),
		Staff:   appControllers.NewStaffController(deps.StaffService),
		User:    appControllers.NewUserController(deps.UserService),
		Health:  appControllers.NewHealthController(dbPool),
	}

	return deps, nil
}

// SeedDefaults creates the default admin account on an empty database.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if err := seed.CreateDefaultAdmin(ctx, deps.UserService, cfg, deps.Logger); err != nil {
		deps.Logger.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	appMiddleware.ExposeErrorDetails = !cfg.IsProduction()

	router := gin.New()
	router.MaxMultipartMemory = cfg.Storage.MaxUploadSize + multipartOverhead
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.Server.CORSOrigins),
		appMiddleware.BodyLimit(cfg.Storage.MaxUploadSize+multipartOverhead),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.FileStorage.BasePath())

	return router
}
