package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studentsync/internal/app/controllers"
	appMigrations "github.com/yigit/studentsync/internal/app/migrations"
	appRepos "github.com/yigit/studentsync/internal/app/repositories"
	appRoutes "github.com/yigit/studentsync/internal/app/routes"
	appServices "github.com/yigit/studentsync/internal/app/services"
	"github.com/yigit/studentsync/internal/config"
	"github.com/yigit/studentsync/internal/db"
	appMiddleware "github.com/yigit/studentsync/internal/middleware"
	"github.com/yigit/studentsync/internal/pkg/logger"
	"github.com/yigit/studentsync/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	StudentService    appServices.StudentService
	StudentController *appControllers.StudentController
	Seeder            *seed.Seeder
	Logger            zerolog.Logger
}

// SetupLogger configures the global logger from cfg. verbose forces debug
// level.
func SetupLogger(cfg *config.Config, verbose bool) zerolog.Logger {
	level := logger.ParseLevel(cfg.Logging.Level)
	if verbose {
		level = logger.DebugLevel
	}

	lgr := logger.Configure(logger.Config{
		Level:  level,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Debug().Str("logLevel", string(level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return lgr
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.Migrate(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.StudentService = appServices.NewStudentService(
		deps.Repos.UserRepository,
		deps.Repos.IdentityRepository,
		cfg.Credentials.EmailDomain,
		0,
		lgr,
	)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.Seeder = seed.NewSeeder(deps.Repos.UserRepository, deps.Repos.IdentityRepository, lgr)

	return deps
}

// SetupRouter creates the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	appMiddleware.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router, deps.StudentController)
	return router
}
