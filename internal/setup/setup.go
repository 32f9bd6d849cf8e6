package setup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tubeguard/tubeguard/internal/ai"
	"github.com/tubeguard/tubeguard/internal/cache"
	"github.com/tubeguard/tubeguard/internal/database"
	"github.com/tubeguard/tubeguard/internal/redis"
	"github.com/tubeguard/tubeguard/internal/service"
	"github.com/tubeguard/tubeguard/internal/setup/config"
	"github.com/tubeguard/tubeguard/internal/setup/telemetry"
	"github.com/tubeguard/tubeguard/internal/youtube/checker"
	"github.com/tubeguard/tubeguard/internal/youtube/fetcher"
	"go.uber.org/zap"
)

// ErrMigrationsPending is returned when the schema is behind and the operator declined to migrate.
var ErrMigrationsPending = errors.New("database migrations are pending")

// App bundles all core dependencies and services needed by the application.
type App struct {
	Config       *config.Config          // Application configuration
	Logger       *zap.Logger             // Main application logger
	DBLogger     *zap.Logger             // Database-specific logger
	DB           database.Client         // Database connection pool
	RedisManager *redis.Manager          // Redis connection manager
	Checker      *checker.CommentChecker // Comment classification pipeline
	Analyzer     *service.Analyzer       // Video analysis pipeline
	LogManager   *telemetry.Manager      // Log management system
	closeAI      func() error            // Releases the AI provider client
	shutdownOTel func(context.Context) error
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, serviceType telemetry.ServiceType, logDir string) (*App, error) {
	// Load app configuration
	cfg, configDir, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(serviceType, logDir, &cfg.Common.Debug)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded configuration", zap.String("configDir", configDir))

	shutdownOTel := telemetry.ConfigureExporter(serviceType, config.RepositoryVersion, &cfg.Common.Telemetry)

	// Initialize database with migration check
	db, err := checkAndRunMigrations(ctx, &cfg.Common.PostgreSQL, dbLogger)
	if err != nil {
		_ = shutdownOTel(ctx)
		return nil, err
	}

	redisManager := redis.NewManager(&cfg.Common.Redis, logger)

	app := &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
		LogManager:   logManager,
		shutdownOTel: shutdownOTel,
	}

	if err := app.initPipeline(ctx, configDir); err != nil {
		app.Cleanup(ctx)
		return nil, err
	}

	return app, nil
}

// initPipeline wires the filter bank, classifier, fetchers and analyzer.
func (s *App) initPipeline(ctx context.Context, configDir string) error {
	cfg := &s.Config.Common

	filterList, err := config.LoadFilterList(configDir)
	if err != nil {
		return err
	}

	filters, err := checker.NewFilterBank(filterList.Merge(cfg.Filter))
	if err != nil {
		return err
	}

	classifier, closeAI, err := ai.NewBatchClassifier(ctx, &cfg.AI, &cfg.CircuitBreaker, s.Logger)
	if err != nil {
		return err
	}
	s.closeAI = closeAI

	s.Checker = checker.NewCommentChecker(filters, classifier, cfg.AI.MaxBatchSize, s.Logger)

	ytService, err := fetcher.NewService(ctx, &cfg.YouTube)
	if err != nil {
		return err
	}

	timeout := cfg.YouTube.RequestTimeoutDuration()
	opts := []service.Option{
		service.WithStore(s.DB.Service().Comment()),
		service.WithMaxResults(cfg.YouTube.MaxResults),
	}

	if cfg.Cache.Enabled {
		client, err := s.RedisManager.GetClient(redis.CacheDBIndex)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithCache(cache.NewAnalysisCache(client, cfg.Cache.TTLDuration(), s.Logger)))
	}

	s.Analyzer = service.NewAnalyzer(
		fetcher.NewCommentFetcher(ytService, timeout, s.Logger),
		fetcher.NewVideoFetcher(ytService, timeout, s.Logger),
		s.Checker,
		s.Logger,
		opts...,
	)

	return nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(ctx context.Context) {
	if s.closeAI != nil {
		if err := s.closeAI(); err != nil {
			s.Logger.Error("Failed to close AI client", zap.Error(err))
		}
	}

	// Flush pending error spans
	if err := s.shutdownOTel(ctx); err != nil {
		s.Logger.Error("Failed to shut down telemetry exporter", zap.Error(err))
	}

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()
}

// checkAndRunMigrations runs database migrations if needed.
func checkAndRunMigrations(ctx context.Context, cfg *config.PostgreSQL, dbLogger *zap.Logger) (database.Client, error) {
	tempDB, err := database.NewConnection(ctx, cfg, dbLogger, false)
	if err != nil {
		return nil, err
	}

	migrator := database.NewMigrator(tempDB.DB())
	if err := migrator.Init(ctx); err != nil {
		tempDB.Close()
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}

	ms, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		tempDB.Close()
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}

	unapplied := ms.Unapplied()
	if len(unapplied) == 0 {
		return tempDB, nil
	}

	log.Printf("%d database migrations are pending. Would you like to run them now? (y/N)", len(unapplied))

	var response string

	_, _ = fmt.Scanln(&response)

	tempDB.Close()

	if response != "y" && response != "Y" {
		return nil, fmt.Errorf("%w: run `tubeguard migrate up`", ErrMigrationsPending)
	}

	return database.NewConnection(ctx, cfg, dbLogger, true)
}
