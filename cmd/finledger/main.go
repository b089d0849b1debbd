// Package main is the entry point of the finledger HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"finledger/internal/ledger/adapters/cache"
	ledgerhttp "finledger/internal/ledger/adapters/http"
	"finledger/internal/ledger/adapters/postgres"
	"finledger/internal/ledger/adapters/services"
	"finledger/internal/ledger/app"
	"finledger/internal/ledger/config"
	"finledger/internal/ledger/db"
	"finledger/pkg/logger"
	"finledger/pkg/resilience"
	"finledger/pkg/shutdown"
)

const (
	EnvLoggerMode  = "LEDGER_LOGGER_MODE"
	EnvLoggerLevel = "LEDGER_LOGGER_LEVEL"
	EnvFile        = ".env"
)

const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadEnvFile          = "failed to load env file"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "graceful shutdown finished with errors"
)

const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

const (
	LogServiceStarted      = "ledger service started"
	LogServiceShutdownDone = "ledger service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingCache        = "closing cache connection"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRepo            = "initializing repositories"
	LogInitCache           = "initializing balance cache"
	LogCacheDisabled       = "balance cache disabled"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	envErr := godotenv.Load(EnvFile)

	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn(ctx, ErrLoadEnvFile, zap.Error(envErr))
	}

	var exitCode int

	func() {
		defer func() {
			if err := logger.Log(ctx).Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		exitCode = run(ctx)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func run(ctx context.Context) int {
	log := logger.Log(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		return 1
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
		return 1
	}
	logger.SetGlobalLogger(finalLogger)
	log = finalLogger

	database, err := db.New(ctx, &cfg.Postgres)
	if err != nil {
		log.Error(ctx, ErrInitDB, zap.Error(err))
		return 1
	}

	log.Info(ctx, LogServiceStarted,
		zap.String("environment", string(cfg.Logging.GetEnvironment())),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("startup_time", time.Now().Format(time.RFC3339)))

	hooks := []shutdown.Hook{
		func(ctx context.Context) error {
			log.Info(ctx, LogClosingDB)
			database.Close(ctx)
			return nil
		},
	}

	log.Info(ctx, LogInitRepo)
	repoFactory := postgres.NewRepositoryFactory(database.Pool())
	userRepo := repoFactory.UserRepository()
	entryRepo := repoFactory.EntryRepository()

	if cfg.Redis.Enabled {
		log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis, resilience.NewRetry("redis", resilience.DefaultRetryConfig()))
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			return 1
		}
		entryRepo = cache.NewBalanceCachingRepository(entryRepo, redisCache, cfg.Redis.DefaultTTL)
		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogClosingCache)
			return redisCache.Close()
		})
	} else {
		log.Info(ctx, LogCacheDisabled)
	}

	log.Info(ctx, LogInitServices)
	serviceFactory := services.NewServiceFactory(cfg.Security, cfg.JWT)
	passwordService := serviceFactory.PasswordService()
	tokenService := serviceFactory.TokenService()

	log.Info(ctx, LogInitUseCases)
	entryUseCase := app.NewEntryUseCase(entryRepo)
	userUseCase := app.NewUserUseCase(userRepo, passwordService)

	log.Info(ctx, LogInitHTTPServer)
	httpApp := ledgerhttp.NewApp(&cfg.HTTP)
	ledgerhttp.SetupRouter(httpApp,
		ledgerhttp.NewUsersHandler(userUseCase, entryUseCase, tokenService),
		ledgerhttp.NewEntriesHandler(entryUseCase),
		tokenService,
	)

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		if err := httpApp.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			serverErr <- err
			cancel()
		}
	}()

	// Storage is released only after the HTTP server has drained.
	if err := shutdown.Wait(waitCtx, cfg.Shutdown.GetTimeout(), func(ctx context.Context) error {
		log.Info(ctx, LogStoppingHTTP)
		return httpApp.ShutdownWithContext(ctx)
	}); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
	}
	if err := shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...); err != nil {
		log.Error(ctx, ErrShutdown, zap.Error(err))
	}

	exitCode := 0
	select {
	case err := <-serverErr:
		log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
		exitCode = 1
	default:
	}

	log.Info(ctx, LogServiceShutdownDone)
	return exitCode
}
