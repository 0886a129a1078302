package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/api"
	"github.com/SoftGuar/Account-Management-Service/internal/api/handler"
	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
	"github.com/SoftGuar/Account-Management-Service/internal/core/service"
	"github.com/SoftGuar/Account-Management-Service/internal/infrastructure/config"
	"github.com/SoftGuar/Account-Management-Service/internal/infrastructure/crypto"
	mongostore "github.com/SoftGuar/Account-Management-Service/internal/infrastructure/db/mongo"
	pgstore "github.com/SoftGuar/Account-Management-Service/internal/infrastructure/db/postgres"
	redisstore "github.com/SoftGuar/Account-Management-Service/internal/infrastructure/db/redis"
	"github.com/SoftGuar/Account-Management-Service/internal/infrastructure/queue"
	"github.com/SoftGuar/Account-Management-Service/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		File:   cfg.LogFile,
	})

	stores, storeCheck, closeStore, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var locker ports.Locker
	var redisCheck handler.PingFunc
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = rdb.Locker()
		redisCheck = rdb.Ping
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis lock enabled")
	} else {
		log.Warn().Msg("redis disabled, email and approval locks are process-local no-ops")
	}

	hasher := newHasher(cfg.Security)

	// --- Services ---
	actionService := service.NewUserActionService(stores.Actions, log)
	dispatcher := queue.NewDispatcher(cfg.Actions.Workers, actionService, log)

	userService := service.NewUserService(stores.Users, stores.Accounts[domain.KindHelper], hasher, locker, log)
	accounts := make(map[domain.Kind]ports.AccountService, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		if kind == domain.KindUser {
			accounts[kind] = userService
			continue
		}
		accounts[kind] = service.NewAccountService(kind, stores.Accounts[kind], hasher, locker, log)
	}
	recService := service.NewRecommendationService(
		stores.Recommendations,
		accounts[domain.KindHelper],
		userService,
		locker,
		dispatcher,
		log,
	)

	e := api.NewRouter(api.Deps{
		Accounts:        accounts,
		Users:           userService,
		Recommendations: recService,
		Actions:         actionService,
		Checks: map[string]handler.PingFunc{
			cfg.StoreDriver: storeCheck,
			"redis":         redisCheck,
		},
		JWTSecret:    cfg.JWTSecret,
		AuthDisabled: cfg.AuthDisabled,
		Logger:       log,
	})
	if cfg.AuthDisabled {
		log.Warn().Msg("authentication disabled")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case runErr = <-serverErr:
		if runErr != nil {
			log.Error().Err(runErr).Msg("server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	// Requests are drained; flush the actions they queued.
	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("server stopped")
	return runErr
}

// openStores connects the configured backend and prepares its schema.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.Stores, handler.PingFunc, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := pgstore.Open(ctx, pgstore.Config{DSN: cfg.Postgres.DSN}, log)
		if err != nil {
			return ports.Stores{}, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return ports.Stores{}, nil, nil, err
		}
		if err := pgstore.Migrate(ctx, db); err != nil {
			_ = sqlDB.Close()
			return ports.Stores{}, nil, nil, err
		}
		log.Info().Msg("postgres connected")
		closeFn := func() {
			if err := sqlDB.Close(); err != nil {
				log.Error().Err(err).Msg("postgres close")
			}
		}
		return pgstore.NewStores(db), sqlDB.PingContext, closeFn, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return ports.Stores{}, nil, nil, err
		}
		stores := mongostore.NewStores(db)
		if err := mongostore.EnsureIndexes(ctx, stores); err != nil {
			_ = client.Disconnect(context.Background())
			return ports.Stores{}, nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongodb disconnect")
			}
		}
		ping := func(ctx context.Context) error { return client.Ping(ctx, nil) }
		return stores, ping, closeFn, nil
	}
}

func newHasher(cfg config.SecurityConfig) ports.PasswordHasher {
	if cfg.Hasher == config.HasherArgon2 {
		return crypto.NewArgon2Hasher(crypto.DefaultArgon2Params)
	}
	return crypto.NewBcryptHasher(cfg.BcryptCost)
}
