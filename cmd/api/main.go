// Command api runs the admin API: role and permission administration, user
// accounts and the credential lifecycle over HTTP.
//
// @title                       Admin API
// @version                     1.0
// @description                 Role-based access control and credential lifecycle.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mikemajesty/admin-api/docs"
	"github.com/mikemajesty/admin-api/internal/api"
	"github.com/mikemajesty/admin-api/internal/api/metrics"
	"github.com/mikemajesty/admin-api/internal/core/service"
	"github.com/mikemajesty/admin-api/internal/infrastructure/config"
	"github.com/mikemajesty/admin-api/internal/infrastructure/crypto"
	"github.com/mikemajesty/admin-api/internal/infrastructure/db/mongo"
	"github.com/mikemajesty/admin-api/internal/infrastructure/db/redis"
	httpserver "github.com/mikemajesty/admin-api/internal/infrastructure/http"
	"github.com/mikemajesty/admin-api/internal/infrastructure/http/handlers"
	"github.com/mikemajesty/admin-api/internal/infrastructure/queue"
	"github.com/mikemajesty/admin-api/internal/infrastructure/scheduler"
	"github.com/mikemajesty/admin-api/internal/infrastructure/token"
	"github.com/mikemajesty/admin-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not configured yet
		bootLog := logger.Init(logger.Options{Service: "admin-api"})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Service: "admin-api", Env: cfg.Env})

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure mongo indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	roleRepo := mongo.NewRoleRepository(db)
	userRepo := mongo.NewUserRepository(db, roleRepo)
	permissionRepo := mongo.NewPermissionRepository(db)
	resetTokenRepo := mongo.NewResetTokenRepository(db)
	transactor := mongo.NewTransactor(mongoClient, cfg.Mongo.Transactions)

	// --- Notifications ---
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, redis.NewPublisher(rdb, cfg.Notify.Channel), logger.Component("notifications"))
	dispatcher.Start(ctx)

	// --- Use cases ---
	tokens := token.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	revocations := redis.NewRevocationStore(rdb)
	hasher := crypto.NewBcryptHasher(0)

	authService := service.NewAuthService(service.AuthDeps{
		Users:       userRepo,
		ResetTokens: resetTokenRepo,
		Tokens:      tokens,
		Revocations: revocations,
		Hasher:      hasher,
		Emitter:     dispatcher,
		Transactor:  transactor,
	}, service.AuthConfig{
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		ResetTTL:   cfg.JWT.ResetTTL,
		ResetURL:   cfg.ResetURL(),
	}, logger.Component("auth"))
	roleService := service.NewRoleService(roleRepo, permissionRepo, logger.Component("roles"))
	permissionService := service.NewPermissionService(permissionRepo, roleRepo, logger.Component("permissions"))
	userService := service.NewUserService(userRepo, roleRepo, hasher, logger.Component("users"))

	registry := service.NewPermissionRegistry()
	guard := service.NewAuthorizationGuard(registry, userRepo, logger.Component("authorization"))

	// --- HTTP ---
	router := api.NewRouter(api.Dependencies{
		Log:         logger.Component("http"),
		Auth:        authService,
		Roles:       roleService,
		Permissions: permissionService,
		Users:       userService,
		Tokens:      tokens,
		Revocations: revocations,
		Authorizer:  guard,
		Registry:    registry,
		Probes: map[string]handlers.Pinger{
			"mongo": handlers.MongoPinger(db),
			"redis": handlers.RedisPinger(rdb),
		},
		AuthRate:  cfg.RateLimit.Rate,
		AuthBurst: cfg.RateLimit.Burst,
	})

	if err := seedRoles(ctx, roleRepo, roleService, registry, logger.Component("seed")); err != nil {
		log.Fatal().Err(err).Msg("seed roles")
	}

	// --- Background jobs ---
	sweeper := service.NewResetTokenSweeper(resetTokenRepo, cfg.JWT.ResetTTL, logger.Component("sweeper"))
	jobs := scheduler.New(logger.Component("scheduler"))
	if err := jobs.Add(cfg.Scheduler.ResetSweep, "reset-token-sweep", func(ctx context.Context) error {
		n, err := sweeper.Sweep(ctx)
		metrics.ResetTokensSweptTotal.Add(float64(n))
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("schedule reset-token sweep")
	}
	jobs.Start(ctx)

	if err := httpserver.NewServer(router, cfg.Port, logger.Component("http")).Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}

	stop()
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}
