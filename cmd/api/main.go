// Command api runs the account management HTTP service.
//
// @title                       Account Service API
// @version                     1.0
// @description                 Multi-tenant account management: users, roles and owned account records.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @securityDefinitions.apikey  SuperAdminKey
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/api"
	"github.com/99minutos/account-service/internal/core/ports"
	"github.com/99minutos/account-service/internal/core/service"
	"github.com/99minutos/account-service/internal/infrastructure/db/mongo"
	"github.com/99minutos/account-service/internal/infrastructure/db/redis"
	"github.com/99minutos/account-service/internal/infrastructure/db/sqlstore"
	"github.com/99minutos/account-service/internal/infrastructure/http/handlers"
	"github.com/99minutos/account-service/internal/pkg/config"
	"github.com/99minutos/account-service/pkg/logger"
)

const serviceName = "account-service"

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("service stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Relational store ---
	db, err := sqlstore.Open(ctx, sqlstore.Config{URL: cfg.Database.URL}, log)
	if err != nil {
		return err
	}
	defer func() { _ = sqlstore.Close(db) }()

	readiness := []handlers.Check{
		{Name: "database", Ping: func(ctx context.Context) error { return sqlstore.Ping(ctx, db) }},
	}

	// --- Optional token revocation (Redis) ---
	var revoked ports.RevocationStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		store := redis.NewRevocationStore(rdb)
		revoked = store
		readiness = append(readiness, handlers.Check{Name: "redis", Ping: store.Ping})
	} else {
		log.Warn().Msg("REDIS_ADDR not set; logout will not revoke tokens")
	}

	// --- Optional audit trail (MongoDB) ---
	var audit ports.AuditRepository
	if cfg.Mongo.URI != "" {
		repo, client, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}, log)
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		audit = repo
		readiness = append(readiness, handlers.Check{Name: "mongodb", Ping: repo.Ping})
	} else {
		log.Warn().Msg("MONGO_URI not set; audit trail disabled")
	}

	if cfg.Auth.SuperAdminID == "" {
		log.Warn().Msg("SU_ADMIN_ID not set; role updates are disabled")
	}

	// --- Services ---
	users := sqlstore.NewUserRepository(db)
	accounts := sqlstore.NewAccountRepository(db)
	authz := service.NewRoleAuthorizer(users)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	e := api.NewRouter(api.Deps{
		Logger:     log,
		Auth:       service.NewAuthService(users, revoked, audit, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), log),
		Accounts:   service.NewAccountService(accounts, authz, audit, log),
		Users:      service.NewUserService(users, audit, log),
		Authorizer: authz,
		SuperAdmin: service.NewSharedSecretAuth(cfg.Auth.SuperAdminID),
		Registry:   reg,
		Readiness:  readiness,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited")
	return nil
}
