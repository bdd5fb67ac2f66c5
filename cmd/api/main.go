package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourav-hati/bookstore/internal/api"
	"github.com/sourav-hati/bookstore/internal/api/handler"
	"github.com/sourav-hati/bookstore/internal/core/service"
	mongodb "github.com/sourav-hati/bookstore/internal/infrastructure/db/mongo"
	redisdb "github.com/sourav-hati/bookstore/internal/infrastructure/db/redis"
	"github.com/sourav-hati/bookstore/internal/infrastructure/queue"
	"github.com/sourav-hati/bookstore/internal/pkg/config"
	"github.com/sourav-hati/bookstore/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Bookstore API
// @version      1.0
// @description  Book catalog with JWT session auth and role-gated mutations.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Service: "bookstore",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL,
		service.WithDenylist(redisdb.NewDenylist(rdb)),
		service.WithLogger(log))

	auditService := service.NewAuditService(mongodb.NewEventRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Auth:     service.NewAuthService(mongodb.NewUserRepository(db), tokens, log),
		Books:    service.NewBookService(mongodb.NewBookRepository(db), dispatcher, log),
		Audit:    auditService,
		Verifier: tokens,
		Pingers: map[string]handler.Pinger{
			"mongodb": mongodb.NewPinger(mongoClient),
			"redis":   redisdb.NewPinger(rdb),
		},
		Logger:           log,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AuthRateLimit:    cfg.HTTP.AuthRateLimit,
	})

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("bookstore api listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	dispatcher.Stop()
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	log.Info().Msg("bye")
}
