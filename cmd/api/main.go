// Command api serves the users and tasks HTTP API.
//
// @title                       Users & Tasks API
// @version                     1.0
// @description                 CRUD API for users and their tasks, authenticated with JWT session cookies.
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          header
// @name                        Cookie
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskhub/users-api/internal/api"
	"github.com/taskhub/users-api/internal/api/handler"
	"github.com/taskhub/users-api/internal/api/session"
	"github.com/taskhub/users-api/internal/core/security"
	"github.com/taskhub/users-api/internal/core/service"
	"github.com/taskhub/users-api/internal/infrastructure/config"
	mongodb "github.com/taskhub/users-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/users-api/internal/infrastructure/db/redis"
	"github.com/taskhub/users-api/internal/infrastructure/queue"
	"github.com/taskhub/users-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load(ctx, logger.New(logger.Options{Service: "users-api"}))
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "users-api",
	})

	// --- Persistence ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	if err := mongodb.EnsureIndexes(ctx, userRepo, taskRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Security ---
	bcryptHasher, err := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bcrypt cost")
	}
	// The pool outlives the signal context so in-flight requests can finish
	// while the server drains.
	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	hashPool := queue.NewHashPool(cfg.Auth.HashWorkers, bcryptHasher, log)
	hashPool.Start(poolCtx)

	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:    []byte(cfg.Auth.JWTSecret),
		Algorithm: cfg.Auth.JWTAlgorithm,
		Issuer:    cfg.Auth.JWTIssuer,
	}, security.SystemClock{})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}

	// --- Services ---
	userCache := redisdb.NewUserCache(rdb, cfg.Redis.UserCacheTTL)
	services := api.Services{
		Auth:  service.NewAuthService(userRepo, hashPool, tokens, cfg.Auth.TokenTTL(), log.With().Str("component", "auth").Logger()),
		Users: service.NewUserService(userRepo, taskRepo, hashPool, userCache, log.With().Str("component", "users").Logger()),
		Tasks: service.NewTaskService(taskRepo, userRepo, log.With().Str("component", "tasks").Logger()),
	}

	var allowedHosts []string
	if !cfg.IsDevelopment() {
		allowedHosts = cfg.AllowedHosts
	}

	e := api.NewRouter(services, api.Options{
		Cookies:       session.NewCookies(cfg.Auth.JWTKeyName, cfg.Auth.CookieSecure),
		CORSOrigins:   cfg.CORSOrigins,
		AllowedHosts:  allowedHosts,
		HTTPSRedirect: !cfg.IsDevelopment(),
		Readiness: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
