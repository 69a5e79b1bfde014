package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/angelrl48/ex-peliculas-mongo/internal/api"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/service"
	"github.com/angelrl48/ex-peliculas-mongo/internal/infrastructure/db/mongo"
	"github.com/angelrl48/ex-peliculas-mongo/internal/infrastructure/db/redis"
	"github.com/angelrl48/ex-peliculas-mongo/internal/infrastructure/http/handlers"
	"github.com/angelrl48/ex-peliculas-mongo/internal/infrastructure/token"
	"github.com/angelrl48/ex-peliculas-mongo/internal/pkg/config"
	"github.com/angelrl48/ex-peliculas-mongo/pkg/logger"
)

// @title                       Películas API
// @version                     1.0
// @description                 Authenticated CRUD over a MongoDB movie collection.
// @BasePath                    /
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        x-access-token
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		File:   cfg.LogFile,
	})
	defer logger.Close()

	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	userRepo := mongo.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo indexes")
	}
	movieRepo := mongo.NewMovieRepository(db)

	checks := []handlers.DependencyCheck{handlers.MongoCheck(db)}
	movieOpts := []service.MovieOption{service.WithEmptyListNotFound(cfg.ListEmptyAsNotFound)}

	// ── Redis (optional) ─────────────────────────────────────
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer func() { _ = rdb.Close() }()

		checks = append(checks, handlers.RedisCheck(rdb))
		movieOpts = append(movieOpts, service.WithCache(redis.NewMovieCache(rdb, cfg.Redis.CacheTTL)))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("movie cache enabled")
	}

	// ── Services ─────────────────────────────────────────────
	tokens := token.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, log)
	movieService := service.NewMovieService(movieRepo, log, movieOpts...)

	e := api.NewRouter(api.Dependencies{
		AuthService:  authService,
		MovieService: movieService,
		HealthChecks: checks,
		Logger:       log,
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
