package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/buddyfinder-service/internal/auth"
	"github.com/maxviazov/buddyfinder-service/internal/cache"
	"github.com/maxviazov/buddyfinder-service/internal/config"
	"github.com/maxviazov/buddyfinder-service/internal/handler"
	"github.com/maxviazov/buddyfinder-service/internal/logger"
	"github.com/maxviazov/buddyfinder-service/internal/repository"
	"github.com/maxviazov/buddyfinder-service/internal/repository/postgres"
	"github.com/maxviazov/buddyfinder-service/internal/service"
)

func main() {
	path := os.Getenv("APP_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer repo.Close()

	if cfg.Postgres.Migrate {
		if err := repo.Migrate(ctx); err != nil {
			appLogger.Fatal().Err(err).Msg("migrations failed")
		}
	}

	var sportsCache service.SportsCache
	if cfg.Redis.Enabled {
		rc, err := cache.NewClient(ctx, cfg.Redis, appLogger)
		if err != nil {
			// the catalogue is served straight from postgres without the cache
			appLogger.Warn().Err(err).Msg("redis unavailable, sports cache disabled")
		} else {
			defer rc.Close()
			sportsCache = cache.NewSports(rc, cfg.Redis.SportsTTL)
		}
	}

	pool := repo.Pool()
	sports := postgres.NewSportRepository(pool)
	svc := handler.Services{
		Matches:  service.NewMatchService(postgres.NewMatchFunction(pool), appLogger),
		Profiles: service.NewProfileService(postgres.NewProfileRepository(pool), appLogger),
		Sports:   service.NewSportService(sports, sportsCache, appLogger),
		UserSports: service.NewUserSportService(
			postgres.NewTxManager(pool), sports, postgres.NewUserSportRepository(pool), appLogger),
	}

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(appLogger))
	handler.Register(r, postgres.NewPinger(pool), auth.NewVerifier(cfg.Auth), svc)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	go func() {
		appLogger.Info().Int("port", cfg.App.Port).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
