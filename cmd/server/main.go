package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtkeeper/courtside/internal/config"
	"github.com/courtkeeper/courtside/internal/handler"
	"github.com/courtkeeper/courtside/internal/logger"
	"github.com/courtkeeper/courtside/internal/repository"
	"github.com/courtkeeper/courtside/internal/repository/memory"
	"github.com/courtkeeper/courtside/internal/repository/postgres"
	"github.com/courtkeeper/courtside/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage: Postgres when a DSN is configured, process memory otherwise.
	var store interface {
		repository.SessionRepository
		repository.Pinger
	}
	if dsn := cfg.Storage.PostgresDSN; dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer pool.Close()
		pg := postgres.NewStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			appLogger.Fatal().Err(err).Msg("postgres migration failed")
		}
		store = pg
		appLogger.Info().Msg("using postgres session store")
	} else {
		store = memory.NewStore()
		appLogger.Info().Msg("using in-memory session store")
	}

	sessions := service.NewSessionService(store, service.Defaults{
		PeriodSeconds:    cfg.Session.PeriodSeconds,
		ShotClockSeconds: cfg.Session.ShotClockSeconds,
		TimeoutsPerTeam:  cfg.Session.TimeoutsPerTeam,
		FoulLimit:        cfg.Session.FoulLimit,
	}, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handler.Register(router, store, sessions)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", cfg.Server.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("shutdown failed")
	}
}
