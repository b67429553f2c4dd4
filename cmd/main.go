package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/data"
	"github.com/gfranco93/bolsa-monitor/data/cache"
	"github.com/gfranco93/bolsa-monitor/data/repository/postgres"
	"github.com/gfranco93/bolsa-monitor/internal/externalApi/brapiApi"
	"github.com/gfranco93/bolsa-monitor/internal/externalApi/yahooApi"
	"github.com/gfranco93/bolsa-monitor/internal/fetcher"
	"github.com/gfranco93/bolsa-monitor/internal/registry"
	"github.com/gfranco93/bolsa-monitor/internal/reportGenerator/xlsxGenerator"
	"github.com/gfranco93/bolsa-monitor/internal/scheduler"
	"github.com/gfranco93/bolsa-monitor/internal/service/marketService"
	"github.com/gfranco93/bolsa-monitor/internal/transport/httpserver"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	reg := registry.Default()

	pgClient := data.NewPostgresClient(cfg)
	defer pgClient.Close()

	pgRepo := postgres.NewPostgres(cfg, pgClient)

	redisClient := data.NewRedisClient(cfg)
	defer redisClient.Close()

	snapshotCache := cache.NewRedisCache(redisClient, cfg)

	yahooClient := yahooApi.New(cfg)
	brapiClient := brapiApi.New(cfg)

	quoteFetcher := fetcher.New(
		fetcher.NewYahooStrategy(yahooClient, reg),
		fetcher.NewBrapiStrategy(brapiClient, reg),
		fetcher.NewMockStrategy(reg),
	)

	reportGenerator := xlsxGenerator.New()

	marketSrv := marketService.New(cfg, reg, quoteFetcher, pgRepo, snapshotCache, reportGenerator)

	sched := scheduler.New()
	sched.NewIntervalJob("collect market snapshot", marketSrv.CollectJob, cfg.Jobs.CollectInterval, true)
	sched.Start()
	defer sched.Stop()

	controller := httpserver.NewController(cfg, marketSrv)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      httpserver.NewRouter(controller),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		slog.Info("http server listening", slog.Int("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown failed", slog.String("err", err.Error()))
	}
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
