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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/muhammad-yeasin/wave2-attendance/config"
	"github.com/muhammad-yeasin/wave2-attendance/internal/api/handler"
	"github.com/muhammad-yeasin/wave2-attendance/internal/api/router"
	"github.com/muhammad-yeasin/wave2-attendance/internal/repository"
	"github.com/muhammad-yeasin/wave2-attendance/internal/service"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/database"
	applogger "github.com/muhammad-yeasin/wave2-attendance/pkg/logger"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/metrics"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/redis"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

func main() {
	// 1. config; the only failure that stops startup
	cfg, err := config.Load(os.Getenv("ATTEND_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting attendance service",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database; connected and migrated on the first request that needs it
	pool := database.NewPool(&cfg.Database, cfg.Log.Level, logger)

	// 4. redis (optional: without it rate limiting is off)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 6. repository → service → handler
	v := validate.New()
	repo := repository.NewRepository(pool)
	svc := service.NewService(repo, v, m, logger)
	h := handler.NewHandler(svc, v)

	// 7. routes
	engine := router.Setup(cfg, h, v, rdb, m, reg, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}

	if err := pool.Close(); err != nil {
		logger.Error("close database", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
