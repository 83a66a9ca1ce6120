package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"portfoliohub/internal/config"
	"portfoliohub/internal/events"
	"portfoliohub/internal/handler"
	"portfoliohub/internal/httpserver"
	"portfoliohub/internal/service"
	"portfoliohub/internal/service/auth"
	"portfoliohub/internal/session"
	"portfoliohub/internal/store"
	"portfoliohub/pkg/logger"
	"portfoliohub/pkg/mq"
	"portfoliohub/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.Log.Development)
	defer log.Sync()

	log.Info("Starting portfoliohub...",
		zap.String("port", cfg.Server.Port),
		zap.Bool("demo_seed", cfg.Seed.Demo),
		zap.Bool("events_enabled", cfg.MQ.URL != ""),
		zap.Bool("redis_enabled", cfg.Redis.Addr != ""),
	)

	// Record store
	seed := store.BaseSeed()
	if cfg.Seed.Demo {
		seed = store.DemoSeed()
	}
	st := store.New(store.WithSeed(seed))

	// MQ Publisher（可选）
	var publisher *mq.Publisher
	var eventPub events.Publisher
	if cfg.MQ.URL != "" {
		log.Info("Initializing MQ publisher...", zap.String("exchange", mq.ExchangeName))
		publisher, err = mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			log.Fatal("Failed to init publisher", zap.Error(err))
		}
		defer publisher.Close()
		eventPub = publisher
	}
	notifier := events.NewNotifier(eventPub, log)

	// Token 吊销：配置了 Redis 时共享，否则保存在进程内
	var rdb *goredis.Client
	var revoker session.Revoker = session.NewMemoryRevoker()
	if cfg.Redis.Addr != "" {
		log.Info("Initializing Redis connection...", zap.String("addr", cfg.Redis.Addr))
		rdb, err = redis.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Fatal("Failed to init redis", zap.Error(err))
		}
		defer rdb.Close()
		revoker = session.NewRedisRevoker(rdb, log)
	}

	// Services
	portfolio := service.NewPortfolioService(st, notifier, log)
	directory := service.NewDirectoryService(st, notifier, log)
	settings := service.NewSettingsService(st, notifier, log)
	authService, err := auth.NewService(auth.Config{
		JWTSecret:    cfg.JWT.Secret,
		TokenTTL:     cfg.JWT.TTL,
		DemoPassword: cfg.Auth.DemoPassword,
	}, auth.DemoDirectory(), st, revoker, log)
	if err != nil {
		log.Fatal("Failed to init auth service", zap.Error(err))
	}

	// HTTP Server
	router := httpserver.NewRouter(httpserver.Handlers{
		Auth:      handler.NewAuthHandler(authService, log),
		Project:   handler.NewProjectHandler(portfolio, log),
		Dashboard: handler.NewDashboardHandler(portfolio),
		Directory: handler.NewDirectoryHandler(directory, log),
		Settings:  handler.NewSettingsHandler(settings, log),
	}, authService, httpserver.Backends{Publisher: publisher, Redis: rdb}, log)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 优雅退出处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down portfoliohub gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("portfoliohub shutdown complete")
}
