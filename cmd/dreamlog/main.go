package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dreamlog/internal/auth"
	"dreamlog/internal/config"
	"dreamlog/internal/db"
	httpx "dreamlog/internal/http"
	"dreamlog/internal/jobs"
	"dreamlog/internal/journal"
	"dreamlog/internal/logger"
	"dreamlog/internal/stats"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, _ := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		zlog.Fatal("db migrate failed", zap.Error(err))
	}

	store := &journal.Store{DB: gdb, Log: zlog}

	// Stats cache is optional: no Redis, no cache.
	var cache *stats.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zlog.Fatal("redis connect failed", zap.Error(err))
		}
		cache = stats.NewCache(stats.NewRedisKVStore(rdb), cfg.StatsCacheTTL, zlog)
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	r := httpx.NewRouter(cfg, gdb, jwtSvc, store, cache, zlog)

	// reminder worker
	jobsRepo := &jobs.Repo{DB: gdb}
	worker := &jobs.Worker{ID: "worker-1", Repo: jobsRepo, Store: store, Log: zlog}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zlog.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
