package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tableorder/internal/config"
	"tableorder/internal/infra/db"
	"tableorder/internal/infra/messaging"
	infraRepo "tableorder/internal/infra/repository"
	"tableorder/internal/infra/storage"
	repo "tableorder/internal/repository"
	"tableorder/internal/schedule"
	"tableorder/internal/server"
	"tableorder/internal/telemetry"
	"tableorder/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	//.env は無くてもよい（コンテナでは環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := telemetry.NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//トレーシング
	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.GoEnv)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(sctx)
	}()

	//ストア
	kv, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	//メニュー
	menu, err := infraRepo.LoadMenuCatalog(cfg.MenuFile)
	if err != nil {
		return err
	}

	//支払い完了イベント（AMQP_URL があるときだけ）
	var publisher usecase.OrderEventPublisher
	if cfg.AMQPURL != "" {
		conn, ch, err := messaging.SetupConn(cfg.AMQPURL, 5, 2*time.Second)
		if err != nil {
			return err
		}
		defer conn.Close()
		defer ch.Close()
		publisher = messaging.NewOrderPublisher(ch)
	}

	e := server.Wire(server.Deps{
		Config:    cfg,
		Logger:    log,
		Storage:   kv,
		Menu:      menu,
		Publisher: publisher,
		Scheduler: schedule.New(),
		Clock:     schedule.SystemClock(),
	})

	log.Info("starting",
		"service", cfg.ServiceName,
		"env", cfg.GoEnv,
		"storage", cfg.StorageDriver,
		"payment_latency", cfg.PaymentLatency.String(),
	)
	return server.Start(ctx, e, cfg.Addr(), log)
}

// openStorage は STORAGE_DRIVER に応じたKVストアを開く。
func openStorage(ctx context.Context, cfg config.Config) (repo.Storage, func(), error) {
	ttl := storage.SessionTTL(cfg.SessionTTL)

	switch cfg.StorageDriver {
	case "memory":
		return storage.NewMemoryWithTTL(ttl), func() {}, nil

	case "bbolt":
		s, err := storage.OpenBolt(cfg.BoltPath, ttl)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case "redis":
		s := storage.NewRedis(cfg.RedisAddr, ttl)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return s, func() { _ = s.Close() }, nil

	case "postgres":
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		s := storage.NewGormStorage(gormDB, ttl)
		if err := s.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return s, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
