package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app/config"
	"storefront/internal/app/consumer"
	"storefront/internal/app/domains/services/svnotify"
	"storefront/internal/app/infra/mq/lmstfy"
	"storefront/internal/app/pkg/logger"
)

// 独立部署的通知消费者，不依赖 MySQL / Redis
func main() {
	// 1. 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Lmstfy.Host == "" || cfg.Notify.Queue == "" {
		log.Fatalf("lmstfy host and notify queue are required")
	}

	// 2. 初始化日志
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Starting notify consumer...")

	// 3. 初始化 Lmstfy
	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)

	// 4. 初始化 Service / Consumer（独立进程不暴露 /metrics）
	notifyService := svnotify.NewNotifyService(svnotify.NewLogSender(appLogger), nil, appLogger)
	notifyConsumer := consumer.NewNotifyConsumer(lmstfyClient, notifyService, consumer.Config{
		QueueName:    cfg.Notify.Queue,
		Timeout:      cfg.Notify.Timeout,
		TTR:          cfg.Notify.TTR,
		PollInterval: cfg.Notify.PollInterval,
	}, appLogger)

	// 5. 启动消费循环（优雅退出）
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- notifyConsumer.Start(ctx)
	}()

	select {
	case <-sigChan:
		appLogger.Info("Received shutdown signal, stopping consumer...")
		notifyConsumer.Shutdown()
		cancel()
		<-errChan
		appLogger.Info("Consumer stopped gracefully", "processed", notifyConsumer.Processed())
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			appLogger.Error("Consumer stopped with error", "error", err)
			os.Exit(1)
		}
	}
}
