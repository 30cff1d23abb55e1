package main

// @title           Storefront Admin API
// @version         1.0
// @description     店铺后台订单管理 API：订单查询、状态变更（取消/退款/备注）与状态变更等待
// @BasePath        /api/v1

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/app/config"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. 初始化应用（包含 HTTP Server 和 Consumer）
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// 3. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           app.Engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 4. 启动 Consumer（后台 goroutine）
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	consumerErrChan := make(chan error, 1)

	go func() {
		app.Logger.Info("Starting notify consumer...")
		consumerErrChan <- app.NotifyConsumer.Start(consumerCtx)
	}()

	// 5. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		app.Logger.Info("Starting HTTP server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 6. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		app.Logger.Info("Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(app, server, cancelConsumer, consumerErrChan)
	case err := <-serverErrChan:
		app.Logger.Error("HTTP server error", "error", err)
		cancelConsumer()
	case err := <-consumerErrChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			app.Logger.Error("Consumer error", "error", err)
		}
		gracefulShutdown(app, server, cancelConsumer, nil)
	}

	app.Logger.Info("Application stopped")
}

// gracefulShutdown 优雅停机：先停消费者，再停 HTTP Server
func gracefulShutdown(app *App, server *http.Server, cancelConsumer context.CancelFunc, consumerDone <-chan error) {
	app.Logger.Info("Stopping consumer...")
	app.NotifyConsumer.Shutdown()
	cancelConsumer()
	if consumerDone != nil {
		select {
		case <-consumerDone:
		case <-time.After(5 * time.Second):
			app.Logger.Warn("Consumer did not stop in time")
		}
	}

	app.Logger.Info("Stopping HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		app.Logger.Error("HTTP server shutdown error", "error", err)
	} else {
		app.Logger.Info("HTTP server stopped gracefully")
	}
}
