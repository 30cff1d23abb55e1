package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"storefront/internal/app/config"
	"storefront/internal/app/consumer"
	"storefront/internal/app/domains/modules/mdnotify"
	"storefront/internal/app/domains/modules/mdorder"
	"storefront/internal/app/domains/repo/rporder"
	"storefront/internal/app/domains/services/svnotify"
	"storefront/internal/app/domains/services/svorder"
	"storefront/internal/app/infra/mq/lmstfy"
	"storefront/internal/app/infra/persistence/mysql"
	"storefront/internal/app/infra/persistence/redis"
	"storefront/internal/app/pkg/idgen"
	"storefront/internal/app/pkg/logger"
	"storefront/internal/app/pkg/metrics"
	"storefront/internal/app/server/handlers/order"
	"storefront/internal/app/server/routers"
)

// App 应用实例（HTTP Server + 通知消费者）
type App struct {
	Engine         *gin.Engine
	NotifyConsumer *consumer.NotifyConsumer
	Logger         logger.Logger
}

// InitializeApp 按依赖顺序组装应用，返回的 cleanup 负责释放所有连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// 1. 日志与指标
	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return nil, cleanup, fmt.Errorf("init logger failed: %w", err)
	}
	closers = append(closers, func() { _ = appLogger.Sync() })

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(reg)

	// 2. 基础设施
	db, err := mysql.Open(cfg.MySQL.DSN, cfg.MySQL.AutoMigrate)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	closers = append(closers, func() { _ = mysql.Close(db) })
	appLogger.Info("Database connected")

	redisClient, err := redis.NewPubSubClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("init redis failed: %w", err)
	}
	closers = append(closers, func() { _ = redisClient.Close() })
	appLogger.Info("Redis connected", "addr", cfg.Redis.Addr)

	lmstfyClient := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	appLogger.Info("Lmstfy client initialized", "namespace", cfg.Lmstfy.Namespace)

	// 3. Repository / Module
	orderRepo := rporder.NewOrderRepository(db)
	orderModule := mdorder.NewOrderModule(orderRepo)
	notifyModule := mdnotify.NewNotifyModule(redisClient, lmstfyClient, mdnotify.Config{
		StatusChannel: cfg.Redis.StatusChannel,
		Queue:         cfg.Notify.Queue,
		TTL:           cfg.Notify.TTL,
		Tries:         cfg.Notify.Tries,
	})

	// 4. Service
	idGen := idgen.NewSnowflakeIDGenerator(cfg.App.MachineID)
	orderService := svorder.NewOrderService(orderModule, notifyModule, idGen, appMetrics, appLogger)
	notifyService := svnotify.NewNotifyService(svnotify.NewLogSender(appLogger), appMetrics, appLogger)

	// 5. HTTP
	orderHandler := order.NewOrderHandler(orderService, appLogger)
	engine := routers.SetupRoutes(orderHandler, appLogger, appMetrics, reg)

	// 6. Consumer
	notifyConsumer := consumer.NewNotifyConsumer(lmstfyClient, notifyService, consumer.Config{
		QueueName:    cfg.Notify.Queue,
		Timeout:      cfg.Notify.Timeout,
		TTR:          cfg.Notify.TTR,
		PollInterval: cfg.Notify.PollInterval,
	}, appLogger)

	return &App{
		Engine:         engine,
		NotifyConsumer: notifyConsumer,
		Logger:         appLogger,
	}, cleanup, nil
}
