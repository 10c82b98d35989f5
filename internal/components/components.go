package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nikicasio/traffic-alert-app/internal/api"
	"github.com/nikicasio/traffic-alert-app/internal/api/handlers/http/system"
	"github.com/nikicasio/traffic-alert-app/internal/auth"
	"github.com/nikicasio/traffic-alert-app/internal/config"
	"github.com/nikicasio/traffic-alert-app/internal/metrics"
	"github.com/nikicasio/traffic-alert-app/internal/presence"
	"github.com/nikicasio/traffic-alert-app/internal/realtime"
	"github.com/nikicasio/traffic-alert-app/internal/redis"
	"github.com/nikicasio/traffic-alert-app/internal/service"
	"github.com/nikicasio/traffic-alert-app/internal/storage/postgres"
	"github.com/nikicasio/traffic-alert-app/internal/workers"
	"github.com/nikicasio/traffic-alert-app/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Hub        *presence.Hub
	Metrics    *metrics.Metrics
	Retention  *workers.Retention
	// Sender is nil when push notifications are disabled.
	Sender *service.NotificationSender
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres",
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	c := &Components{
		logger:   logger,
		Postgres: storage,
		Metrics:  metrics.New(),
	}
	ready := map[string]system.Pinger{"postgres": storage.Pool}

	var queue service.NotificationQueue
	if !cfg.Notification.Disabled {
		logger.Info("Initializing Redis")
		redisClient, err := redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = redisClient
		ready["redis"] = redisClient

		notifications := redis.NewNotificationQueue(redisClient.Client, cfg.Notification.QueueKey)
		queue = notifications
		c.Sender = service.NewNotificationSender(logger, cfg.Notification, notifications, c.Metrics)
	}

	tokens := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	c.Hub = presence.NewHub(logger, tokens, c.Metrics, presence.Options{
		SendBuffer:     cfg.Realtime.SendBuffer,
		NearbyRadiusKm: cfg.Realtime.NearbyRadiusKm,
	})

	users := service.NewUserDirectory(logger, storage.Users(), cfg.Alerts.UserCacheTTL)
	alertSvc := service.NewAlertService(logger, storage.Alerts(), users, cfg.Alerts.TTL)
	gateway := service.NewGateway(logger, alertSvc, c.Hub, queue, c.Metrics)
	statsSvc := service.NewStatsService(storage.Stats(), c.Hub)

	srv := service.NewService(alertSvc, gateway, statsSvc)

	if cfg.Retention.Enabled() {
		c.Retention, err = workers.NewRetention(logger, alertSvc, cfg.Retention)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init retention: %w", err)
		}
	} else {
		logger.Info("retention disabled, expired alerts are kept")
	}

	c.HttpServer = api.NewServer(cfg, logger, srv, api.Deps{
		Auth:     tokens,
		Realtime: realtime.NewHandler(logger, c.Hub, gateway, cfg.Realtime),
		Metrics:  c.Metrics.Handler(),
		Ready:    ready,
	})
	logger.Info("Initialized server")

	return c, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	if c.Postgres != nil {
		c.Postgres.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
