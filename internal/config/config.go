package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string             `json:"env"`
	Http         HttpConfig         `json:"http"`
	Postgres     PostgresConfig     `json:"postgres"`
	Redis        RedisConfig        `json:"redis"`
	APIKey       string             `json:"api_key,omitempty"`
	Auth         AuthConfig         `json:"auth"`
	Alerts       AlertsConfig       `json:"alerts"`
	Realtime     RealtimeConfig     `json:"realtime"`
	Notification NotificationConfig `json:"notification"`
	Retention    RetentionConfig    `json:"retention"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	Issuer    string `json:"issuer"`
}

type AlertsConfig struct {
	TTL          time.Duration `json:"ttl"`
	UserCacheTTL time.Duration `json:"user_cache_ttl"`
}

// RealtimeConfig drives the websocket transport and the presence hub fan-out.
type RealtimeConfig struct {
	SendBuffer     int           `json:"send_buffer"`
	NearbyRadiusKm float64       `json:"nearby_radius_km"`
	PingInterval   time.Duration `json:"ping_interval"`
	PongWait       time.Duration `json:"pong_wait"`
	WriteWait      time.Duration `json:"write_wait"`
	MaxMessageSize int64         `json:"max_message_size"`
}

type NotificationConfig struct {
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
	QueueKey string `json:"queue_key"`
}

// RetentionConfig drives the purge of expired alerts. An empty Schedule
// leaves it off, so alerts are only removed by their owner or an admin.
type RetentionConfig struct {
	Schedule string        `json:"schedule"`
	Keep     time.Duration `json:"keep"`
}

func (c RetentionConfig) Enabled() bool { return c.Schedule != "" }

func Load() (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "traffic_alerts"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		APIKey: getEnv("API_KEY", ""),
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", ""),
		},
		Alerts: AlertsConfig{
			TTL:          getEnvDuration("ALERT_TTL", 24*time.Hour),
			UserCacheTTL: getEnvDuration("USER_CACHE_TTL", 10*time.Minute),
		},
		Realtime: RealtimeConfig{
			SendBuffer:     getEnvInt("REALTIME_SEND_BUFFER", 64),
			NearbyRadiusKm: getEnvFloat("REALTIME_NEARBY_RADIUS_KM", 5),
			PingInterval:   getEnvDuration("REALTIME_PING_INTERVAL", 25*time.Second),
			PongWait:       getEnvDuration("REALTIME_PONG_WAIT", 60*time.Second),
			WriteWait:      getEnvDuration("REALTIME_WRITE_WAIT", 10*time.Second),
			MaxMessageSize: int64(getEnvInt("REALTIME_MAX_MESSAGE_SIZE", 8192)),
		},
		Notification: NotificationConfig{
			URL:      getEnv("PUSH_RELAY_URL", ""),
			Disabled: getEnvBool("PUSH_DISABLED", true),
			QueueKey: getEnv("PUSH_QUEUE_KEY", "alerts:push"),
		},
		Retention: RetentionConfig{
			Schedule: getEnv("RETENTION_SCHEDULE", ""),
			Keep:     getEnvDuration("RETENTION_KEEP", 7*24*time.Hour),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("push_disabled", cfg.Notification.Disabled))

	return cfg, nil
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	if c.Postgres.Host == "" {
		return errors.New("POSTGRES_HOST required")
	}

	if c.APIKey == "" {
		return errors.New("API_KEY required")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET required")
	}

	if c.Realtime.SendBuffer <= 0 {
		return errors.New("REALTIME_SEND_BUFFER must be positive")
	}

	if c.Realtime.NearbyRadiusKm <= 0 {
		return errors.New("REALTIME_NEARBY_RADIUS_KM must be positive")
	}

	if c.Realtime.PingInterval >= c.Realtime.PongWait {
		return errors.New("REALTIME_PING_INTERVAL must be shorter than REALTIME_PONG_WAIT")
	}

	if !c.Notification.Disabled && c.Notification.URL == "" {
		return errors.New("PUSH_RELAY_URL required when push is enabled")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
