package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Http:     HttpConfig{Port: ":8080"},
		Postgres: PostgresConfig{Host: "localhost"},
		APIKey:   "key",
		Auth:     AuthConfig{JWTSecret: "secret"},
		Realtime: RealtimeConfig{
			SendBuffer:     16,
			NearbyRadiusKm: 5,
			PingInterval:   time.Second,
			PongWait:       2 * time.Second,
		},
		Notification: NotificationConfig{Disabled: true},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port_without_colon", func(c *Config) { c.Http.Port = "8080" }},
		{"empty_host", func(c *Config) { c.Postgres.Host = "" }},
		{"empty_api_key", func(c *Config) { c.APIKey = "" }},
		{"empty_jwt_secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero_send_buffer", func(c *Config) { c.Realtime.SendBuffer = 0 }},
		{"zero_radius", func(c *Config) { c.Realtime.NearbyRadiusKm = 0 }},
		{"ping_after_pong", func(c *Config) { c.Realtime.PingInterval = 3 * time.Second }},
		{"push_without_url", func(c *Config) { c.Notification.Disabled = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("REALTIME_NEARBY_RADIUS_KM", "7.5")
	t.Setenv("ALERT_TTL", "12h")
	t.Setenv("REALTIME_SEND_BUFFER", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Realtime.NearbyRadiusKm != 7.5 {
		t.Fatalf("expected radius 7.5 got %v", cfg.Realtime.NearbyRadiusKm)
	}
	if cfg.Alerts.TTL != 12*time.Hour {
		t.Fatalf("expected ttl 12h got %v", cfg.Alerts.TTL)
	}
	if cfg.Realtime.SendBuffer != 64 {
		t.Fatalf("expected default send buffer, got %d", cfg.Realtime.SendBuffer)
	}
}

func TestLoad_RetentionOffByDefault(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("RETENTION_SCHEDULE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Retention.Enabled() {
		t.Fatalf("expected retention off by default, got schedule %q", cfg.Retention.Schedule)
	}
}

func TestLoad_RetentionOptIn(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("RETENTION_SCHEDULE", "@hourly")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Retention.Enabled() {
		t.Fatalf("expected retention on for schedule %q", cfg.Retention.Schedule)
	}
}
