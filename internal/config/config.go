package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseDriver       string // sqlite | postgres
	DatabaseURL          string // file path for sqlite, DSN for postgres
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	JWTSecret string

	// Region monitor daemon (the platform geofencing service).
	MonitorURL         string
	MonitorCallbackURL string

	// Outbound notification webhook; empty means log-only.
	NotifyWebhookURL string
	// Base URL used to build notification tap deep links.
	PublicBaseURL string

	// Reverse geocoding endpoint; empty disables name resolution.
	GeocoderURL string

	// Whether location/notification permissions are assumed granted at
	// startup (they can still be revoked/granted via the platform webhook).
	PermissionsGranted bool

	// Periodic full resync; 0 disables it.
	ResyncInterval time.Duration
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseDriver:       getenv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:          getenv("DATABASE_URL", "nearnote.db"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",

		MonitorURL:         mustGetenv("MONITOR_URL"),
		MonitorCallbackURL: getenv("MONITOR_CALLBACK_URL", ""),

		NotifyWebhookURL: getenv("NOTIFY_WEBHOOK_URL", ""),
		PublicBaseURL:    getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
		GeocoderURL:      getenv("GEOCODER_URL", ""),

		PermissionsGranted: getenv("PERMISSIONS_GRANTED", "true") == "true",
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.MonitorCallbackURL == "" {
		cfg.MonitorCallbackURL = cfg.PublicBaseURL + "/platform/geofence"
	}

	if v := getenv("RESYNC_INTERVAL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, err
		}
		cfg.ResyncInterval = d
	}

	cfg.JWTSecret = mustGetenv("JWT_SECRET")
	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
