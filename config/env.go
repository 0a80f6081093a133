package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const AppName = "daily-tracker"

// Config is the runtime configuration, read from the environment.
type Config struct {
	SupabaseURL   string
	SupabaseKey   string
	JWTSecret     string
	DBPath        string
	Addr          string
	ArchiveBucket string
	ProbeInterval time.Duration
	LogLevel      string
	LogFile       string
}

// Load environment variables and handle errors

func LoadEnv() {
	err := godotenv.Load()

	if err != nil {
		Logger.Warn("Error loading .env file, will use environment variables instead:", err)
		// Don't call Fatal here - continue execution
	}
}

// Load reads the configuration from environment variables, applying defaults.
func Load() Config {
	cfg := Config{
		SupabaseURL:   strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		SupabaseKey:   strings.TrimSpace(os.Getenv("SUPABASE_KEY")),
		JWTSecret:     os.Getenv("SUPABASE_JWT_SECRET"),
		DBPath:        envOr("TRACKER_DB_PATH", filepath.Join(DefaultConfigDir(), "tracker.db")),
		Addr:          envOr("TRACKER_ADDR", "127.0.0.1:8080"),
		ArchiveBucket: envOr("TRACKER_ARCHIVE_BUCKET", "tracker-exports"),
		ProbeInterval: 30 * time.Second,
		LogLevel:      envOr("TRACKER_LOG_LEVEL", "info"),
		LogFile:       os.Getenv("TRACKER_LOG_FILE"),
	}
	if v := os.Getenv("TRACKER_PROBE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			Logger.Warn("Invalid TRACKER_PROBE_INTERVAL, using default:", v)
		} else {
			cfg.ProbeInterval = d
		}
	}
	return cfg
}

// RemoteConfigured reports whether Supabase credentials are present.
// Without them the tracker runs purely local.
func (c Config) RemoteConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
