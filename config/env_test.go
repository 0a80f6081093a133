package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_KEY", "")
	t.Setenv("TRACKER_DB_PATH", "")
	t.Setenv("TRACKER_ADDR", "")
	t.Setenv("TRACKER_PROBE_INTERVAL", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	cfg := Load()

	assert.Equal(t, filepath.Join("/tmp/xdg", AppName, "tracker.db"), cfg.DBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "tracker-exports", cfg.ArchiveBucket)
	assert.Equal(t, 30*time.Second, cfg.ProbeInterval)
	assert.False(t, cfg.RemoteConfigured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon")
	t.Setenv("TRACKER_DB_PATH", "/data/t.db")
	t.Setenv("TRACKER_PROBE_INTERVAL", "5s")

	cfg := Load()

	assert.True(t, cfg.RemoteConfigured())
	assert.Equal(t, "/data/t.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.ProbeInterval)
}

func TestLoad_InvalidProbeIntervalKeepsDefault(t *testing.T) {
	t.Setenv("TRACKER_PROBE_INTERVAL", "soon")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.ProbeInterval)
}
