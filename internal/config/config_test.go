package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "12:30", cfg.MinTime().String())
	assert.Equal(t, "16:00", cfg.MaxTime().String())
	assert.Equal(t, "13:00", cfg.DefaultStart().String())
	assert.Equal(t, "15:30", cfg.DefaultEnd().String())
	assert.Equal(t, "NW", cfg.Holidays.State)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server.Listen, cfg.Server.Listen)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen: ":9000"
times:
  min: "12:00:00"
client:
  timeout: 3s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, "12:00", cfg.MinTime().String())
	assert.Equal(t, "16:00", cfg.MaxTime().String(), "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  listen: \":9000\"\n"), 0o644))
	t.Setenv("TIMEREPORT_LISTEN", ":7000")
	t.Setenv("TIMEREPORT_TIMEOUT", "250ms")
	t.Setenv("TIMEREPORT_DB", "/tmp/x.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Listen)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.Timeout)
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad clock", "times:\n  min: \"25:00\"\n"},
		{"reversed window", "times:\n  min: \"17:00\"\n  max: \"16:00\"\n"},
		{"bad level", "log_level: loud\n"},
		{"bad yaml", "times: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Export.XeLaTeX = "/usr/bin/xelatex"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/xelatex", got.Export.XeLaTeX)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("times:\n  max: \"16:00\"\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	live := NewLive(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan Config, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, Watch(ctx, path, live, logger, func(c Config) {
		select {
		case reloaded <- c:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("times:\n  max: \"17:00\"\n"), 0o644))

	select {
	case c := <-reloaded:
		assert.Equal(t, "17:00", c.MaxTime().String())
		assert.Equal(t, "17:00", live.Load().MaxTime().String())
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}
}
