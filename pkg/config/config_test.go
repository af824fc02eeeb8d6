package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout/force"
	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "overview", cfg.Layout.Mode)
	assert.Equal(t, "geometric", cfg.Layout.Engine)
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Nil(t, cfg.Force.Options())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[layout]
engine = "force"
seed = 42
top = 300
detect_clusters = true

[force]
overview_iterations = [40, 10]
barnes_hut = true

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
ttl = "1h"

[server]
addr = ":9000"
cors_origins = ["http://localhost:5173"]
`)

	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, "force", cfg.Layout.Engine)
	assert.Equal(t, "overview", cfg.Layout.Mode, "unset keys keep defaults")
	assert.Equal(t, uint64(42), cfg.Layout.Seed)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Std())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.CORSOrigins)
	assert.Equal(t, int64(64<<20), cfg.Server.MaxBodyBytes)

	opts := cfg.PipelineOptions()
	assert.Equal(t, 300, opts.Top)
	assert.True(t, opts.DetectClusters)
	require.NotNil(t, opts.Force)
	require.Len(t, opts.Force.OverviewPasses, len(force.OverviewPasses()))
	assert.Equal(t, 40, opts.Force.OverviewPasses[0].Iterations)
	assert.Equal(t, 10, opts.Force.OverviewPasses[1].Iterations)
	for _, p := range opts.Force.DetailPasses {
		assert.True(t, p.BarnesHutOptimize)
	}
	assert.Equal(t, force.DetailPasses()[0].Iterations, opts.Force.DetailPasses[0].Iterations)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
layout:
  engine: galaxy
  size_by_degree: true
cache:
  backend: none
server:
  metrics: false
  read_timeout: 5s
log:
  level: debug
`)

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "galaxy", cfg.Layout.Engine)
	assert.True(t, cfg.Layout.SizeByDegree)
	assert.Equal(t, BackendNone, cfg.Cache.Backend)
	assert.False(t, cfg.Server.Metrics)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"bad engine", "c.toml", "[layout]\nengine = \"spring\"\n", "Engine"},
		{"negative top", "c.toml", "[layout]\ntop = -1\n", "Top"},
		{"redis without url", "c.toml", "[cache]\nbackend = \"redis\"\n", "RedisURL"},
		{"redis bad scheme", "c.toml", "[cache]\nbackend = \"redis\"\nredis_url = \"http://x\"\n", "redis_url"},
		{"unknown backend", "c.yaml", "cache:\n  backend: memcached\n", "Backend"},
		{"detail default", "c.toml", "[layout]\nmode = \"detail\"\n", "detail"},
		{"unknown key", "c.toml", "[layout]\nengin = \"force\"\n", "unknown keys"},
		{"bad duration", "c.toml", "[cache]\nttl = \"soon\"\n", "parse config"},
		{"syntax", "c.yaml", "layout: [", "parse config"},
		{"theta range", "c.toml", "[force]\ntheta = 3.0\n", "Theta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content), false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	bh := false
	cfg := Default()
	cfg.Layout.Seed = 7
	cfg.Force.BarnesHut = &bh
	cfg.Cache.TTL = Duration(90 * time.Minute)

	for _, name := range []string{"out.toml", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, Write(cfg, path))

			got, err := Load(path, false)
			require.NoError(t, err)
			assert.Equal(t, cfg, got)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	assert.Equal(t, "/tmp/xdg-config/wikigraph/config.toml", DefaultPath())
	dir, err := DefaultCacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-cache/wikigraph", dir)
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Mode string `validate:"required,oneof=overview detail"`
		Top  int    `validate:"gte=0"`
	}

	require.NoError(t, ValidateStruct(request{Mode: "overview"}))

	err := ValidateStruct(request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field is required")

	err = ValidateStruct(request{Mode: "side"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")

	err = ValidateStruct(request{Mode: "detail", Top: -2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be at least 0")
}
