// Package config loads wikigraph settings from a TOML or YAML file.
//
// The format is chosen by extension (.toml, .yaml, .yml). Values missing
// from the file keep their defaults; command-line flags override both.
//
//	[layout]
//	mode = "overview"
//	engine = "geometric"
//	seed = 42
//
//	[force]
//	overview_iterations = [400, 150]
//	barnes_hut = true
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	cors_origins = ["http://localhost:5173"]
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rohith0110/Wikipedia-Graph/pkg/cache"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout/force"
	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "wikigraph"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the full settings file.
type Config struct {
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Force  ForceConfig  `toml:"force" yaml:"force"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// LayoutConfig holds default pipeline options.
type LayoutConfig struct {
	Mode                 string `toml:"mode" yaml:"mode" validate:"omitempty,oneof=overview detail"`
	Engine               string `toml:"engine" yaml:"engine" validate:"omitempty,oneof=geometric galaxy neighborhood force"`
	Seed                 uint64 `toml:"seed" yaml:"seed"`
	Top                  int    `toml:"top" yaml:"top" validate:"gte=0"`
	SizeByDegree         bool   `toml:"size_by_degree" yaml:"size_by_degree"`
	DetectClusters       bool   `toml:"detect_clusters" yaml:"detect_clusters"`
	MaxClusterIterations int    `toml:"max_cluster_iterations" yaml:"max_cluster_iterations" validate:"gte=0"`
}

// ForceConfig adjusts the force-directed passes. Unset fields keep the
// built-in schedule.
type ForceConfig struct {
	// OverviewIterations and DetailIterations set the iteration count of
	// each pass, in order. Extra entries are ignored.
	OverviewIterations []int `toml:"overview_iterations" yaml:"overview_iterations,omitempty" validate:"omitempty,dive,gte=0"`
	DetailIterations   []int `toml:"detail_iterations" yaml:"detail_iterations,omitempty" validate:"omitempty,dive,gte=0"`

	// BarnesHut toggles the quadtree approximation in every pass.
	BarnesHut *bool `toml:"barnes_hut" yaml:"barnes_hut,omitempty"`

	// Theta overrides the Barnes-Hut opening criterion.
	Theta float64 `toml:"theta" yaml:"theta" validate:"gte=0,lte=2"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend  string   `toml:"backend" yaml:"backend" validate:"oneof=none file redis"`
	Dir      string   `toml:"dir" yaml:"dir"`
	RedisURL string   `toml:"redis_url" yaml:"redis_url" validate:"required_if=Backend redis"`
	Prefix   string   `toml:"prefix" yaml:"prefix"`
	TTL      Duration `toml:"ttl" yaml:"ttl" validate:"gte=0"`
}

// ServerConfig configures `wikigraph serve`.
type ServerConfig struct {
	Addr         string   `toml:"addr" yaml:"addr" validate:"required"`
	CORSOrigins  []string `toml:"cors_origins" yaml:"cors_origins,omitempty"`
	Metrics      bool     `toml:"metrics" yaml:"metrics"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout" validate:"gte=0"`

	// MaxBodyBytes bounds posted element arrays.
	MaxBodyBytes int64 `toml:"max_body_bytes" yaml:"max_body_bytes" validate:"gt=0"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Duration is a time.Duration written as a string such as "90s" or "168h".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Mode:   pipeline.DefaultMode,
			Engine: pipeline.DefaultEngine,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration(cache.LayoutTTL),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			Metrics:      true,
			ReadTimeout:  Duration(30 * time.Second),
			WriteTimeout: Duration(2 * time.Minute),
			MaxBodyBytes: 64 << 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/wikigraph/config.toml, falling back
// to ~/.config/wikigraph/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", AppName+".toml")
	}
	return filepath.Join(home, ".config", AppName, "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/wikigraph, falling back to
// ~/.cache/wikigraph.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads path over the defaults and validates the result. When
// optional is true a missing file yields the defaults.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && optional {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := Decode(data, formatOf(path), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Format is a config file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Decode parses data in the given format into cfg, keeping fields the data
// does not mention.
func Decode(data []byte, f Format, cfg *Config) error {
	switch f {
	case FormatYAML:
		return yaml.Unmarshal(data, cfg)
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q", f)
}

// Encode writes cfg in the given format.
func Encode(cfg Config, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// Write saves cfg to path in the format its extension names, creating
// parent directories.
func Write(cfg Config, path string) error {
	data, err := Encode(cfg, formatOf(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// =============================================================================
// Conversion
// =============================================================================

// PipelineOptions returns the layout defaults as pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Mode:                 c.Layout.Mode,
		Engine:               c.Layout.Engine,
		Seed:                 c.Layout.Seed,
		Top:                  c.Layout.Top,
		SizeByDegree:         c.Layout.SizeByDegree,
		DetectClusters:       c.Layout.DetectClusters,
		MaxClusterIterations: c.Layout.MaxClusterIterations,
		Force:                c.Force.Options(),
	}
}

// Options returns the force engine options, or nil when nothing differs
// from the built-in schedule.
func (f ForceConfig) Options() *force.Options {
	if len(f.OverviewIterations) == 0 && len(f.DetailIterations) == 0 && f.BarnesHut == nil && f.Theta == 0 {
		return nil
	}
	return &force.Options{
		OverviewPasses: f.apply(force.OverviewPasses(), f.OverviewIterations),
		DetailPasses:   f.apply(force.DetailPasses(), f.DetailIterations),
	}
}

func (f ForceConfig) apply(passes []force.Settings, iterations []int) []force.Settings {
	for i := range passes {
		if i < len(iterations) {
			passes[i].Iterations = iterations[i]
		}
		if f.BarnesHut != nil {
			passes[i].BarnesHutOptimize = *f.BarnesHut
		}
		if f.Theta > 0 {
			passes[i].BarnesHutTheta = f.Theta
		}
	}
	return passes
}
