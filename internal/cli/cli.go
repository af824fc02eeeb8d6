// Package cli implements the wikigraph command-line interface.
//
// The CLI lays out Cytoscape-style element files, summarizes their clusters,
// serves layouts over HTTP and manages the layout cache. Settings come from
// a TOML or YAML config file (see [config]) with flags taking precedence.
//
// # Commands
//
//   - layout: compute a galaxy or neighborhood layout and write it as JSON
//   - clusters: print or browse the clusters of a laid-out graph
//   - serve: run the HTTP layout service
//   - cache: inspect and clear the layout cache
//   - config: print, locate or initialize the config file
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rohith0110/Wikipedia-Graph/pkg/buildinfo"
	"github.com/rohith0110/Wikipedia-Graph/pkg/cache"
	"github.com/rohith0110/Wikipedia-Graph/pkg/config"
	"github.com/rohith0110/Wikipedia-Graph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "wikigraph lays out link graphs as galaxies and neighborhoods",
		Long: `wikigraph computes 2D layouts for large link graphs such as Wikipedia's.

The overview mode arranges clusters on a ring so that each cluster reads as a
separate galaxy. The detail mode centers one topic and places its direct
neighbors around it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.clustersCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file. An explicit --config must exist; the
// default location is optional.
func (c *CLI) loadConfig() error {
	path, optional := c.configPath, false
	if path == "" {
		path, optional = config.DefaultPath(), true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return err
	}
	c.Config = cfg

	// --verbose wins over the configured level.
	if c.verbose {
		c.SetLogLevel(LogDebug)
	} else if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		c.SetLogLevel(lvl)
	}
	c.Logger.Debug("config loaded", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, c.Config.Cache, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.Config.Cache.Prefix)
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.LayoutTTL = c.Config.Cache.TTL.Std()
	return r, nil
}

func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{URL: cfg.RedisURL})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// location (~/.cache/wikigraph/).
func cacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return config.DefaultCacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags binds the pipeline flags shared by layout and clusters.
type layoutFlags struct {
	opts    pipeline.Options
	noCache bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.opts.Mode, "mode", "m", pipeline.DefaultMode, "layout mode: overview, detail")
	fs.StringVarP(&f.opts.Topic, "topic", "t", "", "focal node label or id (detail mode)")
	fs.StringVarP(&f.opts.Engine, "engine", "e", pipeline.DefaultEngine, "layout engine: geometric, galaxy, neighborhood, force")
	fs.Uint64Var(&f.opts.Seed, "seed", 0, "random seed (0 draws one and disables caching)")
	fs.IntVar(&f.opts.Top, "top", 0, "keep only the n largest nodes (default: 750 in overview)")
	fs.BoolVar(&f.opts.Ego, "ego", false, "keep only the topic and its neighbors before layout")
	fs.BoolVar(&f.opts.SizeByDegree, "size-by-degree", false, "size nodes by in-degree instead of the input size")
	fs.BoolVar(&f.opts.DetectClusters, "detect-clusters", false, "assign clusters by label propagation to nodes without one")
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when a cached layout exists")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")

	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.EngineNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"overview", "detail"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// options merges explicitly set flags over the configured defaults.
func (f *layoutFlags) options(cmd *cobra.Command, cfg config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	fs := cmd.Flags()
	if fs.Changed("mode") {
		opts.Mode = f.opts.Mode
	}
	if fs.Changed("engine") {
		opts.Engine = f.opts.Engine
	}
	if fs.Changed("seed") {
		opts.Seed = f.opts.Seed
	}
	if fs.Changed("top") {
		opts.Top = f.opts.Top
	}
	if fs.Changed("size-by-degree") {
		opts.SizeByDegree = f.opts.SizeByDegree
	}
	if fs.Changed("detect-clusters") {
		opts.DetectClusters = f.opts.DetectClusters
	}
	opts.Topic = f.opts.Topic
	opts.Ego = f.opts.Ego
	opts.Refresh = f.opts.Refresh
	return opts
}
