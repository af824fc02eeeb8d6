package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/rohith0110/Wikipedia-Graph/pkg/cache"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/community"
	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/observability"
)

// clusterStream offsets the seed of the community detection random source
// so cached and recomputed assignments leave the placement stream intact.
const clusterStream = 0x9e3779b97f4a7c15

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// LayoutTTL bounds how long layouts stay cached. Zero means
	// [cache.LayoutTTL].
	LayoutTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs select → build → cluster → place on elems.
//
// A seeded run is looked up in the cache first and stored after. With Seed
// 0 a fresh seed is drawn and recorded in the layout, so the run can be
// repeated exactly by passing that seed back.
func (r *Runner) Execute(ctx context.Context, elems []graph.Element, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	result.Stats.InputElements = len(elems)
	result.CacheInfo.Cacheable = opts.Cacheable()
	logger := opts.Logger.With("run", result.RunID[:8])

	seed := opts.Seed
	if seed == 0 {
		seed = layout.RandomSeed()
	}

	var layoutKey string
	if result.CacheInfo.Cacheable {
		data, err := graph.MarshalElements(elems)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode elements")
		}
		result.InputHash = cache.Hash(data)
		layoutKey = r.Keyer.LayoutKey(result.InputHash, opts.LayoutKeyOpts())

		if !opts.Refresh {
			if l, g, ok := r.cachedLayout(ctx, layoutKey); ok {
				logger.Debug("layout cache hit", "key", layoutKey)
				result.Layout = l
				result.Graph = g
				result.Stats.NodeCount = g.NodeCount()
				result.Stats.EdgeCount = g.EdgeCount()
				result.CacheInfo.LayoutHit = true
				return result, nil
			}
		}
	}

	// Stage 1: Select
	start := time.Now()
	selected := r.selectElements(elems, opts, logger)
	result.Stats.SelectTime = time.Since(start)

	// Stage 2: Build
	start = time.Now()
	g, stats := graph.Build(selected, graph.BuildOptions{Mode: opts.LayoutMode(), Topic: opts.Topic})
	result.Build = stats
	result.Stats.BuildTime = time.Since(start)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	logger.Debug("built graph",
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"dropped_edges", stats.DroppedEdges,
		"self_loops", stats.SelfLoops,
		"duplicate_nodes", stats.DuplicateNodes)

	// Stage 3: Cluster
	if opts.DetectClusters {
		start = time.Now()
		result.Communities = r.detectClusters(ctx, g, seed, result.InputHash, opts)
		result.Stats.ClusterTime = time.Since(start)
		observability.Layout().OnClusters(ctx, result.Communities.Count, result.Communities.Converged, result.Stats.ClusterTime)
		logger.Debug("detected clusters",
			"communities", result.Communities.Count,
			"assigned", result.Communities.Assigned,
			"modularity", result.Communities.Modularity,
			"cache_hit", result.Communities.CacheHit)
	}

	// Stage 4: Place
	strategy, err := NewStrategy(opts.Engine, opts.Force)
	if err != nil {
		return nil, err
	}
	start = time.Now()
	observability.Layout().OnLayoutStart(ctx, opts.Engine, opts.Mode, g.NodeCount())
	report, err := Place(ctx, strategy, g, layout.Request{
		Mode:  opts.LayoutMode(),
		Topic: opts.Topic,
		Rand:  layout.NewRand(seed),
	})
	result.Stats.LayoutTime = time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, opts.Engine, opts.Mode, observability.LayoutStats{
		Nodes:    report.Nodes,
		Placed:   report.Placed,
		Sampled:  report.Sampled,
		Fallback: report.Spiral + report.Circle,
		Forced:   report.Forced,
	}, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}

	if opts.Mode == graph.ModeDetail && opts.Engine != graph.EngineGalaxy && !report.FocalFound {
		logger.Warn("topic not found, using fallback placement", "topic", opts.Topic)
	}
	if report.Spiral > 0 {
		logger.Debug("sampling exhausted", "spiral", report.Spiral)
	}
	logger.Info("computed layout",
		"engine", report.Engine,
		"nodes", report.Nodes,
		"placed", report.Placed,
		"duration", result.Stats.LayoutTime)

	result.Graph = g
	result.Layout = graph.FromGraph(g, graph.LayoutMeta{
		Mode:   opts.LayoutMode(),
		Engine: opts.Engine,
		Topic:  opts.Topic,
		Seed:   seed,
		Report: &report,
	})

	if result.CacheInfo.Cacheable {
		r.store(ctx, "layout", layoutKey, result.Layout, r.layoutTTL())
	}
	return result, nil
}

// Select applies the optional selection steps in order: size by in-degree,
// ego extraction around the topic, then the top-n cut.
func (r *Runner) Select(elems []graph.Element, opts Options) []graph.Element {
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	return r.selectElements(elems, opts, logger)
}

func (r *Runner) selectElements(elems []graph.Element, opts Options, logger *log.Logger) []graph.Element {
	out := elems
	if opts.SizeByDegree {
		out = graph.SizeFromInDegree(out)
	}
	if opts.Ego {
		if id, ok := findLabel(out, opts.Topic); ok {
			out = graph.Ego(out, id)
			logger.Debug("extracted ego network", "topic", opts.Topic, "elements", len(out))
		} else {
			logger.Warn("ego center not found, keeping all elements", "topic", opts.Topic)
		}
	}
	if opts.Top > 0 {
		out = graph.SelectTop(out, opts.Top)
	}
	return out
}

// findLabel returns the id of the first node labeled label. A node without
// a label is matched by its id, as in [graph.Build].
func findLabel(elems []graph.Element, label string) (string, bool) {
	for _, e := range elems {
		if !e.IsNode() {
			continue
		}
		l := e.Data.Label
		if l == "" {
			l = string(e.Data.ID)
		}
		if l == label {
			return string(e.Data.ID), true
		}
	}
	return "", false
}

// detectClusters fills the cluster of every node that has none. When some
// nodes already carry clusters, detected IDs are prefixed to keep them
// apart from the input's.
func (r *Runner) detectClusters(ctx context.Context, g *core.Graph, seed uint64, inputHash string, opts Options) *CommunityStats {
	var key string
	if inputHash != "" {
		key = r.Keyer.ClustersKey(inputHash, opts.ClustersKeyOpts())
	}

	stats := &CommunityStats{}
	var assignment map[string]string
	if key != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached clusterEntry
			if json.Unmarshal(data, &cached) == nil {
				observability.Cache().OnCacheHit(ctx, "clusters")
				assignment = cached.Assignment
				stats.Modularity = cached.Modularity
				stats.Iterations = cached.Iterations
				stats.Converged = cached.Converged
				stats.CacheHit = true
			}
		} else if err == nil {
			observability.Cache().OnCacheMiss(ctx, "clusters")
		}
	}

	if assignment == nil {
		res := community.LabelPropagation(g, layout.NewRand(seed^clusterStream), opts.MaxClusterIterations)
		assignment = res.Assignment
		stats.Modularity = res.Modularity
		stats.Iterations = res.Iterations
		stats.Converged = res.Converged
		if key != "" {
			r.store(ctx, "clusters", key, clusterEntry{
				Assignment: res.Assignment,
				Modularity: res.Modularity,
				Iterations: res.Iterations,
				Converged:  res.Converged,
			}, cache.ClustersTTL)
		}
	}

	prefix := ""
	for _, n := range g.Nodes() {
		if n.Cluster != "" {
			prefix = "detected-"
			break
		}
	}
	fill := make(map[string]string)
	seen := make(map[string]struct{})
	for _, n := range g.Nodes() {
		if n.Cluster != "" {
			continue
		}
		if c, ok := assignment[n.ID]; ok {
			fill[n.ID] = prefix + c
			seen[c] = struct{}{}
		}
	}
	community.Apply(g, fill)
	stats.Assigned = len(fill)
	stats.Count = len(seen)
	return stats
}

type clusterEntry struct {
	Assignment map[string]string `json:"assignment"`
	Modularity float64           `json:"modularity"`
	Iterations int               `json:"iterations"`
	Converged  bool              `json:"converged"`
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (graph.Layout, *core.Graph, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return graph.Layout{}, nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return graph.Layout{}, nil, false
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return graph.Layout{}, nil, false
	}
	g, err := graph.ToGraph(l)
	if err != nil {
		return graph.Layout{}, nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return l, g, true
}

func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func (r *Runner) layoutTTL() time.Duration {
	if r.LayoutTTL > 0 {
		return r.LayoutTTL
	}
	return cache.LayoutTTL
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// ExecuteFile reads elements from path and runs Execute.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	elems, err := graph.ReadElementsFile(path)
	if err != nil {
		return nil, classifyReadError(err, path)
	}
	return r.Execute(ctx, elems, opts)
}

func classifyReadError(err error, path string) error {
	if stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "input not found: %s", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
}
