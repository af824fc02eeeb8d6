package pipeline

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohith0110/Wikipedia-Graph/pkg/cache"
	core "github.com/rohith0110/Wikipedia-Graph/pkg/core/graph"
	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
	"github.com/rohith0110/Wikipedia-Graph/pkg/errors"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

// clusteredElements builds three clusters of three nodes, each a triangle,
// plus one bridge edge. Node "a0" is labeled "Go".
func clusteredElements() []graph.Element {
	var elems []graph.Element
	for _, c := range []string{"a", "b", "c"} {
		for i := range 3 {
			id := fmt.Sprintf("%s%d", c, i)
			label := id
			if id == "a0" {
				label = "Go"
			}
			elems = append(elems, graph.NodeElement(id, label, c, float64(10+i*40)))
		}
		elems = append(elems,
			graph.EdgeElement(c+"0", c+"1"),
			graph.EdgeElement(c+"1", c+"2"),
			graph.EdgeElement(c+"2", c+"0"),
		)
	}
	return append(elems, graph.EdgeElement("a0", "b0"))
}

// cliques builds two disjoint 4-cliques without cluster ids.
func cliques() []graph.Element {
	var elems []graph.Element
	for _, group := range [][]string{{"p", "q", "r", "s"}, {"w", "x", "y", "z"}} {
		for _, id := range group {
			elems = append(elems, graph.NodeElement(id, id, "", 10))
		}
		for i := range group {
			for j := i + 1; j < len(group); j++ {
				elems = append(elems, graph.EdgeElement(group[i], group[j]))
			}
		}
	}
	return elems
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"overview", false},
		{"detail", false},
		{"Overview", true},
		{"galaxy", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidMode) {
			t.Errorf("ValidateMode(%q) code = %v", tt.mode, errors.GetCode(err))
		}
	}
}

func TestValidateEngine(t *testing.T) {
	for _, name := range EngineNames() {
		assert.NoError(t, ValidateEngine(name), name)
	}
	err := ValidateEngine("dot")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidEngine))
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, graph.ModeOverview, opts.Mode)
	assert.Equal(t, graph.EngineGeometric, opts.Engine)
	assert.NotNil(t, opts.Logger)
	assert.False(t, opts.Cacheable())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"detail without topic", Options{Mode: "detail"}, errors.ErrCodeInvalidTopic},
		{"unknown mode", Options{Mode: "zoomed"}, errors.ErrCodeInvalidMode},
		{"unknown engine", Options{Engine: "dot"}, errors.ErrCodeInvalidEngine},
		{"negative top", Options{Top: -1}, errors.ErrCodeInvalidInput},
		{"ego in overview", Options{Ego: true}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestLayoutKeyOptsIgnoresTopicInOverview(t *testing.T) {
	a := Options{Mode: "overview", Topic: "Go", Seed: 1}
	b := Options{Mode: "overview", Topic: "Rust", Seed: 1}
	assert.Equal(t, a.LayoutKeyOpts(), b.LayoutKeyOpts())

	a.Mode, b.Mode = "detail", "detail"
	assert.NotEqual(t, a.LayoutKeyOpts(), b.LayoutKeyOpts())
}

func TestNewStrategy(t *testing.T) {
	for _, name := range EngineNames() {
		s, err := NewStrategy(name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
	}
	_, err := NewStrategy("dot", nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidEngine))
}

func TestExecuteOverview(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), clusteredElements(), Options{Seed: 42})
	require.NoError(t, err)

	l := res.Layout
	assert.Equal(t, "overview", l.Mode)
	assert.Equal(t, "geometric", l.Engine)
	assert.Equal(t, uint64(42), l.Seed)
	require.Len(t, l.Nodes, 9)
	assert.Len(t, l.Edges, 10)
	for _, n := range l.Nodes {
		assert.True(t, n.Placed(), "node %s should be placed", n.ID)
		assert.False(t, n.IsMainNode)
	}
	require.NotNil(t, l.Report)
	assert.Equal(t, 3, l.Report.Clusters)
	assert.Equal(t, 3, l.Report.Anchors)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 9, res.Stats.NodeCount)
}

func TestExecuteDetail(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), clusteredElements(), Options{
		Mode:  "detail",
		Topic: "Go",
		Seed:  7,
	})
	require.NoError(t, err)

	focal, ok := res.Layout.Focal()
	require.True(t, ok)
	assert.Equal(t, "a0", focal.ID)
	require.True(t, focal.Placed())
	assert.Zero(t, *focal.X)
	assert.Zero(t, *focal.Y)
	assert.Equal(t, layout.NormalizeSize(10, true), focal.Size)

	placed := 0
	for _, n := range res.Layout.Nodes {
		if n.Placed() {
			placed++
		}
	}
	// focal plus a1, a2 and b0
	assert.Equal(t, 4, placed)
	assert.True(t, res.Layout.Report.FocalFound)
}

func TestExecuteDetailMissingTopicFallsBack(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), clusteredElements(), Options{
		Mode:  "detail",
		Topic: "Nowhere",
		Seed:  7,
	})
	require.NoError(t, err)
	assert.False(t, res.Layout.Report.FocalFound)
	assert.True(t, res.Layout.Report.CircleFallback)
	for _, n := range res.Layout.Nodes {
		assert.True(t, n.Placed(), "fallback should place %s", n.ID)
	}
}

func TestExecuteUnseededDrawsSeed(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(c)

	res, err := r.Execute(context.Background(), clusteredElements(), Options{})
	require.NoError(t, err)
	assert.NotZero(t, res.Layout.Seed)
	assert.False(t, res.CacheInfo.Cacheable)
	assert.Empty(t, res.InputHash)

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Entries, "unseeded runs must not be cached")

	// the recorded seed reproduces the run
	again, err := r.Execute(context.Background(), clusteredElements(), Options{Seed: res.Layout.Seed})
	require.NoError(t, err)
	for i, n := range res.Layout.Nodes {
		assert.Equal(t, *n.X, *again.Layout.Nodes[i].X)
		assert.Equal(t, *n.Y, *again.Layout.Nodes[i].Y)
	}
}

func TestExecuteCachesSeededRuns(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(c)
	opts := Options{Seed: 99, DetectClusters: true}

	first, err := r.Execute(ctx, cliques(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LayoutHit)
	assert.NotEmpty(t, first.InputHash)

	second, err := r.Execute(ctx, cliques(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.LayoutHit)
	assert.Equal(t, first.Layout.Nodes, second.Layout.Nodes)
	assert.Equal(t, first.Graph.NodeCount(), second.Graph.NodeCount())

	refreshed, err := r.Execute(ctx, cliques(), Options{Seed: 99, DetectClusters: true, Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.CacheInfo.LayoutHit)
	assert.False(t, refreshed.Communities.CacheHit)
	assert.Equal(t, first.Layout.Nodes, refreshed.Layout.Nodes)
}

func TestExecuteCacheKeyCoversClusterIterations(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(c)

	first, err := r.Execute(ctx, cliques(), Options{Seed: 3, DetectClusters: true, MaxClusterIterations: 1})
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LayoutHit)

	second, err := r.Execute(ctx, cliques(), Options{Seed: 3, DetectClusters: true, MaxClusterIterations: 50})
	require.NoError(t, err)
	assert.False(t, second.CacheInfo.LayoutHit)

	again, err := r.Execute(ctx, cliques(), Options{Seed: 3, DetectClusters: true, MaxClusterIterations: 50})
	require.NoError(t, err)
	assert.True(t, again.CacheInfo.LayoutHit)
}

func TestLayoutKeyOptsIgnoresClusterIterationsWithoutDetection(t *testing.T) {
	a := Options{Seed: 3, MaxClusterIterations: 1}
	b := Options{Seed: 3, MaxClusterIterations: 50}
	a.SetDefaults()
	b.SetDefaults()
	assert.Equal(t, a.LayoutKeyOpts(), b.LayoutKeyOpts())

	a.DetectClusters, b.DetectClusters = true, true
	assert.NotEqual(t, a.LayoutKeyOpts(), b.LayoutKeyOpts())
}

func TestExecuteCacheDistinguishesClusterIDs(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(c)

	input := func(xCluster string) []graph.Element {
		return []graph.Element{
			graph.NodeElement("x", "x", xCluster, 10),
			graph.NodeElement("y", "y", "1", 10),
			graph.EdgeElement("x", "y"),
		}
	}

	first, err := r.Execute(ctx, input("01"), Options{Seed: 9})
	require.NoError(t, err)
	second, err := r.Execute(ctx, input("1"), Options{Seed: 9})
	require.NoError(t, err)

	assert.NotEqual(t, first.InputHash, second.InputHash)
	assert.False(t, second.CacheInfo.LayoutHit)
	assert.Len(t, second.Graph.Clusters(), 1)
}

func TestExecuteDetectClusters(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), cliques(), Options{Seed: 3, DetectClusters: true})
	require.NoError(t, err)

	require.NotNil(t, res.Communities)
	assert.Equal(t, 2, res.Communities.Count)
	assert.Equal(t, 8, res.Communities.Assigned)

	byID := map[string]string{}
	for _, n := range res.Layout.Nodes {
		require.NotEmpty(t, n.Cluster, "node %s", n.ID)
		byID[n.ID] = n.Cluster
	}
	assert.Equal(t, byID["p"], byID["q"])
	assert.Equal(t, byID["w"], byID["z"])
	assert.NotEqual(t, byID["p"], byID["z"])
}

func TestExecuteDetectClustersKeepsInputClusters(t *testing.T) {
	elems := cliques()
	elems = append(elems, graph.NodeElement("k", "k", "given", 10))

	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), elems, Options{Seed: 3, DetectClusters: true})
	require.NoError(t, err)

	for _, n := range res.Layout.Nodes {
		if n.ID == "k" {
			assert.Equal(t, "given", n.Cluster)
		} else {
			assert.Contains(t, n.Cluster, "detected-")
		}
	}
}

func TestExecuteSelection(t *testing.T) {
	r := quietRunner(nil)

	res, err := r.Execute(context.Background(), clusteredElements(), Options{Seed: 1, Top: 3})
	require.NoError(t, err)
	assert.Len(t, res.Layout.Nodes, 3)
	for _, n := range res.Layout.Nodes {
		assert.Equal(t, "2", n.ID[1:], "only the size-90 nodes survive")
	}

	res, err = r.Execute(context.Background(), clusteredElements(), Options{
		Mode: "detail", Topic: "Go", Ego: true, Seed: 1,
	})
	require.NoError(t, err)
	ids := make([]string, 0, len(res.Layout.Nodes))
	for _, n := range res.Layout.Nodes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"a0", "a1", "a2", "b0"}, ids)
}

func TestExecuteForce(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), clusteredElements(), Options{Seed: 5, Engine: "force"})
	require.NoError(t, err)
	assert.Equal(t, "force", res.Layout.Report.Engine)
	assert.Equal(t, 550, res.Layout.Report.Iterations)
	assert.Equal(t, 9, res.Layout.Report.Forced)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := quietRunner(nil)
	_, err := r.Execute(ctx, clusteredElements(), Options{Seed: 5, Engine: "force"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeTimeout))
}

func TestExecuteFileNotFound(t *testing.T) {
	r := quietRunner(nil)
	_, err := r.ExecuteFile(context.Background(), t.TempDir()+"/missing.json", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestSummarizeClusters(t *testing.T) {
	g := core.New()
	for _, n := range []core.Node{
		{ID: "a", Label: "A", Cluster: "x", Size: 5},
		{ID: "b", Label: "B", Cluster: "x", Size: 9},
		{ID: "c", Label: "C", Cluster: "y", Size: 4},
	} {
		require.NoError(t, g.AddNode(n))
	}
	a, _ := g.Node("a")
	b, _ := g.Node("b")
	a.Position(-3, 0, core.PlacementSampled)
	b.Position(3, 0, core.PlacementSampled)

	sum := SummarizeClusters(g)
	require.Len(t, sum, 2)
	assert.Equal(t, "x", sum[0].ID)
	assert.Equal(t, 2, sum[0].Placed)
	assert.Equal(t, layout.Point{}, sum[0].Center)
	assert.InDelta(t, 3, sum[0].Radius, 1e-9)
	assert.Equal(t, "B", sum[0].Largest)

	assert.Equal(t, "y", sum[1].ID)
	assert.Zero(t, sum[1].Placed)
}
