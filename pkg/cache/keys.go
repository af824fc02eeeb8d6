package cache

// Keyer derives cache keys from inputs.
type Keyer interface {
	// LayoutKey identifies a layout of the input with the given hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// ClustersKey identifies a community assignment of the input with the
	// given hash.
	ClustersKey(inputHash string, opts ClustersKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a layout.
type LayoutKeyOpts struct {
	Mode           string `json:"mode"`
	Topic          string `json:"topic,omitempty"`
	Engine         string `json:"engine"`
	Seed           uint64 `json:"seed"`
	Top            int    `json:"top,omitempty"`
	Ego            string `json:"ego,omitempty"`
	SizeByDegree   bool   `json:"size_by_degree,omitempty"`
	DetectClusters bool   `json:"detect_clusters,omitempty"`

	// MaxClusterIterations bounds cluster detection; only set with
	// DetectClusters.
	MaxClusterIterations int `json:"max_cluster_iterations,omitempty"`

	// Force is a hash of non-default force-directed settings.
	Force string `json:"force,omitempty"`
}

// ClustersKeyOpts holds every option that changes a community assignment.
type ClustersKeyOpts struct {
	Seed          uint64 `json:"seed"`
	MaxIterations int    `json:"max_iterations"`

	// Selection steps change the graph being partitioned.
	Top          int    `json:"top,omitempty"`
	Ego          string `json:"ego,omitempty"`
	SizeByDegree bool   `json:"size_by_degree,omitempty"`
}

// DefaultKeyer produces "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

func (DefaultKeyer) ClustersKey(inputHash string, opts ClustersKeyOpts) string {
	return hashKey("clusters", inputHash, opts)
}
