package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Layout engines.
const (
	EngineGeometric    = "geometric"
	EngineGalaxy       = "galaxy"
	EngineNeighborhood = "neighborhood"
	EngineForce        = "force"
)

// Layout modes, mirrored from the core layout package for wire use.
const (
	ModeOverview = string(layout.ModeOverview)
	ModeDetail   = string(layout.ModeDetail)
)

// Attribute keys copied from elements into the node side-table.
const (
	AttrURL     = "url"
	AttrRawSize = "raw_size"
)

// =============================================================================
// Ident - Lenient Identifier
// =============================================================================

// Ident is an identifier that may arrive as a JSON string or number.
// Null and missing values decode to the empty string.
type Ident string

func (id *Ident) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = Ident(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("identifier must be a string or number, got %s", b)
		}
		*id = Ident(n.String())
	}
	return nil
}

// =============================================================================
// Element - Input Descriptor
// =============================================================================

// Element is one entry of the input sequence: a node when Data.ID is set,
// an edge when Data.Source is set.
type Element struct {
	Data ElementData `json:"data"`
}

// IsNode reports whether the element describes a node.
func (e Element) IsNode() bool { return e.Data.ID != "" }

// IsEdge reports whether the element describes an edge.
func (e Element) IsEdge() bool { return e.Data.ID == "" && e.Data.Source != "" }

// NodeElement returns a node element.
func NodeElement(id, label, cluster string, size float64) Element {
	d := ElementData{ID: Ident(id), Label: label, ClusterID: Ident(cluster)}
	if size > 0 {
		d.Size = &size
	}
	return Element{Data: d}
}

// EdgeElement returns an edge element.
func EdgeElement(source, target string) Element {
	return Element{Data: ElementData{Source: Ident(source), Target: Ident(target)}}
}

// ElementData carries the fields of an element. Keys this type does not
// know are kept in Extra and written back on marshal.
type ElementData struct {
	ID        Ident
	Label     string
	Source    Ident
	Target    Ident
	Size      *float64
	ClusterID Ident
	URL       string
	Extra     map[string]any
}

var knownKeys = map[string]bool{
	"id": true, "label": true, "source": true, "target": true,
	"size": true, "cluster_id": true, "url": true,
}

type elementFields struct {
	ID        Ident    `json:"id,omitempty"`
	Label     string   `json:"label,omitempty"`
	Source    Ident    `json:"source,omitempty"`
	Target    Ident    `json:"target,omitempty"`
	Size      *float64 `json:"size,omitempty"`
	ClusterID *Ident   `json:"cluster_id,omitempty"`
	URL       string   `json:"url,omitempty"`
}

func (d *ElementData) UnmarshalJSON(b []byte) error {
	var f elementFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*d = ElementData{
		ID:     f.ID,
		Label:  f.Label,
		Source: f.Source,
		Target: f.Target,
		Size:   f.Size,
		URL:    f.URL,
	}
	if f.ClusterID != nil {
		d.ClusterID = *f.ClusterID
	}
	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		if d.Extra == nil {
			d.Extra = make(map[string]any)
		}
		d.Extra[k] = val
	}
	return nil
}

func (d ElementData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+7)
	maps.Copy(out, d.Extra)
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("id", string(d.ID))
	put("label", d.Label)
	put("source", string(d.Source))
	put("target", string(d.Target))
	put("url", d.URL)
	if d.Size != nil {
		out["size"] = *d.Size
	}
	if d.ClusterID != "" {
		// Only canonical integers go back out as numbers so "01" and "1"
		// stay distinct.
		if n, err := strconv.Atoi(string(d.ClusterID)); err == nil && strconv.Itoa(n) == string(d.ClusterID) {
			out["cluster_id"] = n
		} else {
			out["cluster_id"] = string(d.ClusterID)
		}
	}
	return json.Marshal(out)
}

// =============================================================================
// Node, Edge - Positioned Output
// =============================================================================

// Node is a positioned node as handed to renderers. X and Y are nil for
// nodes the layout left unplaced.
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label,omitempty"`
	X          *float64       `json:"x,omitempty"`
	Y          *float64       `json:"y,omitempty"`
	Size       float64        `json:"size"`
	Cluster    string         `json:"cluster"`
	IsMainNode bool           `json:"isMainNode"`
	Placement  string         `json:"placement,omitempty"`
	Attrs      map[string]any `json:"attrs,omitempty"`
}

// Placed reports whether the node has a position.
func (n *Node) Placed() bool { return n.X != nil && n.Y != nil }

// Edge is a directed edge between two output nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}
