package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// =============================================================================
// Layout - Positioned Graph
// =============================================================================

// Layout is the serialization format of a computed layout. It is what the
// CLI writes, the server returns and the cache stores.
//
// Every node carries its final position, normalized size, cluster and focal
// flag, so renderers can read positions straight off the nodes.
type Layout struct {
	Mode   string `json:"mode"`
	Engine string `json:"engine"`
	Topic  string `json:"topic,omitempty"`
	Seed   uint64 `json:"seed,omitempty"`

	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	Report *layout.Report `json:"report,omitempty"`
}

// IsDetail reports whether the layout is centered on a focal node.
func (l *Layout) IsDetail() bool { return l.Mode == ModeDetail }

// Focal returns the first node flagged as the main node.
func (l *Layout) Focal() (Node, bool) {
	for _, n := range l.Nodes {
		if n.IsMainNode {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that the
// mode is known and every edge references a node.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if _, err := layout.ParseMode(l.Mode); err != nil {
		return Layout{}, err
	}

	ids := make(map[string]struct{}, len(l.Nodes))
	for _, n := range l.Nodes {
		if n.ID == "" {
			return Layout{}, fmt.Errorf("layout node without id")
		}
		ids[n.ID] = struct{}{}
	}
	for _, e := range l.Edges {
		if _, ok := ids[e.Source]; !ok {
			return Layout{}, fmt.Errorf("edge %s→%s: unknown source", e.Source, e.Target)
		}
		if _, ok := ids[e.Target]; !ok {
			return Layout{}, fmt.Errorf("edge %s→%s: unknown target", e.Source, e.Target)
		}
	}
	return l, nil
}

// WriteLayout writes a Layout as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
