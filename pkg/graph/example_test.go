package graph_test

import (
	"fmt"
	"strings"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
	"github.com/rohith0110/Wikipedia-Graph/pkg/graph"
)

func ExampleReadElements() {
	in := `[
	  {"data": {"id": "Science", "label": "Science", "size": 150, "cluster_id": 0}},
	  {"data": {"id": "Physics", "label": "Physics", "cluster_id": 0}},
	  {"data": {"source": "Science", "target": "Physics"}}
	]`

	elems, err := graph.ReadElements(strings.NewReader(in))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, e := range elems {
		switch {
		case e.IsNode():
			fmt.Println("node", e.Data.ID, "cluster", e.Data.ClusterID)
		case e.IsEdge():
			fmt.Println("edge", e.Data.Source, "→", e.Data.Target)
		}
	}
	// Output:
	// node Science cluster 0
	// node Physics cluster 0
	// edge Science → Physics
}

func ExampleBuild() {
	elems := []graph.Element{
		graph.NodeElement("Go", "Go", "0", 150),
		graph.NodeElement("C", "C", "0", 0),
		graph.EdgeElement("Go", "C"),
		graph.EdgeElement("Go", "C"),
		graph.EdgeElement("Go", "Rust"),
	}

	g, stats := graph.Build(elems, graph.BuildOptions{Mode: layout.ModeDetail, Topic: "Go"})
	for _, n := range g.Nodes() {
		fmt.Printf("%s size=%.0f focal=%v\n", n.ID, n.Size, n.Focal)
	}
	fmt.Println("edges:", stats.Edges, "dropped:", stats.DroppedEdges)
	// Output:
	// Go size=75 focal=true
	// C size=4 focal=false
	// edges: 1 dropped: 2
}
