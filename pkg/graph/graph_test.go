package graph

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

const sampleElements = `[
  {"data": {"id": "Science", "label": "Science", "size": 150, "cluster_id": 0, "url": "https://en.wikipedia.org/wiki/Science"}},
  {"data": {"id": "Physics", "label": "Physics", "size": 80, "cluster_id": "0"}},
  {"data": {"id": 42, "label": "Answer", "cluster_id": null, "color": "#FF6633"}},
  {"data": {"source": "Science", "target": "Physics", "label": "Science → Physics"}},
  {"data": {"source": "Physics", "target": 42}},
  {"data": {"source": "Science", "target": "Missing"}},
  {"data": {"note": "neither node nor edge"}}
]`

func TestReadElements(t *testing.T) {
	elems, err := ReadElements(strings.NewReader(sampleElements))
	if err != nil {
		t.Fatalf("ReadElements: %v", err)
	}
	if len(elems) != 7 {
		t.Fatalf("got %d elements, want 7", len(elems))
	}

	tests := []struct {
		name   string
		idx    int
		isNode bool
		isEdge bool
	}{
		{"Node", 0, true, false},
		{"NumericID", 2, true, false},
		{"Edge", 3, false, true},
		{"NumericTarget", 4, false, true},
		{"Neither", 6, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := elems[tt.idx]
			if e.IsNode() != tt.isNode || e.IsEdge() != tt.isEdge {
				t.Errorf("IsNode=%v IsEdge=%v, want %v %v", e.IsNode(), e.IsEdge(), tt.isNode, tt.isEdge)
			}
		})
	}

	if got := elems[2].Data.ID; got != "42" {
		t.Errorf("numeric id = %q, want 42", got)
	}
	if got := elems[0].Data.ClusterID; got != "0" {
		t.Errorf("numeric cluster_id = %q, want 0", got)
	}
	if got := elems[2].Data.ClusterID; got != "" {
		t.Errorf("null cluster_id = %q, want empty", got)
	}
	if got := elems[2].Data.Extra["color"]; got != "#FF6633" {
		t.Errorf("extra color = %v", got)
	}
	if elems[2].Data.Size != nil {
		t.Errorf("missing size decoded as %v", *elems[2].Data.Size)
	}
	if _, ok := elems[3].Data.Extra["label"]; ok {
		t.Error("edge label is a known key and must not land in Extra")
	}
}

func TestReadElementsWrapped(t *testing.T) {
	in := `  {"elements": [{"data": {"id": "a"}}, {"data": {"source": "a", "target": "a"}}]}`
	elems, err := ReadElements(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadElements: %v", err)
	}
	if len(elems) != 2 {
		t.Errorf("got %d elements, want 2", len(elems))
	}
}

func TestReadElementsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Empty", ""},
		{"Scalar", "42"},
		{"BadElement", `[{"data": {"id": true}}]`},
		{"Truncated", `[{"data": {"id": "a"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadElements(strings.NewReader(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestElementsFileRoundTrip(t *testing.T) {
	elems, err := UnmarshalElements([]byte(sampleElements))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "elements.json")
	if err := WriteElementsFile(elems, path); err != nil {
		t.Fatalf("WriteElementsFile: %v", err)
	}
	back, err := ReadElementsFile(path)
	if err != nil {
		t.Fatalf("ReadElementsFile: %v", err)
	}
	if len(back) != len(elems) {
		t.Fatalf("got %d elements back, want %d", len(back), len(elems))
	}
	if back[0].Data.ClusterID != "0" || back[0].Data.URL == "" {
		t.Errorf("first element lost fields: %+v", back[0].Data)
	}
	if back[2].Data.Extra["color"] != "#FF6633" {
		t.Errorf("extra field lost: %+v", back[2].Data)
	}
}

func TestClusterIDRoundTrip(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"data": {"id": "x", "cluster_id": 1}}`, `"cluster_id":1`},
		{`{"data": {"id": "x", "cluster_id": "1"}}`, `"cluster_id":1`},
		{`{"data": {"id": "x", "cluster_id": "01"}}`, `"cluster_id":"01"`},
		{`{"data": {"id": "x", "cluster_id": "+1"}}`, `"cluster_id":"+1"`},
		{`{"data": {"id": "x", "cluster_id": "physics"}}`, `"cluster_id":"physics"`},
	}
	for _, tt := range tests {
		elems, err := UnmarshalElements([]byte("[" + tt.in + "]"))
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		data, err := MarshalElements(elems)
		if err != nil {
			t.Fatalf("%s: %v", tt.in, err)
		}
		if !strings.Contains(string(data), tt.want) {
			t.Errorf("%s marshalled to %s, want %s", tt.in, data, tt.want)
		}
		back, err := UnmarshalElements(data)
		if err != nil {
			t.Fatal(err)
		}
		if back[0].Data.ClusterID != elems[0].Data.ClusterID {
			t.Errorf("%s: cluster %q came back as %q", tt.in, elems[0].Data.ClusterID, back[0].Data.ClusterID)
		}
	}

	a, _ := MarshalElements([]Element{{Data: ElementData{ID: "x", ClusterID: "01"}}})
	b, _ := MarshalElements([]Element{{Data: ElementData{ID: "x", ClusterID: "1"}}})
	if string(a) == string(b) {
		t.Errorf("clusters \"01\" and \"1\" marshal identically: %s", a)
	}
}

func TestReadElementsFileMissing(t *testing.T) {
	_, err := ReadElementsFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestBuild(t *testing.T) {
	elems, _ := UnmarshalElements([]byte(sampleElements))

	t.Run("Overview", func(t *testing.T) {
		g, stats := Build(elems, BuildOptions{Mode: layout.ModeOverview, Topic: "Science"})
		if stats.Nodes != 3 || stats.Edges != 2 || stats.DroppedEdges != 1 || stats.Unrecognized != 1 {
			t.Errorf("stats = %+v", stats)
		}
		if stats.FocalMatches != 0 {
			t.Error("overview builds never flag a focal node")
		}
		n, _ := g.Node("Science")
		if n.Size != 25 || n.Focal {
			t.Errorf("Science size=%v focal=%v, want 25 and false", n.Size, n.Focal)
		}
		answer, _ := g.Node("42")
		if answer.Size != 4 {
			t.Errorf("default-sized node size = %v, want 4", answer.Size)
		}
		if g.Attrs("Science")[AttrURL] == nil {
			t.Error("url not copied to attributes")
		}
		if g.Attrs("42")["color"] != "#FF6633" {
			t.Error("extra fields not copied to attributes")
		}
	})

	t.Run("Detail", func(t *testing.T) {
		g, stats := Build(elems, BuildOptions{Mode: layout.ModeDetail, Topic: "Science"})
		if stats.FocalMatches != 1 {
			t.Errorf("FocalMatches = %d, want 1", stats.FocalMatches)
		}
		n, _ := g.Node("Science")
		if n.Size != 75 || !n.Focal {
			t.Errorf("Science size=%v focal=%v, want 75 and true", n.Size, n.Focal)
		}
	})
}

func TestBuildEdgeCases(t *testing.T) {
	elems := []Element{
		EdgeElement("a", "b"), // edges before their nodes are still accepted
		NodeElement("a", "A", "0", 10),
		NodeElement("b", "B", "0", 10),
		NodeElement("a", "dup", "1", 10),
		EdgeElement("a", "b"),
		EdgeElement("b", "a"),
		EdgeElement("a", "a"),
	}
	g, stats := Build(elems, BuildOptions{Mode: layout.ModeOverview})

	if stats.DuplicateNodes != 1 || stats.DroppedEdges != 1 || stats.SelfLoops != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2 (a→b and b→a)", g.EdgeCount())
	}
	if n, _ := g.Node("a"); n.Label != "A" {
		t.Errorf("duplicate node replaced the first: label %q", n.Label)
	}
}

func TestBuildUnlabelledNodeUsesID(t *testing.T) {
	elems := []Element{
		NodeElement("Go", "", "0", 10),
		NodeElement("Rust", "Rust", "0", 10),
		EdgeElement("Go", "Rust"),
	}
	g, stats := Build(elems, BuildOptions{Mode: layout.ModeDetail, Topic: "Go"})

	if stats.FocalMatches != 1 {
		t.Errorf("FocalMatches = %d, want 1", stats.FocalMatches)
	}
	n, _ := g.Node("Go")
	if n.Label != "Go" || !n.Focal {
		t.Errorf("Go label=%q focal=%v, want \"Go\" and true", n.Label, n.Focal)
	}
	if f, ok := g.FindByLabel("Go"); !ok || f.ID != "Go" {
		t.Errorf("FindByLabel(Go) = %v, %v", f, ok)
	}
}

func TestSelectTop(t *testing.T) {
	elems := []Element{
		NodeElement("small", "", "0", 10),
		NodeElement("big", "", "0", 100),
		NodeElement("mid", "", "0", 50),
		NodeElement("nosize", "", "0", 0),
		EdgeElement("big", "mid"),
		EdgeElement("big", "small"),
	}

	got := SelectTop(elems, 2)
	var ids []string
	for _, e := range got {
		if e.IsNode() {
			ids = append(ids, string(e.Data.ID))
		}
	}
	if strings.Join(ids, ",") != "big,mid" {
		t.Errorf("kept nodes %v, want [big mid] in input order", ids)
	}
	if len(got) != 3 {
		t.Errorf("got %d elements, want 2 nodes and 1 edge", len(got))
	}
	if len(SelectTop(elems, 0)) != len(elems) {
		t.Error("n=0 must keep everything")
	}
}

func TestEgo(t *testing.T) {
	elems := []Element{
		NodeElement("Go", "", "0", 10),
		NodeElement("C", "", "0", 10),
		NodeElement("Plan 9", "", "1", 10),
		NodeElement("Rust", "", "2", 10),
		EdgeElement("Go", "C"),
		EdgeElement("Plan 9", "Go"),
		EdgeElement("C", "Plan 9"),
		EdgeElement("Rust", "C"),
	}

	got := Ego(elems, "Go")
	nodes, edges := 0, 0
	for _, e := range got {
		if e.IsNode() {
			nodes++
			if e.Data.ID == "Rust" {
				t.Error("Rust is not adjacent to Go")
			}
		} else {
			edges++
		}
	}
	if nodes != 3 || edges != 3 {
		t.Errorf("got %d nodes and %d edges, want 3 and 3", nodes, edges)
	}
	if Ego(elems, "Haskell") != nil {
		t.Error("unknown center should yield nil")
	}
}

func TestSizeFromInDegree(t *testing.T) {
	elems := []Element{
		NodeElement("hub", "", "0", 1),
		NodeElement("a", "", "0", 1),
		NodeElement("b", "", "0", 1),
		EdgeElement("a", "hub"),
		EdgeElement("b", "hub"),
		EdgeElement("hub", "a"),
		EdgeElement("ghost", "b"),
	}

	got := SizeFromInDegree(elems)
	want := map[string]float64{"hub": 150, "a": 80, "b": 10}
	for _, e := range got {
		if !e.IsNode() {
			continue
		}
		if *e.Data.Size != want[string(e.Data.ID)] {
			t.Errorf("%s size = %v, want %v", e.Data.ID, *e.Data.Size, want[string(e.Data.ID)])
		}
	}
	if *elems[0].Data.Size != 1 {
		t.Error("input slice was modified")
	}
}
