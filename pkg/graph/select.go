package graph

import (
	"cmp"
	"slices"

	"github.com/rohith0110/Wikipedia-Graph/pkg/core/layout"
)

// Raw size bounds used when sizing by in-degree.
const (
	BaseNodeSize = layout.DefaultRawSize
	MaxNodeSize  = layout.MaxRawSize
)

// SelectTop keeps the n largest nodes by raw size and the edges running
// between them. Ties keep input order. n <= 0 returns elems unchanged.
func SelectTop(elems []Element, n int) []Element {
	if n <= 0 {
		return elems
	}

	var nodes []Element
	for _, e := range elems {
		if e.IsNode() {
			nodes = append(nodes, e)
		}
	}
	if len(nodes) <= n {
		return elems
	}
	slices.SortStableFunc(nodes, func(a, b Element) int {
		return cmp.Compare(layout.RawSize(b.Data.Size), layout.RawSize(a.Data.Size))
	})

	keep := make(map[Ident]struct{}, n)
	for _, e := range nodes[:n] {
		keep[e.Data.ID] = struct{}{}
	}
	return induced(elems, keep)
}

// Ego keeps the node with the given ID, every node it links to or is
// linked from, and the edges among them. An unknown ID yields nil.
func Ego(elems []Element, id string) []Element {
	center := Ident(id)
	found := false
	keep := map[Ident]struct{}{center: {}}
	for _, e := range elems {
		switch {
		case e.IsNode() && e.Data.ID == center:
			found = true
		case e.IsEdge() && e.Data.Source == center:
			keep[e.Data.Target] = struct{}{}
		case e.IsEdge() && e.Data.Target == center:
			keep[e.Data.Source] = struct{}{}
		}
	}
	if !found {
		return nil
	}
	return induced(elems, keep)
}

// SizeFromInDegree overwrites every node's size with
// 10 + 140 * inDegree / maxInDegree. Edges to unknown nodes are ignored.
// The input slice is not modified.
func SizeFromInDegree(elems []Element) []Element {
	nodes := make(map[Ident]struct{})
	for _, e := range elems {
		if e.IsNode() {
			nodes[e.Data.ID] = struct{}{}
		}
	}

	in := make(map[Ident]int)
	maxIn := 0
	for _, e := range elems {
		if !e.IsEdge() {
			continue
		}
		if _, ok := nodes[e.Data.Source]; !ok {
			continue
		}
		if _, ok := nodes[e.Data.Target]; !ok {
			continue
		}
		in[e.Data.Target]++
		maxIn = max(maxIn, in[e.Data.Target])
	}
	if maxIn == 0 {
		maxIn = 1
	}

	out := make([]Element, len(elems))
	for i, e := range elems {
		if e.IsNode() {
			size := BaseNodeSize + (MaxNodeSize-BaseNodeSize)*float64(in[e.Data.ID])/float64(maxIn)
			e.Data.Size = &size
		}
		out[i] = e
	}
	return out
}

// induced returns the nodes in keep and the edges with both endpoints in
// keep, in input order.
func induced(elems []Element, keep map[Ident]struct{}) []Element {
	var out []Element
	for _, e := range elems {
		switch {
		case e.IsNode():
			if _, ok := keep[e.Data.ID]; ok {
				out = append(out, e)
			}
		case e.IsEdge():
			_, src := keep[e.Data.Source]
			_, dst := keep[e.Data.Target]
			if src && dst {
				out = append(out, e)
			}
		}
	}
	return out
}
