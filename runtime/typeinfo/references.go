package typeinfo

import (
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ReferenceKind says where a type refers to another.
type ReferenceKind string

const (
	RefProperty  ReferenceKind = "property"
	RefParameter ReferenceKind = "parameter"
	RefReturn    ReferenceKind = "return"
)

// ReferenceEdge records that From names To in one of its members.
type ReferenceEdge struct {
	From   TypeID        `json:"from" yaml:"from"`
	To     TypeID        `json:"to" yaml:"to"`
	Kind   ReferenceKind `json:"kind" yaml:"kind"`
	Member string        `json:"member" yaml:"member"`
}

// ReferenceGraph connects registered types through their member signatures.
type ReferenceGraph struct {
	Nodes []TypeID        `json:"nodes" yaml:"nodes"`
	Edges []ReferenceEdge `json:"edges" yaml:"edges"`
}

// ReferenceOptions configures reference queries
type ReferenceOptions struct {
	Depth   int             // Maximum traversal depth (0 = unlimited)
	Reverse bool            // Find the types referring to the start type instead
	Kinds   []ReferenceKind // Only follow these edge kinds (empty = all)
}

// BuildReferenceGraph returns the reference graph of every type registered in r.
func BuildReferenceGraph(r *Registry) *ReferenceGraph {
	return r.referenceGraph().clone()
}

// QueryReferences extracts the part of the reference graph reachable from id.
func QueryReferences(r *Registry, id TypeID, opts ReferenceOptions) (*ReferenceGraph, error) {
	if _, err := r.Describe(id); err != nil {
		return nil, err
	}
	return extractSubgraph(r.referenceGraph(), id, opts), nil
}

// referenceGraph returns the cached full graph. Callers must not modify it.
func (r *Registry) referenceGraph() *ReferenceGraph {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if g, ok := r.getCached("refs").(*ReferenceGraph); ok {
		return g
	}

	g := &ReferenceGraph{Nodes: make([]TypeID, len(r.order)), Edges: make([]ReferenceEdge, 0)}
	copy(g.Nodes, r.order)
	for _, id := range r.order {
		d := r.types[id]
		resolve := func(typeName string) (TypeID, bool) {
			for _, candidate := range referencedNames(typeName) {
				if _, ok := r.types[TypeID(candidate)]; ok {
					return TypeID(candidate), true
				}
				if scoped := NewTypeID(d.namespace, candidate); scoped != TypeID(candidate) {
					if _, ok := r.types[scoped]; ok {
						return scoped, true
					}
				}
			}
			return "", false
		}
		add := func(typeName string, kind ReferenceKind, member string) {
			if to, ok := resolve(typeName); ok {
				g.Edges = append(g.Edges, ReferenceEdge{From: id, To: to, Kind: kind, Member: member})
			}
		}

		for _, p := range d.properties {
			add(p.Type, RefProperty, p.Name)
		}
		for _, c := range d.constructors {
			for _, p := range c.Parameters {
				add(p.Type, RefParameter, d.name)
			}
		}
		for _, m := range d.methods {
			if m.Special {
				continue
			}
			for _, p := range m.Parameters {
				add(p.Type, RefParameter, m.Name)
			}
			for _, ret := range splitResultTypes(m.ReturnType) {
				add(ret, RefReturn, m.Name)
			}
		}
	}

	r.setCached("refs", g)
	return g
}

var typeWordPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)?(?:\[[^\]]*\])?`)

// referencedNames lists the candidate type names inside a type expression
// such as "*sample.Point", "[]Point" or "map[string]*sample.Point".
func referencedNames(typeName string) []string {
	s := strings.TrimPrefix(typeName, "...")
	var names []string
	for _, m := range typeWordPattern.FindAllString(s, -1) {
		base, inner, bracketed := strings.Cut(m, "[")
		switch base {
		case "map", "chan", "func":
			if bracketed {
				names = append(names, referencedNames(strings.TrimSuffix(inner, "]"))...)
			}
			continue
		}
		names = append(names, m)
	}
	return names
}

func splitResultTypes(ret string) []string {
	ret = strings.TrimSuffix(strings.TrimPrefix(ret, "("), ")")
	if ret == "" {
		return nil
	}
	parts := strings.Split(ret, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// extractSubgraph extracts a subgraph using BFS traversal
func extractSubgraph(full *ReferenceGraph, start TypeID, opts ReferenceOptions) *ReferenceGraph {
	result := &ReferenceGraph{Nodes: []TypeID{start}, Edges: make([]ReferenceEdge, 0)}

	kinds := make(map[ReferenceKind]bool, len(opts.Kinds))
	for _, k := range opts.Kinds {
		kinds[k] = true
	}

	visited := map[TypeID]bool{start: true}
	queue := []depthNode{{id: start, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, edge := range full.Edges {
			if opts.Reverse && edge.To != current.id || !opts.Reverse && edge.From != current.id {
				continue
			}
			if len(kinds) > 0 && !kinds[edge.Kind] {
				continue
			}
			result.Edges = append(result.Edges, edge)

			next := edge.To
			if opts.Reverse {
				next = edge.From
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			result.Nodes = append(result.Nodes, next)

			// Check depth limit for next level before queuing
			if opts.Depth == 0 || current.depth+1 < opts.Depth {
				queue = append(queue, depthNode{id: next, depth: current.depth + 1})
			}
		}
	}

	return result
}

// depthNode tracks a node and its depth during traversal
type depthNode struct {
	id    TypeID
	depth int
}

// Cycles returns the elementary reference cycles of the graph. Each cycle
// starts at its lexicographically smallest member; a type referring to
// itself is a one-element cycle.
func (g *ReferenceGraph) Cycles() [][]TypeID {
	index := make(map[TypeID]int64, len(g.Nodes))
	dg := simple.NewDirectedGraph()
	for i, id := range g.Nodes {
		index[id] = int64(i)
		dg.AddNode(simple.Node(i))
	}

	var cycles [][]TypeID
	self := make(map[TypeID]bool)
	for _, e := range g.Edges {
		from, okFrom := index[e.From]
		to, okTo := index[e.To]
		if !okFrom || !okTo {
			continue
		}
		if from == to {
			if !self[e.From] {
				self[e.From] = true
				cycles = append(cycles, []TypeID{e.From})
			}
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(from), simple.Node(to)))
	}

	for _, c := range topo.DirectedCyclesIn(dg) {
		if len(c) > 1 && c[0].ID() == c[len(c)-1].ID() {
			c = c[:len(c)-1]
		}
		cycle := make([]TypeID, len(c))
		for i, n := range c {
			cycle[i] = g.Nodes[n.ID()]
		}
		cycles = append(cycles, rotateToMin(cycle))
	}

	sort.Slice(cycles, func(i, j int) bool {
		return joinIDs(cycles[i]) < joinIDs(cycles[j])
	})
	return cycles
}

// DetectCycles reports the reference cycles among all types registered in r.
func DetectCycles(r *Registry) [][]TypeID {
	return r.referenceGraph().Cycles()
}

func rotateToMin(cycle []TypeID) []TypeID {
	minAt := 0
	for i, id := range cycle {
		if id < cycle[minAt] {
			minAt = i
		}
	}
	out := make([]TypeID, 0, len(cycle))
	out = append(out, cycle[minAt:]...)
	return append(out, cycle[:minAt]...)
}

func joinIDs(ids []TypeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " -> ")
}

func (g *ReferenceGraph) clone() *ReferenceGraph {
	out := &ReferenceGraph{
		Nodes: make([]TypeID, len(g.Nodes)),
		Edges: make([]ReferenceEdge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}
