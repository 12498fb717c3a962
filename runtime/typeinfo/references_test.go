package typeinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(any, []any) (any, error) { return nil, nil }

// newGraphRegistry registers:
//
//	graph.Node  --property-->  graph.Node (self)
//	graph.Edge  --property-->  graph.Node
//	graph.Graph --return-->    graph.Edge, --parameter--> graph.Node
//	graph.A <-> graph.B
func newGraphRegistry(t *testing.T) *Registry {
	r := NewRegistry()
	builders := []*TypeBuilder{
		NewBuilder("graph", "Node").
			Property("Next", "*graph.Node", func(any) (any, error) { return nil, nil }, nil),
		NewBuilder("graph", "Edge").
			Property("From", "*Node", func(any) (any, error) { return nil, nil }, nil).
			Property("To", "*Node", func(any) (any, error) { return nil, nil }, nil),
		NewBuilder("graph", "Graph").
			Constructor([]ParameterDescriptor{Param("root", "graph.Node")}, func([]any) (any, error) { return 1, nil }).
			Method("Edges", "[]graph.Edge", nil, noop).
			Method("Lookup", "(map[string]*Node, error)", []ParameterDescriptor{Param("key", "string")}, noop),
		NewBuilder("graph", "A").Method("ToB", "graph.B", nil, noop),
		NewBuilder("graph", "B").Method("ToA", "", []ParameterDescriptor{Param("a", "A")}, noop),
	}
	for _, b := range builders {
		_, err := r.Register(b.ID(), b.Build)
		require.NoError(t, err)
	}
	return r
}

func TestBuildReferenceGraph(t *testing.T) {
	r := newGraphRegistry(t)

	g := BuildReferenceGraph(r)
	assert.Equal(t, []TypeID{"graph.Node", "graph.Edge", "graph.Graph", "graph.A", "graph.B"}, g.Nodes)
	assert.Contains(t, g.Edges, ReferenceEdge{From: "graph.Node", To: "graph.Node", Kind: RefProperty, Member: "Next"})
	assert.Contains(t, g.Edges, ReferenceEdge{From: "graph.Edge", To: "graph.Node", Kind: RefProperty, Member: "To"})
	assert.Contains(t, g.Edges, ReferenceEdge{From: "graph.Graph", To: "graph.Node", Kind: RefParameter, Member: "Graph"})
	assert.Contains(t, g.Edges, ReferenceEdge{From: "graph.Graph", To: "graph.Edge", Kind: RefReturn, Member: "Edges"})
	assert.Contains(t, g.Edges, ReferenceEdge{From: "graph.Graph", To: "graph.Node", Kind: RefReturn, Member: "Lookup"})
	assert.Contains(t, g.Edges, ReferenceEdge{From: "graph.B", To: "graph.A", Kind: RefParameter, Member: "ToA"})

	for _, e := range g.Edges {
		assert.NotContains(t, e.Member, GetterPrefix, "accessor methods should not add edges")
	}

	g.Nodes[0] = "mutated"
	assert.Equal(t, TypeID("graph.Node"), BuildReferenceGraph(r).Nodes[0])
}

func TestQueryReferences(t *testing.T) {
	r := newGraphRegistry(t)

	t.Run("forward unlimited", func(t *testing.T) {
		g, err := QueryReferences(r, "graph.Graph", ReferenceOptions{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []TypeID{"graph.Graph", "graph.Node", "graph.Edge"}, g.Nodes)
	})

	t.Run("depth one", func(t *testing.T) {
		g, err := QueryReferences(r, "graph.Edge", ReferenceOptions{Depth: 1})
		require.NoError(t, err)
		assert.Equal(t, []TypeID{"graph.Edge", "graph.Node"}, g.Nodes)
		assert.Len(t, g.Edges, 2)
	})

	t.Run("reverse", func(t *testing.T) {
		g, err := QueryReferences(r, "graph.Node", ReferenceOptions{Reverse: true, Depth: 1})
		require.NoError(t, err)
		assert.ElementsMatch(t, []TypeID{"graph.Node", "graph.Edge", "graph.Graph"}, g.Nodes)
	})

	t.Run("kind filter", func(t *testing.T) {
		g, err := QueryReferences(r, "graph.Graph", ReferenceOptions{Kinds: []ReferenceKind{RefReturn}})
		require.NoError(t, err)
		for _, e := range g.Edges {
			if e.From == "graph.Graph" {
				assert.Equal(t, RefReturn, e.Kind)
			}
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := QueryReferences(r, "graph.Missing", ReferenceOptions{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDetectCycles(t *testing.T) {
	r := newGraphRegistry(t)

	cycles := DetectCycles(r)
	assert.Equal(t, [][]TypeID{
		{"graph.A", "graph.B"},
		{"graph.Node"},
	}, cycles)
}

func TestDetectCycles_None(t *testing.T) {
	assert.Empty(t, DetectCycles(newFixtureRegistry(t)))
}

func TestReferenceGraph_CacheInvalidation(t *testing.T) {
	r := newGraphRegistry(t)
	require.Len(t, DetectCycles(r), 2)

	b := NewBuilder("graph", "C").Method("Self", "graph.C", nil, noop)
	_, err := r.Register(b.ID(), b.Build)
	require.NoError(t, err)

	assert.Len(t, DetectCycles(r), 3)
}

func TestReferencedNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"*sample.Point", []string{"sample.Point"}},
		{"[]Point", []string{"Point"}},
		{"map[string]*sample.Point", []string{"string", "sample.Point"}},
		{"...int", []string{"int"}},
		{"chan Event", []string{"Event"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, referencedNames(tt.in), tt.in)
	}
}
