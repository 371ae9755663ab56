package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddAndConnect(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")

	g.AddEdge(a, b)
	g.AddEdge(a, c)
	g.AddEdge(b, c)

	assert.Equal(t, []NodeID{b, c}, g.NodesConnectedFrom(a))
	assert.Equal(t, []NodeID{a, b}, g.NodesConnectedTo(c))
	assert.True(t, g.HasEdge(a, b))
	assert.False(t, g.HasEdge(b, a))

	value, ok := g.Node(b)
	require.True(t, ok)
	assert.Equal(t, "b", value)
}

func TestGraphDuplicateEdgeIsNoop(t *testing.T) {
	g := New[int]()
	a := g.AddNode(1)
	b := g.AddNode(2)

	g.AddEdge(a, b)
	g.AddEdge(a, b)

	assert.Equal(t, []NodeID{b}, g.NodesConnectedFrom(a))
	assert.Equal(t, []NodeID{a}, g.NodesConnectedTo(b))
}

func TestGraphRemoveEdge(t *testing.T) {
	g := New[int]()
	a := g.AddNode(1)
	b := g.AddNode(2)
	g.AddEdge(a, b)

	g.RemoveEdge(a, b)

	assert.False(t, g.HasEdge(a, b))
	assert.Empty(t, g.NodesConnectedFrom(a))
	assert.Empty(t, g.NodesConnectedTo(b))
}

func TestGraphRemoveNodeRemovesIncidentEdges(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	g.AddEdge(a, b)
	g.AddEdge(b, c)

	g.RemoveNode(b)

	_, ok := g.Node(b)
	assert.False(t, ok)
	assert.Empty(t, g.NodesConnectedFrom(a))
	assert.Empty(t, g.NodesConnectedTo(c))
	assert.Equal(t, 2, g.Len())

	// Ids of removed nodes are not reused.
	d := g.AddNode("d")
	assert.Equal(t, NodeID(3), d)
}

func TestGraphEdgeLabels(t *testing.T) {
	g := New[string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	g.AddLabeledEdge(a, b, EdgeLabel(7))

	label, ok := g.EdgeLabelFor(a, b)
	require.True(t, ok)
	assert.Equal(t, EdgeLabel(7), label)

	_, ok = g.EdgeLabelFor(b, a)
	assert.False(t, ok)
}

func TestGraphForEachOrder(t *testing.T) {
	g := New[string]()
	g.AddNode("a")
	b := g.AddNode("b")
	g.AddNode("c")
	g.RemoveNode(b)

	var seen []string
	g.ForEach(func(_ NodeID, v string) bool {
		seen = append(seen, v)
		return true
	})
	assert.Equal(t, []string{"a", "c"}, seen)
}
