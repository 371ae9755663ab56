package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentGraphIdempotentAdd(t *testing.T) {
	g := NewContent[string]()
	a := g.AddNodeByContentKey("a", "first")
	again := g.AddNodeByContentKey("a", "second")

	assert.Equal(t, a, again)
	value, ok := g.Node(a)
	require.True(t, ok)
	assert.Equal(t, "first", value, "existing payload must not be replaced")

	assert.True(t, g.HasContentKey("a"))
	assert.False(t, g.HasContentKey("b"))

	id, ok := g.NodeIDByContentKey("a")
	require.True(t, ok)
	assert.Equal(t, a, id)
}

func TestContentGraphRemoveByKey(t *testing.T) {
	g := NewContent[string]()
	a := g.AddNodeByContentKey("a", "a")
	b := g.AddNodeByContentKey("b", "b")
	g.AddEdge(a, b)

	g.RemoveNodeByContentKey("b")

	assert.False(t, g.HasContentKey("b"))
	assert.Empty(t, g.NodesConnectedFrom(a))
	assert.Equal(t, []string{"a"}, g.ContentKeys())
}

func TestTopoSortOrdersEdges(t *testing.T) {
	g := NewContent[string]()
	a := g.AddNodeByContentKey("a", "a")
	b := g.AddNodeByContentKey("b", "b")
	c := g.AddNodeByContentKey("c", "c")
	d := g.AddNodeByContentKey("d", "d")
	g.AddEdge(a, b)
	g.AddEdge(a, c)
	g.AddEdge(b, d)
	g.AddEdge(c, d)

	order := g.TopoSort()
	require.Len(t, order, 4)

	pos := make(map[NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos[a], pos[b])
	assert.Less(t, pos[a], pos[c])
	assert.Less(t, pos[b], pos[d])
	assert.Less(t, pos[c], pos[d])
}

func TestTopoSortIgnoresBackEdges(t *testing.T) {
	// a -> b -> c with a cycle edge c -> a. The back edge is ignored
	// and insertion order breaks the tie.
	g := NewContent[string]()
	a := g.AddNodeByContentKey("a", "a")
	b := g.AddNodeByContentKey("b", "b")
	c := g.AddNodeByContentKey("c", "c")
	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(c, a)

	order := g.TopoSort()
	require.Equal(t, []NodeID{a, b, c}, order)
}

func TestTopoSortCoversDisconnectedNodes(t *testing.T) {
	g := NewContent[string]()
	a := g.AddNodeByContentKey("a", "a")
	b := g.AddNodeByContentKey("b", "b")
	lone := g.AddNodeByContentKey("lone", "lone")
	g.AddEdge(a, b)

	order := g.TopoSort()
	assert.ElementsMatch(t, []NodeID{a, b, lone}, order)
}
