package graph

// NodeID identifies a node within a single graph. Ids are assigned
// sequentially and remain stable for the lifetime of the graph, even
// after removals.
type NodeID int

// EdgeLabel annotates an edge. The zero label is used when the caller
// does not care about labels.
type EdgeLabel int

type edge struct {
	to    NodeID
	label EdgeLabel
}

// Graph is a directed graph over an arena of nodes with payloads of
// type N. Nodes and edges iterate in insertion order.
type Graph[N any] struct {
	nodes   []N
	removed []bool
	out     [][]edge
	in      [][]NodeID
	edges   map[[2]NodeID]struct{}
}

// New returns an empty directed graph.
func New[N any]() *Graph[N] {
	return &Graph[N]{edges: make(map[[2]NodeID]struct{})}
}

// AddNode adds a node and returns its id.
func (g *Graph[N]) AddNode(value N) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, value)
	g.removed = append(g.removed, false)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return id
}

// Node returns the payload for id. The second result is false if the
// id is out of range or the node was removed.
func (g *Graph[N]) Node(id NodeID) (N, bool) {
	if !g.valid(id) {
		var zero N
		return zero, false
	}
	return g.nodes[id], true
}

// SetNode replaces the payload for an existing node.
func (g *Graph[N]) SetNode(id NodeID, value N) bool {
	if !g.valid(id) {
		return false
	}
	g.nodes[id] = value
	return true
}

// AddEdge adds a directed edge with the zero label. Adding an edge
// that already exists is a no-op.
func (g *Graph[N]) AddEdge(from, to NodeID) {
	g.AddLabeledEdge(from, to, 0)
}

// AddLabeledEdge adds a directed edge carrying label. The (from, to)
// pair is deduplicated regardless of label; the first label wins.
func (g *Graph[N]) AddLabeledEdge(from, to NodeID, label EdgeLabel) {
	if !g.valid(from) || !g.valid(to) {
		return
	}
	key := [2]NodeID{from, to}
	if _, exists := g.edges[key]; exists {
		return
	}
	g.edges[key] = struct{}{}
	g.out[from] = append(g.out[from], edge{to: to, label: label})
	g.in[to] = append(g.in[to], from)
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph[N]) HasEdge(from, to NodeID) bool {
	_, exists := g.edges[[2]NodeID{from, to}]
	return exists
}

// RemoveEdge removes the edge from -> to if present.
func (g *Graph[N]) RemoveEdge(from, to NodeID) {
	key := [2]NodeID{from, to}
	if _, exists := g.edges[key]; !exists {
		return
	}
	delete(g.edges, key)
	g.out[from] = removeEdgeTo(g.out[from], to)
	g.in[to] = removeID(g.in[to], from)
}

// RemoveNode removes a node and all of its incident edges. The id is
// never reused.
func (g *Graph[N]) RemoveNode(id NodeID) {
	if !g.valid(id) {
		return
	}
	for _, e := range g.out[id] {
		delete(g.edges, [2]NodeID{id, e.to})
		g.in[e.to] = removeID(g.in[e.to], id)
	}
	for _, from := range g.in[id] {
		delete(g.edges, [2]NodeID{from, id})
		g.out[from] = removeEdgeTo(g.out[from], id)
	}
	g.out[id] = nil
	g.in[id] = nil
	g.removed[id] = true
	var zero N
	g.nodes[id] = zero
}

// NodesConnectedFrom returns the targets of id's outgoing edges in
// insertion order.
func (g *Graph[N]) NodesConnectedFrom(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	ids := make([]NodeID, 0, len(g.out[id]))
	for _, e := range g.out[id] {
		ids = append(ids, e.to)
	}
	return ids
}

// NodesConnectedTo returns the sources of id's incoming edges in
// insertion order.
func (g *Graph[N]) NodesConnectedTo(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	ids := make([]NodeID, len(g.in[id]))
	copy(ids, g.in[id])
	return ids
}

// EdgeLabelFor returns the label on the edge from -> to.
func (g *Graph[N]) EdgeLabelFor(from, to NodeID) (EdgeLabel, bool) {
	if !g.valid(from) {
		return 0, false
	}
	for _, e := range g.out[from] {
		if e.to == to {
			return e.label, true
		}
	}
	return 0, false
}

// ForEach visits every live node in insertion order. Returning false
// from the visitor stops the walk.
func (g *Graph[N]) ForEach(visit func(NodeID, N) bool) {
	for i := range g.nodes {
		if g.removed[i] {
			continue
		}
		if !visit(NodeID(i), g.nodes[i]) {
			return
		}
	}
}

// Len returns the number of live nodes.
func (g *Graph[N]) Len() int {
	n := 0
	for _, r := range g.removed {
		if !r {
			n++
		}
	}
	return n
}

func (g *Graph[N]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && !g.removed[id]
}

func removeEdgeTo(edges []edge, to NodeID) []edge {
	for i, e := range edges {
		if e.to == to {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
