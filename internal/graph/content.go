package graph

// ContentGraph is a directed graph whose nodes are additionally
// addressable by a stable string content key. Re-adding a key returns
// the existing node id, which makes construction idempotent.
type ContentGraph[N any] struct {
	*Graph[N]
	byKey map[string]NodeID
	keys  []string
}

// NewContent returns an empty content-addressed graph.
func NewContent[N any]() *ContentGraph[N] {
	return &ContentGraph[N]{
		Graph: New[N](),
		byKey: make(map[string]NodeID),
	}
}

// AddNodeByContentKey adds a node under key, or returns the id already
// registered for key. The payload of an existing node is not replaced.
func (g *ContentGraph[N]) AddNodeByContentKey(key string, value N) NodeID {
	if id, exists := g.byKey[key]; exists {
		return id
	}
	id := g.AddNode(value)
	g.byKey[key] = id
	g.keys = append(g.keys, key)
	return id
}

// HasContentKey reports whether key is registered.
func (g *ContentGraph[N]) HasContentKey(key string) bool {
	_, exists := g.byKey[key]
	return exists
}

// NodeIDByContentKey returns the node id registered for key.
func (g *ContentGraph[N]) NodeIDByContentKey(key string) (NodeID, bool) {
	id, exists := g.byKey[key]
	return id, exists
}

// RemoveNodeByContentKey removes the node registered for key along
// with its incident edges, and releases the key.
func (g *ContentGraph[N]) RemoveNodeByContentKey(key string) {
	id, exists := g.byKey[key]
	if !exists {
		return
	}
	delete(g.byKey, key)
	for i, k := range g.keys {
		if k == key {
			g.keys = append(g.keys[:i], g.keys[i+1:]...)
			break
		}
	}
	g.RemoveNode(id)
}

// ContentKeys returns all registered keys in insertion order.
func (g *ContentGraph[N]) ContentKeys() []string {
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// TopoSort returns node ids such that for every edge u -> v that is
// not a back edge, u precedes v. Back edges are ignored for ordering:
// when the walk re-enters a node that is still on the current DFS
// path, the edge is skipped as if the target were already finalized.
// Roots are taken in insertion order, which also breaks cycle ties.
func (g *ContentGraph[N]) TopoSort() []NodeID {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make([]int, len(g.nodes))
	order := make([]NodeID, 0, len(g.nodes))

	var visit func(NodeID)
	visit = func(id NodeID) {
		state[id] = onPath
		for _, e := range g.out[id] {
			if g.removed[e.to] || state[e.to] != unvisited {
				continue
			}
			visit(e.to)
		}
		state[id] = done
		order = append(order, id)
	}

	for i := range g.nodes {
		if g.removed[i] || state[i] != unvisited {
			continue
		}
		visit(NodeID(i))
	}

	// Reverse the postorder.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}
