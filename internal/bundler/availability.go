package bundler

import (
	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/graph"
)

// computeAvailability runs phase 3: propagate, in topological order
// over the async bundle-root graph, the set of assets guaranteed
// already loaded whenever each bundle root loads.
//
// A child reached from multiple async parents intersects the incoming
// sets (an asset is guaranteed only if delivered along every path); a
// child with a single parent unions. Topological order makes the
// intersection monotone; back edges from dependency cycles at async
// boundaries are ignored by the sort.
func (p *planner) computeAvailability() {
	for _, nodeID := range p.asyncRoots.TopoSort() {
		if nodeID == p.asyncRootID {
			continue
		}
		rootAsset, _ := p.asyncRoots.Node(nodeID)
		p.propagateAvailability(nodeID, rootAsset)
	}
	p.log.Debug().Int("async_roots", p.asyncRoots.Len()-1).Msg("ancestor availability computed")
}

func (p *planner) propagateAvailability(nodeID graph.NodeID, rootAsset *assetgraph.Asset) {
	info := p.bundleRoots[rootAsset.ID]

	// combined(b) = sync(b) ∪ ancestorAssets[b].
	combined := newStringSet()
	for _, id := range p.syncAssets(rootAsset.ID) {
		combined.Add(id)
	}
	if anc := p.ancestors[rootAsset.ID]; anc != nil {
		combined.Union(anc)
	}

	// Collect the bundle group's members and what each contributes:
	// the member's root asset plus its synchronous closure. Reference
	// counts per (group, asset) drive duplicate detection in phase 4.
	members := p.groupMembers(info.GroupID)
	counts := p.groupRefCount[info.GroupID]
	if counts == nil {
		counts = make(map[string]int)
		p.groupRefCount[info.GroupID] = counts
	}
	contributions := make(map[graph.NodeID]*stringSet, len(members))
	for _, memberID := range members {
		member, _ := p.bundle(memberID)
		contribution := newStringSet()
		contribution.Add(member.RootAssetID)
		for _, id := range p.syncAssets(member.RootAssetID) {
			contribution.Add(id)
		}
		contributions[memberID] = contribution
		for _, id := range contribution.Values() {
			counts[id]++
		}
	}

	// Everything available once the whole group has loaded.
	available := combined.Clone()
	for _, memberID := range members {
		available.Union(contributions[memberID])
	}

	// Async children: first parent seeds, further parents intersect
	// when the child has multiple parents, union otherwise.
	for _, childNode := range p.asyncRoots.NodesConnectedFrom(nodeID) {
		child, _ := p.asyncRoots.Node(childNode)
		parents := p.asyncRoots.NodesConnectedTo(childNode)
		existing := p.ancestors[child.ID]
		switch {
		case existing == nil:
			p.ancestors[child.ID] = available.Clone()
		case len(parents) > 1:
			existing.Intersect(available)
		default:
			existing.Union(available)
		}
	}

	// Bundle-group siblings: a sibling sees the group's availability
	// minus its own contribution. Including the sibling's own assets
	// would mark them as already delivered and strip them from their
	// only owner during placement.
	for _, memberID := range members {
		if memberID == info.BundleID {
			continue
		}
		member, _ := p.bundle(memberID)
		if member.RootAssetID == "" {
			continue
		}
		siblingAvailable := combined.Clone()
		for _, otherID := range members {
			if otherID == memberID {
				continue
			}
			siblingAvailable.Union(contributions[otherID])
		}
		inEdges := p.bundles.NodesConnectedTo(memberID)
		existing := p.ancestors[member.RootAssetID]
		switch {
		case existing == nil:
			p.ancestors[member.RootAssetID] = siblingAvailable
		case len(inEdges) > 1:
			existing.Intersect(siblingAvailable)
		default:
			existing.Union(siblingAvailable)
		}
	}
}

// groupMembers returns the group's main bundle followed by its sibling
// bundles, excluding isolated and inline bundles.
func (p *planner) groupMembers(groupID graph.NodeID) []graph.NodeID {
	members := make([]graph.NodeID, 0, 4)
	appendMember := func(id graph.NodeID) {
		b, exists := p.bundle(id)
		if !exists {
			return
		}
		if b.Behavior == assetgraph.BehaviorIsolated || b.Behavior == assetgraph.BehaviorInline {
			return
		}
		members = append(members, id)
	}
	appendMember(groupID)
	for _, siblingID := range p.bundles.NodesConnectedFrom(groupID) {
		appendMember(siblingID)
	}
	return members
}
