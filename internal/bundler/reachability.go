package bundler

import (
	"github.com/piyush168713/parcel/internal/assetgraph"
)

// computeReachability runs phase 2: for every bundle root, record the
// assets synchronously reachable from it without crossing a split
// point. Split points are recognized by their dependency having an
// entry in the dependency/bundle graph, checked before descending.
//
// When the halting dependency is lazy, the traversing root is also
// recorded as an async reacher of the child's bundle.
func (p *planner) computeReachability() {
	for _, rootID := range p.rootOrder {
		root, _ := p.input.Asset(rootID)
		rootNode := p.reachable.AddNodeByContentKey(root.ID, root)

		visited := map[string]bool{root.ID: true}
		var walk func(a *assetgraph.Asset)
		walk = func(a *assetgraph.Asset) {
			for _, dep := range p.input.OutgoingDependencies(a.ID) {
				if p.depBundles.HasContentKey(dep.ID) {
					if dep.Priority == assetgraph.PriorityLazy {
						for _, child := range p.input.DependencyAssets(dep) {
							if info, isRoot := p.bundleRoots[child.ID]; isRoot {
								p.reachableAsyncSet(info.BundleID).Add(root.ID)
							}
						}
					}
					continue
				}
				for _, child := range p.input.DependencyAssets(dep) {
					if visited[child.ID] {
						continue
					}
					visited[child.ID] = true
					childNode := p.reachable.AddNodeByContentKey(child.ID, child)
					p.reachable.AddEdge(rootNode, childNode)
					walk(child)
				}
			}
		}
		walk(root)
	}
	p.log.Debug().Int("roots", len(p.rootOrder)).Msg("synchronous reachability computed")
}

// syncAssets returns the ids of assets synchronously reachable from a
// bundle root, in discovery order.
func (p *planner) syncAssets(rootAssetID string) []string {
	node, exists := p.reachable.NodeIDByContentKey(rootAssetID)
	if !exists {
		return nil
	}
	connected := p.reachable.NodesConnectedFrom(node)
	ids := make([]string, 0, len(connected))
	for _, cid := range connected {
		asset, _ := p.reachable.Node(cid)
		ids = append(ids, asset.ID)
	}
	return ids
}

// syncReachers returns the ids of bundle roots that synchronously
// reach the asset, in discovery order.
func (p *planner) syncReachers(assetID string) []string {
	node, exists := p.reachable.NodeIDByContentKey(assetID)
	if !exists {
		return nil
	}
	connected := p.reachable.NodesConnectedTo(node)
	ids := make([]string, 0, len(connected))
	for _, rid := range connected {
		asset, _ := p.reachable.Node(rid)
		ids = append(ids, asset.ID)
	}
	return ids
}
