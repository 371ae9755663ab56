package bundler

import (
	"github.com/piyush168713/parcel/internal/graph"
)

// IdealPlan is the planner's output: the bundle graph, the
// dependency/bundle associations, and the auxiliary indexes the host
// needs to materialize its own bundle graph. The plan is frozen; the
// planner performs no further mutation after export.
type IdealPlan struct {
	// Bundles is the bundle graph; edges express "loaded together
	// with".
	Bundles *graph.Graph[*Bundle]

	// DependencyBundles relates input dependencies to bundles, edges
	// labeled with the dependency priority.
	DependencyBundles *graph.ContentGraph[DependencyBundleNode]

	// BundleGroupBundleIDs lists the bundle-group root bundles in
	// creation order.
	BundleGroupBundleIDs []graph.NodeID

	// EntryBundleIDs lists the entry bundles in discovery order.
	EntryBundleIDs []graph.NodeID

	// BundleRoots maps a root asset id to its bundle and group.
	BundleRoots map[string]RootInfo

	// AssetReferences maps a split asset id to the dependencies that
	// referenced it, with the bundle each reference resolves to.
	AssetReferences map[string][]AssetReference
}

// PlanStats summarizes a plan.
type PlanStats struct {
	// BundleCount is the number of bundles in the final plan.
	BundleCount int

	// SharedCount is the number of shared bundles among them.
	SharedCount int

	// TotalSize is the byte sum over all bundles.
	TotalSize uint64
}

// Stats computes summary statistics over the plan's bundles.
func (p *IdealPlan) Stats() PlanStats {
	var stats PlanStats
	p.Bundles.ForEach(func(_ graph.NodeID, b *Bundle) bool {
		stats.BundleCount++
		if b.IsShared() {
			stats.SharedCount++
		}
		stats.TotalSize += b.Size
		return true
	})
	return stats
}

// BundleFor returns the bundle rooted at the given asset id.
func (p *IdealPlan) BundleFor(assetID string) (*Bundle, bool) {
	info, exists := p.BundleRoots[assetID]
	if !exists {
		return nil, false
	}
	return p.Bundles.Node(info.BundleID)
}

// SharedBundles returns the plan's shared bundles in node order.
func (p *IdealPlan) SharedBundles() []*Bundle {
	var out []*Bundle
	p.Bundles.ForEach(func(_ graph.NodeID, b *Bundle) bool {
		if b.IsShared() {
			out = append(out, b)
		}
		return true
	})
	return out
}

// export runs phase 6: freeze the planner state into an IdealPlan.
func (p *planner) export() *IdealPlan {
	groups := make([]graph.NodeID, 0, len(p.groupIDs))
	for _, id := range p.groupIDs {
		if _, exists := p.bundle(id); exists {
			groups = append(groups, id)
		}
	}

	entryIDs := make([]graph.NodeID, 0, len(p.entries))
	seen := make(map[graph.NodeID]struct{}, len(p.entries))
	for _, pair := range p.entries {
		info, exists := p.bundleRoots[pair.asset.ID]
		if !exists {
			continue
		}
		if _, dup := seen[info.BundleID]; dup {
			continue
		}
		seen[info.BundleID] = struct{}{}
		entryIDs = append(entryIDs, info.BundleID)
	}

	roots := make(map[string]RootInfo, len(p.bundleRoots))
	for assetID, info := range p.bundleRoots {
		if _, exists := p.bundle(info.BundleID); exists {
			roots[assetID] = info
		}
	}

	refs := make(map[string][]AssetReference, len(p.assetRefs))
	for assetID, list := range p.assetRefs {
		refs[assetID] = append([]AssetReference(nil), list...)
	}

	return &IdealPlan{
		Bundles:              p.bundles,
		DependencyBundles:    p.depBundles,
		BundleGroupBundleIDs: groups,
		EntryBundleIDs:       entryIDs,
		BundleRoots:          roots,
		AssetReferences:      refs,
	}
}
