package bundler

import (
	"sort"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/graph"
)

// mergeAndCleanup runs phase 5: fold undersized shared bundles back
// into their sources, enforce the per-group parallel request limit,
// fold entry siblings, and drop orphaned async bundles.
func (p *planner) mergeAndCleanup() {
	merged := p.mergeSmallShared()
	p.enforceParallelLimit()
	p.foldEntrySiblings()
	dropped := p.dropOrphans()
	p.log.Debug().Int("merged_shared", merged).Int("dropped_orphans", dropped).Msg("merge and cleanup complete")
}

// mergeSmallShared removes every shared bundle smaller than the
// configured minimum, copying its assets into each source bundle.
func (p *planner) mergeSmallShared() int {
	var small []graph.NodeID
	p.bundles.ForEach(func(id graph.NodeID, b *Bundle) bool {
		if b.IsShared() && b.Size < uint64(p.cfg.MinBundleSize) {
			small = append(small, id)
		}
		return true
	})
	for _, id := range small {
		b, _ := p.bundle(id)
		for _, source := range b.SourceBundles {
			sb, exists := p.bundle(source)
			if !exists {
				continue
			}
			for _, asset := range b.Assets {
				sb.AddAsset(asset)
			}
		}
		p.removeBundle(id)
	}
	return len(small)
}

// enforceParallelLimit sheds the smallest shared bundles from every
// bundle group whose bundle count exceeds maxParallelRequests,
// folding their assets back into the group's source bundles.
func (p *planner) enforceParallelLimit() {
	for _, groupID := range p.groupIDs {
		if _, exists := p.bundle(groupID); !exists {
			continue
		}
		members, sharedIDs := p.groupBundles(groupID)
		total := len(members) + len(sharedIDs)
		if total <= p.cfg.MaxParallelRequests {
			continue
		}

		// Smallest first; node id breaks ties deterministically.
		sort.Slice(sharedIDs, func(i, j int) bool {
			a, _ := p.bundle(sharedIDs[i])
			b, _ := p.bundle(sharedIDs[j])
			if a.Size != b.Size {
				return a.Size < b.Size
			}
			return sharedIDs[i] < sharedIDs[j]
		})

		memberSet := make(map[graph.NodeID]struct{}, len(members))
		for _, id := range members {
			memberSet[id] = struct{}{}
		}

		for _, sharedID := range sharedIDs {
			if total <= p.cfg.MaxParallelRequests {
				break
			}
			sb, exists := p.bundle(sharedID)
			if !exists {
				continue
			}
			remaining := sb.SourceBundles[:0]
			for _, source := range sb.SourceBundles {
				if _, inGroup := memberSet[source]; !inGroup {
					remaining = append(remaining, source)
					continue
				}
				owner, ownerExists := p.bundle(source)
				if ownerExists {
					for _, asset := range sb.Assets {
						owner.AddAsset(asset)
					}
				}
				p.bundles.RemoveEdge(source, sharedID)
			}
			sb.SourceBundles = remaining
			if len(sb.SourceBundles) == 1 {
				p.dissolveShared(sharedID, sb.SourceBundles[0])
			} else if len(sb.SourceBundles) == 0 {
				p.removeBundle(sharedID)
			}
			total--
		}
	}
}

// groupBundles returns the group's member bundles (main plus siblings)
// and the shared bundles attached to any member.
func (p *planner) groupBundles(groupID graph.NodeID) (members, shared []graph.NodeID) {
	seen := make(map[graph.NodeID]struct{})
	add := func(id graph.NodeID, isShared bool) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		if isShared {
			shared = append(shared, id)
		} else {
			members = append(members, id)
		}
	}

	add(groupID, false)
	for _, id := range p.bundles.NodesConnectedFrom(groupID) {
		b, exists := p.bundle(id)
		if !exists {
			continue
		}
		add(id, b.IsShared())
	}
	for _, memberID := range append([]graph.NodeID(nil), members...) {
		for _, id := range p.bundles.NodesConnectedFrom(memberID) {
			b, exists := p.bundle(id)
			if !exists || !b.IsShared() {
				continue
			}
			add(id, true)
		}
	}
	return members, shared
}

// foldEntrySiblings absorbs same-type async siblings back into entry
// bundles. Entry output names must be deterministic; unpredictable
// siblings break stable naming. Shared bundles keep their identity and
// stay attached.
func (p *planner) foldEntrySiblings() {
	for _, pair := range p.entries {
		info, exists := p.bundleRoots[pair.asset.ID]
		if !exists {
			continue
		}
		entry, exists := p.bundle(info.BundleID)
		if !exists {
			continue
		}
		for _, siblingID := range p.bundles.NodesConnectedFrom(info.BundleID) {
			sibling, exists := p.bundle(siblingID)
			if !exists || sibling.IsShared() || sibling.RootAssetID == "" {
				continue
			}
			if sibling.Type != entry.Type {
				continue
			}
			if sibling.Behavior != assetgraph.BehaviorNone {
				continue
			}
			for _, asset := range sibling.Assets {
				entry.AddAsset(asset)
			}
			p.bundles.RemoveEdge(info.BundleID, siblingID)
			if set := p.reachableAsync[siblingID]; set != nil {
				set.Remove(pair.asset.ID)
			}
		}
	}
}

// dropOrphans removes lazily imported bundle roots that no root can
// lazily reach anymore, because every async import of them was
// internalized or folded into an entry. Entries and roots never
// referenced by a lazy dependency (such as isolated bundles reached
// through sync imports) are always kept.
func (p *planner) dropOrphans() int {
	entrySet := make(map[string]struct{}, len(p.entries))
	for _, pair := range p.entries {
		entrySet[pair.asset.ID] = struct{}{}
	}

	dropped := 0
	for _, key := range p.asyncRoots.ContentKeys() {
		if key == asyncGraphRootKey {
			continue
		}
		if _, isEntry := entrySet[key]; isEntry {
			continue
		}
		if !p.lazyRoots[key] {
			continue
		}
		info, exists := p.bundleRoots[key]
		if !exists {
			continue
		}
		if _, live := p.bundle(info.BundleID); !live {
			continue
		}
		set := p.reachableAsync[info.BundleID]
		if set != nil && set.Len() > 0 {
			continue
		}
		p.removeBundle(info.BundleID)
		delete(p.bundleRoots, key)
		dropped++
	}
	return dropped
}

// dissolveShared folds a shared bundle left with a single source into
// that source.
func (p *planner) dissolveShared(sharedID, sourceID graph.NodeID) {
	sb, exists := p.bundle(sharedID)
	if !exists {
		return
	}
	if owner, ownerExists := p.bundle(sourceID); ownerExists {
		for _, asset := range sb.Assets {
			owner.AddAsset(asset)
		}
	}
	p.removeBundle(sharedID)
}

// removeBundle removes a bundle node and all bookkeeping referring to
// it.
func (p *planner) removeBundle(id graph.NodeID) {
	p.bundles.RemoveNode(id)
	delete(p.reachableAsync, id)
	p.depBundles.RemoveNodeByContentKey(bundleContentKey(id))
	for key, sharedID := range p.sharedByKey {
		if sharedID == id {
			delete(p.sharedByKey, key)
		}
	}
}
