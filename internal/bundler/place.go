package bundler

import (
	"sort"
	"strings"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/graph"
)

// place runs phase 4: assign every asset to its owning bundle or a
// synthesized shared bundle, and record async internalizations.
// Assets iterate in phase-1 discovery order.
func (p *planner) place() error {
	shared := 0
	for _, asset := range p.discovery {
		reachers := p.syncReachers(asset.ID)

		// Drop reachers to which the asset is already delivered by an
		// ancestor, then reachers whose bundle group carries the asset
		// in more than one bundle (it belongs upstream, not here).
		filtered := make([]string, 0, len(reachers))
		for _, rootID := range reachers {
			if anc := p.ancestors[rootID]; anc != nil && anc.Has(asset.ID) {
				continue
			}
			groupID := p.bundleRoots[rootID].GroupID
			if p.groupRefCount[groupID][asset.ID] > 1 {
				continue
			}
			filtered = append(filtered, rootID)
		}

		if info, isRoot := p.bundleRoots[asset.ID]; isRoot {
			if err := p.placeBundleRoot(asset, info, reachers, filtered); err != nil {
				return err
			}
			continue
		}

		switch len(filtered) {
		case 0:
			// No owner: unreachable, or fully delivered elsewhere.
		case 1:
			owner, _ := p.bundle(p.bundleRoots[filtered[0]].BundleID)
			owner.AddAsset(asset)
		default:
			if p.addToSharedBundle(asset, filtered) {
				shared++
			}
		}
	}
	p.log.Debug().Int("shared_bundles", shared).Msg("placement complete")
	return nil
}

// placeBundleRoot connects a root's bundle into every bundle group
// that statically reaches it, then internalizes the corresponding
// async imports where the target is guaranteed loaded anyway.
//
// TODO: emit reference edges from a group's main bundle to its
// same-group siblings once the downstream writer can consume them.
func (p *planner) placeBundleRoot(asset *assetgraph.Asset, info RootInfo, reachers, filtered []string) error {
	for _, rootID := range filtered {
		reacher, exists := p.bundleRoots[rootID]
		if !exists {
			return invariantf("bundle root missing for reacher %q", rootID)
		}
		p.bundles.AddEdge(reacher.GroupID, info.BundleID)
	}

	asyncReachers, exists := p.reachableAsync[info.BundleID]
	if !exists {
		return nil
	}
	// Snapshot: internalization removes members while iterating.
	for _, rootID := range append([]string(nil), asyncReachers.Values()...) {
		if !p.guaranteedAt(rootID, asset.ID, reachers) {
			continue
		}
		reacher, exists := p.bundleRoots[rootID]
		if !exists {
			return invariantf("bundle root missing for async reacher %q", rootID)
		}
		rb, _ := p.bundle(reacher.BundleID)
		rb.InternalizedAssetIDs = append(rb.InternalizedAssetIDs, asset.ID)
		asyncReachers.Remove(rootID)
	}
	return nil
}

// guaranteedAt reports whether the asset is statically guaranteed
// loaded whenever rootID's bundle is: the root is the asset itself,
// reaches it synchronously, or has it among its ancestor assets.
func (p *planner) guaranteedAt(rootID, assetID string, reachers []string) bool {
	if rootID == assetID {
		return true
	}
	for _, r := range reachers {
		if r == rootID {
			return true
		}
	}
	if anc := p.ancestors[rootID]; anc != nil && anc.Has(assetID) {
		return true
	}
	return false
}

// addToSharedBundle places an asset reachable from multiple roots into
// the shared bundle keyed by that combination of roots, creating the
// bundle on first use. Reports whether a bundle was created.
func (p *planner) addToSharedBundle(asset *assetgraph.Asset, reachers []string) bool {
	sorted := append([]string(nil), reachers...)
	sort.Strings(sorted)
	key := strings.Join(sorted, ",")

	created := false
	sharedID, exists := p.sharedByKey[key]
	if !exists {
		sources := make([]graph.NodeID, 0, len(reachers))
		for _, rootID := range reachers {
			sources = append(sources, p.bundleRoots[rootID].BundleID)
		}
		first, _ := p.bundle(sources[0])
		sb := &Bundle{
			Assets:        make(map[string]*assetgraph.Asset),
			SourceBundles: sources,
			Type:          asset.Type,
			Env:           asset.Env,
			Target:        first.Target,
		}
		sharedID = p.bundles.AddNode(sb)
		p.sharedByKey[key] = sharedID
		for _, source := range sources {
			p.bundles.AddEdge(source, sharedID)
		}
		created = true
	}
	sb, _ := p.bundle(sharedID)
	sb.AddAsset(asset)
	return created
}
