package bundler

import (
	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/graph"
)

// frame is one entry of the split-pass ancestor stack: a bundle root
// currently being descended through, with its bundle group.
type frame struct {
	asset   *assetgraph.Asset
	groupID graph.NodeID
}

// discover runs phase 1: the entry pass creates a bundle per entry
// dependency, then the split pass walks the graph creating bundles at
// async boundaries, type changes, and isolation boundaries.
func (p *planner) discover() error {
	if err := p.collectEntries(); err != nil {
		return err
	}
	return p.splitPass()
}

// collectEntries walks the input graph collecting (asset, dependency)
// pairs where the dependency is an entry, without descending into the
// entries' children, and creates a bundle per entry.
func (p *planner) collectEntries() error {
	var pairs []entryPair
	visited := make(map[string]bool)

	var visit func(a *assetgraph.Asset) error
	visit = func(a *assetgraph.Asset) error {
		if visited[a.ID] {
			return nil
		}
		visited[a.ID] = true
		for _, dep := range p.input.OutgoingDependencies(a.ID) {
			if dep.IsEntry {
				target, err := p.entryAsset(dep)
				if err != nil {
					return err
				}
				pairs = append(pairs, entryPair{asset: target, dep: dep})
				continue
			}
			for _, child := range p.input.DependencyAssets(dep) {
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, dep := range p.input.RootDependencies() {
		if dep.IsEntry {
			target, err := p.entryAsset(dep)
			if err != nil {
				return err
			}
			pairs = append(pairs, entryPair{asset: target, dep: dep})
			continue
		}
		for _, child := range p.input.DependencyAssets(dep) {
			if err := visit(child); err != nil {
				return err
			}
		}
	}

	for _, pair := range pairs {
		p.createEntryBundle(pair)
	}
	return nil
}

// entryAsset resolves an entry dependency to its single asset.
func (p *planner) entryAsset(dep *assetgraph.Dependency) (*assetgraph.Asset, error) {
	assets := p.input.DependencyAssets(dep)
	if len(assets) != 1 {
		return nil, invariantf("entry dependency %q resolves to %d assets, want exactly 1", dep.ID, len(assets))
	}
	return assets[0], nil
}

// createEntryBundle creates the bundle and bundle group for an entry,
// or reuses the existing bundle when two entry dependencies point at
// the same asset.
func (p *planner) createEntryBundle(pair entryPair) {
	asset, dep := pair.asset, pair.dep
	info, exists := p.bundleRoots[asset.ID]
	if !exists {
		b := &Bundle{
			RootAssetID:     asset.ID,
			Assets:          map[string]*assetgraph.Asset{asset.ID: asset},
			Size:            asset.Size,
			Type:            asset.Type,
			Env:             asset.Env,
			Target:          dep.Target,
			NeedsStableName: dep.IsEntry,
		}
		id := p.bundles.AddNode(b)
		info = RootInfo{BundleID: id, GroupID: id}
		p.registerRoot(asset.ID, info)
		p.registerGroup(id)

		nodeID := p.asyncRoots.AddNodeByContentKey(asset.ID, asset)
		p.asyncRoots.AddEdge(p.asyncRootID, nodeID)
	}
	p.addDependencyBundleEdge(dep, info.BundleID, dep.Priority)
	p.entries = append(p.entries, pair)
}

// splitPass is the second phase-1 walk: a DFS from the entries with a
// stack of (ancestor, bundle group) frames, creating bundles at split
// points.
func (p *planner) splitPass() error {
	visited := make(map[string]bool)
	var stack []frame

	var visit func(a *assetgraph.Asset) error
	visit = func(a *assetgraph.Asset) error {
		info, isRoot := p.bundleRoots[a.ID]
		if isRoot {
			stack = append(stack, frame{asset: a, groupID: info.GroupID})
			defer func() { stack = stack[:len(stack)-1] }()
		}
		if visited[a.ID] {
			return nil
		}
		visited[a.ID] = true
		p.discovery = append(p.discovery, a)

		for _, dep := range p.input.OutgoingDependencies(a.ID) {
			for _, child := range p.input.DependencyAssets(dep) {
				if err := p.handleEdge(a, dep, child, stack); err != nil {
					return err
				}
				if err := visit(child); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, pair := range p.entries {
		if err := visit(pair.asset); err != nil {
			return err
		}
	}
	return nil
}

// handleEdge classifies one parent -> child edge and applies the
// matching split. Split handling runs for every edge, even when the
// child was already visited, so that reuse still records dependency
// edges and reachability updates for this ancestor chain.
func (p *planner) handleEdge(parent *assetgraph.Asset, dep *assetgraph.Dependency, child *assetgraph.Asset, stack []frame) error {
	switch {
	case dep.Priority == assetgraph.PriorityLazy || child.BundleBehavior == assetgraph.BehaviorIsolated:
		return p.asyncSplit(dep, child, stack)
	case parent.Type != child.Type || child.BundleBehavior == assetgraph.BehaviorInline:
		return p.typeChangeSplit(dep, child, stack)
	default:
		return nil
	}
}

// asyncSplit creates (or reuses) a bundle-group root for an async or
// isolated child, records its dependency edge, and walks the ancestor
// stack to mark which roots can reach the new bundle.
func (p *planner) asyncSplit(dep *assetgraph.Dependency, child *assetgraph.Asset, stack []frame) error {
	if len(stack) == 0 {
		return invariantf("async split for asset %q with no ancestor bundle", child.ID)
	}

	info, exists := p.bundleRoots[child.ID]
	if !exists {
		top, _ := p.bundle(stack[len(stack)-1].groupID)
		behavior := dep.BundleBehavior
		if behavior == assetgraph.BehaviorNone {
			behavior = child.BundleBehavior
		}
		stable := dep.IsEntry || dep.NeedsStableName
		if dep.BundleBehavior == assetgraph.BehaviorInline || child.BundleBehavior == assetgraph.BehaviorInline {
			stable = false
		}
		b := &Bundle{
			RootAssetID:     child.ID,
			Assets:          map[string]*assetgraph.Asset{child.ID: child},
			Size:            child.Size,
			Type:            child.Type,
			Env:             child.Env,
			Target:          top.Target,
			NeedsStableName: stable,
			Behavior:        behavior,
		}
		id := p.bundles.AddNode(b)
		info = RootInfo{BundleID: id, GroupID: id}
		p.registerRoot(child.ID, info)
		p.registerGroup(id)
		p.asyncRoots.AddNodeByContentKey(child.ID, child)
	}
	p.addDependencyBundleEdge(dep, info.BundleID, dep.Priority)
	if dep.Priority == assetgraph.PriorityLazy {
		p.lazyRoots[child.ID] = true
	}

	// Walk the ancestor frames top-down until the type or context
	// changes or the environment is isolated. Every root along the way
	// can reach the new bundle; only the immediate ancestor becomes
	// its async parent.
	for i := len(stack) - 1; i >= 0; i-- {
		ancestor := stack[i].asset
		if ancestor.Type != child.Type || ancestor.Env.Context != child.Env.Context || ancestor.Env.IsIsolated {
			break
		}
		p.reachableBundleSet(ancestor.ID).Add(child.ID)
		if i == len(stack)-1 {
			parentNode, parentOK := p.asyncRoots.NodeIDByContentKey(ancestor.ID)
			childNode, childOK := p.asyncRoots.NodeIDByContentKey(child.ID)
			if parentOK && childOK {
				p.asyncRoots.AddEdge(parentNode, childNode)
			}
		}
	}
	return nil
}

// typeChangeSplit creates (or reuses) a bundle for a child whose type
// differs from its parent, or whose behavior is inline. The child
// stays in the current frame's bundle group.
func (p *planner) typeChangeSplit(dep *assetgraph.Dependency, child *assetgraph.Asset, stack []frame) error {
	if len(stack) == 0 {
		return invariantf("type-change split for asset %q with no ancestor bundle", child.ID)
	}
	groupID := stack[len(stack)-1].groupID

	info, exists := p.bundleRoots[child.ID]
	if !exists {
		group, _ := p.bundle(groupID)
		behavior := dep.BundleBehavior
		if behavior == assetgraph.BehaviorNone {
			behavior = child.BundleBehavior
		}
		b := &Bundle{
			RootAssetID:     child.ID,
			Assets:          map[string]*assetgraph.Asset{child.ID: child},
			Size:            child.Size,
			Type:            child.Type,
			Env:             child.Env,
			Target:          group.Target,
			NeedsStableName: dep.BundleBehavior == assetgraph.BehaviorInline,
			Behavior:        behavior,
		}
		id := p.bundles.AddNode(b)
		info = RootInfo{BundleID: id, GroupID: groupID}
		p.registerRoot(child.ID, info)
	}
	p.bundles.AddEdge(groupID, info.BundleID)
	p.assetRefs[child.ID] = append(p.assetRefs[child.ID], AssetReference{
		DependencyID: dep.ID,
		BundleID:     info.BundleID,
	})
	p.addDependencyBundleEdge(dep, info.BundleID, assetgraph.PriorityParallel)
	return nil
}
