package bundler

import (
	"github.com/rs/zerolog"

	"github.com/piyush168713/parcel/internal/assetgraph"
	"github.com/piyush168713/parcel/internal/config"
	"github.com/piyush168713/parcel/internal/graph"
)

// asyncGraphRootKey is the content key of the synthetic root of the
// async bundle-root graph.
const asyncGraphRootKey = "@@root"

// Option configures a planning run.
type Option func(*planner)

// WithLogger attaches a logger for debug-level phase summaries. The
// default is a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *planner) { p.log = l }
}

// planner holds all mutable state of one planning run. The internal
// graphs are fields here rather than parameters threaded through the
// phases.
type planner struct {
	input *assetgraph.Graph
	cfg   config.Resolved
	log   zerolog.Logger

	// bundles is the bundle graph: edges express "loaded together
	// with" (group containment and shared-bundle membership).
	bundles *graph.Graph[*Bundle]

	// bundleRoots maps a root asset id to its bundle and group.
	bundleRoots map[string]RootInfo

	// rootOrder lists root asset ids in creation order.
	rootOrder []string

	// groupIDs lists bundle-group root bundle ids in creation order.
	groupIDs []graph.NodeID

	// asyncRoots orders availability propagation: nodes are bundle
	// roots plus a synthetic root, edges are async/lazy parent->child
	// across matching type and context.
	asyncRoots  *graph.ContentGraph[*assetgraph.Asset]
	asyncRootID graph.NodeID

	// reachable records edges root -> asset for every asset
	// synchronously reachable from a bundle root.
	reachable *graph.ContentGraph[*assetgraph.Asset]

	// depBundles is the bipartite dependency/bundle graph surfaced to
	// the caller, edges labeled with dependency priority.
	depBundles *graph.ContentGraph[DependencyBundleNode]

	// reachableBundles maps an ancestor root asset id to the async
	// roots created below it within the same type/context boundary.
	reachableBundles map[string]*stringSet

	// reachableAsync maps an async bundle's node id to the roots that
	// can lazily reach it.
	reachableAsync map[graph.NodeID]*stringSet

	// ancestors maps a bundle-root asset id to the assets guaranteed
	// loaded whenever that root loads. A nil entry means "not yet
	// computed" and is distinct from an empty set.
	ancestors map[string]*stringSet

	// groupRefCount counts, per bundle group, how many of the group's
	// bundles carry each asset.
	groupRefCount map[graph.NodeID]map[string]int

	// assetRefs records dependency->bundle references for split
	// assets, keyed by the split asset id.
	assetRefs map[string][]AssetReference

	// discovery lists assets in phase-1 DFS discovery order.
	discovery []*assetgraph.Asset

	// entries lists entry roots in discovery order.
	entries []entryPair

	// sharedByKey deduplicates shared bundles by their sorted reacher
	// key.
	sharedByKey map[string]graph.NodeID

	// lazyRoots marks async roots referenced by at least one lazy
	// dependency. Only these are subject to orphan dropping; isolated
	// bundles reached through sync dependencies always stay.
	lazyRoots map[string]bool
}

type entryPair struct {
	asset *assetgraph.Asset
	dep   *assetgraph.Dependency
}

// Plan computes the ideal bundle plan for the input graph. The input
// is treated as read-only; the returned plan is frozen.
func Plan(input *assetgraph.Graph, cfg config.Resolved, opts ...Option) (*IdealPlan, error) {
	p := &planner{
		input:            input,
		cfg:              cfg,
		log:              zerolog.Nop(),
		bundles:          graph.New[*Bundle](),
		bundleRoots:      make(map[string]RootInfo),
		asyncRoots:       graph.NewContent[*assetgraph.Asset](),
		reachable:        graph.NewContent[*assetgraph.Asset](),
		depBundles:       graph.NewContent[DependencyBundleNode](),
		reachableBundles: make(map[string]*stringSet),
		reachableAsync:   make(map[graph.NodeID]*stringSet),
		ancestors:        make(map[string]*stringSet),
		groupRefCount:    make(map[graph.NodeID]map[string]int),
		assetRefs:        make(map[string][]AssetReference),
		sharedByKey:      make(map[string]graph.NodeID),
		lazyRoots:        make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.asyncRootID = p.asyncRoots.AddNodeByContentKey(asyncGraphRootKey, nil)

	if err := p.discover(); err != nil {
		return nil, err
	}
	p.log.Debug().
		Int("entries", len(p.entries)).
		Int("bundle_roots", len(p.rootOrder)).
		Msg("entry and split discovery complete")

	p.computeReachability()
	p.computeAvailability()
	if err := p.place(); err != nil {
		return nil, err
	}
	p.mergeAndCleanup()

	plan := p.export()
	stats := plan.Stats()
	p.log.Debug().
		Int("bundles", stats.BundleCount).
		Int("shared", stats.SharedCount).
		Uint64("total_size", stats.TotalSize).
		Msg("planning complete")
	return plan, nil
}

// bundle returns the bundle payload for id.
func (p *planner) bundle(id graph.NodeID) (*Bundle, bool) {
	return p.bundles.Node(id)
}

// registerGroup marks a bundle as a bundle-group root.
func (p *planner) registerGroup(id graph.NodeID) {
	p.groupIDs = append(p.groupIDs, id)
}

// registerRoot records a new bundle root.
func (p *planner) registerRoot(assetID string, info RootInfo) {
	p.bundleRoots[assetID] = info
	p.rootOrder = append(p.rootOrder, assetID)
}

// addDependencyBundleEdge links a dependency node to a bundle node,
// labeled with the given priority.
func (p *planner) addDependencyBundleEdge(dep *assetgraph.Dependency, bundleID graph.NodeID, label assetgraph.Priority) {
	depNode := p.depBundles.AddNodeByContentKey(dep.ID, DependencyBundleNode{
		Kind:         KindDependency,
		DependencyID: dep.ID,
	})
	bundleNode := p.depBundles.AddNodeByContentKey(bundleContentKey(bundleID), DependencyBundleNode{
		Kind:     KindBundle,
		BundleID: bundleID,
	})
	p.depBundles.AddLabeledEdge(depNode, bundleNode, graph.EdgeLabel(label))
}

// reachableAsyncSet returns the lazily-reaching root set for a bundle,
// creating it on first use.
func (p *planner) reachableAsyncSet(bundleID graph.NodeID) *stringSet {
	set, exists := p.reachableAsync[bundleID]
	if !exists {
		set = newStringSet()
		p.reachableAsync[bundleID] = set
	}
	return set
}

// reachableBundleSet returns the async-descendant set for an ancestor
// root asset, creating it on first use.
func (p *planner) reachableBundleSet(assetID string) *stringSet {
	set, exists := p.reachableBundles[assetID]
	if !exists {
		set = newStringSet()
		p.reachableBundles[assetID] = set
	}
	return set
}
