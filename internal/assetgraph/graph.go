package assetgraph

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a lookup for an unknown asset or dependency id.
var ErrNotFound = errors.New("not found")

// Graph is the input asset/dependency graph. Assets point at
// dependencies, dependencies resolve to assets. Iteration follows
// insertion order everywhere.
type Graph struct {
	assets     map[string]*Asset
	assetOrder []string

	deps     map[string]*Dependency
	depOrder []string

	// outgoing maps an asset id to its dependency ids in import order.
	outgoing map[string][]string

	// resolved maps a dependency id to the asset ids it resolves to.
	resolved map[string][]string

	// incoming maps an asset id to the dependency ids resolving to it.
	incoming map[string][]string

	// rootDeps are dependencies with no source asset, in order.
	rootDeps []string
}

// NewGraph returns an empty asset graph.
func NewGraph() *Graph {
	return &Graph{
		assets:   make(map[string]*Asset),
		deps:     make(map[string]*Dependency),
		outgoing: make(map[string][]string),
		resolved: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddAsset registers an asset.
func (g *Graph) AddAsset(a *Asset) error {
	if a.ID == "" {
		return fmt.Errorf("asset id is required")
	}
	if _, exists := g.assets[a.ID]; exists {
		return fmt.Errorf("duplicate asset id: %q", a.ID)
	}
	g.assets[a.ID] = a
	g.assetOrder = append(g.assetOrder, a.ID)
	return nil
}

// AddDependency registers a dependency. A dependency with an empty
// SourceAssetID is a root-level dependency (typically an entry).
func (g *Graph) AddDependency(d *Dependency) error {
	if d.ID == "" {
		return fmt.Errorf("dependency id is required")
	}
	if _, exists := g.deps[d.ID]; exists {
		return fmt.Errorf("duplicate dependency id: %q", d.ID)
	}
	if d.SourceAssetID != "" {
		if _, exists := g.assets[d.SourceAssetID]; !exists {
			return fmt.Errorf("dependency %q: source asset %q: %w", d.ID, d.SourceAssetID, ErrNotFound)
		}
	}
	g.deps[d.ID] = d
	g.depOrder = append(g.depOrder, d.ID)
	if d.SourceAssetID == "" {
		g.rootDeps = append(g.rootDeps, d.ID)
	} else {
		g.outgoing[d.SourceAssetID] = append(g.outgoing[d.SourceAssetID], d.ID)
	}
	return nil
}

// ResolveDependency records that dep resolves to asset.
func (g *Graph) ResolveDependency(depID, assetID string) error {
	if _, exists := g.deps[depID]; !exists {
		return fmt.Errorf("dependency %q: %w", depID, ErrNotFound)
	}
	if _, exists := g.assets[assetID]; !exists {
		return fmt.Errorf("asset %q: %w", assetID, ErrNotFound)
	}
	for _, existing := range g.resolved[depID] {
		if existing == assetID {
			return nil
		}
	}
	g.resolved[depID] = append(g.resolved[depID], assetID)
	g.incoming[assetID] = append(g.incoming[assetID], depID)
	return nil
}

// Asset returns the asset with the given id.
func (g *Graph) Asset(id string) (*Asset, bool) {
	a, exists := g.assets[id]
	return a, exists
}

// Dependency returns the dependency with the given id.
func (g *Graph) Dependency(id string) (*Dependency, bool) {
	d, exists := g.deps[id]
	return d, exists
}

// Assets returns all assets in insertion order.
func (g *Graph) Assets() []*Asset {
	out := make([]*Asset, 0, len(g.assetOrder))
	for _, id := range g.assetOrder {
		out = append(out, g.assets[id])
	}
	return out
}

// Dependencies returns all dependencies in insertion order.
func (g *Graph) Dependencies() []*Dependency {
	out := make([]*Dependency, 0, len(g.depOrder))
	for _, id := range g.depOrder {
		out = append(out, g.deps[id])
	}
	return out
}

// RootDependencies returns the root-level dependencies in order.
func (g *Graph) RootDependencies() []*Dependency {
	out := make([]*Dependency, 0, len(g.rootDeps))
	for _, id := range g.rootDeps {
		out = append(out, g.deps[id])
	}
	return out
}

// OutgoingDependencies returns the dependencies imported by the asset,
// in import order.
func (g *Graph) OutgoingDependencies(assetID string) []*Dependency {
	ids := g.outgoing[assetID]
	out := make([]*Dependency, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.deps[id])
	}
	return out
}

// DependencyAssets returns the assets a dependency resolves to, in
// resolution order.
func (g *Graph) DependencyAssets(dep *Dependency) []*Asset {
	ids := g.resolved[dep.ID]
	out := make([]*Asset, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.assets[id])
	}
	return out
}

// IncomingDependencies returns the dependencies resolving to the
// asset.
func (g *Graph) IncomingDependencies(assetID string) []*Dependency {
	ids := g.incoming[assetID]
	out := make([]*Dependency, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.deps[id])
	}
	return out
}
